//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"

	"openchat/domain"
)

type IMessageRepository interface {
	StoreMessage(message domain.Message) error
}

// MessageRepository persists chat messages in BadgerDB.
// History retrieval is served elsewhere; the real-time layer only needs the
// write side so that offline clients can resynchronize after reconnecting.
type MessageRepository struct {
	db *badger.DB
}

func NewMessageRepository(db *badger.DB) IMessageRepository {
	return &MessageRepository{db: db}
}

type messageRecord struct {
	ID       string `cbor:"1,keyasint"`
	ChatID   string `cbor:"2,keyasint"`
	SenderID string `cbor:"3,keyasint"`
	Content  string `cbor:"4,keyasint"`
	SentAt   int64  `cbor:"5,keyasint"`
}

// StoreMessage persists a message.
// The key is formatted as "msg:{chat_id}:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding
//     (lexicographical order).
//  2. Prevent data loss by using the UUID as a collision disconnector if two
//     messages arrive at the same nanosecond.
func (m MessageRepository) StoreMessage(message domain.Message) error {
	key := fmt.Sprintf("msg:%s:%019d:%s",
		message.ChatID,
		message.SentAt.UnixNano(),
		message.ID,
	)
	data, err := cbor.Marshal(messageRecord{
		ID:       message.ID.String(),
		ChatID:   string(message.ChatID),
		SenderID: string(message.SenderID),
		Content:  message.Content,
		SentAt:   message.SentAt.UnixNano(),
	})
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}
