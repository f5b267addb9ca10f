//go:generate go run go.uber.org/mock/mockgen -source=chat.go -destination=../mocks/mock_chat_repository.go -package=mocks
package repositories

import (
	stderrors "errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"openchat/domain"
	"openchat/errors"
)

type IChatRepository interface {
	CreateChat(name string, isGroup bool, members []domain.UserID) (domain.Chat, error)
	GetChat(id domain.ChatID) (domain.Chat, error)
}

// ChatRepository owns conversation records and, crucially, their membership
// sets. The send pipeline reads the stored chat on every delivery and fans
// out to its members instead of trusting any recipient list a client sends
// along.
type ChatRepository struct {
	db *badger.DB
}

func NewChatRepository(db *badger.DB) IChatRepository {
	return &ChatRepository{db: db}
}

type chatRecord struct {
	ID        string   `cbor:"1,keyasint"`
	Name      string   `cbor:"2,keyasint"`
	IsGroup   bool     `cbor:"3,keyasint"`
	Members   []string `cbor:"4,keyasint"`
	CreatedAt int64    `cbor:"5,keyasint"`
}

func chatKey(id domain.ChatID) []byte { return []byte("chat:" + string(id)) }

func (c ChatRepository) CreateChat(name string, isGroup bool, members []domain.UserID) (domain.Chat, error) {
	record := chatRecord{
		ID:      uuid.NewString(),
		Name:    name,
		IsGroup: isGroup,
		Members: lo.Map(members, func(id domain.UserID, _ int) string {
			return string(id)
		}),
		CreatedAt: time.Now().Unix(),
	}

	data, err := cbor.Marshal(record)
	if err != nil {
		return domain.Chat{}, err
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(chatKey(domain.ChatID(record.ID)), data)
	})
	if err != nil {
		return domain.Chat{}, err
	}
	return toChat(record), nil
}

func (c ChatRepository) GetChat(id domain.ChatID) (domain.Chat, error) {
	var record chatRecord
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(chatKey(id))
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrChatNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return cbor.Unmarshal(val, &record)
		})
	})
	if err != nil {
		return domain.Chat{}, err
	}
	return toChat(record), nil
}

func toChat(record chatRecord) domain.Chat {
	return domain.Chat{
		ID:      domain.ChatID(record.ID),
		Name:    record.Name,
		IsGroup: record.IsGroup,
		Members: lo.Map(record.Members, func(id string, _ int) domain.UserID {
			return domain.UserID(id)
		}),
		CreatedAt: time.Unix(record.CreatedAt, 0).UTC(),
	}
}
