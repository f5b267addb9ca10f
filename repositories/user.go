//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
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

// graphRetries bounds retries on badger transaction conflicts before the
// operation is reported as transient to the caller.
const graphRetries = 3

type IUserRepository interface {
	CreateUser(name, email, hashedPassword string) (domain.User, error)
	GetUser(id domain.UserID) (domain.User, error)
	GetUserByEmail(email string) (domain.User, error)
	SendFriendRequest(from, to domain.UserID) (uuid.UUID, error)
	AcceptFriendRequest(owner domain.UserID, requestID uuid.UUID) error
	RejectFriendRequest(owner domain.UserID, requestID uuid.UUID) error
	ListFriends(owner domain.UserID) ([]domain.UserID, []domain.FriendRequest, error)
}

// UserRepository persists accounts and the friend graph in BadgerDB.
//
// Keys:
//
//	user:{id}        -> cbor(userRecord)
//	useremail:{email} -> id
//
// A friend request lives only on the recipient's record. Acceptance mutates
// two user records; both writes go through one badger transaction so the
// symmetric-friendship invariant can never be observed half-applied.
type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) IUserRepository {
	return &UserRepository{db: db}
}

// userRecord is the storage shape of a user. Kept separate from domain.User
// so the on-disk format can evolve independently.
type userRecord struct {
	ID             string          `cbor:"1,keyasint"`
	Name           string          `cbor:"2,keyasint"`
	Email          string          `cbor:"3,keyasint"`
	PasswordHash   string          `cbor:"4,keyasint"`
	Friends        []string        `cbor:"5,keyasint"`
	FriendRequests []requestRecord `cbor:"6,keyasint"`
	CreatedAt      int64           `cbor:"7,keyasint"`
}

type requestRecord struct {
	ID     string `cbor:"1,keyasint"`
	From   string `cbor:"2,keyasint"`
	Status string `cbor:"3,keyasint"`
	SentAt int64  `cbor:"4,keyasint"`
}

func userKey(id domain.UserID) []byte { return []byte("user:" + string(id)) }
func emailKey(email string) []byte    { return []byte("useremail:" + email) }

// CreateUser persists a new account. The email index entry and the user
// record are written in the same transaction, so a duplicate registration
// race cannot produce two accounts for one email.
func (u UserRepository) CreateUser(name, email, hashedPassword string) (domain.User, error) {
	record := userRecord{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now().Unix(),
	}

	err := u.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(emailKey(email)); err == nil {
			return errors.ErrUserAlreadyExists
		}
		if err := txn.Set(emailKey(email), []byte(record.ID)); err != nil {
			return err
		}
		return writeUser(txn, record)
	})
	if err != nil {
		return domain.User{}, err
	}
	return toUser(record), nil
}

func (u UserRepository) GetUser(id domain.UserID) (domain.User, error) {
	var record userRecord
	err := u.db.View(func(txn *badger.Txn) error {
		var err error
		record, err = readUser(txn, id)
		return err
	})
	if err != nil {
		return domain.User{}, err
	}
	return toUser(record), nil
}

func (u UserRepository) GetUserByEmail(email string) (domain.User, error) {
	var record userRecord
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(emailKey(email))
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrUserNotFound
		}
		if err != nil {
			return err
		}
		var id []byte
		if id, err = item.ValueCopy(nil); err != nil {
			return err
		}
		record, err = readUser(txn, domain.UserID(id))
		return err
	})
	if err != nil {
		return domain.User{}, err
	}
	return toUser(record), nil
}

// SendFriendRequest appends a pending request to the recipient's record.
// All graph checks run inside the transaction: self-requests are rejected
// upstream, existing friendship and a pending request in either direction
// are rejected here, so invariant "at most one pending request per pair"
// holds even under concurrent sends.
func (u UserRepository) SendFriendRequest(from, to domain.UserID) (uuid.UUID, error) {
	requestID := uuid.New()

	err := u.withGraphRetry(func(txn *badger.Txn) error {
		sender, err := readUser(txn, from)
		if err != nil {
			return err
		}
		recipient, err := readUser(txn, to)
		if err != nil {
			return err
		}

		if toUser(sender).IsFriend(to) {
			return errors.ErrAlreadyFriends
		}
		if _, pending := toUser(recipient).PendingFrom(from); pending {
			return errors.ErrRequestAlreadySent
		}
		if _, pending := toUser(sender).PendingFrom(to); pending {
			return errors.ErrRequestAlreadyExists
		}

		recipient.FriendRequests = append(recipient.FriendRequests, requestRecord{
			ID:     requestID.String(),
			From:   string(from),
			Status: string(domain.RequestPending),
			SentAt: time.Now().Unix(),
		})
		return writeUser(txn, recipient)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return requestID, nil
}

// AcceptFriendRequest commits, atomically: the removal of the pending
// request and the two symmetric friend-set additions. Concurrent responses
// to the same request conflict at the badger layer; the retry re-reads and
// finds the request gone, surfacing not-found to exactly one caller.
func (u UserRepository) AcceptFriendRequest(owner domain.UserID, requestID uuid.UUID) error {
	return u.withGraphRetry(func(txn *badger.Txn) error {
		recipient, err := readUser(txn, owner)
		if err != nil {
			return err
		}
		request, remaining, found := takeRequest(recipient, requestID)
		if !found {
			return errors.ErrRequestNotFound
		}

		sender, err := readUser(txn, domain.UserID(request.From))
		if err != nil {
			return err
		}

		recipient.FriendRequests = remaining
		if !lo.Contains(recipient.Friends, request.From) {
			recipient.Friends = append(recipient.Friends, request.From)
		}
		if !lo.Contains(sender.Friends, recipient.ID) {
			sender.Friends = append(sender.Friends, recipient.ID)
		}

		if err := writeUser(txn, recipient); err != nil {
			return err
		}
		return writeUser(txn, sender)
	})
}

// RejectFriendRequest removes the pending request; friend sets are untouched.
func (u UserRepository) RejectFriendRequest(owner domain.UserID, requestID uuid.UUID) error {
	return u.withGraphRetry(func(txn *badger.Txn) error {
		recipient, err := readUser(txn, owner)
		if err != nil {
			return err
		}
		_, remaining, found := takeRequest(recipient, requestID)
		if !found {
			return errors.ErrRequestNotFound
		}
		recipient.FriendRequests = remaining
		return writeUser(txn, recipient)
	})
}

// ListFriends returns the friend set and the incoming pending requests in
// the order they arrived.
func (u UserRepository) ListFriends(owner domain.UserID) ([]domain.UserID, []domain.FriendRequest, error) {
	user, err := u.GetUser(owner)
	if err != nil {
		return nil, nil, err
	}
	pending := lo.Filter(user.FriendRequests, func(r domain.FriendRequest, _ int) bool {
		return r.Status == domain.RequestPending
	})
	return user.Friends, pending, nil
}

// withGraphRetry runs fn in a read-write transaction, retrying on badger
// conflicts. Conflicts legitimately happen when two responses race on one
// request; after the retries are exhausted the caller gets a transient error.
func (u UserRepository) withGraphRetry(fn func(txn *badger.Txn) error) error {
	for attempt := 0; attempt < graphRetries; attempt++ {
		err := u.db.Update(fn)
		if !stderrors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return errors.ErrGraphConflict
}

func readUser(txn *badger.Txn, id domain.UserID) (userRecord, error) {
	item, err := txn.Get(userKey(id))
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return userRecord{}, errors.ErrUserNotFound
	}
	if err != nil {
		return userRecord{}, err
	}
	var record userRecord
	err = item.Value(func(val []byte) error {
		return cbor.Unmarshal(val, &record)
	})
	return record, err
}

func writeUser(txn *badger.Txn, record userRecord) error {
	data, err := cbor.Marshal(record)
	if err != nil {
		return err
	}
	return txn.Set(userKey(domain.UserID(record.ID)), data)
}

// takeRequest splits the owner's pending list into the targeted request and
// the remaining entries.
func takeRequest(record userRecord, requestID uuid.UUID) (requestRecord, []requestRecord, bool) {
	for i, r := range record.FriendRequests {
		if r.ID == requestID.String() && r.Status == string(domain.RequestPending) {
			remaining := append([]requestRecord{}, record.FriendRequests[:i]...)
			remaining = append(remaining, record.FriendRequests[i+1:]...)
			return r, remaining, true
		}
	}
	return requestRecord{}, nil, false
}

func toUser(record userRecord) domain.User {
	return domain.User{
		ID:           domain.UserID(record.ID),
		Name:         record.Name,
		Email:        record.Email,
		PasswordHash: record.PasswordHash,
		Friends: lo.Map(record.Friends, func(id string, _ int) domain.UserID {
			return domain.UserID(id)
		}),
		FriendRequests: lo.Map(record.FriendRequests, func(r requestRecord, _ int) domain.FriendRequest {
			return toFriendRequest(r)
		}),
		CreatedAt: time.Unix(record.CreatedAt, 0).UTC(),
	}
}

func toFriendRequest(r requestRecord) domain.FriendRequest {
	id, _ := uuid.Parse(r.ID)
	return domain.FriendRequest{
		ID:     id,
		From:   domain.UserID(r.From),
		Status: domain.RequestStatus(r.Status),
		SentAt: time.Unix(r.SentAt, 0).UTC(),
	}
}
