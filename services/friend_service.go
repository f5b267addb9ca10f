package services

import (
	"github.com/google/uuid"

	"openchat/domain"
	"openchat/errors"
	"openchat/repositories"
)

// Action is a response to a pending friend request.
type Action string

const (
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
)

type IFriendService interface {
	SendRequest(from, to domain.UserID) (uuid.UUID, error)
	Respond(owner domain.UserID, requestID uuid.UUID, action Action) error
	ListFriends(owner domain.UserID) ([]domain.UserID, []domain.FriendRequest, error)
}

// FriendService drives the friend request lifecycle. State-dependent checks
// (existing friendship, pending requests in either direction) and the
// accept commit run inside repository transactions, so concurrent calls
// cannot break the graph invariants; this layer keeps the checks that need
// no records.
type FriendService struct {
	users repositories.IUserRepository
}

func NewFriendService(users repositories.IUserRepository) IFriendService {
	return &FriendService{users: users}
}

func (s *FriendService) SendRequest(from, to domain.UserID) (uuid.UUID, error) {
	if from == to {
		return uuid.Nil, errors.ErrSelfFriendRequest
	}
	return s.users.SendFriendRequest(from, to)
}

// Respond resolves a pending request. Two concurrent responses to the same
// request resolve to exactly one success; the loser sees not-found.
func (s *FriendService) Respond(owner domain.UserID, requestID uuid.UUID, action Action) error {
	switch action {
	case ActionAccept:
		return s.users.AcceptFriendRequest(owner, requestID)
	case ActionReject:
		return s.users.RejectFriendRequest(owner, requestID)
	default:
		return errors.ErrInvalidAction
	}
}

func (s *FriendService) ListFriends(owner domain.UserID) ([]domain.UserID, []domain.FriendRequest, error) {
	return s.users.ListFriends(owner)
}
