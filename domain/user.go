// Package domain contains core concepts of the chat system.
// This file defines User identities and the friend graph entities.
// No runtime, network, or storage logic should be added here.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID is an opaque stable identifier for an account.
// The auth layer is the source of truth for identity.
type UserID string

// RequestStatus is the lifecycle state of a friend request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// FriendRequest is a directed pending request, stored on the recipient.
// Accepting it produces two symmetric friendship memberships.
type FriendRequest struct {
	ID     uuid.UUID
	From   UserID
	Status RequestStatus
	SentAt time.Time
}

// User is an account together with its friend graph entry.
// Friends is symmetric across records: A lists B iff B lists A.
type User struct {
	ID             UserID
	Name           string
	Email          string
	PasswordHash   string
	Friends        []UserID
	FriendRequests []FriendRequest
	CreatedAt      time.Time
}

// IsFriend reports whether other already belongs to the user's friend set.
func (u User) IsFriend(other UserID) bool {
	for _, f := range u.Friends {
		if f == other {
			return true
		}
	}
	return false
}

// PendingFrom returns the pending request sent by from, if any.
func (u User) PendingFrom(from UserID) (FriendRequest, bool) {
	for _, r := range u.FriendRequests {
		if r.From == from && r.Status == RequestPending {
			return r, true
		}
	}
	return FriendRequest{}, false
}
