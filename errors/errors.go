package errors

import "fmt"

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	// Account / auth.
	ErrUserAlreadyExists  = fmt.Errorf("user already exists")
	ErrInvalidCredentials = fmt.Errorf("invalid email or password")
	ErrInvalidPassword    = fmt.Errorf("password does not meet complexity requirements")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
	ErrInvalidToken       = fmt.Errorf("invalid or expired token")

	// Friend graph.
	ErrSelfFriendRequest    = fmt.Errorf("cannot send a friend request to yourself")
	ErrAlreadyFriends       = fmt.Errorf("user is already your friend")
	ErrRequestAlreadySent   = fmt.Errorf("friend request already sent")
	ErrRequestAlreadyExists = fmt.Errorf("this user has already sent you a friend request")
	ErrRequestNotFound      = fmt.Errorf("friend request not found")
	ErrInvalidAction        = fmt.Errorf("invalid action")
	ErrUserNotFound         = fmt.Errorf("user not found")
	ErrGraphConflict        = fmt.Errorf("friend graph update conflicted, try again")

	// Chats and messages.
	ErrChatNotFound  = fmt.Errorf("chat not found")
	ErrNotChatMember = fmt.Errorf("sender is not a member of this chat")
	ErrEmptyMessage  = fmt.Errorf("message content is empty")

	// Call signaling.
	ErrCallBusy     = fmt.Errorf("a call is already in progress for this pair")
	ErrCallNotFound = fmt.Errorf("no ringing call for this pair")

	// Sessions.
	ErrSessionNotFound = fmt.Errorf("session not found")
)
