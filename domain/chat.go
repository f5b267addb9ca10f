package domain

import "time"

// ChatID identifies a 1:1 or group conversation. Also called a room on the
// real-time side: a session subscribes to the ChatIDs it wants live events for.
type ChatID string

// Chat is a conversation with its authoritative membership set.
// Membership is owned by the persistent store; the real-time layer re-resolves
// it per delivery and never trusts a client-supplied recipient list.
type Chat struct {
	ID        ChatID
	Name      string
	IsGroup   bool
	Members   []UserID
	CreatedAt time.Time
}

// HasMember reports whether userID belongs to the chat.
func (c Chat) HasMember(userID UserID) bool {
	for _, m := range c.Members {
		if m == userID {
			return true
		}
	}
	return false
}
