// Package domain contains core concepts of the chat system.
// This file defines Message events and related rules.
// Messages are immutable and validated by the domain.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message represents an immutable chat event.
// The real-time layer passes it through; the repository owns durability.
type Message struct {
	ID       uuid.UUID
	ChatID   ChatID
	SenderID UserID
	Content  string
	SentAt   time.Time
}
