// Package event defines the events the real-time layer pushes to live
// connections. Events are ephemeral: delivery is at-most-once per live
// session, with no retry and no persistence.
package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"openchat/domain"
)

// DomainEvent is anything deliverable to a live connection.
// Name returns the wire-level event name the transport serializes under.
type DomainEvent interface {
	Name() string
}

// Connected acknowledges a successful authenticated handshake.
type Connected struct {
	SessionID string        `json:"sessionId"`
	UserID    domain.UserID `json:"userId"`
}

func (Connected) Name() string { return "connected" }

// MessageReceived carries one chat message to a recipient session.
type MessageReceived struct {
	ID       uuid.UUID     `json:"id"`
	ChatID   domain.ChatID `json:"chatId"`
	SenderID domain.UserID `json:"senderId"`
	Content  string        `json:"content"`
	SentAt   time.Time     `json:"sentAt"`
}

func (MessageReceived) Name() string { return "message-received" }

// Typing signals that a user started composing in a room.
type Typing struct {
	ChatID domain.ChatID `json:"chatId"`
	UserID domain.UserID `json:"userId"`
}

func (Typing) Name() string { return "typing" }

// StopTyping signals that a user stopped composing in a room.
type StopTyping struct {
	ChatID domain.ChatID `json:"chatId"`
	UserID domain.UserID `json:"userId"`
}

func (StopTyping) Name() string { return "stop-typing" }

// CallIncoming relays a call offer to the callee. Payload is opaque
// signaling data (SDP offer or similar), relayed verbatim.
type CallIncoming struct {
	From    domain.UserID   `json:"from"`
	Payload json.RawMessage `json:"payload"`
}

func (CallIncoming) Name() string { return "call-incoming" }

// CallAccepted relays the answer back to the caller.
type CallAccepted struct {
	From    domain.UserID   `json:"from"`
	Payload json.RawMessage `json:"payload"`
}

func (CallAccepted) Name() string { return "call-accepted" }

// CallEnded tells the remaining participant of one specific pair that the
// call is over. It is never broadcast beyond that participant.
type CallEnded struct {
	From domain.UserID `json:"from"`
}

func (CallEnded) Name() string { return "call-ended" }
