// Package ws is the real-time transport: one WebSocket connection per
// session, JSON frames in both directions.
package ws

import "encoding/json"

// Frame is the wire envelope. Event carries the event name, Data the
// event-specific payload.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Inbound event names.
const (
	evtJoinChat    = "join-chat"
	evtLeaveChat   = "leave-chat"
	evtSendMessage = "send-message"
	evtTyping      = "typing"
	evtStopTyping  = "stop-typing"
	evtCallUser    = "call-user"
	evtAnswerCall  = "answer-call"
)

type roomPayload struct {
	ChatID string `json:"chatId"`
}

type sendMessagePayload struct {
	ChatID  string `json:"chatId"`
	Content string `json:"content"`
}

type callPayload struct {
	ToUserID string          `json:"toUserId"`
	Payload  json.RawMessage `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}
