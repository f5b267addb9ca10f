//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"openchat/domain"
	"openchat/domain/event"
)

// Worker doesn't protect itself.
// Can be silly, focused.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink is one live connection's inbox. Consume must not block on
// network I/O: implementations buffer and let their own writer drain.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// IRegistry tracks live sessions and their room subscriptions.
// Multiple sessions per user are allowed (multi-device).
type IRegistry interface {
	Register(userID domain.UserID, sink EventSink) string
	Deregister(sessionID string)
	JoinRoom(sessionID string, roomID domain.ChatID) error
	LeaveRoom(sessionID string, roomID domain.ChatID) error
	SessionsOf(userID domain.UserID) []EventSink
	SinksForRoom(roomID domain.ChatID, exclude domain.UserID) []EventSink
}

// IFanout delivers an event to every live session of every recipient
// except the sender. Offline recipients are silently skipped.
type IFanout interface {
	Deliver(ctx context.Context, sender domain.UserID, recipients []domain.UserID, e event.DomainEvent)
	BroadcastToRoom(ctx context.Context, roomID domain.ChatID, exclude domain.UserID, e event.DomainEvent)
}

// ICallBroker drives the per-pair call signaling state machine.
type ICallBroker interface {
	CallUser(ctx context.Context, from, to domain.UserID, payload []byte) error
	AnswerCall(ctx context.Context, from, to domain.UserID, payload []byte) error
	HangUp(ctx context.Context, userID, peer domain.UserID)
	EndCallsOf(ctx context.Context, userID domain.UserID)
}
