package runtime

import (
	"context"
	"log/slog"

	"openchat/contract"
	"openchat/domain"
	"openchat/domain/event"
)

// Fanout pushes events to the live sessions of a recipient set.
//
// It provides best-effort delivery with no guarantees regarding ordering
// across connections, durability, or retries. Fanout is not a message
// broker: offline recipients are skipped silently and are expected to
// reconcile against the persistent message store on reconnect.
//
// Fanout is safe for concurrent use by multiple goroutines.
type Fanout struct {
	log      *slog.Logger
	registry contract.IRegistry
}

func NewFanout(log *slog.Logger, registry contract.IRegistry) *Fanout {
	return &Fanout{log: log, registry: registry}
}

// Deliver pushes e once to every live session of every recipient except the
// sender. Recipients must come from the authoritative chat membership, never
// from a client-supplied payload.
func (f *Fanout) Deliver(ctx context.Context, sender domain.UserID, recipients []domain.UserID, e event.DomainEvent) {
	for _, userID := range recipients {
		if userID == sender {
			continue
		}
		for _, sink := range f.registry.SessionsOf(userID) {
			if err := sink.Consume(ctx, e); err != nil {
				f.log.Debug("fanout delivery skipped",
					"event", e.Name(),
					"user_id", string(userID),
					"error", err)
			}
		}
	}
}

// BroadcastToRoom pushes e to every session subscribed to the room except
// those of exclude. Used for ephemeral presence events; nothing is retained.
func (f *Fanout) BroadcastToRoom(ctx context.Context, roomID domain.ChatID, exclude domain.UserID, e event.DomainEvent) {
	for _, sink := range f.registry.SinksForRoom(roomID, exclude) {
		if err := sink.Consume(ctx, e); err != nil {
			f.log.Debug("room broadcast skipped",
				"event", e.Name(),
				"room_id", string(roomID),
				"error", err)
		}
	}
}
