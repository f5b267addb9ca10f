package workers

import (
	"context"
	"log/slog"
	"time"
)

// RingingCalls is the slice of the call broker the sweeper needs.
type RingingCalls interface {
	SweepStaleRinging(now time.Time)
}

// RingSweeper periodically resets call pairs stuck in ringing, bounding how
// long an unanswered or offline callee keeps a pair busy.
type RingSweeper struct {
	log      *slog.Logger
	broker   RingingCalls
	interval time.Duration
}

func NewRingSweeper(log *slog.Logger, broker RingingCalls, interval time.Duration) *RingSweeper {
	return &RingSweeper{log: log, broker: broker, interval: interval}
}

func (w *RingSweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping ring sweeper")
			return nil
		case now := <-ticker.C:
			w.broker.SweepStaleRinging(now)
		}
	}
}
