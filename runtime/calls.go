package runtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"openchat/contract"
	"openchat/domain"
	"openchat/domain/event"
	"openchat/errors"
)

// callState is the signaling machine for one unordered user pair.
// Its mutex makes transitions for the pair mutually exclusive while leaving
// unrelated pairs free to progress in parallel.
type callState struct {
	mu           sync.Mutex
	phase        domain.CallPhase
	caller       domain.UserID
	ringingSince time.Time
	gone         bool
}

// CallBroker relays call-setup payloads between exactly two users and owns
// the per-pair CallPhase. Idle pairs are evicted from the map so the broker
// stays proportional to the number of active calls, not the number of users.
type CallBroker struct {
	mu          sync.Mutex
	pairs       map[domain.PairKey]*callState
	registry    contract.IRegistry
	log         *slog.Logger
	ringTimeout time.Duration
}

func NewCallBroker(log *slog.Logger, registry contract.IRegistry, ringTimeout time.Duration) *CallBroker {
	return &CallBroker{
		pairs:       make(map[domain.PairKey]*callState),
		registry:    registry,
		log:         log,
		ringTimeout: ringTimeout,
	}
}

// lockPair returns the state for the pair with its mutex held.
// States evicted between lookup and lock are retried against a fresh entry.
func (b *CallBroker) lockPair(pair domain.PairKey) *callState {
	for {
		b.mu.Lock()
		s, ok := b.pairs[pair]
		if !ok {
			s = &callState{phase: domain.CallIdle}
			b.pairs[pair] = s
		}
		b.mu.Unlock()

		s.mu.Lock()
		if !s.gone {
			return s
		}
		s.mu.Unlock()
	}
}

// evictIfIdle drops the pair's entry when it has settled back to idle.
func (b *CallBroker) evictIfIdle(pair domain.PairKey) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.pairs[pair]
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == domain.CallIdle {
		s.gone = true
		delete(b.pairs, pair)
	}
}

// CallUser starts ringing the pair and relays the offer payload to every
// live session of the callee. An offline callee is not an error: the pair
// rings into the void and the sweeper resets it after the ring timeout.
func (b *CallBroker) CallUser(ctx context.Context, from, to domain.UserID, payload []byte) error {
	pair := domain.NewPairKey(from, to)
	s := b.lockPair(pair)
	defer s.mu.Unlock()

	if s.phase != domain.CallIdle {
		return errors.ErrCallBusy
	}
	s.phase = domain.CallRinging
	s.caller = from
	s.ringingSince = time.Now()

	b.relay(ctx, to, event.CallIncoming{From: from, Payload: payload})
	return nil
}

// AnswerCall moves a ringing pair to connected and relays the answer
// payload back to the caller. Any of the callee's sessions may answer.
func (b *CallBroker) AnswerCall(ctx context.Context, from, to domain.UserID, payload []byte) error {
	pair := domain.NewPairKey(from, to)
	s := b.lockPair(pair)

	if s.phase != domain.CallRinging || s.caller != to {
		s.mu.Unlock()
		b.evictIfIdle(pair)
		return errors.ErrCallNotFound
	}
	s.phase = domain.CallConnected
	b.relay(ctx, to, event.CallAccepted{From: from, Payload: payload})
	s.mu.Unlock()
	return nil
}

// HangUp ends the call between userID and peer, if one is ringing or
// connected, and notifies only the other participant of that pair.
func (b *CallBroker) HangUp(ctx context.Context, userID, peer domain.UserID) {
	pair := domain.NewPairKey(userID, peer)
	s := b.lockPair(pair)

	if s.phase != domain.CallRinging && s.phase != domain.CallConnected {
		s.mu.Unlock()
		b.evictIfIdle(pair)
		return
	}
	s.phase = domain.CallEnded
	b.relay(ctx, pair.Other(userID), event.CallEnded{From: userID})
	s.phase = domain.CallIdle
	s.mu.Unlock()

	b.evictIfIdle(pair)
}

// EndCallsOf hangs up every active pair involving userID. Called on
// disconnect, so a dropped connection never leaves a peer ringing forever
// and never touches calls between unrelated users.
func (b *CallBroker) EndCallsOf(ctx context.Context, userID domain.UserID) {
	b.mu.Lock()
	var involved []domain.PairKey
	for pair := range b.pairs {
		if pair.Has(userID) {
			involved = append(involved, pair)
		}
	}
	b.mu.Unlock()

	for _, pair := range involved {
		b.HangUp(ctx, userID, pair.Other(userID))
	}
}

// SweepStaleRinging resets pairs that have been ringing longer than the
// ring timeout. No event is surfaced to the caller: an unanswered or
// offline callee looks like a call nobody picked up.
func (b *CallBroker) SweepStaleRinging(now time.Time) {
	b.mu.Lock()
	candidates := make([]domain.PairKey, 0, len(b.pairs))
	for pair := range b.pairs {
		candidates = append(candidates, pair)
	}
	b.mu.Unlock()

	for _, pair := range candidates {
		s := b.lockPair(pair)
		if s.phase == domain.CallRinging && now.Sub(s.ringingSince) >= b.ringTimeout {
			b.log.Debug("ring timed out",
				"caller", string(s.caller),
				"callee", string(pair.Other(s.caller)))
			s.phase = domain.CallIdle
		}
		s.mu.Unlock()
		b.evictIfIdle(pair)
	}
}

// Phase reports the current phase for a pair, mainly for tests and debug.
func (b *CallBroker) Phase(a, other domain.UserID) domain.CallPhase {
	pair := domain.NewPairKey(a, other)
	b.mu.Lock()
	s, ok := b.pairs[pair]
	b.mu.Unlock()
	if !ok {
		return domain.CallIdle
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (b *CallBroker) relay(ctx context.Context, to domain.UserID, e event.DomainEvent) {
	sinks := b.registry.SessionsOf(to)
	for _, sink := range sinks {
		if err := sink.Consume(ctx, e); err != nil {
			b.log.Debug("call relay skipped", "event", e.Name(), "user_id", string(to), "error", err)
		}
	}
}
