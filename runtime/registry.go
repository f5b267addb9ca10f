package runtime

import (
	"sync"

	"github.com/google/uuid"

	"openchat/contract"
	"openchat/domain"
	"openchat/errors"
)

type session struct {
	id     string
	userID domain.UserID
	sink   contract.EventSink
	rooms  map[domain.ChatID]struct{}
}

// Registry owns every live session and its room subscriptions.
// A user may hold several sessions at once (one per device); each session
// belongs to exactly one user and disappears atomically on Deregister,
// subscriptions included.
//
// The single registry mutex serializes mutations for any given user, which
// is what the multi-device contract requires. Call state and the friend
// graph are locked elsewhere, so unrelated components never contend here.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*session
	byUser   map[domain.UserID]map[string]*session
	byRoom   map[domain.ChatID]map[string]*session
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*session),
		byUser:   make(map[domain.UserID]map[string]*session),
		byRoom:   make(map[domain.ChatID]map[string]*session),
	}
}

// Register creates a session for an authenticated connection and returns its
// ID. Repeated calls for the same user create additional sessions.
func (r *Registry) Register(userID domain.UserID, sink contract.EventSink) string {
	s := &session{
		id:     uuid.NewString(),
		userID: userID,
		sink:   sink,
		rooms:  make(map[domain.ChatID]struct{}),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[s.id] = s
	if _, ok := r.byUser[userID]; !ok {
		r.byUser[userID] = make(map[string]*session)
	}
	r.byUser[userID][s.id] = s
	return s.id
}

// Deregister removes the session and every room subscription it holds.
// Empty per-user and per-room sets are deleted to prevent the maps from
// growing without bound over connection churn.
func (r *Registry) Deregister(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return
	}
	delete(r.sessions, sessionID)

	if peers, ok := r.byUser[s.userID]; ok {
		delete(peers, sessionID)
		if len(peers) == 0 {
			delete(r.byUser, s.userID)
		}
	}
	for roomID := range s.rooms {
		if members, ok := r.byRoom[roomID]; ok {
			delete(members, sessionID)
			if len(members) == 0 {
				delete(r.byRoom, roomID)
			}
		}
	}
}

// JoinRoom subscribes the session to a room. Chat membership is not checked
// here: the fan-out path resolves recipients from the persistent chat store,
// so an uninvited subscriber never receives messages it should not.
func (r *Registry) JoinRoom(sessionID string, roomID domain.ChatID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return errors.ErrSessionNotFound
	}
	s.rooms[roomID] = struct{}{}
	if _, ok := r.byRoom[roomID]; !ok {
		r.byRoom[roomID] = make(map[string]*session)
	}
	r.byRoom[roomID][sessionID] = s
	return nil
}

// LeaveRoom drops the session's subscription to a room.
func (r *Registry) LeaveRoom(sessionID string, roomID domain.ChatID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return errors.ErrSessionNotFound
	}
	delete(s.rooms, roomID)
	if members, ok := r.byRoom[roomID]; ok {
		delete(members, sessionID)
		if len(members) == 0 {
			delete(r.byRoom, roomID)
		}
	}
	return nil
}

// SessionsOf returns the sinks of every live session of a user.
// An empty result means the user is offline.
func (r *Registry) SessionsOf(userID domain.UserID) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	peers, ok := r.byUser[userID]
	if !ok {
		return nil
	}
	sinks := make([]contract.EventSink, 0, len(peers))
	for _, s := range peers {
		sinks = append(sinks, s.sink)
	}
	return sinks
}

// SinksForRoom returns the sinks of every session subscribed to a room,
// excluding every session belonging to exclude.
func (r *Registry) SinksForRoom(roomID domain.ChatID, exclude domain.UserID) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.byRoom[roomID]
	if !ok {
		return nil
	}
	var sinks []contract.EventSink
	for _, s := range members {
		if s.userID == exclude {
			continue
		}
		sinks = append(sinks, s.sink)
	}
	return sinks
}

// UserOf resolves the owner of a session, mainly for transport handlers
// that only carry the session ID.
func (r *Registry) UserOf(sessionID string) (domain.UserID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return "", false
	}
	return s.userID, true
}
