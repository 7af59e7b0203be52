package state

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store holds the current State and serializes every change to it. A Dispatch call
// applies its messages as one atomic step, so readers never observe half of an
// action's update.
type Store struct {
	mu    sync.RWMutex
	state State

	subMu       sync.Mutex
	subscribers map[string]chan State

	logger *zap.Logger
}

// NewStore creates a store starting from initial.
func NewStore(initial State, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		state:       initial,
		subscribers: make(map[string]chan State),
		logger:      logger,
	}
}

// Snapshot returns the current state. Collections are copy-on-write, so the
// snapshot stays valid after later dispatches.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies msgs in order as a single update and returns the resulting state.
// Subscribers receive the result once per call.
func (s *Store) Dispatch(msgs ...Msg) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	for _, m := range msgs {
		next = Reduce(next, m)
	}
	s.state = next

	// Notifying under s.mu keeps notifications in dispatch order. Sends never block.
	s.notify(next)
	return next
}

// Subscribe registers a listener and returns its id and a channel that always holds
// the most recent state. A slow listener skips intermediate states rather than
// stalling dispatches.
func (s *Store) Subscribe() (string, <-chan State) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := uuid.New().String()
	ch := make(chan State, 1)
	s.subscribers[id] = ch
	s.logger.Debug("state subscriber registered", zap.String("subscriber", id))
	return id, ch
}

// Unsubscribe removes the listener and closes its channel. Unknown ids are ignored.
func (s *Store) Unsubscribe(id string) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if ch, ok := s.subscribers[id]; ok {
		close(ch)
		delete(s.subscribers, id)
		s.logger.Debug("state subscriber removed", zap.String("subscriber", id))
	}
}

func (s *Store) notify(next State) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subscribers {
		// Drop the stale pending state, if any, then deliver the new one.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- next:
		default:
		}
	}
}
