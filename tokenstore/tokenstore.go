// Package tokenstore persists the session token outside the reactive client state so it
// survives restarts. The layout is a single durable key (TokenKey) holding the access
// token string; its presence is the only signal the client uses to decide between the
// sign-in view and the feed.
package tokenstore

import (
	"context"
	"sync"
)

// TokenKey is the one durable key the client reads and writes.
const TokenKey = "localJWT"

// Store is the durable token storage used by the app and the gateway.
type Store interface {
	// Load returns the stored token and whether one is present.
	Load(ctx context.Context) (string, bool, error)
	// Save overwrites the stored token.
	Save(ctx context.Context, token string) error
	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// MemoryStore is a process-local Store, used in tests and for throwaway sessions.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	ok    bool
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWithToken returns a MemoryStore preloaded with token.
func NewMemoryStoreWithToken(token string) *MemoryStore {
	return &MemoryStore{token: token, ok: true}
}

func (m *MemoryStore) Load(_ context.Context) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.ok, nil
}

func (m *MemoryStore) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.ok = token, true
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.ok = "", false
	return nil
}
