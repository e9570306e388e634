package session

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/cacaneves/dev-sistema-codigo/internal/logging"
)

const AccessTokenKey = "accessToken"

var ErrNotFound = errors.New("session: key not found")

// Store is the read side of the client's persistent key-value storage.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
}

// AccessToken returns the stored bearer token, or "" when there is none. Lookup failures are
// logged and treated as "not logged in".
func AccessToken(ctx context.Context, s Store) string {
	if s == nil {
		return ""
	}
	v, err := s.Get(ctx, AccessTokenKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logging.FromContext(ctx).Warn("token_lookup_failed", "error", err)
		}
		return ""
	}
	return v
}

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore(seed map[string]string) *MemoryStore {
	m := &MemoryStore{data: make(map[string]string, len(seed))}
	for k, v := range seed {
		m.data[k] = v
	}
	return m
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok || v == "" {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStore) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// CookieStore exposes the cookies of one browser request as the key-value store.
type CookieStore struct {
	req *http.Request
}

func FromRequest(r *http.Request) CookieStore {
	return CookieStore{req: r}
}

func (c CookieStore) Get(_ context.Context, key string) (string, error) {
	if c.req == nil {
		return "", ErrNotFound
	}
	ck, err := c.req.Cookie(key)
	if err != nil || ck.Value == "" {
		return "", ErrNotFound
	}
	return ck.Value, nil
}
