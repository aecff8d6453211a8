package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"go-restaurant-pos/models"
)

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("cart session not found")

// Store keeps sessions between requests. Update runs fn against the current
// cart and saves the result atomically with respect to other updates of the
// same session; an error from fn aborts the save. Take reads and removes a
// session in one step, so of two callers only one gets the cart and no update
// can land in between.
type Store interface {
	Create(ctx context.Context, c *Cart) error
	Get(ctx context.Context, sessionID string) (*Cart, error)
	Update(ctx context.Context, sessionID string, fn func(*Cart) error) (*Cart, error)
	Take(ctx context.Context, sessionID string) (*Cart, error)
	Delete(ctx context.Context, sessionID string) error
}

type memoryEntry struct {
	cart    *Cart
	expires time.Time
}

// MemoryStore keeps sessions in process behind a mutex.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memoryEntry
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, sessions: map[string]memoryEntry{}, now: time.Now}
}

func clone(c *Cart) *Cart {
	out := *c
	out.Lines = make([]models.CartLine, len(c.Lines))
	copy(out.Lines, c.Lines)
	return &out
}

// lookup must be called with mu held.
func (s *MemoryStore) lookup(id string) (memoryEntry, bool) {
	e, ok := s.sessions[id]
	if !ok {
		return e, false
	}
	if s.now().After(e.expires) {
		delete(s.sessions, id)
		return e, false
	}
	return e, true
}

func (s *MemoryStore) Create(_ context.Context, c *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[c.SessionID] = memoryEntry{cart: clone(c), expires: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}
	return clone(e.cart), nil
}

func (s *MemoryStore) Update(_ context.Context, id string, fn func(*Cart) error) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}
	working := clone(e.cart)
	if err := fn(working); err != nil {
		return nil, err
	}
	working.UpdatedAt = s.now()
	s.sessions[id] = memoryEntry{cart: working, expires: s.now().Add(s.ttl)}
	return clone(working), nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lookup(id); !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) Take(_ context.Context, id string) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}
	delete(s.sessions, id)
	return e.cart, nil
}
