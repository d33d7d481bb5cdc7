// Package memory provides an in-process snapshot store for single-replica hosts.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/talentscout/pkg/domain"
	"github.com/aretw0/talentscout/pkg/ports"
)

type entry struct {
	snap      *domain.Snapshot
	expiresAt time.Time // zero means no expiry
}

// Store implements ports.SnapshotStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]entry
	mu   sync.RWMutex
	ttl  time.Duration
	now  func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithTTL expires sessions ttl after their last Save. Zero disables expiry.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithClock overrides the time source used for expiry.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a new in-memory store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		data: make(map[string]entry),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save stores a copy of snap.
func (s *Store) Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error {
	e := entry{snap: snap.Clone()}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = e
	return nil
}

// Load returns a copy of the stored snapshot so callers cannot mutate the store by pointer.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	s.mu.RLock()
	e, ok := s.data[sessionID]
	s.mu.RUnlock()

	if !ok || s.expired(e) {
		return nil, domain.ErrSessionNotFound
	}
	return e.snap.Clone(), nil
}

// Delete removes the snapshot.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns live sessions, sorted, dropping expired ones.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := make([]string, 0, len(s.data))
	for id, e := range s.data {
		if s.expired(e) {
			delete(s.data, id)
			continue
		}
		sessions = append(sessions, id)
	}
	sort.Strings(sessions)
	return sessions, nil
}

func (s *Store) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt)
}

var _ ports.SnapshotStore = (*Store)(nil)
