package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	userID    uint
	expiresAt time.Time
}

// MemoryStore is the in-process session store used when no Redis address is
// configured. A background sweep drops expired entries.
type MemoryStore struct {
	sessions map[string]memoryEntry
	mu       sync.RWMutex
	ttl      time.Duration
	cancel   context.CancelFunc
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	ctx, cancel := context.WithCancel(context.Background())

	s := &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		cancel:   cancel,
	}

	go s.sweep(ctx)

	return s
}

func (s *MemoryStore) Create(_ context.Context, userID uint) (string, error) {
	id := uuid.NewString()

	s.mu.Lock()
	s.sessions[id] = memoryEntry{
		userID:    userID,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()

	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (uint, bool, error) {
	s.mu.RLock()
	entry, exists := s.sessions[id]
	s.mu.RUnlock()

	if !exists {
		return 0, false, nil
	}

	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return 0, false, nil
	}

	return entry.userID, true, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	return nil
}

// Close stops the background sweep.
func (s *MemoryStore) Close() {
	s.cancel()
}

func (s *MemoryStore) sweep(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()

			s.mu.Lock()
			for id, entry := range s.sessions {
				if now.After(entry.expiresAt) {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
