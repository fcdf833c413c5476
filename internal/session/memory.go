package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"minimarks/internal/logger"
)

type memoryEntry struct {
	userID    int64
	expiresAt time.Time
}

// MemoryStore is the in-process fallback used when no Redis is configured.
// Sessions do not survive a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
	stopCh  chan struct{}
}

// NewMemoryStore creates an in-memory session store with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}
}

func (m *MemoryStore) Create(_ context.Context, userID int64) (string, error) {
	token := uuid.New().String()
	m.mu.Lock()
	m.entries[token] = memoryEntry{userID: userID, expiresAt: m.now().Add(m.ttl)}
	m.mu.Unlock()
	return token, nil
}

func (m *MemoryStore) Get(_ context.Context, token string) (int64, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[token]
	m.mu.RUnlock()
	if !ok || m.now().After(e.expiresAt) {
		return 0, false, nil
	}
	return e.userID, true, nil
}

func (m *MemoryStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	delete(m.entries, token)
	m.mu.Unlock()
	return nil
}

// StartSweeper begins periodic removal of expired sessions.
// Expired tokens are already invisible to Get; the sweep only frees memory.
func (m *MemoryStore) StartSweeper(ctx context.Context, interval time.Duration, log logger.Logger) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := m.sweep(); n > 0 {
					log.Debug("swept expired sessions", logger.Int("count", n))
				}
			case <-m.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// StopSweeper stops the background sweep.
func (m *MemoryStore) StopSweeper() {
	close(m.stopCh)
}

func (m *MemoryStore) sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	deleted := 0
	for token, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, token)
			deleted++
		}
	}
	return deleted
}
