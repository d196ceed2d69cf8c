package listcache

import (
	"context"
	"sync"
	"time"

	"github.com/orsoie/gallery-service/internal/entity"
)

type entry struct {
	items     []entity.GalleryItem
	fetchedAt time.Time
}

// Memory is the process-local listing cache. Entries are tiny and event
// count is small, so it is unbounded and never evicts; entries go stale
// after ttl and get overwritten on the next rebuild (last write wins).
type Memory struct {
	mu  sync.RWMutex
	ttl time.Duration
	now func() time.Time

	entries map[string]entry
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (m *Memory) Get(_ context.Context, eventCode string) ([]entity.GalleryItem, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[eventCode]
	if !ok || m.now().Sub(e.fetchedAt) >= m.ttl {
		return nil, false
	}

	return e.items, true
}

func (m *Memory) Put(_ context.Context, eventCode string, items []entity.GalleryItem) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[eventCode] = entry{items: items, fetchedAt: m.now()}
}
