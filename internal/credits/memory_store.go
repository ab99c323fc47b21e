// ABOUTME: In-memory Store implementation for testing
// ABOUTME: Allows credit service tests to run without SQLite

package credits

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store implementation for testing.
type MemoryStore struct {
	mu      sync.RWMutex
	credits map[string]*CarbonCredit
}

// NewMemoryStore creates a new MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{credits: make(map[string]*CarbonCredit)}
}

// CreateCredit stores a new credit.
func (m *MemoryStore) CreateCredit(ctx context.Context, credit *CarbonCredit) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Copy to avoid external modification
	c := *credit
	m.credits[c.ID] = &c
	return nil
}

// GetCredit retrieves a credit by ID.
func (m *MemoryStore) GetCredit(ctx context.Context, id string) (*CarbonCredit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	credit, ok := m.credits[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *credit
	return &c, nil
}

// ListCredits returns credits matching the filter, newest first.
func (m *MemoryStore) ListCredits(ctx context.Context, filter Filter) ([]*CarbonCredit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var credits []*CarbonCredit
	for _, credit := range m.credits {
		if filter.OwnerID != "" && credit.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Status != "" && credit.Status != filter.Status {
			continue
		}
		c := *credit
		credits = append(credits, &c)
	}

	sort.Slice(credits, func(i, j int) bool {
		return credits[i].CreatedAt.After(credits[j].CreatedAt)
	})
	return credits, nil
}

// UpdateCredit replaces an existing credit.
func (m *MemoryStore) UpdateCredit(ctx context.Context, credit *CarbonCredit) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.credits[credit.ID]; !ok {
		return ErrNotFound
	}
	c := *credit
	m.credits[c.ID] = &c
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error { return nil }
