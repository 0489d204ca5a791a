package builder

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository is an in-memory implementation for scaffolding and tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	configs map[string]*ScreenConfig
}

// NewMemoryRepository creates an empty in-memory configuration repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		configs: make(map[string]*ScreenConfig),
	}
}

var _ Repository = (*MemoryRepository)(nil)

// Create inserts the supplied configuration.
func (m *MemoryRepository) Create(_ context.Context, cfg *ScreenConfig) (*ScreenConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg.ID == "" {
		return nil, ErrConfigIDRequired
	}
	if _, exists := m.configs[cfg.ID]; exists {
		return nil, ErrConfigExists
	}

	copied := CloneConfig(cfg)
	m.configs[copied.ID] = copied
	return CloneConfig(copied), nil
}

// GetByID retrieves a configuration by identifier.
func (m *MemoryRepository) GetByID(_ context.Context, id string) (*ScreenConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.configs[id]
	if !ok {
		return nil, &NotFoundError{Resource: "screen_config", Key: id}
	}
	return CloneConfig(rec), nil
}

// GetActive retrieves the configuration currently flagged active.
func (m *MemoryRepository) GetActive(_ context.Context) (*ScreenConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, rec := range m.configs {
		if rec.IsActive {
			return CloneConfig(rec), nil
		}
	}
	return nil, &NotFoundError{Resource: "screen_config", Key: "active"}
}

// List returns every stored configuration ordered by creation time, oldest
// first, with the identifier as a tie-breaker for deterministic output.
func (m *MemoryRepository) List(_ context.Context) ([]*ScreenConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*ScreenConfig, 0, len(m.configs))
	for _, rec := range m.configs {
		out = append(out, CloneConfig(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Update replaces a stored configuration.
func (m *MemoryRepository) Update(_ context.Context, cfg *ScreenConfig) (*ScreenConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.configs[cfg.ID]; !ok {
		return nil, &NotFoundError{Resource: "screen_config", Key: cfg.ID}
	}

	copied := CloneConfig(cfg)
	m.configs[copied.ID] = copied
	return CloneConfig(copied), nil
}

// Delete removes a stored configuration.
func (m *MemoryRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.configs[id]; !ok {
		return &NotFoundError{Resource: "screen_config", Key: id}
	}
	delete(m.configs, id)
	return nil
}

// Activate marks the named configuration active and clears the flag on all
// others atomically with respect to other repository calls.
func (m *MemoryRepository) Activate(_ context.Context, id string) (*ScreenConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	target, ok := m.configs[id]
	if !ok {
		return nil, &NotFoundError{Resource: "screen_config", Key: id}
	}

	for _, rec := range m.configs {
		rec.IsActive = false
	}
	target.IsActive = true
	return CloneConfig(target), nil
}
