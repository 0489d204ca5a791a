package builder

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository abstracts persistence for screen configurations. The bun
// implementation backs production storage; the memory implementation backs
// tests and scaffolding.
type Repository interface {
	Create(ctx context.Context, cfg *ScreenConfig) (*ScreenConfig, error)
	GetByID(ctx context.Context, id string) (*ScreenConfig, error)
	GetActive(ctx context.Context) (*ScreenConfig, error)
	List(ctx context.Context) ([]*ScreenConfig, error)
	Update(ctx context.Context, cfg *ScreenConfig) (*ScreenConfig, error)
	Delete(ctx context.Context, id string) error

	// Activate flips IsActive to the named configuration and clears it
	// everywhere else in the same transaction, so at most one configuration
	// is ever active.
	Activate(ctx context.Context, id string) (*ScreenConfig, error)
}

// NewConfigRepository creates the generic bun repository for screen configs.
func NewConfigRepository(db *bun.DB) repository.Repository[*ScreenConfig] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ScreenConfig]{
		NewRecord: func() *ScreenConfig { return &ScreenConfig{} },
		GetID: func(cfg *ScreenConfig) uuid.UUID {
			id, err := uuid.Parse(cfg.ID)
			if err != nil {
				return uuid.Nil
			}
			return id
		},
		SetID:              func(cfg *ScreenConfig, id uuid.UUID) { cfg.ID = id.String() },
		GetIdentifier:      func() string { return "id" },
		GetIdentifierValue: func(cfg *ScreenConfig) string { return cfg.ID },
	})
}
