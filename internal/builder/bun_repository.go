package builder

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// BunRepository implements Repository on top of a bun database.
type BunRepository struct {
	repo repository.Repository[*ScreenConfig]
	db   *bun.DB
}

// NewBunRepository creates a bun-backed configuration repository.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{
		repo: NewConfigRepository(db),
		db:   db,
	}
}

var _ Repository = (*BunRepository)(nil)

func (r *BunRepository) Create(ctx context.Context, cfg *ScreenConfig) (*ScreenConfig, error) {
	record, err := r.repo.Create(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunRepository) GetByID(ctx context.Context, id string) (*ScreenConfig, error) {
	record, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err, "screen_config", id)
	}
	return record, nil
}

func (r *BunRepository) GetActive(ctx context.Context) (*ScreenConfig, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.is_active = ?", true).Limit(1)
	}))
	if err != nil {
		return nil, mapRepositoryError(err, "screen_config", "active")
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "screen_config", Key: "active"}
	}
	return records[0], nil
}

func (r *BunRepository) List(ctx context.Context) ([]*ScreenConfig, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("created_at ASC", "id ASC")
	}))
	return records, err
}

func (r *BunRepository) Update(ctx context.Context, cfg *ScreenConfig) (*ScreenConfig, error) {
	record, err := r.repo.Update(ctx, cfg)
	if err != nil {
		return nil, mapRepositoryError(err, "screen_config", cfg.ID)
	}
	return record, nil
}

func (r *BunRepository) Delete(ctx context.Context, id string) error {
	if err := r.repo.Delete(ctx, &ScreenConfig{ID: id}); err != nil {
		return mapRepositoryError(err, "screen_config", id)
	}
	return nil
}

// Activate clears every active flag and sets the target's inside a single
// transaction, keeping the at-most-one-active invariant under concurrent
// activations.
func (r *BunRepository) Activate(ctx context.Context, id string) (*ScreenConfig, error) {
	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().
			Model((*ScreenConfig)(nil)).
			Set("is_active = ?", false).
			Where("is_active = ?", true).
			Exec(ctx); err != nil {
			return err
		}

		result, err := tx.NewUpdate().
			Model((*ScreenConfig)(nil)).
			Set("is_active = ?", true).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return &NotFoundError{Resource: "screen_config", Key: id}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
