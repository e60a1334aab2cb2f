package studios

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	"github.com/reelkeep/reelkeep-core/pkg/apperror"
	"github.com/reelkeep/reelkeep-core/pkg/logger"
	"github.com/reelkeep/reelkeep-core/pkg/pgutils"
)

// Repository handles database operations for studios.
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new studio repository.
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("studios.repo")),
	}
}

// GetByID retrieves a studio by id.
func (r *Repository) GetByID(ctx context.Context, id string) (*Studio, error) {
	var studio Studio
	err := r.db.NewSelect().
		Model(&studio).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrStudioNotFound
		}
		r.log.Error("failed to get studio by id", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return &studio, nil
}

// Insert persists a new studio, filling its generated id and timestamps.
func (r *Repository) Insert(ctx context.Context, studio *Studio) error {
	_, err := r.db.NewInsert().
		Model(studio).
		Returning("id, created_at, updated_at").
		Exec(ctx)

	if err != nil {
		if pgutils.IsForeignKeyViolation(err) {
			return apperror.NewBadRequest("parent studio does not exist")
		}
		r.log.Error("failed to insert studio", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}

	return nil
}

// Update writes the full studio row back and bumps updated_at.
func (r *Repository) Update(ctx context.Context, studio *Studio) error {
	studio.UpdatedAt = time.Now()

	res, err := r.db.NewUpdate().
		Model(studio).
		WherePK().
		Exec(ctx)

	if err != nil {
		if pgutils.IsForeignKeyViolation(err) {
			return apperror.NewBadRequest("parent studio does not exist")
		}
		r.log.Error("failed to update studio", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return apperror.ErrStudioNotFound
	}

	return nil
}

// Delete removes a studio record.
func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := r.db.NewDelete().
		Model((*Studio)(nil)).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		r.log.Error("failed to delete studio", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}

	return nil
}
