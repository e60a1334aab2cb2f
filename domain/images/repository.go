package images

import (
	"context"
	"log/slog"

	"github.com/uptrace/bun"

	"github.com/reelkeep/reelkeep-core/pkg/apperror"
	"github.com/reelkeep/reelkeep-core/pkg/logger"
)

// Repository handles database operations for images.
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new image repository.
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("images.repo")),
	}
}

// ClearStudio removes the studio reference from every image owned by the
// studio.
func (r *Repository) ClearStudio(ctx context.Context, studioID string) (int64, error) {
	res, err := r.db.NewUpdate().
		Model((*Image)(nil)).
		Set("studio_id = NULL").
		Set("updated_at = now()").
		Where("studio_id = ?", studioID).
		Exec(ctx)

	if err != nil {
		r.log.Error("failed to clear studio from images", logger.Error(err))
		return 0, apperror.ErrDatabase.WithInternal(err)
	}

	rows, _ := res.RowsAffected()
	return rows, nil
}
