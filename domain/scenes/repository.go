package scenes

import (
	"context"
	"log/slog"
	"strings"

	"github.com/uptrace/bun"

	"github.com/reelkeep/reelkeep-core/pkg/apperror"
	"github.com/reelkeep/reelkeep-core/pkg/logger"
)

// Repository handles database operations for scenes.
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new scene repository.
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("scenes.repo")),
	}
}

// ClearStudio removes the studio reference from every scene owned by the
// studio. Scenes survive as unmatched; only the reference is cleared.
func (r *Repository) ClearStudio(ctx context.Context, studioID string) (int64, error) {
	res, err := r.db.NewUpdate().
		Model((*Scene)(nil)).
		Set("studio_id = NULL").
		Set("updated_at = now()").
		Where("studio_id = ?", studioID).
		Exec(ctx)

	if err != nil {
		r.log.Error("failed to clear studio from scenes", logger.Error(err))
		return 0, apperror.ErrDatabase.WithInternal(err)
	}

	rows, _ := res.RowsAffected()
	return rows, nil
}

// ListIDsByStudio returns the ids of every scene owned by the studio.
func (r *Repository) ListIDsByStudio(ctx context.Context, studioID string) ([]string, error) {
	var ids []string
	err := r.db.NewSelect().
		Model((*Scene)(nil)).
		Column("id").
		Where("studio_id = ?", studioID).
		Scan(ctx, &ids)

	if err != nil {
		r.log.Error("failed to list scenes by studio", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return ids, nil
}

// FindUnmatchedIDs returns ids of scenes without a studio whose title or
// file path contains any of the given terms, case-insensitively. Terms are
// the studio's name and aliases.
func (r *Repository) FindUnmatchedIDs(ctx context.Context, terms []string) ([]string, error) {
	terms = nonEmptyTerms(terms)
	if len(terms) == 0 {
		return nil, nil
	}

	q := r.db.NewSelect().
		Model((*Scene)(nil)).
		Column("id").
		Where("studio_id IS NULL")

	q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
		for _, term := range terms {
			pattern := "%" + escapeLike(term) + "%"
			q = q.WhereOr("title ILIKE ?", pattern).
				WhereOr("path ILIKE ?", pattern)
		}
		return q
	})

	var ids []string
	if err := q.Scan(ctx, &ids); err != nil {
		r.log.Error("failed to find unmatched scenes", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return ids, nil
}

// AssignStudio points the given scenes at the studio.
func (r *Repository) AssignStudio(ctx context.Context, sceneIDs []string, studioID string) error {
	if len(sceneIDs) == 0 {
		return nil
	}

	_, err := r.db.NewUpdate().
		Model((*Scene)(nil)).
		Set("studio_id = ?", studioID).
		Set("updated_at = now()").
		Where("id IN (?)", bun.In(sceneIDs)).
		Exec(ctx)

	if err != nil {
		r.log.Error("failed to assign studio to scenes", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}

	return nil
}

func nonEmptyTerms(terms []string) []string {
	out := terms[:0:0]
	for _, t := range terms {
		if strings.TrimSpace(t) != "" {
			out = append(out, t)
		}
	}
	return out
}

// escapeLike escapes LIKE metacharacters so alias text is matched literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
