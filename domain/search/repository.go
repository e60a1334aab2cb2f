package search

import (
	"context"
	"log/slog"

	"github.com/uptrace/bun"

	"github.com/reelkeep/reelkeep-core/pkg/apperror"
	"github.com/reelkeep/reelkeep-core/pkg/logger"
)

// Repository maintains and queries the studio search projection.
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new search repository.
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("search.repo")),
	}
}

// IndexStudio rebuilds one studio's index entry from the source tables:
// name and aliases from the studio row, label names through the join, and
// owned-entity counts. The tsvector document covers name, aliases and label
// names. A missing studio writes nothing.
func (r *Repository) IndexStudio(ctx context.Context, studioID string) error {
	query := `
		INSERT INTO media.studio_search
			(studio_id, name, aliases, label_names, scene_count, image_count, document, updated_at)
		SELECT st.id,
			   st.name,
			   st.aliases,
			   COALESCE(array_agg(DISTINCT l.name) FILTER (WHERE l.name IS NOT NULL), '{}'),
			   (SELECT count(*) FROM media.scenes sc WHERE sc.studio_id = st.id),
			   (SELECT count(*) FROM media.images im WHERE im.studio_id = st.id),
			   to_tsvector('simple',
					st.name || ' ' ||
					array_to_string(st.aliases, ' ') || ' ' ||
					COALESCE(string_agg(l.name, ' '), '')),
			   now()
		FROM media.studios st
		LEFT JOIN media.labelled_items li ON li.item_id = st.id AND li.item_type = 'studio'
		LEFT JOIN media.labels l ON l.id = li.label_id
		WHERE st.id = ?
		GROUP BY st.id
		ON CONFLICT (studio_id) DO UPDATE SET
			name = EXCLUDED.name,
			aliases = EXCLUDED.aliases,
			label_names = EXCLUDED.label_names,
			scene_count = EXCLUDED.scene_count,
			image_count = EXCLUDED.image_count,
			document = EXCLUDED.document,
			updated_at = now()`

	if _, err := r.db.NewRaw(query, studioID).Exec(ctx); err != nil {
		r.log.Error("failed to index studio", slog.String("studio_id", studioID), logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}

	return nil
}

// Remove deletes a studio's index entry.
func (r *Repository) Remove(ctx context.Context, studioID string) error {
	_, err := r.db.NewDelete().
		Model((*StudioEntry)(nil)).
		Where("studio_id = ?", studioID).
		Exec(ctx)

	if err != nil {
		r.log.Error("failed to remove index entry", slog.String("studio_id", studioID), logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}

	return nil
}

// QueryResultRow is one full-text search hit.
type QueryResultRow struct {
	StudioEntry
	Score float32 `bun:"score" json:"score"`
}

// Query runs a websearch-syntax full-text query over the studio projection,
// ranked by ts_rank.
func (r *Repository) Query(ctx context.Context, query string, limit int) ([]QueryResultRow, error) {
	sql := `
		SELECT ss.studio_id, ss.name, ss.aliases, ss.label_names,
			   ss.scene_count, ss.image_count, ss.updated_at,
			   ts_rank(ss.document, websearch_to_tsquery('simple', ?)) AS score
		FROM media.studio_search ss
		WHERE ss.document @@ websearch_to_tsquery('simple', ?)
		ORDER BY score DESC
		LIMIT ?`

	var rows []QueryResultRow
	if err := r.db.NewRaw(sql, query, query, limit).Scan(ctx, &rows); err != nil {
		r.log.Error("studio search query failed", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return rows, nil
}

// ListStaleIDs returns studios whose index entry is missing or older than
// the studio row, up to limit.
func (r *Repository) ListStaleIDs(ctx context.Context, limit int) ([]string, error) {
	query := `
		SELECT st.id
		FROM media.studios st
		LEFT JOIN media.studio_search ss ON ss.studio_id = st.id
		WHERE ss.studio_id IS NULL OR ss.updated_at < st.updated_at
		ORDER BY st.updated_at ASC
		LIMIT ?`

	var ids []string
	if err := r.db.NewRaw(query, limit).Scan(ctx, &ids); err != nil {
		r.log.Error("failed to list stale index entries", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return ids, nil
}

// DeleteOrphans drops index entries whose studio no longer exists and
// returns the number removed.
func (r *Repository) DeleteOrphans(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM media.studio_search ss
		WHERE NOT EXISTS (SELECT 1 FROM media.studios st WHERE st.id = ss.studio_id)`

	res, err := r.db.NewRaw(query).Exec(ctx)
	if err != nil {
		r.log.Error("failed to delete orphaned index entries", logger.Error(err))
		return 0, apperror.ErrDatabase.WithInternal(err)
	}

	rows, _ := res.RowsAffected()
	return rows, nil
}
