package search

import (
	"context"
	"log/slog"

	"github.com/reelkeep/reelkeep-core/pkg/logger"
	"github.com/reelkeep/reelkeep-core/pkg/mathutil"
)

const (
	defaultQueryLimit = 20
	maxQueryLimit     = 100
)

// Service exposes studio search queries and the reconcile sweep.
type Service struct {
	repo *Repository
	log  *slog.Logger
}

// NewService creates a new search service.
func NewService(repo *Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With(logger.Scope("search.svc")),
	}
}

// Query runs a full-text query over the studio projection.
func (s *Service) Query(ctx context.Context, query string, limit int) ([]QueryResultRow, error) {
	limit = mathutil.ClampLimit(limit, defaultQueryLimit, maxQueryLimit)
	return s.repo.Query(ctx, query, limit)
}

// Reconcile brings the index back in line with the store: orphaned entries
// are dropped and stale or missing entries are rebuilt, up to batchSize per
// run. Invoked periodically by the scheduler so no divergence is permanent.
func (s *Service) Reconcile(ctx context.Context, batchSize int) error {
	orphans, err := s.repo.DeleteOrphans(ctx)
	if err != nil {
		return err
	}

	ids, err := s.repo.ListStaleIDs(ctx, batchSize)
	if err != nil {
		return err
	}

	var repaired int
	for _, id := range ids {
		if err := s.repo.IndexStudio(ctx, id); err != nil {
			s.log.Warn("sweep reindex failed",
				slog.String("studio_id", id),
				logger.Error(err))
			continue
		}
		repaired++
	}

	if orphans > 0 || repaired > 0 {
		s.log.Info("index reconcile sweep",
			slog.Int64("orphans_removed", orphans),
			slog.Int("entries_repaired", repaired),
			slog.Int("stale_found", len(ids)))
	}

	return nil
}
