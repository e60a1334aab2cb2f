package studios

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.uber.org/fx"

	"github.com/reelkeep/reelkeep-core/internal/config"
	"github.com/reelkeep/reelkeep-core/pkg/apperror"
	"github.com/reelkeep/reelkeep-core/pkg/logger"
)

// Service orchestrates studio mutations and keeps the store, the label join
// and the search index consistent. Batch operations process ids sequentially;
// partial success is the norm, a bad id never fails the whole batch.
type Service struct {
	store    StudioStore
	labels   LabelStore
	labelled LabelledItemStore
	scenes   SceneStore
	movies   MovieStore
	images   ImageStore
	index    SearchIndex
	repair   IndexRepair
	hook     LabelHook
	triggers config.TriggerConfig
	log      *slog.Logger
}

// ServiceParams are the dependencies for the studios service.
type ServiceParams struct {
	fx.In

	Store    StudioStore
	Labels   LabelStore
	Labelled LabelledItemStore
	Scenes   SceneStore
	Movies   MovieStore
	Images   ImageStore
	Index    SearchIndex
	Repair   IndexRepair
	Hook     LabelHook
	Config   *config.Config
	Log      *slog.Logger
}

// NewService creates the studios service.
func NewService(p ServiceParams) *Service {
	return &Service{
		store:    p.Store,
		labels:   p.Labels,
		labelled: p.Labelled,
		scenes:   p.Scenes,
		movies:   p.Movies,
		images:   p.Images,
		index:    p.Index,
		repair:   p.Repair,
		hook:     p.Hook,
		triggers: p.Config.Triggers,
		log:      p.Log.With(logger.Scope("studios.svc")),
	}
}

// Create adds a new studio.
//
// Every supplied label id is validated before any write; a missing label
// aborts with a not-found error naming it. The create hook then runs over
// the label set; its returned set supersedes the caller's. A hook failure is
// logged and the studio is still created with its original labels. After
// persisting, unmatched scenes are attached when the create trigger is
// enabled, and the studio is indexed.
func (s *Service) Create(ctx context.Context, req CreateStudioRequest) (*StudioDTO, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperror.ErrBadRequest.WithMessage("studio name is required")
	}

	labelIDs := DedupeLabelIDs(req.LabelIDs)
	for _, id := range labelIDs {
		ok, err := s.labels.Exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperror.ErrLabelNotFound.WithMessage(fmt.Sprintf("label '%s' not found", id))
		}
	}

	studio := &Studio{
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		ThumbnailID:  req.ThumbnailID,
		ParentID:     req.ParentID,
		Aliases:      NormalizeAliases(req.Aliases),
		CustomFields: normalizeCustomFields(req.CustomFields),
	}

	// The hook's returned label set is the one persisted. On create a hook
	// failure is recovered: the studio keeps its pre-hook labels.
	if hooked, hookedLabels, err := s.hook.Invoke(ctx, HookStudioCreate, studio, labelIDs); err != nil {
		s.log.Warn("create hook failed, keeping original labels",
			slog.String("studio", studio.Name),
			logger.Error(apperror.NewHookExecution(HookStudioCreate, err)))
	} else {
		studio = hooked
		labelIDs = DedupeLabelIDs(hookedLabels)
	}

	if err := s.store.Insert(ctx, studio); err != nil {
		return nil, err
	}
	if err := s.labelled.SetForItem(ctx, studio.ID, ItemTypeStudio, labelIDs); err != nil {
		return nil, err
	}

	if s.triggers.StudioCreate {
		if _, err := s.attachUnmatched(ctx, studio, labelIDs, true); err != nil {
			s.log.Warn("unmatched-scene attach failed after create",
				slog.String("studio_id", studio.ID),
				logger.Error(apperror.ErrCascadeSideEffect.WithInternal(err)))
		}
	}

	s.reindex(ctx, studio.ID)

	return &StudioDTO{Studio: *studio, LabelIDs: labelIDs}, nil
}

// Update applies a sparse options record to each existing id. Absent fields
// are untouched; the parent is updated whenever its key is present, null
// included. When labels are present they are applied directly, and the
// cascade propagator runs only if the set genuinely changed and the update
// trigger is enabled. Non-existent ids are silently skipped. Returns the
// studios that were found and updated.
func (s *Service) Update(ctx context.Context, ids []string, opts UpdateStudioOptions) ([]*StudioDTO, error) {
	var updated []*StudioDTO
	var errs []error

	for _, id := range ids {
		studio, err := s.store.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperror.ErrStudioNotFound) {
				s.log.Debug("skipping missing studio in batch update", slog.String("studio_id", id))
				continue
			}
			errs = append(errs, fmt.Errorf("studio %s: %w", id, err))
			continue
		}

		opts.apply(studio)

		labelIDs, err := s.labelled.GetForItem(ctx, studio.ID, ItemTypeStudio)
		if err != nil {
			errs = append(errs, fmt.Errorf("studio %s: %w", id, err))
			continue
		}

		if opts.LabelIDs != nil {
			next := DedupeLabelIDs(*opts.LabelIDs)
			if err := s.labelled.SetForItem(ctx, studio.ID, ItemTypeStudio, next); err != nil {
				errs = append(errs, fmt.Errorf("studio %s: %w", id, err))
				continue
			}

			// Reordering is not a change. Propagation is additionally a
			// policy decision distinct from "labels changed".
			if !EqualLabelSets(labelIDs, next) && s.triggers.StudioUpdate {
				if err := s.propagateLabels(ctx, studio, next); err != nil {
					s.log.Warn("label propagation to scenes failed",
						slog.String("studio_id", studio.ID),
						logger.Error(apperror.ErrCascadeSideEffect.WithInternal(err)))
				}
			}
			labelIDs = next
		}

		if err := s.store.Update(ctx, studio); err != nil {
			errs = append(errs, fmt.Errorf("studio %s: %w", id, err))
			continue
		}

		s.reindex(ctx, studio.ID)
		updated = append(updated, &StudioDTO{Studio: *studio, LabelIDs: labelIDs})
	}

	return updated, errors.Join(errs...)
}

// Remove deletes each existing studio after cascade cleanup: studio
// references on scenes, movies and images are cleared, the studio's own
// label-join rows are deleted, then the index entry and the record itself
// are removed. Cleanup steps are fail-independent and all failures are
// reported. Non-existent ids are silently skipped.
func (s *Service) Remove(ctx context.Context, ids []string) error {
	var errs []error

	for _, id := range ids {
		if _, err := s.store.GetByID(ctx, id); err != nil {
			if errors.Is(err, apperror.ErrStudioNotFound) {
				s.log.Debug("skipping missing studio in batch remove", slog.String("studio_id", id))
				continue
			}
			errs = append(errs, fmt.Errorf("studio %s: %w", id, err))
			continue
		}

		if err := s.cascadeDelete(ctx, id); err != nil {
			// Leaving the record in place keeps the no-dangling-references
			// invariant; the next remove attempt retries the cleanup.
			errs = append(errs, fmt.Errorf("studio %s: cascade: %w", id, err))
			continue
		}

		if err := s.index.Remove(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("studio %s: index remove: %w", id, err))
		}
		if err := s.store.Delete(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("studio %s: %w", id, err))
		}
	}

	return errors.Join(errs...)
}

// AttachUnmatched re-runs the unmatched-scene matcher for one studio on
// demand. A missing studio or a matcher failure is logged and yields an
// absent result, never an error to the caller.
func (s *Service) AttachUnmatched(ctx context.Context, id string) (*StudioDTO, error) {
	studio, err := s.store.GetByID(ctx, id)
	if err != nil {
		s.log.Info("attach-unmatched: studio not loaded",
			slog.String("studio_id", id),
			logger.Error(err))
		return nil, nil
	}

	labelIDs, err := s.labelled.GetForItem(ctx, studio.ID, ItemTypeStudio)
	if err != nil {
		s.log.Warn("attach-unmatched: labels not loaded",
			slog.String("studio_id", id),
			logger.Error(err))
		return nil, nil
	}

	if _, err := s.attachUnmatched(ctx, studio, labelIDs, s.triggers.StudioFindUnmatched); err != nil {
		s.log.Warn("attach-unmatched failed",
			slog.String("studio_id", id),
			logger.Error(apperror.ErrCascadeSideEffect.WithInternal(err)))
		return nil, nil
	}

	s.reindex(ctx, studio.ID)

	return &StudioDTO{Studio: *studio, LabelIDs: labelIDs}, nil
}

// RunPlugins re-invokes the custom labeling hook for each id over its
// current persisted labels, re-persists the returned set and reindexes that
// studio before moving to the next id. A hook failure aborts that id only;
// subsequent ids still run. All per-id failures are reported together.
func (s *Service) RunPlugins(ctx context.Context, ids []string) ([]*StudioDTO, error) {
	var processed []*StudioDTO
	var errs []error

	for _, id := range ids {
		studio, err := s.store.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperror.ErrStudioNotFound) {
				s.log.Debug("skipping missing studio in plugin run", slog.String("studio_id", id))
				continue
			}
			errs = append(errs, fmt.Errorf("studio %s: %w", id, err))
			continue
		}

		labelIDs, err := s.labelled.GetForItem(ctx, studio.ID, ItemTypeStudio)
		if err != nil {
			errs = append(errs, fmt.Errorf("studio %s: %w", id, err))
			continue
		}

		// Unlike create, a hook failure here propagates for this id.
		hooked, hookedLabels, err := s.hook.Invoke(ctx, HookStudioCustom, studio, labelIDs)
		if err != nil {
			errs = append(errs, apperror.NewHookExecution(HookStudioCustom, err))
			continue
		}
		studio = hooked
		labelIDs = DedupeLabelIDs(hookedLabels)

		// Re-persist regardless of whether the hook changed anything.
		if err := s.labelled.SetForItem(ctx, studio.ID, ItemTypeStudio, labelIDs); err != nil {
			errs = append(errs, fmt.Errorf("studio %s: %w", id, err))
			continue
		}
		if err := s.store.Update(ctx, studio); err != nil {
			errs = append(errs, fmt.Errorf("studio %s: %w", id, err))
			continue
		}

		// Per-id reindex: each studio becomes visible in the index as soon
		// as it is processed, not once at the end of the batch.
		s.reindex(ctx, studio.ID)
		processed = append(processed, &StudioDTO{Studio: *studio, LabelIDs: labelIDs})
	}

	return processed, errors.Join(errs...)
}

// Get returns a studio with its label ids.
func (s *Service) Get(ctx context.Context, id string) (*StudioDTO, error) {
	studio, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	labelIDs, err := s.labelled.GetForItem(ctx, studio.ID, ItemTypeStudio)
	if err != nil {
		return nil, err
	}
	return &StudioDTO{Studio: *studio, LabelIDs: labelIDs}, nil
}

// propagateLabels pushes the studio's current label set onto every scene it
// owns. Callers treat a failure as a recoverable side effect.
func (s *Service) propagateLabels(ctx context.Context, studio *Studio, labelIDs []string) error {
	sceneIDs, err := s.scenes.ListIDsByStudio(ctx, studio.ID)
	if err != nil {
		return err
	}
	for _, sceneID := range sceneIDs {
		if err := s.labelled.SetForItem(ctx, sceneID, ItemTypeScene, labelIDs); err != nil {
			return fmt.Errorf("scene %s: %w", sceneID, err)
		}
	}
	return nil
}

// attachUnmatched assigns this studio to every unmatched scene whose
// metadata matches the studio's name or aliases, optionally pushing the
// studio's labels onto the matched scenes.
func (s *Service) attachUnmatched(ctx context.Context, studio *Studio, labelIDs []string, pushLabels bool) (int, error) {
	sceneIDs, err := s.scenes.FindUnmatchedIDs(ctx, studio.MatchTerms())
	if err != nil {
		return 0, err
	}
	if len(sceneIDs) == 0 {
		return 0, nil
	}

	if err := s.scenes.AssignStudio(ctx, sceneIDs, studio.ID); err != nil {
		return 0, err
	}

	if pushLabels && len(labelIDs) > 0 {
		for _, sceneID := range sceneIDs {
			if err := s.labelled.SetForItem(ctx, sceneID, ItemTypeScene, labelIDs); err != nil {
				return len(sceneIDs), fmt.Errorf("scene %s: %w", sceneID, err)
			}
		}
	}

	s.log.Info("attached unmatched scenes",
		slog.String("studio_id", studio.ID),
		slog.Int("scenes", len(sceneIDs)),
		slog.Bool("labels_pushed", pushLabels && len(labelIDs) > 0))

	return len(sceneIDs), nil
}

// cascadeDelete clears every dependent reference to the studio. The clear
// handlers are fail-independent: each entity type is attempted even when an
// earlier one failed, and all failures are reported together.
func (s *Service) cascadeDelete(ctx context.Context, studioID string) error {
	clearers := []struct {
		entity string
		clear  func(context.Context, string) (int64, error)
	}{
		{"scenes", s.scenes.ClearStudio},
		{"movies", s.movies.ClearStudio},
		{"images", s.images.ClearStudio},
	}

	var errs []error
	for _, c := range clearers {
		cleared, err := c.clear(ctx, studioID)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.entity, err))
			continue
		}
		if cleared > 0 {
			s.log.Debug("cleared studio references",
				slog.String("studio_id", studioID),
				slog.String("entity", c.entity),
				slog.Int64("count", cleared))
		}
	}

	if err := s.labelled.DeleteForItem(ctx, studioID, ItemTypeStudio); err != nil {
		errs = append(errs, fmt.Errorf("labelled items: %w", err))
	}

	return errors.Join(errs...)
}

// reindex synchronously rebuilds the studio's index entry. On failure the
// studio is queued for deferred repair so the index never diverges
// permanently.
func (s *Service) reindex(ctx context.Context, studioID string) {
	if err := s.index.IndexStudio(ctx, studioID); err != nil {
		s.log.Warn("synchronous reindex failed, queueing repair",
			slog.String("studio_id", studioID),
			logger.Error(err))
		if qerr := s.repair.Enqueue(ctx, studioID); qerr != nil {
			s.log.Error("index repair enqueue failed",
				slog.String("studio_id", studioID),
				logger.Error(qerr))
		}
	}
}

// normalizeCustomFields keeps explicit nulls and guarantees a non-nil map.
func normalizeCustomFields(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
