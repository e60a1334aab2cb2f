package studios

import "context"

// Item types used in the labelled-item join. Every entity that can carry
// labels records them as {item_id, item_type, label_id} rows.
const (
	ItemTypeStudio = "studio"
	ItemTypeScene  = "scene"
	ItemTypeMovie  = "movie"
	ItemTypeImage  = "image"
)

// Hook names passed to the labeling hook. The create hook runs when a studio
// is first added; the custom hook runs on explicit plugin re-runs.
const (
	HookStudioCreate = "studio.create"
	HookStudioCustom = "studio.custom"
)

// StudioStore is the persistence contract for studio records.
type StudioStore interface {
	GetByID(ctx context.Context, id string) (*Studio, error)
	Insert(ctx context.Context, studio *Studio) error
	Update(ctx context.Context, studio *Studio) error
	Delete(ctx context.Context, id string) error
}

// LabelStore checks label existence for create-time validation.
type LabelStore interface {
	Exists(ctx context.Context, labelID string) (bool, error)
}

// LabelledItemStore manages the many-to-many label join for any item type.
// SetForItem replaces the item's full label set.
type LabelledItemStore interface {
	SetForItem(ctx context.Context, itemID, itemType string, labelIDs []string) error
	GetForItem(ctx context.Context, itemID, itemType string) ([]string, error)
	DeleteForItem(ctx context.Context, itemID, itemType string) error
}

// SceneStore is the scene-side contract the studio cascades need: clearing
// references on delete, enumerating owned scenes for label propagation, and
// the unmatched-scene heuristic.
type SceneStore interface {
	ClearStudio(ctx context.Context, studioID string) (int64, error)
	ListIDsByStudio(ctx context.Context, studioID string) ([]string, error)
	FindUnmatchedIDs(ctx context.Context, terms []string) ([]string, error)
	AssignStudio(ctx context.Context, sceneIDs []string, studioID string) error
}

// MovieStore clears studio references on movies during cascade deletion.
type MovieStore interface {
	ClearStudio(ctx context.Context, studioID string) (int64, error)
}

// ImageStore clears studio references on images during cascade deletion.
type ImageStore interface {
	ClearStudio(ctx context.Context, studioID string) (int64, error)
}

// SearchIndex keeps the denormalized studio projection in sync with the
// store. IndexStudio rebuilds one studio's entry from source tables.
type SearchIndex interface {
	IndexStudio(ctx context.Context, studioID string) error
	Remove(ctx context.Context, studioID string) error
}

// IndexRepair schedules a deferred reindex for a studio whose synchronous
// index write failed.
type IndexRepair interface {
	Enqueue(ctx context.Context, studioID string) error
}

// LabelHook is the pluggable labeling transformation. It receives the studio
// and its current label identifiers and returns the studio and label set to
// persist. The returned label set supersedes the input set.
type LabelHook interface {
	Invoke(ctx context.Context, hookName string, studio *Studio, labelIDs []string) (*Studio, []string, error)
}
