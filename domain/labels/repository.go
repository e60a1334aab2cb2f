package labels

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/uptrace/bun"

	"github.com/reelkeep/reelkeep-core/internal/database"
	"github.com/reelkeep/reelkeep-core/pkg/apperror"
	"github.com/reelkeep/reelkeep-core/pkg/logger"
)

// Repository handles database operations for labels and the labelled-item
// join.
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new label repository.
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("labels.repo")),
	}
}

// GetByID retrieves a label by id.
func (r *Repository) GetByID(ctx context.Context, id string) (*Label, error) {
	var label Label
	err := r.db.NewSelect().
		Model(&label).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrLabelNotFound
		}
		r.log.Error("failed to get label by id", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return &label, nil
}

// Exists reports whether a label with the given id exists.
func (r *Repository) Exists(ctx context.Context, id string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*Label)(nil)).
		Where("id = ?", id).
		Exists(ctx)

	if err != nil {
		r.log.Error("failed to check label existence", logger.Error(err))
		return false, apperror.ErrDatabase.WithInternal(err)
	}

	return exists, nil
}

// EnsureByNames resolves label names to ids, creating any that do not exist
// yet. Used by the rules hook, which speaks in names. Returns ids in input
// order.
func (r *Repository) EnsureByNames(ctx context.Context, names []string) ([]string, error) {
	ids := make([]string, 0, len(names))
	for _, name := range names {
		label := &Label{Name: name}
		_, err := r.db.NewInsert().
			Model(label).
			On("CONFLICT (name) DO UPDATE").
			Set("name = EXCLUDED.name").
			Returning("id").
			Exec(ctx)
		if err != nil {
			r.log.Error("failed to ensure label", slog.String("name", name), logger.Error(err))
			return nil, apperror.ErrDatabase.WithInternal(err)
		}
		ids = append(ids, label.ID)
	}
	return ids, nil
}

// GetForItem returns the label ids carried by one item.
func (r *Repository) GetForItem(ctx context.Context, itemID, itemType string) ([]string, error) {
	var ids []string
	err := r.db.NewSelect().
		Model((*LabelledItem)(nil)).
		Column("label_id").
		Where("item_id = ?", itemID).
		Where("item_type = ?", itemType).
		Scan(ctx, &ids)

	if err != nil {
		r.log.Error("failed to get labels for item", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return ids, nil
}

// SetForItem replaces an item's full label set in one transaction.
func (r *Repository) SetForItem(ctx context.Context, itemID, itemType string, labelIDs []string) error {
	tx, err := database.BeginSafeTx(ctx, r.db)
	if err != nil {
		return apperror.ErrDatabase.WithInternal(err)
	}
	defer tx.Rollback()

	_, err = tx.NewDelete().
		Model((*LabelledItem)(nil)).
		Where("item_id = ?", itemID).
		Where("item_type = ?", itemType).
		Exec(ctx)
	if err != nil {
		r.log.Error("failed to clear labels for item", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}

	if len(labelIDs) > 0 {
		items := make([]LabelledItem, 0, len(labelIDs))
		for _, labelID := range labelIDs {
			items = append(items, LabelledItem{
				ItemID:   itemID,
				ItemType: itemType,
				LabelID:  labelID,
			})
		}
		_, err = tx.NewInsert().
			Model(&items).
			On("CONFLICT DO NOTHING").
			Exec(ctx)
		if err != nil {
			r.log.Error("failed to set labels for item", logger.Error(err))
			return apperror.ErrDatabase.WithInternal(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperror.ErrDatabase.WithInternal(err)
	}

	return nil
}

// DeleteForItem removes every label-join row keyed by the item.
func (r *Repository) DeleteForItem(ctx context.Context, itemID, itemType string) error {
	_, err := r.db.NewDelete().
		Model((*LabelledItem)(nil)).
		Where("item_id = ?", itemID).
		Where("item_type = ?", itemType).
		Exec(ctx)

	if err != nil {
		r.log.Error("failed to delete labels for item", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}

	return nil
}
