package labels

import (
	"time"

	"github.com/uptrace/bun"
)

// Label represents a label from media.labels. Labels are immutable from the
// studio engine's perspective apart from existence checks and creation by
// the rules hook.
type Label struct {
	bun.BaseModel `bun:"table:media.labels,alias:l"`

	ID        string    `bun:"id,pk,type:uuid,default:uuid_generate_v4()" json:"id"`
	Name      string    `bun:"name" json:"name"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:now()" json:"createdAt"`
}

// LabelledItem is one row of the many-to-many label join: "this item of
// this type carries this label".
type LabelledItem struct {
	bun.BaseModel `bun:"table:media.labelled_items,alias:li"`

	ItemID    string    `bun:"item_id,pk,type:uuid" json:"itemId"`
	ItemType  string    `bun:"item_type,pk" json:"itemType"`
	LabelID   string    `bun:"label_id,pk,type:uuid" json:"labelId"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:now()" json:"createdAt"`
}
