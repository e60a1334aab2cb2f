package images

import (
	"time"

	"github.com/uptrace/bun"
)

// Image represents an image from media.images.
type Image struct {
	bun.BaseModel `bun:"table:media.images,alias:im"`

	ID        string    `bun:"id,pk,type:uuid,default:uuid_generate_v4()" json:"id"`
	Path      string    `bun:"path" json:"path"`
	StudioID  *string   `bun:"studio_id,type:uuid" json:"studioId,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:now()" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:now()" json:"updatedAt"`
}
