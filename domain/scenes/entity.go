package scenes

import (
	"time"

	"github.com/uptrace/bun"
)

// Scene represents a scene from media.scenes. StudioID is nil for scenes
// not yet matched to a studio.
type Scene struct {
	bun.BaseModel `bun:"table:media.scenes,alias:sc"`

	ID        string    `bun:"id,pk,type:uuid,default:uuid_generate_v4()" json:"id"`
	Title     string    `bun:"title" json:"title"`
	Path      string    `bun:"path" json:"path"`
	StudioID  *string   `bun:"studio_id,type:uuid" json:"studioId,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:now()" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:now()" json:"updatedAt"`
}
