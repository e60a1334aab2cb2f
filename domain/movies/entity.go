package movies

import (
	"time"

	"github.com/uptrace/bun"
)

// Movie represents a movie from media.movies.
type Movie struct {
	bun.BaseModel `bun:"table:media.movies,alias:mv"`

	ID        string    `bun:"id,pk,type:uuid,default:uuid_generate_v4()" json:"id"`
	Title     string    `bun:"title" json:"title"`
	StudioID  *string   `bun:"studio_id,type:uuid" json:"studioId,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:now()" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:now()" json:"updatedAt"`
}
