package search

import (
	"time"

	"github.com/uptrace/bun"
)

// StudioEntry is the denormalized search projection of a studio from
// media.studio_search. It is never authoritative; the reconcile sweep and
// the repair queue bring it back in line with media.studios when a
// synchronous index write is missed.
type StudioEntry struct {
	bun.BaseModel `bun:"table:media.studio_search,alias:ss"`

	StudioID   string    `bun:"studio_id,pk,type:uuid" json:"studioId"`
	Name       string    `bun:"name" json:"name"`
	Aliases    []string  `bun:"aliases,array" json:"aliases"`
	LabelNames []string  `bun:"label_names,array" json:"labelNames"`
	SceneCount int       `bun:"scene_count" json:"sceneCount"`
	ImageCount int       `bun:"image_count" json:"imageCount"`
	UpdatedAt  time.Time `bun:"updated_at,nullzero,default:now()" json:"updatedAt"`
}

// RepairJob is one deferred reindex request from media.index_repair_jobs.
type RepairJob struct {
	bun.BaseModel `bun:"table:media.index_repair_jobs,alias:irj"`

	ID           string     `bun:"id,pk,type:uuid,default:uuid_generate_v4()"`
	StudioID     string     `bun:"studio_id,type:uuid"`
	Status       string     `bun:"status"`
	Priority     int        `bun:"priority"`
	AttemptCount int        `bun:"attempt_count"`
	LastError    *string    `bun:"last_error"`
	ScheduledAt  time.Time  `bun:"scheduled_at,nullzero,default:now()"`
	StartedAt    *time.Time `bun:"started_at"`
	CompletedAt  *time.Time `bun:"completed_at"`
	CreatedAt    time.Time  `bun:"created_at,nullzero,default:now()"`
	UpdatedAt    time.Time  `bun:"updated_at,nullzero,default:now()"`
}
