package studios

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Studio represents a studio from media.studios.
// Labels are not a column; they live in media.labelled_items.
type Studio struct {
	bun.BaseModel `bun:"table:media.studios,alias:st"`

	ID           string         `bun:"id,pk,type:uuid,default:uuid_generate_v4()" json:"id"`
	Name         string         `bun:"name" json:"name"`
	Description  *string        `bun:"description" json:"description,omitempty"`
	ThumbnailID  *string        `bun:"thumbnail_id" json:"thumbnailId,omitempty"`
	Favorite     bool           `bun:"favorite" json:"favorite"`
	BookmarkedAt *time.Time     `bun:"bookmarked_at" json:"bookmarkedAt,omitempty"`
	ParentID     *string        `bun:"parent_id,type:uuid" json:"parentId,omitempty"`
	Aliases      []string       `bun:"aliases,array" json:"aliases"`
	CustomFields map[string]any `bun:"custom_fields,type:jsonb" json:"customFields"`
	CreatedAt    time.Time      `bun:"created_at,nullzero,default:now()" json:"createdAt"`
	UpdatedAt    time.Time      `bun:"updated_at,nullzero,default:now()" json:"updatedAt"`
}

// NormalizeAliases de-duplicates an alias list case-insensitively, keeping
// the first-seen spelling and original order.
func NormalizeAliases(aliases []string) []string {
	out := make([]string, 0, len(aliases))
	seen := make(map[string]bool, len(aliases))
	for _, a := range aliases {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		key := strings.ToLower(a)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, a)
	}
	return out
}

// MatchTerms returns the strings the unmatched-scene heuristic matches
// against: the studio name plus every alias.
func (s *Studio) MatchTerms() []string {
	terms := make([]string, 0, len(s.Aliases)+1)
	terms = append(terms, s.Name)
	terms = append(terms, s.Aliases...)
	return terms
}
