package studios

import (
	"bytes"
	"encoding/json"
	"time"
)

// Nullable distinguishes "field absent", "field present with a value", and
// "field explicitly null" in a sparse update payload. Set is true when the
// key appeared at all; Valid is true when it carried a non-null value.
type Nullable[T any] struct {
	Set   bool
	Valid bool
	Value T
}

var jsonNull = []byte("null")

// UnmarshalJSON marks the field as set; a JSON null clears Valid.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		n.Valid = false
		var zero T
		n.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// MarshalJSON renders null when the value is absent or explicitly null.
func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Set || !n.Valid {
		return jsonNull, nil
	}
	return json.Marshal(n.Value)
}

// CreateStudioRequest is the request body for creating a studio.
// LabelIDs must all reference existing labels.
type CreateStudioRequest struct {
	Name         string         `json:"name"`
	Description  *string        `json:"description,omitempty"`
	ThumbnailID  *string        `json:"thumbnailId,omitempty"`
	ParentID     *string        `json:"parentId,omitempty"`
	Aliases      []string       `json:"aliases,omitempty"`
	LabelIDs     []string       `json:"labelIds,omitempty"`
	CustomFields map[string]any `json:"customFields,omitempty"`
}

// UpdateStudioOptions is the sparse options record for batch updates.
// Pointer fields left nil are untouched. ParentID uses Nullable because the
// parent must be updated whenever the key is present, including an explicit
// null to detach. CustomFields is a partial merge; keys carrying null are
// stored as explicit nulls, not dropped.
type UpdateStudioOptions struct {
	Name         *string              `json:"name,omitempty"`
	Description  Nullable[string]     `json:"description,omitempty"`
	ThumbnailID  Nullable[string]     `json:"thumbnailId,omitempty"`
	Favorite     *bool                `json:"favorite,omitempty"`
	BookmarkedAt Nullable[time.Time]  `json:"bookmarkedAt,omitempty"`
	ParentID     Nullable[string]     `json:"parentId,omitempty"`
	Aliases      *[]string            `json:"aliases,omitempty"`
	LabelIDs     *[]string            `json:"labelIds,omitempty"`
	CustomFields map[string]any       `json:"customFields,omitempty"`
}

// UpdateStudiosRequest is the request body for PATCH /api/studios.
type UpdateStudiosRequest struct {
	IDs     []string            `json:"ids"`
	Options UpdateStudioOptions `json:"options"`
}

// RemoveStudiosRequest is the request body for DELETE /api/studios.
type RemoveStudiosRequest struct {
	IDs []string `json:"ids"`
}

// RunPluginsRequest is the request body for POST /api/studios/run-plugins.
type RunPluginsRequest struct {
	IDs []string `json:"ids"`
}

// StudioDTO is the response shape for a studio, including its resolved
// label identifiers.
type StudioDTO struct {
	Studio
	LabelIDs []string `json:"labelIds"`
}

// apply writes the present fields onto the studio. Label handling lives in
// the service because it goes through the labelled-item join.
func (o *UpdateStudioOptions) apply(s *Studio) {
	if o.Name != nil {
		s.Name = *o.Name
	}
	if o.Description.Set {
		s.Description = nullablePtr(o.Description)
	}
	if o.ThumbnailID.Set {
		s.ThumbnailID = nullablePtr(o.ThumbnailID)
	}
	if o.Favorite != nil {
		s.Favorite = *o.Favorite
	}
	if o.BookmarkedAt.Set {
		s.BookmarkedAt = nullablePtr(o.BookmarkedAt)
	}
	if o.ParentID.Set {
		s.ParentID = nullablePtr(o.ParentID)
	}
	if o.Aliases != nil {
		s.Aliases = NormalizeAliases(*o.Aliases)
	}
	if o.CustomFields != nil {
		if s.CustomFields == nil {
			s.CustomFields = make(map[string]any, len(o.CustomFields))
		}
		// Nil values are kept: a key present with null persists as an
		// explicit JSON null.
		for k, v := range o.CustomFields {
			s.CustomFields[k] = v
		}
	}
}

func nullablePtr[T any](n Nullable[T]) *T {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}
