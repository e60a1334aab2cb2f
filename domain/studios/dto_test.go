package studios

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullable_Unmarshal(t *testing.T) {
	t.Run("absent key", func(t *testing.T) {
		var opts UpdateStudioOptions
		require.NoError(t, json.Unmarshal([]byte(`{}`), &opts))
		assert.False(t, opts.ParentID.Set)
	})

	t.Run("explicit null", func(t *testing.T) {
		var opts UpdateStudioOptions
		require.NoError(t, json.Unmarshal([]byte(`{"parentId": null}`), &opts))
		assert.True(t, opts.ParentID.Set)
		assert.False(t, opts.ParentID.Valid)
	})

	t.Run("value", func(t *testing.T) {
		var opts UpdateStudioOptions
		require.NoError(t, json.Unmarshal([]byte(`{"parentId": "p1"}`), &opts))
		assert.True(t, opts.ParentID.Set)
		assert.True(t, opts.ParentID.Valid)
		assert.Equal(t, "p1", opts.ParentID.Value)
	})
}

func TestUpdateStudioOptions_Apply(t *testing.T) {
	t.Run("absent fields are untouched", func(t *testing.T) {
		desc := "kept"
		parent := "p1"
		studio := &Studio{Name: "Acme", Description: &desc, ParentID: &parent}

		var opts UpdateStudioOptions
		require.NoError(t, json.Unmarshal([]byte(`{"favorite": true}`), &opts))
		opts.apply(studio)

		assert.Equal(t, "Acme", studio.Name)
		assert.True(t, studio.Favorite)
		require.NotNil(t, studio.Description)
		assert.Equal(t, "kept", *studio.Description)
		require.NotNil(t, studio.ParentID)
		assert.Equal(t, "p1", *studio.ParentID)
	})

	t.Run("parent cleared on explicit null", func(t *testing.T) {
		parent := "p1"
		studio := &Studio{Name: "Acme", ParentID: &parent}

		var opts UpdateStudioOptions
		require.NoError(t, json.Unmarshal([]byte(`{"parentId": null}`), &opts))
		opts.apply(studio)

		assert.Nil(t, studio.ParentID)
	})

	t.Run("custom field null persists as explicit null", func(t *testing.T) {
		studio := &Studio{Name: "Acme", CustomFields: map[string]any{"region": "EU"}}

		var opts UpdateStudioOptions
		require.NoError(t, json.Unmarshal([]byte(`{"customFields": {"tag": null}}`), &opts))
		opts.apply(studio)

		val, ok := studio.CustomFields["tag"]
		assert.True(t, ok, "key must be present")
		assert.Nil(t, val)
		assert.Equal(t, "EU", studio.CustomFields["region"])
	})

	t.Run("aliases are deduplicated", func(t *testing.T) {
		studio := &Studio{Name: "Acme"}
		aliases := []string{"Acme Films", "acme films", "AF"}
		opts := UpdateStudioOptions{Aliases: &aliases}
		opts.apply(studio)

		assert.Equal(t, []string{"Acme Films", "AF"}, studio.Aliases)
	})
}
