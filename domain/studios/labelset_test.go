package studios

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualLabelSets(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want bool
	}{
		{
			name: "both empty",
			a:    nil,
			b:    []string{},
			want: true,
		},
		{
			name: "same order",
			a:    []string{"l1", "l2"},
			b:    []string{"l1", "l2"},
			want: true,
		},
		{
			name: "reordered",
			a:    []string{"l1", "l2", "l3"},
			b:    []string{"l3", "l1", "l2"},
			want: true,
		},
		{
			name: "duplicates do not change the set",
			a:    []string{"l1", "l1", "l2"},
			b:    []string{"l2", "l1"},
			want: true,
		},
		{
			name: "extra element",
			a:    []string{"l1", "l2"},
			b:    []string{"l1", "l2", "l3"},
			want: false,
		},
		{
			name: "different element",
			a:    []string{"l1"},
			b:    []string{"l2"},
			want: false,
		},
		{
			name: "empty vs non-empty",
			a:    []string{},
			b:    []string{"l1"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EqualLabelSets(tt.a, tt.b))
			// Equality is symmetric
			assert.Equal(t, tt.want, EqualLabelSets(tt.b, tt.a))
		})
	}
}

func TestDedupeLabelIDs(t *testing.T) {
	assert.Equal(t, []string{"l1", "l2"}, DedupeLabelIDs([]string{"l1", "l2", "l1"}))
	assert.Equal(t, []string{"l2", "l1"}, DedupeLabelIDs([]string{"l2", "", "l1", "l2"}))
	assert.Empty(t, DedupeLabelIDs(nil))
}

func TestNormalizeAliases(t *testing.T) {
	assert.Equal(t, []string{"Acme", "ACME Films"},
		NormalizeAliases([]string{"Acme", "acme", "ACME Films", "  ", "acme films"}))
	assert.Empty(t, NormalizeAliases(nil))
}
