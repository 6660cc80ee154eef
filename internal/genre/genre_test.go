package genre

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		subjects   []string
		want       []string
	}{
		{
			name:       "exact canonical match",
			categories: []string{"Science Fiction"},
			want:       []string{"Science Fiction"},
		},
		{
			name:       "keyword alias maps to canonical genre",
			categories: []string{"Detective Stories"},
			want:       []string{"Mystery"},
		},
		{
			name: "empty input falls back to Fiction",
			want: []string{"Fiction"},
		},
		{
			name:       "unmatched string contributes fallback",
			categories: []string{"Quantum Basket Weaving"},
			want:       []string{"Fiction"},
		},
		{
			name:       "first matching rule wins for ambiguous strings",
			categories: []string{"Historical Mystery"},
			want:       []string{"Mystery"},
		},
		{
			name:       "duplicates collapse",
			categories: []string{"Fantasy", "Epic Fantasy"},
			subjects:   []string{"fantasy fiction"},
			want:       []string{"Fantasy"},
		},
		{
			name:       "categories and subjects are unioned",
			categories: []string{"Fantasy"},
			subjects:   []string{"Detective fiction", "Travel"},
			want:       []string{"Fantasy", "Mystery", "Travel"},
		},
		{
			name:     "subjects alone are normalized",
			subjects: []string{"Children's stories", "kids books"},
			want:     []string{"Children’s"},
		},
		{
			name:       "matching is case-insensitive",
			categories: []string{"HORROR", "Graphic NOVELS"},
			want:       []string{"Horror", "Graphic Novel"},
		},
		{
			name:       "mixed matched and unmatched strings",
			categories: []string{"Cooking", "Esoterica"},
			want:       []string{"Cookbooks / Food", "Fiction"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.categories, tt.subjects)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	in := []string{"sci-fi adventure", "thriller", "true crime", "philosophy"}
	first := Normalize(in, nil)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Normalize(in, nil))
	}
}

func TestNormalize_AlwaysCanonical(t *testing.T) {
	canon := make(map[string]bool, len(Canonical))
	for _, g := range Canonical {
		canon[g] = true
	}
	got := Normalize(
		[]string{"Romance", "Self-help books", "weird uncategorized thing"},
		[]string{"Spirituality", "Satire"},
	)
	for _, g := range got {
		assert.True(t, canon[g], "genre %q is not canonical", g)
	}
}
