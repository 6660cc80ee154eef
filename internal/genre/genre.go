// Package genre maps free-text category and subject strings from external
// book catalogs onto a fixed canonical genre taxonomy.
package genre

import "strings"

// Fallback is assigned when an input string matches no rule, and when no
// input is supplied at all. The normalized set is never empty.
const Fallback = "Fiction"

// Canonical is the fixed taxonomy every raw string is normalized onto.
// It is a build-time constant, not configuration.
var Canonical = []string{
	"Fiction",
	"Non-Fiction",
	"Mystery",
	"Thriller",
	"Crime",
	"Romance",
	"Historical",
	"Science Fiction",
	"Fantasy",
	"Horror",
	"Young Adult",
	"Children’s",
	"Biography",
	"Memoir",
	"Self-Help",
	"Personal Development",
	"Travel",
	"Adventure",
	"Poetry",
	"Drama",
	"Graphic Novel",
	"Classic Literature",
	"Religion / Spirituality",
	"Philosophy",
	"Science / Technology",
	"Art / Photography",
	"Cookbooks / Food",
	"True Crime",
	"Health & Fitness",
	"Humor / Satire",
}

type rule struct {
	genre    string
	keywords []string
}

// Rule order is a deterministic tie-break for ambiguous strings: the first
// rule whose keyword appears in the lower-cased input wins. "historical
// mystery" resolves to Mystery because Mystery is listed before Historical.
// Reordering this table changes classification outcomes.
var rules = []rule{
	{"Science Fiction", []string{"science fiction", "sci-fi"}},
	{"Fantasy", []string{"fantasy"}},
	{"Mystery", []string{"mystery", "detective"}},
	{"Thriller", []string{"thriller"}},
	{"Crime", []string{"crime", "true crime"}},
	{"Romance", []string{"romance"}},
	{"Historical", []string{"historical"}},
	{"Biography", []string{"biography"}},
	{"Memoir", []string{"memoir"}},
	{"Self-Help", []string{"self-help", "personal development"}},
	{"Children’s", []string{"children", "kids"}},
	{"Young Adult", []string{"young adult", "ya"}},
	{"Horror", []string{"horror"}},
	{"Poetry", []string{"poetry"}},
	{"Drama", []string{"drama"}},
	{"Graphic Novel", []string{"graphic", "comic"}},
	{"Classic Literature", []string{"classic"}},
	{"Religion / Spirituality", []string{"religion", "spiritual"}},
	{"Philosophy", []string{"philosophy"}},
	{"Science / Technology", []string{"science", "technology"}},
	{"Art / Photography", []string{"art", "photography"}},
	{"Cookbooks / Food", []string{"cook", "food", "recipe"}},
	{"Travel", []string{"travel"}},
	{"Adventure", []string{"adventure", "action"}},
	{"Humor / Satire", []string{"humor", "satire", "funny"}},
}

// Normalize maps raw category strings (primary provider) and subject strings
// (secondary provider) onto the canonical taxonomy. Each input string
// contributes exactly one canonical genre: the first matching rule, or
// Fallback when nothing matches. Duplicates collapse. The result preserves
// first-match insertion order and is never empty; fully empty input yields
// [Fallback].
func Normalize(categories, subjects []string) []string {
	combined := make([]string, 0, len(categories)+len(subjects))
	combined = append(combined, categories...)
	combined = append(combined, subjects...)

	if len(combined) == 0 {
		return []string{Fallback}
	}

	seen := make(map[string]bool, len(combined))
	var out []string
	for _, raw := range combined {
		g := classify(raw)
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}

func classify(raw string) string {
	s := strings.ToLower(raw)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(s, kw) {
				return r.genre
			}
		}
	}
	return Fallback
}
