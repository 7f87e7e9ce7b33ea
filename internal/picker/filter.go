package picker

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/truefrontier/openrouter-launch/internal/catalog"
)

// Match is a catalog entry that passed the filter.
type Match struct {
	Model        catalog.Model
	MatchedChars []int // Indices of matched characters in Model.ID
}

// AliasLookup resolves an alias to an identifier.
type AliasLookup func(alias string) (string, bool)

// modelSource adapts a catalog for fuzzy matching.
type modelSource catalog.Catalog

func (s modelSource) String(i int) string { return strings.ToLower(s[i].ID) }
func (s modelSource) Len() int            { return len(s) }

// Filter narrows cat to the models matching query. An empty query keeps the
// whole catalog in order. A query equal to an alias selects just that
// model. Anything else is ranked by fuzzy match on the identifier.
func Filter(query string, cat catalog.Catalog, aliases AliasLookup) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]Match, len(cat))
		for i, m := range cat {
			out[i] = Match{Model: m}
		}
		return out
	}

	if aliases != nil {
		if id, ok := aliases(q); ok {
			var out []Match
			for _, m := range cat {
				if m.ID == id {
					out = append(out, Match{Model: m})
				}
			}
			return out
		}
	}

	matches := fuzzy.FindFrom(q, modelSource(cat))
	out := make([]Match, len(matches))
	for i, fm := range matches {
		out[i] = Match{Model: cat[fm.Index], MatchedChars: fm.MatchedIndexes}
	}
	return out
}
