package match

import (
	"sort"
	"strings"
)

// MaxSuggestDistance is the largest edit distance still offered as a suggestion.
const MaxSuggestDistance = 3

// Normalize folds case and drops '_' and '-' so that "meters_travelled",
// "MetersTravelled" and "metersTravelled" compare equal.
func Normalize(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		if r == '_' || r == '-' {
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

// Suggest returns up to limit names from candidates closest to name, nearest
// first. Names equal to name, or farther than MaxSuggestDistance after
// normalization, are left out.
func Suggest(name string, candidates []string, limit int) []string {
	type scored struct {
		name string
		dist int
	}

	target := Normalize(name)

	var found []scored

	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if c == name || seen[c] {
			continue
		}

		seen[c] = true

		if d := Levenshtein(target, Normalize(c)); d <= MaxSuggestDistance {
			found = append(found, scored{c, d})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].dist != found[j].dist {
			return found[i].dist < found[j].dist
		}

		return found[i].name < found[j].name
	})

	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}

	out := make([]string, len(found))
	for i, f := range found {
		out[i] = f.name
	}

	return out
}
