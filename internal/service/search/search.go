package search

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/kapu/pokedex-go/internal/domain"
	"github.com/kapu/pokedex-go/internal/util"
)

// Checker reports whether a name is in the caught-set.
type Checker interface {
	IsCaught(name string) bool
}

// Filter keeps members whose name contains query (case-insensitive) and,
// when onlyCaught is set, that caught reports as caught. Input order is
// preserved. It holds no state; callers recompute it whenever any input
// changes.
func Filter(members []domain.MemberSummary, query string, onlyCaught bool, caught Checker) []domain.MemberSummary {
	result := make([]domain.MemberSummary, 0, len(members))
	for _, m := range members {
		if !util.ContainsFold(m.Name, query) {
			continue
		}
		if onlyCaught && (caught == nil || !caught.IsCaught(m.Name)) {
			continue
		}
		result = append(result, m)
	}
	return result
}

type suggestion struct {
	name     string
	distance int
}

// Suggest returns up to limit member names that are a small edit
// distance away from query, closest first. Names are compared against
// the query and against their own prefix of the query's length, so a
// partially typed name still finds its target.
func Suggest(members []domain.MemberSummary, query string, limit int) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || limit <= 0 {
		return nil
	}
	queryLen := len([]rune(query))
	maxDistance := distanceLimit(queryLen)

	seen := make(map[string]struct{}, len(members))
	candidates := make([]suggestion, 0)
	for _, original := range domain.MemberNames(members) {
		name := strings.ToLower(original)
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		dist := levenshtein.ComputeDistance(query, name)
		if runes := []rune(name); len(runes) > queryLen {
			if prefixDist := levenshtein.ComputeDistance(query, string(runes[:queryLen])); prefixDist < dist {
				dist = prefixDist
			}
		}
		if dist > maxDistance {
			continue
		}
		candidates = append(candidates, suggestion{name: original, distance: dist})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].name < candidates[j].name
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.name
	}
	return names
}

func distanceLimit(length int) int {
	switch {
	case length <= 2:
		return 0
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
