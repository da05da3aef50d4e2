// internal/scoring/weights.go
package scoring

import (
	"fmt"
	"sort"
	"strings"
)

// AssignEqualWeights deterministically splits 100 points across the selected
// dimensions. The remainder after integer division goes +1 to the first ids
// in sorted order, so the same selection always yields the same weights.
func AssignEqualWeights(dimensionIDs []string) map[string]int {
	ids := []string{}
	seen := map[string]bool{}
	for _, id := range dimensionIDs {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		ids = append(ids, id)
		seen[id] = true
	}
	if len(ids) == 0 {
		return map[string]int{}
	}

	n := len(ids)
	base := 100 / n
	remainder := 100 - base*n

	weights := make(map[string]int, n)
	for _, id := range ids {
		weights[id] = base
	}

	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)
	for _, id := range sorted[:remainder] {
		weights[id]++
	}

	return weights
}

// ValidateWeights checks explicit weights: non-negative and summing to 100.
func ValidateWeights(weights map[string]int) error {
	total := 0
	for id, w := range weights {
		if w < 0 {
			return fmt.Errorf("weight for %s is negative", id)
		}
		total += w
	}
	if total != 100 {
		return fmt.Errorf("weights sum to %d, expected 100", total)
	}
	return nil
}
