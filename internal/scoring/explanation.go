// internal/scoring/explanation.go
package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// topDimensions orders a breakdown by (points, id) descending and returns the
// first n ids.
func topDimensions(breakdown map[string]int, n int) []string {
	type kv struct {
		id     string
		points int
	}
	items := make([]kv, 0, len(breakdown))
	for id, points := range breakdown {
		items = append(items, kv{id, points})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].points != items[j].points {
			return items[i].points > items[j].points
		}
		return items[i].id > items[j].id
	})
	out := []string{}
	for i := 0; i < len(items) && i < n; i++ {
		out = append(out, items[i].id)
	}
	return out
}

func lowestDimension(breakdown map[string]int) string {
	lowID, lowPoints := "", 0
	first := true
	for id, points := range breakdown {
		if first || points < lowPoints || (points == lowPoints && id < lowID) {
			lowID, lowPoints = id, points
			first = false
		}
	}
	return lowID
}

// BuildExplanation returns exactly two short sentences explaining a score.
// Output is fully deterministic for a given input.
func BuildExplanation(
	totalScore int,
	breakdown map[string]int,
	dimensionLabels map[string]string,
	matchedSkills []string,
	missingSkills []string,
) string {
	topLabels := []string{}
	for _, id := range topDimensions(breakdown, 2) {
		label := dimensionLabels[id]
		if label == "" {
			label = id
		}
		if label != "" {
			topLabels = append(topLabels, label)
		}
	}

	strengthsPart := strings.Join(topLabels, " and ")
	if strengthsPart == "" {
		strengthsPart = "key areas"
	}

	matchedPart := ""
	if len(matchedSkills) > 0 {
		head := matchedSkills
		if len(head) > 3 {
			head = head[:3]
		}
		matchedPart = fmt.Sprintf(" (matched: %s)", strings.Join(head, ", "))
	}

	sentence1 := fmt.Sprintf("Scored %d/100 with strongest alignment in %s%s.",
		totalScore, strengthsPart, matchedPart)

	var sentence2 string
	switch {
	case len(missingSkills) > 0:
		sentence2 = fmt.Sprintf("Main gap is %s; improving this could raise the fit for the role.", missingSkills[0])
	case lowestDimension(breakdown) != "":
		lowID := lowestDimension(breakdown)
		lowLabel := dimensionLabels[lowID]
		if lowLabel == "" {
			lowLabel = lowID
		}
		sentence2 = fmt.Sprintf("Main gap is weaker alignment in %s; more direct evidence could improve the score.", lowLabel)
	default:
		sentence2 = "No major gaps detected from the available resume evidence."
	}

	return sentence1 + " " + sentence2
}

// BuildRecommendation compares the top two results deterministically.
// Scores within 3 points of each other read as comparable.
func BuildRecommendation(names []string, scores []float64) string {
	if len(names) == 0 {
		return "No suitable candidates found for this JD."
	}
	if len(names) >= 2 && math.Abs(scores[0]-scores[1]) <= 3 {
		return "Both candidates are comparable; role focus should decide."
	}
	return fmt.Sprintf("%s is the stronger match for this JD.", names[0])
}
