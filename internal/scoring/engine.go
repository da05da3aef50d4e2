// internal/scoring/engine.go
package scoring

import (
	"math"
	"strings"

	"talenthub/internal/models"
)

// EngineVersion changes whenever a scoring rule changes, invalidating cached
// match results.
const EngineVersion = "v2.4"

// Locked confidence multipliers. Single source of truth for scoring.
var ConfidenceMultipliers = map[string]float64{
	models.ConfidenceHigh:   0.90,
	models.ConfidenceMedium: 0.65,
	models.ConfidenceLow:    0.35,
	models.ConfidenceNone:   0.00,
}

// ScoreDimension scores a single dimension deterministically. Half points
// round to even so a 6.5 becomes 6, not 7.
func ScoreDimension(confidence string, maxPoints int) int {
	conf := strings.ToLower(strings.TrimSpace(confidence))
	if conf == "" {
		conf = models.ConfidenceNone
	}
	mult := ConfidenceMultipliers[conf]
	return int(math.RoundToEven(float64(maxPoints) * mult))
}

// ScoreBreakdown computes per-dimension points from confidences and weights.
func ScoreBreakdown(confidenceByDimension map[string]string, weights map[string]int) map[string]int {
	breakdown := make(map[string]int, len(weights))
	for dimID, weight := range weights {
		confidence := confidenceByDimension[dimID]
		if confidence == "" {
			confidence = models.ConfidenceNone
		}
		breakdown[dimID] = ScoreDimension(confidence, weight)
	}
	return breakdown
}

// ScoreTotal sums a breakdown and clamps into [0, 100].
func ScoreTotal(breakdown map[string]int) int {
	total := 0
	for _, v := range breakdown {
		total += v
	}
	if total < 0 {
		return 0
	}
	if total > 100 {
		return 100
	}
	return total
}

// CollectEvidence derives per-dimension confidence for a candidate from
// deterministic signals: skill overlap with the dimension's vocabulary and,
// for experience_seniority, years relative to the JD minimum.
func CollectEvidence(lib *Library, jd *models.JDStructure, rec *models.CandidateRecord) map[string]models.DimensionEvidence {
	resumeSkills := CanonicalResumeSkills(rec)
	out := make(map[string]models.DimensionEvidence, len(jd.SelectedDimensions))

	for _, dimID := range jd.SelectedDimensions {
		dim, ok := lib.Get(dimID)
		if !ok {
			continue
		}

		if dimID == "experience_seniority" {
			out[dimID] = experienceEvidence(jd.MinExperienceYears, rec.ExperienceYears)
			continue
		}

		vocab := dimensionVocabulary(dim, jd.RequiredSkills)
		hits := Intersection(vocab, resumeSkills)

		confidence := models.ConfidenceNone
		if len(vocab) > 0 {
			ratio := float64(len(hits)) / float64(len(NormalizeSkills(vocab)))
			switch {
			case ratio >= 0.6:
				confidence = models.ConfidenceHigh
			case ratio >= 0.3:
				confidence = models.ConfidenceMedium
			case len(hits) > 0:
				confidence = models.ConfidenceLow
			}
		}

		out[dimID] = models.DimensionEvidence{
			Confidence:     confidence,
			EvidenceSkills: hits,
		}
	}

	return out
}

// dimensionVocabulary is the dimension's seed skills plus the JD skills that
// fall under it. core_technical_skills and other_relevant have no seeds and
// use the JD's full skill list.
func dimensionVocabulary(dim Dimension, jdSkills []string) []string {
	if len(dim.SeedSkills) == 0 {
		return jdSkills
	}

	vocab := append([]string{}, dim.SeedSkills...)
	seedSet := map[string]bool{}
	for _, s := range NormalizeSkills(dim.SeedSkills) {
		seedSet[s] = true
	}
	for _, jd := range jdSkills {
		if seedSet[NormalizeSkill(jd)] {
			continue
		}
		// JD skills sharing a token with a seed belong to the dimension too.
		for seed := range seedSet {
			if strings.Contains(NormalizeSkill(jd), seed) {
				vocab = append(vocab, jd)
				break
			}
		}
	}
	return vocab
}

func experienceEvidence(minYears float64, candidateYears *float64) models.DimensionEvidence {
	years := 0.0
	if candidateYears != nil {
		years = *candidateYears
	}

	confidence := models.ConfidenceNone
	switch {
	case minYears <= 0 && years > 0:
		confidence = models.ConfidenceHigh
	case years >= minYears+3:
		confidence = models.ConfidenceHigh
	case years >= minYears:
		confidence = models.ConfidenceMedium
	case years >= minYears-1 && years > 0:
		confidence = models.ConfidenceLow
	}

	return models.DimensionEvidence{Confidence: confidence}
}

// ConfidencesOf projects evidence down to the confidence strings scoring needs.
func ConfidencesOf(evidence map[string]models.DimensionEvidence) map[string]string {
	out := make(map[string]string, len(evidence))
	for dimID, ev := range evidence {
		out[dimID] = ev.Confidence
	}
	return out
}
