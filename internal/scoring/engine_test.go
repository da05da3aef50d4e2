// internal/scoring/engine_test.go
package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talenthub/internal/models"
)

func TestScoreDimension(t *testing.T) {
	tests := []struct {
		name       string
		confidence string
		maxPoints  int
		expected   int
	}{
		{"high confidence", models.ConfidenceHigh, 20, 18},
		{"medium confidence", models.ConfidenceMedium, 20, 13},
		{"low confidence", models.ConfidenceLow, 20, 7},
		{"no confidence", models.ConfidenceNone, 20, 0},
		{"empty string treated as none", "", 20, 0},
		{"unknown confidence scores zero", "definitely", 20, 0},
		{"case insensitive", "HIGH", 10, 9},
		{"fraction rounds nearest", models.ConfidenceMedium, 17, 11}, // 17 * 0.65 = 11.05
		{"half rounds to even down", models.ConfidenceMedium, 10, 6}, // 10 * 0.65 = 6.5
		{"half rounds to even at fifty", models.ConfidenceMedium, 50, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ScoreDimension(tt.confidence, tt.maxPoints))
		})
	}
}

func TestScoreBreakdownAndTotal(t *testing.T) {
	weights := map[string]int{
		"core_technical_skills": 40,
		"experience_seniority":  30,
		"certifications":        30,
	}
	confidences := map[string]string{
		"core_technical_skills": models.ConfidenceHigh,
		"experience_seniority":  models.ConfidenceMedium,
		// certifications omitted, defaults to none
	}

	breakdown := ScoreBreakdown(confidences, weights)
	assert.Equal(t, 36, breakdown["core_technical_skills"])
	assert.Equal(t, 20, breakdown["experience_seniority"]) // 30 * 0.65 = 19.5
	assert.Equal(t, 0, breakdown["certifications"])

	assert.Equal(t, 56, ScoreTotal(breakdown))
}

func TestScoreTotalClamps(t *testing.T) {
	assert.Equal(t, 100, ScoreTotal(map[string]int{"a": 60, "b": 60}))
	assert.Equal(t, 0, ScoreTotal(map[string]int{"a": -5}))
	assert.Equal(t, 0, ScoreTotal(nil))
}

func TestAssignEqualWeights(t *testing.T) {
	t.Run("even split", func(t *testing.T) {
		weights := AssignEqualWeights([]string{"a", "b", "c", "d"})
		assert.Equal(t, map[string]int{"a": 25, "b": 25, "c": 25, "d": 25}, weights)
	})

	t.Run("remainder goes to first ids in sorted order", func(t *testing.T) {
		weights := AssignEqualWeights([]string{"c", "a", "b"})
		// 100/3 = 33 rem 1; "a" sorts first and takes it.
		assert.Equal(t, map[string]int{"a": 34, "b": 33, "c": 33}, weights)

		total := 0
		for _, w := range weights {
			total += w
		}
		assert.Equal(t, 100, total)
	})

	t.Run("duplicates and blanks ignored", func(t *testing.T) {
		weights := AssignEqualWeights([]string{"a", "a", "", " b "})
		assert.Equal(t, map[string]int{"a": 50, "b": 50}, weights)
	})

	t.Run("empty selection", func(t *testing.T) {
		assert.Empty(t, AssignEqualWeights(nil))
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		a := AssignEqualWeights([]string{"x", "y", "z", "w", "v", "u"})
		b := AssignEqualWeights([]string{"x", "y", "z", "w", "v", "u"})
		assert.Equal(t, a, b)
	})
}

func TestValidateWeights(t *testing.T) {
	assert.NoError(t, ValidateWeights(map[string]int{"a": 70, "b": 30}))
	assert.Error(t, ValidateWeights(map[string]int{"a": 70, "b": 20}))
	assert.Error(t, ValidateWeights(map[string]int{"a": 110, "b": -10}))
}

func TestLibrarySeedSkills(t *testing.T) {
	seeds := DefaultLibrary().SeedSkills()
	require.NotEmpty(t, seeds)
	assert.Contains(t, seeds, "BGP")
	assert.Contains(t, seeds, "Zscaler")
	assert.Contains(t, seeds, "CCNA")

	seen := map[string]bool{}
	for _, s := range seeds {
		key := strings.ToLower(s)
		assert.False(t, seen[key], "duplicate seed %q", s)
		seen[key] = true
	}
}

func TestNormalizeAndMatchSkills(t *testing.T) {
	jd := []string{"Python", "AWS", "Kubernetes"}
	resumeSkills := []string{"python", " aws ", "Terraform"}

	matched, missing := MatchAgainstJD(jd, resumeSkills)
	assert.Equal(t, []string{"Python", "AWS"}, matched)
	assert.Equal(t, []string{"Kubernetes"}, missing)
}

func TestCollectEvidenceExperience(t *testing.T) {
	lib := DefaultLibrary()
	years := 6.0
	rec := &models.CandidateRecord{
		Skills:          []string{"python", "aws"},
		ExperienceYears: &years,
	}
	jd := &models.JDStructure{
		SelectedDimensions: []string{"experience_seniority"},
		MinExperienceYears: 3,
	}

	evidence := CollectEvidence(lib, jd, rec)
	require.Contains(t, evidence, "experience_seniority")
	// 6 years against a 3 year minimum clears the +3 margin.
	assert.Equal(t, models.ConfidenceHigh, evidence["experience_seniority"].Confidence)
}

func TestCollectEvidenceSkillOverlap(t *testing.T) {
	lib := DefaultLibrary()
	rec := &models.CandidateRecord{
		Skills: []string{"Python", "Go", "PostgreSQL"},
	}
	jd := &models.JDStructure{
		SelectedDimensions: []string{"core_technical_skills"},
		RequiredSkills:     []string{"Python", "Go", "Kafka"},
	}

	evidence := CollectEvidence(lib, jd, rec)
	require.Contains(t, evidence, "core_technical_skills")
	ev := evidence["core_technical_skills"]
	// 2 of 3 JD skills present puts the ratio above the high threshold.
	assert.Equal(t, models.ConfidenceHigh, ev.Confidence)
	assert.ElementsMatch(t, []string{"python", "go"}, ev.EvidenceSkills)
}

func TestBuildExplanationFormat(t *testing.T) {
	breakdown := map[string]int{"core": 36, "exp": 20, "certs": 0}
	labels := map[string]string{"core": "Core Technical Skills", "exp": "Experience", "certs": "Certifications"}

	out := BuildExplanation(56, breakdown, labels, []string{"python", "aws"}, []string{"kubernetes"})
	assert.Contains(t, out, "Scored 56/100")
	assert.Contains(t, out, "Core Technical Skills and Experience")
	assert.Contains(t, out, "(matched: python, aws)")
	assert.Contains(t, out, "Main gap is kubernetes")

	// Deterministic for identical input.
	assert.Equal(t, out, BuildExplanation(56, breakdown, labels, []string{"python", "aws"}, []string{"kubernetes"}))
}

func TestBuildRecommendation(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "No suitable candidates found for this JD.", BuildRecommendation(nil, nil))
	})

	t.Run("single candidate", func(t *testing.T) {
		out := BuildRecommendation([]string{"Asha Rao"}, []float64{81})
		assert.Equal(t, "Asha Rao is the stronger match for this JD.", out)
	})

	t.Run("close scores read as comparable", func(t *testing.T) {
		out := BuildRecommendation([]string{"Asha Rao", "Vikram Shah"}, []float64{81, 79})
		assert.Equal(t, "Both candidates are comparable; role focus should decide.", out)
	})

	t.Run("boundary gap of three is comparable", func(t *testing.T) {
		out := BuildRecommendation([]string{"Asha Rao", "Vikram Shah"}, []float64{82, 79})
		assert.Equal(t, "Both candidates are comparable; role focus should decide.", out)
	})

	t.Run("clear winner", func(t *testing.T) {
		out := BuildRecommendation([]string{"Asha Rao", "Vikram Shah"}, []float64{88, 70})
		assert.Equal(t, "Asha Rao is the stronger match for this JD.", out)
	})
}
