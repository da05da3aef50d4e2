// internal/jdanalysis/service_test.go
package jdanalysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talenthub/internal/common/config"
	"talenthub/internal/common/logger"
	"talenthub/internal/models"
	"talenthub/internal/scoring"
)

func testService(t *testing.T) *Service {
	t.Helper()
	cfg := config.AnalysisConfig{
		DefaultMinScore:  40,
		DefaultTopN:      5,
		ShortlistCap:     25,
		ShortlistRelaxTo: 15,
		ShortlistMinimum: 5,
	}
	return NewService(nil, nil, nil, scoring.DefaultLibrary(), cfg, logger.NewTestLogger(t))
}

func TestDeriveStructure(t *testing.T) {
	s := testService(t)
	jd := "Job Title: Network Security Engineer. Requires 5+ years of experience " +
		"with BGP, OSPF and Palo Alto firewalls. CCNP preferred."

	structure := s.DeriveStructure(jd)

	assert.Equal(t, "Network Security Engineer", structure.JDRole)
	assert.Equal(t, 5.0, structure.MinExperienceYears)
	assert.Contains(t, structure.RequiredSkills, "BGP")
	assert.Contains(t, structure.RequiredSkills, "OSPF")
	assert.Contains(t, structure.RequiredSkills, "Palo Alto")
	assert.Contains(t, structure.RequiredSkills, "CCNP")

	assert.Contains(t, structure.SelectedDimensions, "networking_protocols")
	assert.Contains(t, structure.SelectedDimensions, "security_technologies")
	assert.Contains(t, structure.SelectedDimensions, "certifications")
	assert.NotContains(t, structure.SelectedDimensions, "compliance_governance")
}

func TestDeriveStructureFallsBackToFullLibrary(t *testing.T) {
	s := testService(t)
	structure := s.DeriveStructure("We are hiring someone great for an exciting opportunity.")

	assert.Empty(t, structure.RequiredSkills)
	assert.Equal(t, s.lib.IDs(), structure.SelectedDimensions)
}

func TestDeriveRole(t *testing.T) {
	assert.Equal(t, "Cloud Architect", deriveRole("Position: Cloud Architect. Remote."))
	assert.Equal(t, "Senior Network Engineer", deriveRole("Senior Network Engineer needed for our Pune office"))
	assert.Equal(t, "Not mentioned", deriveRole("A great opportunity awaits"))
}

func TestContainsSkillWordBoundaries(t *testing.T) {
	assert.True(t, containsSkill("experience with bgp routing", "BGP"))
	assert.True(t, containsSkill("bgp", "BGP"))
	// "go" inside "google" must not count.
	assert.False(t, containsSkill("google cloud experience", "go"))
	assert.False(t, containsSkill("escalation procedures", "scala"))
}

func TestPrelimScore(t *testing.T) {
	rec := models.CandidateRecord{Skills: []string{"bgp", "ospf"}}

	assert.Equal(t, 100, prelimScore([]string{"BGP", "OSPF"}, &rec))
	assert.Equal(t, 50, prelimScore([]string{"BGP", "Zscaler"}, &rec))
	assert.Equal(t, 0, prelimScore([]string{"Zscaler"}, &rec))
	// No detected JD skills gives a neutral pass.
	assert.Equal(t, 50, prelimScore(nil, &rec))
}

func TestShortlistExperienceFilterAndThreshold(t *testing.T) {
	s := testService(t)
	exp2, exp6, exp8 := 2.0, 6.0, 8.0
	records := []models.CandidateRecord{
		{ID: 1, Skills: []string{"bgp", "ospf"}, ExperienceYears: &exp6},
		{ID: 2, Skills: []string{"bgp", "ospf"}, ExperienceYears: &exp2}, // under minimum
		{ID: 3, Skills: []string{"excel"}, ExperienceYears: &exp8},      // no overlap
		{ID: 4, Skills: []string{"bgp"}, ExperienceYears: &exp8},
		{ID: 5, Skills: []string{"bgp", "ospf"}},                        // no experience on record
		{ID: 6, Skills: []string{"bgp", "ospf"}, ExperienceYears: &exp8},
	}
	structure := &models.JDStructure{
		RequiredSkills:     []string{"BGP", "OSPF"},
		MinExperienceYears: 5,
	}

	// Four candidates clear the experience bar; three clear the score
	// threshold and come back in score order. ID 3 has no skill overlap
	// and stays out even though fewer than ShortlistMinimum passed.
	out := s.shortlist(records, structure, 40)
	require.Len(t, out, 3)
	assert.Equal(t, int64(1), out[0].ID)
	assert.Equal(t, int64(6), out[1].ID)
	assert.Equal(t, int64(4), out[2].ID)
	for _, rec := range out {
		assert.NotEqual(t, int64(2), rec.ID, "under the experience minimum")
		assert.NotEqual(t, int64(5), rec.ID, "no recorded experience")
	}
}

func TestShortlistThresholdHoldsWhenFewPass(t *testing.T) {
	s := testService(t)
	records := []models.CandidateRecord{
		{ID: 1, Skills: []string{"bgp", "ospf"}},
		{ID: 2, Skills: []string{"bgp"}},
		{ID: 3, Skills: []string{"excel"}},
		{ID: 4, Skills: []string{"word"}},
	}
	structure := &models.JDStructure{RequiredSkills: []string{"BGP", "OSPF"}}

	// Only one candidate reaches the threshold. The list stays at one; the
	// zero-overlap candidates are never pulled in to pad it out.
	out := s.shortlist(records, structure, 60)
	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ID)
}

func TestShortlistCap(t *testing.T) {
	s := testService(t)
	s.cfg.ShortlistCap = 2

	records := []models.CandidateRecord{
		{ID: 1, Skills: []string{"bgp"}},
		{ID: 2, Skills: []string{"bgp"}},
		{ID: 3, Skills: []string{"bgp"}},
	}
	structure := &models.JDStructure{RequiredSkills: []string{"BGP"}}

	out := s.shortlist(records, structure, 50)
	assert.Len(t, out, 2)
}

func TestScoreOneSectorAndEvidence(t *testing.T) {
	s := testService(t)
	rec := models.CandidateRecord{
		ID:       9,
		FullName: "Asha Rao",
		Skills:   []string{"BGP", "OSPF", "Zscaler"},
		WorkHistory: []models.WorkEntry{
			{Company: "HDFC Bank Ltd", StartDate: "Jan 2015", EndDate: "Jan 2021"},
			{Company: "Infosys Limited", StartDate: "Jan 2021", EndDate: "Jan 2023"},
		},
	}
	structure := &models.JDStructure{
		RequiredSkills:     []string{"BGP"},
		SelectedDimensions: []string{"networking_protocols", "security_technologies"},
	}

	out := s.scoreOne(&rec, structure, map[string]int{
		"networking_protocols":  60,
		"security_technologies": 40,
	})

	assert.Contains(t, out.EvidenceSkills, "bgp")
	assert.Contains(t, out.EvidenceSkills, "ospf")
	assert.Contains(t, out.EvidenceSkills, "zscaler")

	// Six years at HDFC outweighs two at Infosys.
	assert.Equal(t, "BFSI", out.PrimarySector)
	assert.Equal(t, []string{"BFSI", "IT Services"}, out.UniqueSectors)
	assert.Equal(t, []string{"Financial Services", "Software & IT"}, out.UniqueDomains)
}

func TestComputeStructureHash(t *testing.T) {
	weights := map[string]int{"a": 60, "b": 40}

	h1 := computeStructureHash("jdhash", weights)
	h2 := computeStructureHash("jdhash", map[string]int{"b": 40, "a": 60})
	assert.Equal(t, h1, h2, "hash must not depend on map iteration order")
	assert.Len(t, h1, 16)

	assert.NotEqual(t, h1, computeStructureHash("otherjd", weights))
	assert.NotEqual(t, h1, computeStructureHash("jdhash", map[string]int{"a": 50, "b": 50}))
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "analysis:result:abc123:42", cacheKey("abc123", 42))
}
