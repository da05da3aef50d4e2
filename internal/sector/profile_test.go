// internal/sector/profile_test.go
package sector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"talenthub/internal/models"
)

var testNow = time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)

func TestJobYears(t *testing.T) {
	tests := []struct {
		name     string
		entry    models.WorkEntry
		expected float64
	}{
		{"month year range", models.WorkEntry{StartDate: "Jan 2020", EndDate: "Jan 2023"}, 3.0},
		{"full month name", models.WorkEntry{StartDate: "January 2020", EndDate: "July 2021"}, 1.5},
		{"numeric formats", models.WorkEntry{StartDate: "01/2020", EndDate: "2022-01"}, 2.0},
		{"year only", models.WorkEntry{StartDate: "2018", EndDate: "2020"}, 2.0},
		{"present runs to now", models.WorkEntry{StartDate: "Aug 2024", EndDate: "Present"}, 2.0},
		{"current runs to now", models.WorkEntry{StartDate: "Aug 2025", EndDate: "Current"}, 1.0},
		{"empty end runs to now", models.WorkEntry{StartDate: "Aug 2024"}, 2.0},
		{"unparseable falls back", models.WorkEntry{StartDate: "a while ago", EndDate: "later"}, 2.0},
		{"unparseable end falls back", models.WorkEntry{StartDate: "Jan 2020", EndDate: "springtime"}, 2.0},
		{"no start date", models.WorkEntry{EndDate: "Jan 2023"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, JobYears(tt.entry, testNow), 0.01)
		})
	}
}

func TestBuildProfilePrimarySector(t *testing.T) {
	rec := &models.CandidateRecord{
		WorkHistory: []models.WorkEntry{
			{Company: "HDFC Bank", StartDate: "Jan 2016", EndDate: "Jan 2022"},
			{Company: "Infosys", StartDate: "Jan 2022", EndDate: "Jan 2024"},
			{Company: "Apollo Hospitals", StartDate: "Jan 2024", EndDate: "Present"},
		},
	}

	p := buildProfile(rec, testNow)
	assert.Equal(t, "BFSI", p.PrimarySector, "six years of banking outweigh the rest")
	assert.Equal(t, []string{"BFSI", "IT Services", "Healthcare"}, p.Sectors)
	assert.Equal(t, []string{"Financial Services", "Software & IT", "Healthcare Services"}, p.Domains)
	assert.InDelta(t, 6.0, p.Years["BFSI"], 0.01)
}

func TestBuildProfileUnknownExcludedFromLists(t *testing.T) {
	rec := &models.CandidateRecord{
		WorkHistory: []models.WorkEntry{
			{Company: "Blorptex", StartDate: "Jan 2015", EndDate: "Jan 2023"},
			{Company: "Axis Bank", StartDate: "Jan 2023", EndDate: "Jan 2025"},
		},
	}

	p := buildProfile(rec, testNow)
	// Eight unidentified years still outweigh two in banking.
	assert.Equal(t, "Unknown", p.PrimarySector)
	assert.Equal(t, []string{"BFSI"}, p.Sectors)
	assert.Equal(t, []string{"Financial Services"}, p.Domains)
}

func TestBuildProfileFallsBackToCurrentCompany(t *testing.T) {
	rec := &models.CandidateRecord{CurrentCompany: "Wipro"}

	p := buildProfile(rec, testNow)
	assert.Equal(t, "IT Services", p.PrimarySector)
	assert.Equal(t, []string{"IT Services"}, p.Sectors)
	assert.InDelta(t, estimatedJobYears, p.Years["IT Services"], 0.01)
}

func TestBuildProfileEmpty(t *testing.T) {
	p := buildProfile(&models.CandidateRecord{}, testNow)
	assert.Equal(t, "Unknown", p.PrimarySector)
	assert.Empty(t, p.Sectors)
	assert.Empty(t, p.Domains)
}
