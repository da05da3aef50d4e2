// internal/filter/filter_test.go
package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"talenthub/internal/models"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func sampleRecords() []models.CandidateRecord {
	exp5, exp10 := 5.0, 10.0
	notice30 := 30
	return []models.CandidateRecord{
		{
			ID: 1, FullName: "Asha Rao", Role: "Network Engineer",
			Location: "Bangalore", SourceType: "guest",
			Skills:          []string{"BGP", "OSPF", "Python"},
			ExperienceYears: &exp5, NoticePeriodDays: &notice30,
		},
		{
			ID: 2, FullName: "Vikram Shah", Role: "Security Analyst",
			Location: "Mumbai", SourceType: "Hired Forces",
			Skills:          []string{"SIEM", "Splunk"},
			ExperienceYears: &exp10,
		},
		{
			ID: 3, FirstName: "Meera", LastName: "Iyer", Role: "Cloud Architect",
			Location: "Pune", SourceType: "company_employee",
			Skills: []string{"AWS", "Terraform"},
		},
	}
}

func TestCanonicalType(t *testing.T) {
	assert.Equal(t, models.SourceTypeHiredForce, CanonicalType("Hired Forces"))
	assert.Equal(t, models.SourceTypeGuest, CanonicalType("guest user"))
	assert.Equal(t, models.SourceTypeGuest, CanonicalType("gmail"))
	assert.Equal(t, models.SourceTypeCompanyEmployee, CanonicalType(" Company Employee "))
	// Unknown values pass through lowercased.
	assert.Equal(t, "vendor", CanonicalType("Vendor"))
}

func TestApplySearch(t *testing.T) {
	records := sampleRecords()

	out := Apply(records, Filters{Search: "bgp"})
	assert.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ID)

	// First/last name fallback when FullName is empty.
	out = Apply(records, Filters{Search: "meera iyer"})
	assert.Len(t, out, 1)
	assert.Equal(t, int64(3), out[0].ID)

	out = Apply(records, Filters{Search: "zzz"})
	assert.Empty(t, out)
}

func TestApplyType(t *testing.T) {
	out := Apply(sampleRecords(), Filters{UserType: "hired_force"})
	assert.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].ID)
}

func TestApplyExperience(t *testing.T) {
	records := sampleRecords()

	out := Apply(records, Filters{MinExperience: floatPtr(6)})
	assert.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].ID)

	// A missing experience value counts as zero against a min bound.
	out = Apply(records, Filters{MaxExperience: floatPtr(6)})
	assert.Len(t, out, 2)
}

func TestApplyNoticeAsymmetry(t *testing.T) {
	records := sampleRecords()

	// min bound requires a present value.
	out := Apply(records, Filters{MinNotice: intPtr(15)})
	assert.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ID)

	// max bound lets records with no notice period through.
	out = Apply(records, Filters{MaxNotice: intPtr(15)})
	assert.Len(t, out, 2)
	for _, rec := range out {
		assert.NotEqual(t, int64(1), rec.ID)
	}
}

func TestSortDirectionAndFallback(t *testing.T) {
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	records := []models.CandidateRecord{
		{ID: 5, UploadedAt: &older},
		{ID: 2, UploadedAt: &newer},
		{ID: 9}, // no timestamp, falls back to id
	}

	out := Sort(records, SortNewest)
	assert.Equal(t, int64(2), out[0].ID)
	assert.Equal(t, int64(5), out[1].ID)
	assert.Equal(t, int64(9), out[2].ID)

	out = Sort(records, SortOldest)
	assert.Equal(t, int64(9), out[0].ID)
	assert.Equal(t, int64(5), out[1].ID)
	assert.Equal(t, int64(2), out[2].ID)

	// Input order is untouched.
	assert.Equal(t, int64(5), records[0].ID)
}

func TestSortStableOnTies(t *testing.T) {
	ts := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	records := []models.CandidateRecord{
		{ID: 1, FullName: "first", UploadedAt: &ts},
		{ID: 2, FullName: "second", UploadedAt: &ts},
	}
	out := Sort(records, SortNewest)
	assert.Equal(t, "first", out[0].FullName)
	assert.Equal(t, "second", out[1].FullName)
}
