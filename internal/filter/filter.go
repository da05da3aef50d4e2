// internal/filter/filter.go
package filter

import (
	"sort"
	"strings"

	"talenthub/internal/models"
)

// Sort directions for candidate lists.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
)

// Filters holds the user-supplied filter values. Nil numeric bounds are open.
type Filters struct {
	Search        string
	UserType      string
	Location      string
	MinExperience *float64
	MaxExperience *float64
	MinNotice     *int
	MaxNotice     *int
}

// typeSynonyms collapses the raw source type spellings seen across upload
// channels into canonical values.
var typeSynonyms = map[string]string{
	"company_employee": models.SourceTypeCompanyEmployee,
	"company employee": models.SourceTypeCompanyEmployee,
	"freelancer":       models.SourceTypeFreelancer,
	"guest":            models.SourceTypeGuest,
	"guest_user":       models.SourceTypeGuest,
	"guest user":       models.SourceTypeGuest,
	"gmail":            models.SourceTypeGuest,
	"admin":            models.SourceTypeAdmin,
	"hired_force":      models.SourceTypeHiredForce,
	"hired force":      models.SourceTypeHiredForce,
	"hired_forces":     models.SourceTypeHiredForce,
	"hired forces":     models.SourceTypeHiredForce,
	"outlook":          models.SourceTypeOutlook,
}

// CanonicalType normalizes a raw source type. Unknown values pass through
// lowercased so a filter on them still works.
func CanonicalType(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := typeSynonyms[key]; ok {
		return canonical
	}
	return key
}

// Apply filters records conjunctively: every configured predicate must pass.
// The input slice is not modified.
func Apply(records []models.CandidateRecord, f Filters) []models.CandidateRecord {
	out := make([]models.CandidateRecord, 0, len(records))
	for _, rec := range records {
		if !matchesSearch(rec, f.Search) {
			continue
		}
		if !matchesType(rec, f.UserType) {
			continue
		}
		if !matchesLocation(rec, f.Location) {
			continue
		}
		if !matchesExperience(rec, f.MinExperience, f.MaxExperience) {
			continue
		}
		if !matchesNotice(rec, f.MinNotice, f.MaxNotice) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// matchesSearch is a case-insensitive substring match over name, role,
// location, and every skill. An empty term passes everything.
func matchesSearch(rec models.CandidateRecord, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}

	name := rec.FullName
	if name == "" {
		name = strings.TrimSpace(rec.FirstName + " " + rec.LastName)
	}

	for _, field := range []string{name, rec.Role, rec.Location} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	for _, skill := range rec.Skills {
		if strings.Contains(strings.ToLower(skill), term) {
			return true
		}
	}
	return false
}

func matchesType(rec models.CandidateRecord, selected string) bool {
	if strings.TrimSpace(selected) == "" {
		return true
	}
	return CanonicalType(rec.SourceType) == CanonicalType(selected)
}

func matchesLocation(rec models.CandidateRecord, location string) bool {
	location = strings.ToLower(strings.TrimSpace(location))
	if location == "" {
		return true
	}
	return strings.Contains(strings.ToLower(rec.Location), location) ||
		strings.Contains(strings.ToLower(rec.PreferredLocation), location)
}

func matchesExperience(rec models.CandidateRecord, min, max *float64) bool {
	if min == nil && max == nil {
		return true
	}
	value := 0.0
	if rec.ExperienceYears != nil {
		value = *rec.ExperienceYears
	}
	if min != nil && value < *min {
		return false
	}
	if max != nil && value > *max {
		return false
	}
	return true
}

// matchesNotice preserves the documented min/max asymmetry: a min bound
// requires a present value >= min, while a max bound passes records whose
// notice period is absent OR <= max.
func matchesNotice(rec models.CandidateRecord, min, max *int) bool {
	if min != nil {
		if rec.NoticePeriodDays == nil || *rec.NoticePeriodDays < *min {
			return false
		}
	}
	if max != nil {
		if rec.NoticePeriodDays != nil && *rec.NoticePeriodDays > *max {
			return false
		}
	}
	return true
}

// sortKey prefers the upload timestamp (epoch millis); records without one
// fall back to the numeric id, where a higher id means more recent.
func sortKey(rec models.CandidateRecord) float64 {
	if rec.UploadedAt != nil && !rec.UploadedAt.IsZero() {
		return float64(rec.UploadedAt.UnixMilli())
	}
	return float64(rec.ID)
}

// Sort orders records by recency. Ties keep their input order.
func Sort(records []models.CandidateRecord, direction string) []models.CandidateRecord {
	out := make([]models.CandidateRecord, len(records))
	copy(out, records)

	sort.SliceStable(out, func(i, j int) bool {
		if direction == SortOldest {
			return sortKey(out[i]) < sortKey(out[j])
		}
		return sortKey(out[i]) > sortKey(out[j])
	})
	return out
}
