// internal/autofill/autofill.go
package autofill

import (
	"strings"

	"talenthub/internal/models"
)

// NotMentioned is the placeholder the resume parser emits for fields it
// could not find. It must never be applied to a form.
const NotMentioned = "Not mentioned"

// ApplicationForm is the candidate-facing form state the parsed resume is
// merged into.
type ApplicationForm struct {
	FirstName      string                  `json:"firstName"`
	LastName       string                  `json:"lastName"`
	Email          string                  `json:"email"`
	Phone          string                  `json:"phone"`
	Address        string                  `json:"address"`
	City           string                  `json:"city"`
	Country        string                  `json:"country"`
	ZipCode        string                  `json:"zipCode"`
	Location       string                  `json:"location"`
	Role           string                  `json:"role"`
	CurrentCompany string                  `json:"currentCompany"`
	Experience     string                  `json:"experience"`
	Skills         string                  `json:"skills"`
	Education      []models.EducationEntry `json:"education"`
}

// accepted reports whether a parsed value may be applied: present, non-empty
// after trimming, and not the placeholder sentinel.
func accepted(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}
	return !strings.EqualFold(trimmed, NotMentioned)
}

// Reconcile merges a parsed resume into the form and returns the updated form
// plus the names of the fields that were actually populated. Experience equal
// to the literal "0" counts as not provided. A flat education string becomes a
// one-element structured entry.
func Reconcile(form ApplicationForm, parsed models.ParsedResume) (ApplicationForm, []string) {
	filled := []string{}

	apply := func(name string, value string, dst *string) {
		if !accepted(value) {
			return
		}
		*dst = strings.TrimSpace(value)
		filled = append(filled, name)
	}

	apply("firstName", parsed.FirstName, &form.FirstName)
	apply("lastName", parsed.LastName, &form.LastName)
	apply("email", parsed.Email, &form.Email)
	apply("phone", parsed.Phone, &form.Phone)
	apply("address", parsed.Address, &form.Address)
	apply("city", parsed.City, &form.City)
	apply("country", parsed.Country, &form.Country)
	apply("zipCode", parsed.ZipCode, &form.ZipCode)
	apply("location", parsed.Location, &form.Location)
	apply("role", parsed.Role, &form.Role)
	apply("currentCompany", parsed.CurrentCompany, &form.CurrentCompany)
	apply("skills", parsed.Skills, &form.Skills)

	// "0" years reads as the parser's default, not a real answer.
	if accepted(parsed.Experience) && strings.TrimSpace(parsed.Experience) != "0" {
		form.Experience = strings.TrimSpace(parsed.Experience)
		filled = append(filled, "experience")
	}

	if accepted(parsed.Education) {
		form.Education = []models.EducationEntry{wrapEducation(parsed.Education)}
		filled = append(filled, "education")
	}

	return form, filled
}

// wrapEducation lifts the parser's flat "degree - university" string into the
// structured multi-entry shape the form uses.
func wrapEducation(flat string) models.EducationEntry {
	flat = strings.TrimSpace(flat)
	if degree, institution, found := strings.Cut(flat, " - "); found {
		return models.EducationEntry{
			Degree:      strings.TrimSpace(degree),
			Institution: strings.TrimSpace(institution),
		}
	}
	return models.EducationEntry{Degree: flat}
}
