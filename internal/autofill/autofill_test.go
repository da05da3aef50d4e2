// internal/autofill/autofill_test.go
package autofill

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"talenthub/internal/models"
)

func TestReconcileFillsAcceptedFields(t *testing.T) {
	form := ApplicationForm{Email: "typed@example.com"}
	parsed := models.ParsedResume{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "asha@example.com",
		Phone:     "+91 98765 43210",
		Skills:    "BGP, OSPF, Python",
	}

	out, filled := Reconcile(form, parsed)

	assert.Equal(t, "Asha", out.FirstName)
	assert.Equal(t, "Rao", out.LastName)
	// Parsed values win over what was already typed.
	assert.Equal(t, "asha@example.com", out.Email)
	assert.Equal(t, "BGP, OSPF, Python", out.Skills)
	assert.ElementsMatch(t, []string{"firstName", "lastName", "email", "phone", "skills"}, filled)
}

func TestReconcileRejectsPlaceholders(t *testing.T) {
	form := ApplicationForm{Role: "Existing Role"}
	parsed := models.ParsedResume{
		Role:     "Not mentioned",
		Location: "not MENTIONED",
		Phone:    "   ",
	}

	out, filled := Reconcile(form, parsed)

	assert.Equal(t, "Existing Role", out.Role)
	assert.Empty(t, out.Location)
	assert.Empty(t, out.Phone)
	assert.Empty(t, filled)
}

func TestReconcileExperienceZeroIsNotAnAnswer(t *testing.T) {
	out, filled := Reconcile(ApplicationForm{}, models.ParsedResume{Experience: "0"})
	assert.Empty(t, out.Experience)
	assert.Empty(t, filled)

	out, filled = Reconcile(ApplicationForm{}, models.ParsedResume{Experience: " 7 "})
	assert.Equal(t, "7", out.Experience)
	assert.Equal(t, []string{"experience"}, filled)
}

func TestReconcileEducationWrapping(t *testing.T) {
	out, filled := Reconcile(ApplicationForm{}, models.ParsedResume{
		Education: "B.Tech Computer Science - VTU",
	})
	assert.Equal(t, []string{"education"}, filled)
	assert.Equal(t, []models.EducationEntry{{
		Degree:      "B.Tech Computer Science",
		Institution: "VTU",
	}}, out.Education)

	// No separator keeps the whole string as the degree.
	out, _ = Reconcile(ApplicationForm{}, models.ParsedResume{Education: "MBA"})
	assert.Equal(t, "MBA", out.Education[0].Degree)
	assert.Empty(t, out.Education[0].Institution)
}
