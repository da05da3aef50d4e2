package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talenthub/internal/models"
)

func TestSignupSchema(t *testing.T) {
	valid := models.SignupRequest{
		FullName: "Asha Rao",
		Email:    "asha@example.com",
		Password: "s3cret-password",
		UserType: models.UserTypeFreelancer,
	}
	assert.NoError(t, Validate(SignupSchema, valid))

	shortPassword := valid
	shortPassword.Password = "short"
	err := Validate(SignupSchema, shortPassword)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")

	badType := valid
	badType.UserType = "superuser"
	assert.Error(t, Validate(SignupSchema, badType))

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.Error(t, Validate(SignupSchema, badEmail))
}

func TestLoginSchema(t *testing.T) {
	assert.NoError(t, Validate(LoginSchema, models.LoginRequest{
		Email:    "asha@example.com",
		Password: "whatever",
	}))
	assert.Error(t, Validate(LoginSchema, models.LoginRequest{Email: "asha@example.com"}))
}

func TestJobOpeningSchema(t *testing.T) {
	assert.NoError(t, Validate(JobOpeningSchema, models.JobOpeningRequest{
		Title:        "Network Engineer",
		BusinessArea: "technology",
		JobType:      "full_time",
	}))
	assert.Error(t, Validate(JobOpeningSchema, models.JobOpeningRequest{
		Title:   "Network Engineer",
		JobType: "gig",
	}))
	assert.Error(t, Validate(JobOpeningSchema, models.JobOpeningRequest{}), "title is required")
}

func TestWeightsSchema(t *testing.T) {
	assert.NoError(t, Validate(WeightsSchema, map[string]interface{}{
		"core_technical_skills": 60,
		"certifications":        40,
	}))
	assert.Error(t, Validate(WeightsSchema, map[string]interface{}{
		"core_technical_skills": 120,
	}), "weights above 100 are rejected")
	assert.Error(t, Validate(WeightsSchema, map[string]interface{}{
		"Core Skills": 50,
	}), "keys must be snake_case ids")
}
