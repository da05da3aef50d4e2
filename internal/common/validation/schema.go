package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Request payload schemas. Handlers validate decoded JSON bodies against
// these before touching business logic.
var (
	SignupSchema = mustCompile(`{
		"type": "object",
		"properties": {
			"full_name":   {"type": "string", "minLength": 1, "maxLength": 200},
			"email":       {"type": "string", "format": "email"},
			"password":    {"type": "string", "minLength": 8, "maxLength": 128},
			"user_type":   {"type": "string", "enum": ["company_employee", "freelancer", "guest", "admin", "talent_acquisition", "hr"]},
			"employee_id": {"type": "string", "maxLength": 50},
			"phone":       {"type": "string", "maxLength": 30}
		},
		"required": ["email", "password", "user_type"],
		"additionalProperties": true
	}`)

	LoginSchema = mustCompile(`{
		"type": "object",
		"properties": {
			"email":    {"type": "string", "format": "email"},
			"password": {"type": "string", "minLength": 1}
		},
		"required": ["email", "password"],
		"additionalProperties": true
	}`)

	JobOpeningSchema = mustCompile(`{
		"type": "object",
		"properties": {
			"title":         {"type": "string", "minLength": 1, "maxLength": 200},
			"location":      {"type": "string", "maxLength": 200},
			"business_area": {"type": "string", "enum": ["technology", "consulting", "finance", "healthcare", "manufacturing", "other"]},
			"job_type":      {"type": "string", "enum": ["internship", "full_time", "remote", "hybrid", "contract"]},
			"description":   {"type": "string"},
			"status":        {"type": "string", "enum": ["active", "inactive"]}
		},
		"required": ["title"],
		"additionalProperties": true
	}`)

	WeightsSchema = mustCompile(`{
		"type": "object",
		"patternProperties": {
			"^[a-z_]+$": {"type": "number", "minimum": 0, "maximum": 100}
		},
		"additionalProperties": false
	}`)
)

func mustCompile(schema string) *gojsonschema.Schema {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("invalid schema: %v", err))
	}
	return compiled
}

// Validate checks a decoded payload against a schema and returns a single
// readable message listing every violation.
func Validate(schema *gojsonschema.Schema, payload interface{}) error {
	result, err := schema.Validate(gojsonschema.NewGoLoader(payload))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}

	return nil
}
