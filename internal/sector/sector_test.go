// internal/sector/sector_test.go
package sector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCompany(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"TCS Pvt. Ltd.", "tcs"},
		{"Infosys Limited", "infosys"},
		{"  HDFC Bank  ", "hdfc bank"},
		{"Acme Corp", "acme"},
		{"Acme, Inc.", "acme"},
		{"Wipro", "wipro"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeCompany(tt.in), "in=%q", tt.in)
	}
}

func TestIdentifyKnownCompanies(t *testing.T) {
	id := Identify("Axis Bank Ltd")
	assert.Equal(t, "BFSI", id.Sector)
	assert.Equal(t, "Financial Services", id.Domain)
	assert.Equal(t, "high", id.Confidence)
	assert.Equal(t, "table", id.Method)

	id = Identify("Apollo Hospitals")
	assert.Equal(t, "Healthcare", id.Sector)

	// Name variations resolve through partial matching.
	id = Identify("TCS India")
	assert.Equal(t, "IT Services", id.Sector)
	assert.Equal(t, "table_partial", id.Method)
}

func TestIdentifyByKeyword(t *testing.T) {
	id := Identify("Meridian Software Solutions")
	assert.Equal(t, "IT Services", id.Sector)
	assert.Equal(t, "Software & IT", id.Domain)
	assert.Equal(t, "medium", id.Confidence)
	assert.Equal(t, "keyword", id.Method)

	id = Identify("Sunrise Pharma")
	assert.Equal(t, "Healthcare", id.Sector)

	id = Identify("Northfield Steel Industries")
	assert.Equal(t, "Manufacturing", id.Sector)

	// BFSI patterns are checked before IT Services, so a fintech name with
	// a technology suffix still lands in BFSI.
	id = Identify("Quantum Fintech Technologies")
	assert.Equal(t, "BFSI", id.Sector)

	// A bare consulting firm falls through to IT Services first because
	// "consulting" appears in that pattern too.
	id = Identify("Harbor Consulting")
	assert.Equal(t, "IT Services", id.Sector)
}

func TestIdentifyUnknown(t *testing.T) {
	assert.Equal(t, Unknown, Identify("Blorptex"))
	assert.Equal(t, Unknown, Identify(""))
	assert.Equal(t, Unknown, Identify("   "))
}
