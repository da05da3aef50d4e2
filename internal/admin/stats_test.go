// internal/admin/stats_test.go
package admin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoticeBucket(t *testing.T) {
	tests := []struct {
		days     int
		expected string
	}{
		{0, "Immediate (0d)"},
		{-5, "Immediate (0d)"},
		{1, "1–15 days"},
		{15, "1–15 days"},
		{16, "16–30 days"},
		{30, "16–30 days"},
		{31, "31–60 days"},
		{60, "31–60 days"},
		{61, "61–90 days"},
		{90, "61–90 days"},
		{91, "90+ days"},
		{180, "90+ days"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, noticeBucket(tt.days), "days=%d", tt.days)
	}
}

func TestMapState(t *testing.T) {
	tests := []struct {
		location string
		expected string
	}{
		{"Bangalore, India", "Karnataka"},
		{"Bengaluru", "Karnataka"},
		{"Pune, Maharashtra", "Maharashtra"},
		{"Gurgaon", "Haryana"},
		{"NOIDA", "Uttar Pradesh"},
		{"Hyderabad, Telangana", "Telangana"},
		{"Chandigarh", "Chandigarh"},
		{"Remote", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, mapState(tt.location), "location=%q", tt.location)
	}
}

func TestMapStateFirstMatchWins(t *testing.T) {
	// "Delhi" appears before "noida" in the mapping, so a combined
	// location resolves to the earlier entry.
	assert.Equal(t, "Delhi", mapState("Delhi NCR / Noida"))
}

func TestTrendKeys(t *testing.T) {
	ts := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
	day, month, quarter := trendKeys(ts)
	assert.Equal(t, "2026-08-29", day)
	assert.Equal(t, "2026-08", month)
	assert.Equal(t, "2026-Q3", quarter)

	_, _, q1 := trendKeys(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2026-Q1", q1)
	_, _, q4 := trendKeys(time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2026-Q4", q4)
}

func TestSourceLabel(t *testing.T) {
	tests := []struct {
		sourceType string
		expected   string
	}{
		{"", "Upload"},
		{"guest", "Career / Guest"},
		{"gmail", "Gmail / Email"},
		{"outlook", "Outlook"},
		{"company_employee", "Employee"},
		{"admin", "Admin upload"},
		{"freelancer", "Freelancer"},
		{"hired_force", "Hired Force"},
		{"vendor", "Vendor"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, sourceLabel(tt.sourceType), "source=%q", tt.sourceType)
	}
}
