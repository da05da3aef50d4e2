// internal/sector/profile.go
package sector

import (
	"math"
	"strings"
	"time"

	"talenthub/internal/models"
)

// ==========================================
// CANDIDATE SECTOR PROFILE
// ==========================================

// Profile aggregates a candidate's work history by sector. Sectors and
// Domains list the recognized values in work-history order; Unknown entries
// never appear in them.
type Profile struct {
	PrimarySector string
	Sectors       []string
	Domains       []string
	Years         map[string]float64
}

// estimatedJobYears stands in for a job whose dates cannot be parsed.
const estimatedJobYears = 2.0

var dateFormats = []string{
	"Jan 2006",
	"January 2006",
	"01/2006",
	"2006-01",
	"2006",
}

func parseJobDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// JobYears computes the duration of one work entry in years, rounded to one
// decimal. "Present", "Current" and an empty end date mean now. Unparseable
// dates fall back to a flat two-year estimate.
func JobYears(entry models.WorkEntry, now time.Time) float64 {
	if strings.TrimSpace(entry.StartDate) == "" {
		return 0
	}
	start, ok := parseJobDate(entry.StartDate)
	if !ok {
		return estimatedJobYears
	}

	end := now
	switch strings.ToLower(strings.TrimSpace(entry.EndDate)) {
	case "present", "current", "":
	default:
		end, ok = parseJobDate(entry.EndDate)
		if !ok {
			return estimatedJobYears
		}
	}

	years := end.Sub(start).Hours() / 24 / 365.25
	return math.Round(years*10) / 10
}

// BuildProfile walks the work history oldest entry first, identifies each
// employer's sector and accumulates years per sector. The primary sector is
// the one with the most years. An empty history falls back to the current
// company with the flat estimate.
func BuildProfile(rec *models.CandidateRecord) Profile {
	return buildProfile(rec, time.Now())
}

func buildProfile(rec *models.CandidateRecord, now time.Time) Profile {
	profile := Profile{
		PrimarySector: Unknown.Sector,
		Years:         map[string]float64{},
	}

	history := rec.WorkHistory
	if len(history) == 0 && rec.CurrentCompany != "" {
		history = []models.WorkEntry{{Company: rec.CurrentCompany, IsCurrent: true}}
	}

	var order []string
	seenSectors := map[string]bool{}
	seenDomains := map[string]bool{}
	for _, entry := range history {
		id := Identify(entry.Company)

		years := JobYears(entry, now)
		if years == 0 && entry.Company != "" {
			years = estimatedJobYears
		}
		profile.Years[id.Sector] += years
		if !seenSectors[id.Sector] {
			seenSectors[id.Sector] = true
			order = append(order, id.Sector)
			if id != Unknown {
				profile.Sectors = append(profile.Sectors, id.Sector)
			}
		}
		if id != Unknown && !seenDomains[id.Domain] {
			seenDomains[id.Domain] = true
			profile.Domains = append(profile.Domains, id.Domain)
		}
	}

	// First-encountered sector wins a tie on years.
	best := 0.0
	for _, name := range order {
		if profile.Years[name] > best {
			best = profile.Years[name]
			profile.PrimarySector = name
		}
	}
	return profile
}
