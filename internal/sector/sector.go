// internal/sector/sector.go
package sector

import (
	"sort"
	"strings"
)

// ==========================================
// COMPANY SECTOR IDENTIFICATION
// ==========================================

// Identification is the outcome of mapping a company name to a sector.
// Method records which matching stage produced it.
type Identification struct {
	Sector     string `json:"sector"`
	Domain     string `json:"domain"`
	Confidence string `json:"confidence"`
	Method     string `json:"method"`
}

// Unknown is returned when no matching stage recognizes the company.
var Unknown = Identification{
	Sector:     "Unknown",
	Domain:     "Unknown",
	Confidence: "none",
	Method:     "none",
}

// companySuffixes are legal-form suffixes stripped during normalization.
var companySuffixes = []string{
	"ltd", "limited", "pvt", "private", "inc", "incorporated",
	"corp", "corporation", "llc", "llp", "co", "company",
}

// NormalizeCompany lowercases a company name, drops punctuation and strips
// trailing legal-form suffixes, so "TCS Pvt. Ltd." and "tcs" compare equal.
func NormalizeCompany(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer(".", "", ",", "").Replace(normalized)
	for _, suffix := range companySuffixes {
		if strings.HasSuffix(normalized, " "+suffix) {
			normalized = strings.TrimSpace(normalized[:len(normalized)-len(suffix)-1])
		}
	}
	return normalized
}

// sectorPattern ties one sector to its industry domain and the name
// fragments that suggest it.
type sectorPattern struct {
	sector   string
	domain   string
	keywords []string
}

// keywordPatterns are checked in order; the first keyword hit wins, so
// "Infosys Consulting" resolves as IT Services, not Consulting.
var keywordPatterns = []sectorPattern{
	{"BFSI", "Financial Services", []string{
		"bank", "banking", "finance", "financial", "insurance",
		"securities", "mutual fund", "asset management", "fintech",
		"payments", "lending", "credit",
	}},
	{"IT Services", "Software & IT", []string{
		"technologies", "technology", "software", "systems",
		"solutions", "infotech", "consulting", "digital",
	}},
	{"Healthcare", "Healthcare Services", []string{
		"hospital", "healthcare", "medical", "pharma",
		"pharmaceutical", "clinic", "health", "diagnostics",
	}},
	{"E-commerce", "Online Retail", []string{
		"ecommerce", "e-commerce", "marketplace", "retail online",
	}},
	{"Manufacturing", "Manufacturing", []string{
		"manufacturing", "industries", "motors", "steel",
		"engineering", "auto", "automotive",
	}},
	{"Telecom", "Telecommunications", []string{
		"telecom", "telecommunications", "mobile", "network",
	}},
	{"Education", "Education", []string{
		"education", "learning", "academy", "institute",
		"university", "college", "school",
	}},
	{"Consulting", "Consulting Services", []string{
		"consulting", "consultancy", "advisory", "advisors",
	}},
}

// knownCompanies maps normalized names of well-known employers straight to
// their sector, ahead of keyword matching.
var knownCompanies = map[string]Identification{
	"axis bank":                 {Sector: "BFSI", Domain: "Financial Services"},
	"hdfc bank":                 {Sector: "BFSI", Domain: "Financial Services"},
	"icici bank":                {Sector: "BFSI", Domain: "Financial Services"},
	"tcs":                       {Sector: "IT Services", Domain: "Software & IT"},
	"tata consultancy services": {Sector: "IT Services", Domain: "Software & IT"},
	"infosys":                   {Sector: "IT Services", Domain: "Software & IT"},
	"wipro":                     {Sector: "IT Services", Domain: "Software & IT"},
	"apollo hospitals":          {Sector: "Healthcare", Domain: "Healthcare Services"},
	"amazon":                    {Sector: "E-commerce", Domain: "Online Retail"},
	"flipkart":                  {Sector: "E-commerce", Domain: "Online Retail"},
}

// knownCompanyNames keeps partial matching deterministic.
var knownCompanyNames = func() []string {
	names := make([]string, 0, len(knownCompanies))
	for name := range knownCompanies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

// Identify resolves a company name to a sector. Lookup order: exact match
// against the known-company table, then partial match (either name contains
// the other), then keyword matching, then Unknown.
func Identify(company string) Identification {
	normalized := NormalizeCompany(company)
	if normalized == "" {
		return Unknown
	}

	if id, ok := knownCompanies[normalized]; ok {
		id.Confidence = "high"
		id.Method = "table"
		return id
	}

	// Partial match handles variations like "TCS India".
	for _, known := range knownCompanyNames {
		if strings.Contains(normalized, known) || strings.Contains(known, normalized) {
			id := knownCompanies[known]
			id.Confidence = "high"
			id.Method = "table_partial"
			return id
		}
	}

	lower := strings.ToLower(company)
	for _, pattern := range keywordPatterns {
		for _, keyword := range pattern.keywords {
			if strings.Contains(lower, keyword) {
				return Identification{
					Sector:     pattern.sector,
					Domain:     pattern.domain,
					Confidence: "medium",
					Method:     "keyword",
				}
			}
		}
	}

	return Unknown
}
