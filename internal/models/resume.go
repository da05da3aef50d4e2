// internal/models/resume.go
package models

import "time"

// Source type values for candidate records. They track the channel a resume
// arrived through, not the account type of the uploader.
const (
	SourceTypeCompanyEmployee = "company_employee"
	SourceTypeFreelancer      = "freelancer"
	SourceTypeGuest           = "guest"
	SourceTypeAdmin           = "admin"
	SourceTypeGmail           = "gmail"
	SourceTypeHiredForce      = "hired_force"
	SourceTypeOutlook         = "outlook"
)

type EducationEntry struct {
	Degree       string `json:"degree,omitempty"`
	Institution  string `json:"institution,omitempty"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	Grade        string `json:"grade,omitempty"`
}

type WorkEntry struct {
	Role        string `json:"role,omitempty"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	IsCurrent   bool   `json:"is_current,omitempty"`
	Description string `json:"description,omitempty"`
}

// CandidateRecord is a stored resume with its extracted profile.
type CandidateRecord struct {
	ID       int64  `json:"id"`
	FileName string `json:"file_name,omitempty"`
	FileData []byte `json:"-"`
	FileMime string `json:"-"`

	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	FullName  string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`

	SourceType string `json:"source_type"`
	SourceID   string `json:"source_id,omitempty"`

	Role           string `json:"role,omitempty"`
	CurrentCompany string `json:"current_company,omitempty"`

	ExperienceYears  *float64 `json:"experience_years,omitempty"`
	NoticePeriodDays *int     `json:"notice_period,omitempty"`

	Location          string `json:"location,omitempty"`
	PreferredLocation string `json:"preferred_location,omitempty"`
	WillingToRelocate bool   `json:"willing_to_relocate,omitempty"`

	Skills         []string `json:"skills,omitempty"`
	AllSkills      []string `json:"all_skills,omitempty"`
	Certifications []string `json:"certifications,omitempty"`

	Education   []EducationEntry `json:"education,omitempty"`
	WorkHistory []WorkEntry      `json:"work_history,omitempty"`

	RawText    string     `json:"-"`
	UploadedAt *time.Time `json:"uploaded_at,omitempty"`
}

// ParsedResume is the parse-only response. Keys are camelCase because the
// application form autofill consumes them directly. Fields the parser could
// not find are empty strings, never the "Not mentioned" placeholder.
type ParsedResume struct {
	FirstName      string `json:"firstName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
	FullName       string `json:"fullName,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	City           string `json:"city,omitempty"`
	Country        string `json:"country,omitempty"`
	ZipCode        string `json:"zipCode,omitempty"`
	Location       string `json:"location,omitempty"`
	Role           string `json:"role,omitempty"`
	CurrentCompany string `json:"currentCompany,omitempty"`
	Experience     string `json:"experience,omitempty"` // years, as printed text
	Skills         string `json:"skills,omitempty"`     // comma separated
	Education      string `json:"education,omitempty"`  // "degree - university"
}
