// internal/resume/parser_test.go
package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talenthub/internal/models"
)

const sampleResume = `Asha Rao
Network Engineer
asha.rao@example.com
Phone: 9876543210
Bangalore, India
Notice Period: 30 days

Summary
Network engineer with 6 years of experience in enterprise routing.

Skills: BGP, OSPF, Python, AWS

Experience
Acme Networks | Jan 2021 - Present
Senior Network Engineer

Education
B.Tech Computer Science - VTU

Certifications
CCNP
`

func TestParseContactBlock(t *testing.T) {
	p := NewParser()
	out := p.Parse(sampleResume)

	assert.Equal(t, "Asha Rao", out.FullName)
	assert.Equal(t, "Asha", out.FirstName)
	assert.Equal(t, "Rao", out.LastName)
	assert.Equal(t, "asha.rao@example.com", out.Email)
	assert.Equal(t, "9876543210", out.Phone)
	assert.Equal(t, "Network Engineer", out.Role)
	assert.Equal(t, "Bangalore, India", out.Location)
	assert.Equal(t, "Bangalore", out.City)
	assert.Equal(t, "India", out.Country)
}

func TestParseBodyFields(t *testing.T) {
	p := NewParser()
	out := p.Parse(sampleResume)

	assert.Equal(t, "6", out.Experience)
	assert.Equal(t, "BGP, OSPF, Python, AWS", out.Skills)
	assert.Equal(t, "B.Tech Computer Science - VTU", out.Education)
	assert.Equal(t, "Acme Networks", out.CurrentCompany)
}

func TestParseCandidateRecord(t *testing.T) {
	p := NewParser()
	rec := p.ParseCandidate(sampleResume)

	require.NotNil(t, rec.ExperienceYears)
	assert.Equal(t, 6.0, *rec.ExperienceYears)
	require.NotNil(t, rec.NoticePeriodDays)
	assert.Equal(t, 30, *rec.NoticePeriodDays)

	assert.Equal(t, []string{"aws", "bgp", "ospf", "python"}, rec.Skills)
	assert.Equal(t, []string{"CCNP"}, rec.Certifications)
	require.Len(t, rec.Education, 1)
	assert.Equal(t, "B.Tech Computer Science", rec.Education[0].Degree)
	assert.Equal(t, "VTU", rec.Education[0].Institution)
	assert.Equal(t, sampleResume, rec.RawText)
}

func TestParseImmediateNotice(t *testing.T) {
	p := NewParser()
	rec := p.ParseCandidate("Asha Rao\nasha@example.com\nNotice Period: Immediate\n")
	require.NotNil(t, rec.NoticePeriodDays)
	assert.Equal(t, 0, *rec.NoticePeriodDays)
}

func TestParseNameFallsBackToEmail(t *testing.T) {
	p := NewParser()
	out := p.Parse("Skills: Python\nvikram.shah@example.com\n")
	assert.Equal(t, "Vikram Shah", out.FullName)
}

func TestParseVocabularyFallback(t *testing.T) {
	// No skills section at all, so words are matched against the vocabulary
	// with word boundaries: "Java" must not fire on "JavaScript".
	p := NewParser()
	out := p.Parse("Meera Iyer\nExperienced in JavaScript and Kubernetes deployments.\n")
	assert.Contains(t, out.Skills, "JavaScript")
	assert.Contains(t, out.Skills, "Kubernetes")
	assert.NotContains(t, out.Skills, "Java,")
}

func TestParseMissingFieldsStayEmpty(t *testing.T) {
	p := NewParser()
	out := p.Parse("some unstructured notes about nothing in particular\n")
	assert.Empty(t, out.Email)
	assert.Empty(t, out.Experience)
	assert.Empty(t, out.Education)
	assert.NotContains(t, out.Role, "Not mentioned")
}

func TestMapSourceType(t *testing.T) {
	assert.Equal(t, models.SourceTypeGuest, MapSourceType("Guest User"))
	assert.Equal(t, models.SourceTypeHiredForce, MapSourceType("Hired Forces"))
	assert.Equal(t, models.SourceTypeCompanyEmployee, MapSourceType("company employee"))
	assert.Equal(t, models.SourceTypeFreelancer, MapSourceType("Freelancer"))
	assert.Equal(t, models.SourceTypeOutlook, MapSourceType("Outlook"))
	// gmail collapses into guest, matching the list filter's synonym mapping.
	assert.Equal(t, models.SourceTypeGuest, MapSourceType("gmail"))
	// Anything unrecognized lands in the guest bucket.
	assert.Equal(t, models.SourceTypeGuest, MapSourceType("whatever"))
}

func TestFreelancerID(t *testing.T) {
	assert.Equal(t, "FL-2026-0007", FreelancerID(2026, 7))
	assert.Equal(t, "FL-2026-1234", FreelancerID(2026, 1234))
}

func TestIsSupportedFile(t *testing.T) {
	assert.True(t, IsSupportedFile("resume.pdf"))
	assert.True(t, IsSupportedFile("resume.DOCX"))
	assert.True(t, IsSupportedFile("resume.txt"))
	assert.False(t, IsSupportedFile("resume.png"))
	assert.False(t, IsSupportedFile("resume"))
}

func TestMimeForFile(t *testing.T) {
	assert.Equal(t, "application/pdf", MimeForFile("cv.pdf"))
	assert.Equal(t, "application/octet-stream", MimeForFile("cv.bin"))
}

func TestExtractTextPlain(t *testing.T) {
	text, err := ExtractText("notes.txt", []byte("hello resume"))
	require.NoError(t, err)
	assert.Equal(t, "hello resume", text)
}

func TestExtractTextRejectsUnknownExtension(t *testing.T) {
	_, err := ExtractText("image.png", []byte{1, 2, 3})
	assert.Error(t, err)
}
