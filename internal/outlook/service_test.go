// internal/outlook/service_test.go
package outlook

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"talenthub/internal/common/msgraph"
)

func TestSubjectMatches(t *testing.T) {
	tests := []struct {
		subject  string
		expected bool
	}{
		{"My Resume for the Network Engineer role", true},
		{"RESUME attached", true},
		{"CV - Vikram Shah", true},
		{"Job Application: Security Analyst", true},
		{"Candidate profile for review", true},
		{"Re: application status", true},
		// "cv" must match as a whole word only.
		{"New CVE advisory published", false},
		{"Recovery plan update", false},
		{"Weekly newsletter", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, SubjectMatches(tt.subject), "subject %q", tt.subject)
	}
}

func TestValidAttachment(t *testing.T) {
	base := msgraph.Attachment{
		ODataType:   "#microsoft.graph.fileAttachment",
		Name:        "resume.pdf",
		ContentType: "application/pdf",
	}

	t.Run("accepts pdf file attachment", func(t *testing.T) {
		att := base
		assert.True(t, ValidAttachment(&att))
	})

	t.Run("accepts docx regardless of case", func(t *testing.T) {
		att := base
		att.Name = "Resume.DOCX"
		att.ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
		assert.True(t, ValidAttachment(&att))
	})

	t.Run("rejects non-file attachments", func(t *testing.T) {
		att := base
		att.ODataType = "#microsoft.graph.itemAttachment"
		assert.False(t, ValidAttachment(&att))
	})

	t.Run("rejects inline attachments", func(t *testing.T) {
		att := base
		att.IsInline = true
		assert.False(t, ValidAttachment(&att))
	})

	t.Run("rejects signature images", func(t *testing.T) {
		att := base
		att.Name = "logo.pdf"
		att.ContentType = "image/PNG"
		assert.False(t, ValidAttachment(&att))
	})

	t.Run("rejects unsupported extensions", func(t *testing.T) {
		att := base
		att.Name = "resume.zip"
		att.ContentType = "application/zip"
		assert.False(t, ValidAttachment(&att))
	})
}
