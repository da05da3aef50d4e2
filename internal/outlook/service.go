// internal/outlook/service.go
package outlook

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"talenthub/internal/common/aws"
	"talenthub/internal/common/logger"
	"talenthub/internal/common/metrics"
	"talenthub/internal/common/msgraph"
	"talenthub/internal/models"
	"talenthub/internal/resume"
	"talenthub/internal/search"
	"talenthub/internal/store"
)

// resumeKeywords are matched against message subjects with word boundaries,
// so "curriculum vitae review" matches "cv" only as a whole word.
var resumeKeywords = []string{"resume", "cv", "application", "job application", "profile"}

var validExtensions = map[string]bool{".pdf": true, ".docx": true, ".doc": true}

var excludedContentTypes = map[string]bool{
	"image/png": true, "image/jpeg": true, "image/gif": true,
	"image/bmp": true, "image/webp": true, "image/svg+xml": true,
}

var keywordPatterns = compileKeywordPatterns()

func compileKeywordPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(resumeKeywords))
	for _, kw := range resumeKeywords {
		patterns = append(patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(kw)+`\b`))
	}
	return patterns
}

// SubjectMatches reports whether a message subject looks like a resume email.
func SubjectMatches(subject string) bool {
	for _, p := range keywordPatterns {
		if p.MatchString(subject) {
			return true
		}
	}
	return false
}

// ValidAttachment reports whether an attachment is a processable resume
// document: a real file attachment, not inline, not an image, with a
// supported extension.
func ValidAttachment(att *msgraph.Attachment) bool {
	if att.ODataType != "#microsoft.graph.fileAttachment" {
		return false
	}
	if att.IsInline {
		return false
	}
	if excludedContentTypes[strings.ToLower(att.ContentType)] {
		return false
	}
	return validExtensions[strings.ToLower(filepath.Ext(att.Name))]
}

// SyncResult summarizes one ingestion pass.
type SyncResult struct {
	MessagesSeen      int `json:"messages_seen"`
	MessagesMatched   int `json:"messages_matched"`
	ResumesIngested   int `json:"resumes_ingested"`
	AttachmentsFailed int `json:"attachments_failed"`
}

// Service pulls resume attachments out of a shared mailbox. Processed
// messages are marked read so the next pass skips them.
type Service struct {
	graph    *msgraph.Client
	mailbox  string
	maxBatch int
	parser   *resume.Parser
	resumes  *store.ResumeStore
	index    *search.ResumeIndex
	sns      *aws.SNSClient
	topicARN string
	logger   logger.Logger
}

func NewService(graph *msgraph.Client, mailbox string, maxBatch int,
	parser *resume.Parser, resumes *store.ResumeStore, index *search.ResumeIndex,
	sns *aws.SNSClient, topicARN string, log logger.Logger) *Service {
	if maxBatch <= 0 {
		maxBatch = 100
	}
	return &Service{
		graph:    graph,
		mailbox:  mailbox,
		maxBatch: maxBatch,
		parser:   parser,
		resumes:  resumes,
		index:    index,
		sns:      sns,
		topicARN: topicARN,
		logger:   log.WithFields(map[string]interface{}{"component": "outlook_sync"}),
	}
}

// Sync fetches unread messages with attachments, ingests resume documents
// from the ones whose subject matches, and marks processed messages read.
func (s *Service) Sync(ctx context.Context) (*SyncResult, error) {
	messages, err := s.graph.ListUnreadMessages(ctx, s.mailbox, s.maxBatch)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{MessagesSeen: len(messages)}
	for i := range messages {
		msg := &messages[i]
		if !SubjectMatches(msg.Subject) {
			continue
		}
		result.MessagesMatched++

		ingested, failed := s.processMessage(ctx, msg)
		result.ResumesIngested += ingested
		result.AttachmentsFailed += failed

		if err := s.graph.MarkMessageRead(ctx, s.mailbox, msg.ID); err != nil {
			s.logger.Warn("failed to mark message read", map[string]interface{}{
				"error":     err,
				"messageId": msg.ID,
			})
		}
		metrics.OutlookMessagesProcessed.Inc()
	}

	s.logger.Info("outlook sync completed", map[string]interface{}{
		"seen":     result.MessagesSeen,
		"matched":  result.MessagesMatched,
		"ingested": result.ResumesIngested,
		"failed":   result.AttachmentsFailed,
	})
	s.notify(ctx, result)
	return result, nil
}

func (s *Service) processMessage(ctx context.Context, msg *msgraph.Message) (ingested, failed int) {
	attachments, err := s.graph.ListAttachments(ctx, s.mailbox, msg.ID)
	if err != nil {
		s.logger.Warn("failed to list attachments", map[string]interface{}{
			"error":     err,
			"messageId": msg.ID,
		})
		return 0, 1
	}

	for i := range attachments {
		att := &attachments[i]
		if !ValidAttachment(att) {
			continue
		}
		if err := s.ingestAttachment(ctx, msg, att); err != nil {
			failed++
			s.logger.Warn("attachment ingestion failed", map[string]interface{}{
				"error":    err,
				"fileName": att.Name,
			})
			continue
		}
		ingested++
	}
	return ingested, failed
}

func (s *Service) ingestAttachment(ctx context.Context, msg *msgraph.Message, att *msgraph.Attachment) error {
	text, err := resume.ExtractText(att.Name, att.ContentBytes)
	if err != nil {
		return err
	}

	rec := s.parser.ParseCandidate(text)
	rec.FileName = att.Name
	rec.FileData = att.ContentBytes
	rec.FileMime = att.ContentType
	rec.SourceType = models.SourceTypeOutlook
	rec.SourceID = msg.ID
	if rec.Email == "" {
		rec.Email = strings.ToLower(msg.From.EmailAddress.Address)
	}
	if rec.FullName == "" {
		rec.FullName = msg.From.EmailAddress.Name
	}

	if err := s.resumes.Insert(ctx, &rec); err != nil {
		return err
	}
	s.index.Index(ctx, &rec)
	metrics.ResumeUploadsTotal.WithLabelValues(models.SourceTypeOutlook).Inc()
	return nil
}

func (s *Service) notify(ctx context.Context, result *SyncResult) {
	if s.sns == nil || s.topicARN == "" || result.ResumesIngested == 0 {
		return
	}
	message := fmt.Sprintf("Outlook sync ingested %d resume(s) from %d matching message(s).",
		result.ResumesIngested, result.MessagesMatched)
	if err := s.sns.PublishToTopic(ctx, s.topicARN, "Resume inbox update", message); err != nil {
		s.logger.Warn("sns publish failed", map[string]interface{}{"error": err})
	}
}
