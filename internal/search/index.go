// internal/search/index.go
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"talenthub/internal/common/database"
	apperrors "talenthub/internal/common/errors"
	"talenthub/internal/common/logger"
	"talenthub/internal/models"
)

const resumeIndexName = "resumes"

// ResumeIndex mirrors candidate records into Elasticsearch for free-text
// search. The index is optional: when it is disabled the service falls back
// to in-memory filtering over Postgres rows.
type ResumeIndex struct {
	es     *database.ElasticsearchClient
	logger logger.Logger
}

func NewResumeIndex(es *database.ElasticsearchClient, log logger.Logger) *ResumeIndex {
	return &ResumeIndex{
		es:     es,
		logger: log.WithFields(map[string]interface{}{"component": "resume_index"}),
	}
}

// Enabled reports whether an Elasticsearch client is wired in.
func (ri *ResumeIndex) Enabled() bool {
	return ri != nil && ri.es != nil
}

type resumeDocument struct {
	FullName   string   `json:"full_name"`
	Email      string   `json:"email"`
	Role       string   `json:"role"`
	Location   string   `json:"location"`
	Skills     []string `json:"skills"`
	SourceType string   `json:"source_type"`
	RawText    string   `json:"raw_text"`
}

// Index writes one candidate document. Failures are logged and swallowed;
// search stays best-effort and never blocks an upload.
func (ri *ResumeIndex) Index(ctx context.Context, rec *models.CandidateRecord) {
	if !ri.Enabled() {
		return
	}
	doc := resumeDocument{
		FullName:   rec.FullName,
		Email:      rec.Email,
		Role:       rec.Role,
		Location:   rec.Location,
		Skills:     rec.Skills,
		SourceType: rec.SourceType,
		RawText:    rec.RawText,
	}
	body, err := json.Marshal(doc)
	if err != nil {
		ri.logger.Warn("failed to marshal resume document", map[string]interface{}{"error": err})
		return
	}

	req := esapi.IndexRequest{
		Index:      resumeIndexName,
		DocumentID: strconv.FormatInt(rec.ID, 10),
		Body:       strings.NewReader(string(body)),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, ri.es.Client)
	if err != nil {
		ri.logger.Warn("resume indexing failed", map[string]interface{}{
			"error":    err,
			"resumeId": rec.ID,
		})
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		ri.logger.Warn("resume indexing rejected", map[string]interface{}{
			"status":   res.StatusCode,
			"resumeId": rec.ID,
		})
	}
}

// Delete removes a candidate document after the record is gone.
func (ri *ResumeIndex) Delete(ctx context.Context, resumeID int64) {
	if !ri.Enabled() {
		return
	}
	req := esapi.DeleteRequest{
		Index:      resumeIndexName,
		DocumentID: strconv.FormatInt(resumeID, 10),
	}
	res, err := req.Do(ctx, ri.es.Client)
	if err != nil {
		ri.logger.Warn("resume delete from index failed", map[string]interface{}{
			"error":    err,
			"resumeId": resumeID,
		})
		return
	}
	res.Body.Close()
}

// Search runs a free-text query and returns matching resume ids ranked by
// relevance.
func (ri *ResumeIndex) Search(ctx context.Context, query string, size int) ([]int64, error) {
	if !ri.Enabled() {
		return nil, apperrors.NewSearchQueryFailedError(fmt.Errorf("search index disabled"))
	}
	if size <= 0 {
		size = 50
	}

	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"full_name^3", "role^2", "skills^2", "location", "raw_text"},
				"type":   "best_fields",
			},
		},
	}
	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index: []string{resumeIndexName},
		Body:  strings.NewReader(string(body)),
		Size:  &size,
	}
	res, err := req.Do(ctx, ri.es.Client)
	if err != nil {
		return nil, apperrors.NewSearchQueryFailedError(err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, apperrors.NewSearchQueryFailedError(fmt.Errorf("search returned status %d", res.StatusCode))
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperrors.NewSearchQueryFailedError(err)
	}

	ids := make([]int64, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		id, err := strconv.ParseInt(hit.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
