// internal/jdanalysis/service.go
package jdanalysis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"talenthub/internal/common/config"
	"talenthub/internal/common/database"
	apperrors "talenthub/internal/common/errors"
	"talenthub/internal/common/logger"
	"talenthub/internal/common/metrics"
	"talenthub/internal/filter"
	"talenthub/internal/models"
	"talenthub/internal/scoring"
	"talenthub/internal/sector"
	"talenthub/internal/store"
)

// Service runs the two-phase JD-to-resume matching pipeline: a fast skill
// overlap shortlist over every stored resume, then full dimension scoring of
// the shortlist. Scores are cached per (structure hash, resume) so re-running
// the same JD with the same structure is cheap.
type Service struct {
	resumes  *store.ResumeStore
	analyses *store.AnalysisStore
	redis    *database.RedisClient
	lib      *scoring.Library
	cfg      config.AnalysisConfig
	logger   logger.Logger
}

func NewService(resumes *store.ResumeStore, analyses *store.AnalysisStore,
	redis *database.RedisClient, lib *scoring.Library, cfg config.AnalysisConfig, log logger.Logger) *Service {
	return &Service{
		resumes:  resumes,
		analyses: analyses,
		redis:    redis,
		lib:      lib,
		cfg:      cfg,
		logger:   log.WithFields(map[string]interface{}{"component": "jd_analysis"}),
	}
}

// AnalyzeRequest carries a job description plus tuning knobs.
type AnalyzeRequest struct {
	JDText      string
	MinScore    int
	TopN        int
	SourceTypes []string
}

// Analyze scores all stored resumes against the JD text and returns the top
// candidates with explanations.
func (s *Service) Analyze(ctx context.Context, req *AnalyzeRequest) (*models.AnalysisResponse, error) {
	normalized := strings.Join(strings.Fields(req.JDText), " ")
	if normalized == "" {
		return nil, apperrors.NewValidationError("job description text is required")
	}
	minScore := req.MinScore
	if minScore <= 0 {
		minScore = int(s.cfg.DefaultMinScore)
	}
	topN := req.TopN
	if topN <= 0 {
		topN = s.cfg.DefaultTopN
	}

	jdHashBytes := sha256.Sum256([]byte(normalized))
	jdHash := hex.EncodeToString(jdHashBytes[:])
	jobID := "JDHASH-" + strings.ToUpper(jdHash[:24])

	structure := s.DeriveStructure(normalized)
	weights := scoring.AssignEqualWeights(structure.SelectedDimensions)
	structureHash := computeStructureHash(jdHash, weights)

	s.logger.Info("analysis started", map[string]interface{}{
		"jobId":         jobID,
		"structureHash": structureHash,
		"dimensions":    len(structure.SelectedDimensions),
	})

	records, err := s.resumes.ListWithText(ctx)
	if err != nil {
		return nil, err
	}
	if len(req.SourceTypes) > 0 {
		wanted := map[string]bool{}
		for _, t := range req.SourceTypes {
			wanted[filter.CanonicalType(t)] = true
		}
		kept := records[:0]
		for _, rec := range records {
			if wanted[filter.CanonicalType(rec.SourceType)] {
				kept = append(kept, rec)
			}
		}
		records = kept
	}
	totalScanned := len(records)

	shortlist := s.shortlist(records, structure, minScore)

	cached := s.loadCache(ctx, structureHash, shortlist)

	results := make([]models.MatchResult, 0, len(shortlist))
	for i := range shortlist {
		rec := &shortlist[i]
		if hit, ok := cached[rec.ID]; ok {
			hit.FromCache = true
			metrics.AnalysisCacheHits.WithLabelValues("hit").Inc()
			results = append(results, hit)
			continue
		}
		metrics.AnalysisCacheHits.WithLabelValues("miss").Inc()
		result := s.scoreOne(rec, structure, weights)
		s.saveCache(ctx, structureHash, &result)
		results = append(results, result)
	}

	kept := results[:0]
	for _, r := range results {
		if int(r.TotalScore) >= minScore {
			kept = append(kept, r)
		}
	}
	results = kept

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalScore > results[j].TotalScore
	})
	if len(results) > topN {
		results = results[:topN]
	}

	names := make([]string, len(results))
	scores := make([]float64, len(results))
	for i, r := range results {
		names[i] = r.CandidateName
		scores[i] = r.TotalScore
	}

	resp := &models.AnalysisResponse{
		JobID:          jobID,
		JDHash:         jdHash,
		StructureHash:  structureHash,
		EngineVersion:  scoring.EngineVersion,
		JDRole:         structure.JDRole,
		Weights:        weights,
		Results:        results,
		Recommendation: scoring.BuildRecommendation(names, scores),
		TotalScanned:   totalScanned,
		Shortlisted:    len(shortlist),
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.analyses.SaveRun(ctx, resp); err != nil {
		s.logger.Warn("failed to persist analysis run", map[string]interface{}{
			"error": err,
			"jobId": jobID,
		})
	}
	metrics.AnalysesTotal.WithLabelValues("completed").Inc()
	return resp, nil
}

// Results returns the most recent stored run for a job id.
func (s *Service) Results(ctx context.Context, jobID string) (*models.AnalysisResponse, error) {
	return s.analyses.GetRun(ctx, jobID)
}

// History lists past runs, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]models.AnalysisRun, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.analyses.History(ctx, limit)
}

// ==========================================
// JD STRUCTURE
// ==========================================

var (
	roleLineRe      = regexp.MustCompile(`(?i)(?:job title|position|role)\s*[:\-]\s*([^.,;|]{3,60})`)
	minExperienceRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)`)
)

// DeriveStructure reads role, minimum experience, required skills and the
// relevant scoring dimensions out of the JD text. Skills are detected against
// the dimension library's seed vocabulary; a dimension is selected when at
// least one of its seed skills appears. A JD matching no dimension at all
// falls back to the full library.
func (s *Service) DeriveStructure(normalizedText string) *models.JDStructure {
	lower := strings.ToLower(normalizedText)

	structure := &models.JDStructure{
		JDRole:             deriveRole(normalizedText),
		MinExperienceYears: deriveMinExperience(lower),
	}

	seen := map[string]bool{}
	selected := map[string]bool{}
	for _, id := range s.lib.IDs() {
		dim, _ := s.lib.Get(id)
		for _, seed := range dim.SeedSkills {
			if !containsSkill(lower, seed) {
				continue
			}
			selected[id] = true
			key := scoring.NormalizeSkill(seed)
			if !seen[key] {
				seen[key] = true
				structure.RequiredSkills = append(structure.RequiredSkills, seed)
			}
		}
	}

	for _, id := range s.lib.IDs() {
		if selected[id] {
			structure.SelectedDimensions = append(structure.SelectedDimensions, id)
		}
	}
	if len(structure.SelectedDimensions) == 0 {
		structure.SelectedDimensions = s.lib.IDs()
	}
	return structure
}

func deriveRole(text string) string {
	roleRe := roleLineRe.FindStringSubmatch(text)
	if roleRe != nil {
		return strings.TrimSpace(roleRe[1])
	}
	// First handful of words often carry the title in JD files.
	words := strings.Fields(text)
	if len(words) >= 2 {
		limit := 6
		if len(words) < limit {
			limit = len(words)
		}
		for n := 2; n <= limit; n++ {
			candidate := strings.Join(words[:n], " ")
			if looksLikeRole(candidate) {
				return candidate
			}
		}
	}
	return "Not mentioned"
}

func looksLikeRole(candidate string) bool {
	lower := strings.ToLower(candidate)
	for _, kw := range []string{"engineer", "developer", "architect", "manager", "consultant", "analyst", "administrator", "specialist", "lead"} {
		if strings.HasSuffix(lower, kw) {
			return true
		}
	}
	return false
}

func deriveMinExperience(lower string) float64 {
	best := 0.0
	for _, m := range minExperienceRe.FindAllStringSubmatch(lower, -1) {
		var years float64
		if _, err := fmt.Sscanf(m[1], "%f", &years); err == nil && years <= 50 && years > best {
			best = years
		}
	}
	return best
}

func containsSkill(lowerText, skill string) bool {
	needle := strings.ToLower(skill)
	idx := 0
	for {
		i := strings.Index(lowerText[idx:], needle)
		if i < 0 {
			return false
		}
		i += idx
		before := i == 0 || !isAlnum(lowerText[i-1])
		afterIdx := i + len(needle)
		after := afterIdx >= len(lowerText) || !isAlnum(lowerText[afterIdx])
		if before && after {
			return true
		}
		idx = i + len(needle)
	}
}

func isAlnum(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// ==========================================
// SHORTLIST AND SCORING
// ==========================================

// shortlist applies the fast phase-1 pass: a hard minimum experience filter,
// then a required-skill overlap score against the threshold. The threshold
// always holds; when few candidates pass, the list cap widens to the relaxed
// size, but a candidate below the threshold is never admitted.
func (s *Service) shortlist(records []models.CandidateRecord, structure *models.JDStructure, minScore int) []models.CandidateRecord {
	type prelim struct {
		rec   models.CandidateRecord
		score int
	}
	var passed []prelim
	for _, rec := range records {
		if structure.MinExperienceYears > 0 {
			years := 0.0
			if rec.ExperienceYears != nil {
				years = *rec.ExperienceYears
			}
			if years < structure.MinExperienceYears {
				continue
			}
		}
		if score := prelimScore(structure.RequiredSkills, &rec); score >= minScore {
			passed = append(passed, prelim{rec: rec, score: score})
		}
	}

	sort.SliceStable(passed, func(i, j int) bool { return passed[i].score > passed[j].score })

	if len(passed) < s.cfg.ShortlistMinimum {
		if len(passed) > s.cfg.ShortlistRelaxTo {
			passed = passed[:s.cfg.ShortlistRelaxTo]
		}
	} else if len(passed) > s.cfg.ShortlistCap {
		passed = passed[:s.cfg.ShortlistCap]
	}

	out := make([]models.CandidateRecord, len(passed))
	for i, p := range passed {
		out[i] = p.rec
	}
	return out
}

// prelimScore is the percentage of JD required skills the resume covers.
// A JD with no detected skills gives every candidate a neutral pass.
func prelimScore(requiredSkills []string, rec *models.CandidateRecord) int {
	if len(requiredSkills) == 0 {
		return 50
	}
	matched, _ := scoring.MatchAgainstJD(requiredSkills, scoring.CanonicalResumeSkills(rec))
	return int(float64(len(matched)) / float64(len(requiredSkills)) * 100)
}

func (s *Service) scoreOne(rec *models.CandidateRecord, structure *models.JDStructure, weights map[string]int) models.MatchResult {
	evidence := scoring.CollectEvidence(s.lib, structure, rec)
	breakdown := scoring.ScoreBreakdown(scoring.ConfidencesOf(evidence), weights)
	total := scoring.ScoreTotal(breakdown)
	matched, missing := scoring.MatchAgainstJD(structure.RequiredSkills, scoring.CanonicalResumeSkills(rec))

	name := rec.FullName
	if name == "" {
		name = "Unknown Candidate"
	}
	profile := sector.BuildProfile(rec)
	return models.MatchResult{
		ResumeID:       rec.ID,
		CandidateName:  name,
		Email:          rec.Email,
		TotalScore:     float64(total),
		Breakdown:      breakdown,
		MatchedSkills:  matched,
		MissingSkills:  missing,
		EvidenceSkills: evidenceSkillList(evidence),
		PrimarySector:  profile.PrimarySector,
		UniqueSectors:  profile.Sectors,
		UniqueDomains:  profile.Domains,
		Explanation: scoring.BuildExplanation(total, breakdown, s.lib.Labels(),
			matched, missing),
	}
}

// evidenceSkillList merges the per-dimension evidence skills into one
// deduplicated, sorted list for display next to the JD-matched skills.
func evidenceSkillList(evidence map[string]models.DimensionEvidence) []string {
	merged := []string{}
	for _, ev := range evidence {
		merged = append(merged, ev.EvidenceSkills...)
	}
	return scoring.NormalizeSkills(merged)
}

// ==========================================
// CACHING
// ==========================================

func computeStructureHash(jdHash string, weights map[string]int) string {
	ids := make([]string, 0, len(weights))
	for id := range weights {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	ordered := make(map[string]int, len(weights))
	for _, id := range ids {
		ordered[id] = weights[id]
	}
	weightsJSON, _ := json.Marshal(ordered)

	sum := sha256.Sum256([]byte(jdHash + ":" + string(weightsJSON)))
	return hex.EncodeToString(sum[:])[:16]
}

func cacheKey(structureHash string, resumeID int64) string {
	return fmt.Sprintf("analysis:result:%s:%d", structureHash, resumeID)
}

// loadCache checks Redis first, then the match_results table, for scores of
// the shortlisted resumes under this structure hash.
func (s *Service) loadCache(ctx context.Context, structureHash string, shortlist []models.CandidateRecord) map[int64]models.MatchResult {
	cached := map[int64]models.MatchResult{}

	if s.redis != nil {
		for i := range shortlist {
			raw, err := s.redis.Get(ctx, cacheKey(structureHash, shortlist[i].ID))
			if err != nil || raw == "" {
				continue
			}
			var result models.MatchResult
			if json.Unmarshal([]byte(raw), &result) == nil {
				cached[shortlist[i].ID] = result
			}
		}
	}

	stored, err := s.analyses.GetCachedResults(ctx, structureHash, scoring.EngineVersion)
	if err != nil {
		s.logger.Warn("score cache lookup failed", map[string]interface{}{"error": err})
		return cached
	}
	for id, result := range stored {
		if _, ok := cached[id]; !ok {
			cached[id] = result
		}
	}
	return cached
}

func (s *Service) saveCache(ctx context.Context, structureHash string, result *models.MatchResult) {
	if err := s.analyses.SaveResult(ctx, structureHash, scoring.EngineVersion, result); err != nil {
		s.logger.Warn("score cache write failed", map[string]interface{}{
			"error":    err,
			"resumeId": result.ResumeID,
		})
	}
	if s.redis == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	ttl := time.Duration(s.cfg.CacheTTL) * time.Minute
	if ttl <= 0 {
		ttl = time.Hour
	}
	if err := s.redis.Set(ctx, cacheKey(structureHash, result.ResumeID), string(raw), ttl); err != nil {
		s.logger.Warn("redis cache write failed", map[string]interface{}{"error": err})
	}
}
