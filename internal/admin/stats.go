// internal/admin/stats.go
package admin

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"talenthub/internal/common/logger"
	"talenthub/internal/filter"
	"talenthub/internal/models"
	"talenthub/internal/store"
)

// Service assembles the admin dashboard: aggregate statistics over the
// candidate pool plus a recent-activity notification feed.
type Service struct {
	resumes   *store.ResumeStore
	users     *store.UserStore
	analyses  *store.AnalysisStore
	employees *store.EmployeeStore
	apps      *store.ApplicationStore
	logger    logger.Logger
}

func NewService(resumes *store.ResumeStore, users *store.UserStore, analyses *store.AnalysisStore,
	employees *store.EmployeeStore, apps *store.ApplicationStore, log logger.Logger) *Service {
	return &Service{
		resumes:   resumes,
		users:     users,
		analyses:  analyses,
		employees: employees,
		apps:      apps,
		logger:    log.WithFields(map[string]interface{}{"component": "admin_stats"}),
	}
}

// ==========================================
// DASHBOARD STATS
// ==========================================

type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

type ExperienceBin struct {
	Exp   int `json:"exp"`
	Count int `json:"count"`
}

type StateCount struct {
	State string `json:"state"`
	Count int    `json:"count"`
}

type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type RoleCandidate struct {
	Name string  `json:"name"`
	Exp  float64 `json:"exp"`
}

type RoleCount struct {
	Role       string          `json:"role"`
	Count      int             `json:"count"`
	Candidates []RoleCandidate `json:"candidates"`
}

// TrendPoint is one bucket of the upload trend series. The dynamic keys per
// source type live in Counts; Name is the bucket label (date, month or
// quarter).
type TrendPoint struct {
	Name   string         `json:"name"`
	Counts map[string]int `json:"counts"`
}

type DashboardStats struct {
	TotalRecords        int                     `json:"total_records"`
	TotalUsers          int                     `json:"total_users"`
	TotalEmployees      int                     `json:"total_employees"`
	TotalApplications   int                     `json:"total_applications"`
	TotalRoles          int                     `json:"total_roles"`
	UserTypeBreakdown   map[string]int          `json:"user_type_breakdown"`
	TopSkills           []SkillCount            `json:"top_skills"`
	TopSkillsByUserType map[string][]SkillCount `json:"top_skills_by_user_type"`
	ExperienceDist      []ExperienceBin         `json:"experience_distribution"`
	LocationDist        []StateCount            `json:"location_distribution"`
	RoleDist            []RoleCount             `json:"role_distribution"`
	NoticePeriodDist    []NamedCount            `json:"notice_period_distribution"`
	RelocationDist      []NamedCount            `json:"relocation_distribution"`
	Trends              map[string][]TrendPoint `json:"trends"`
	RecentAnalyses      []models.AnalysisRun    `json:"recent_jd_analyses"`
}

// noticeBucketOrder preserves the windrose chart ordering.
var noticeBucketOrder = []string{
	"Immediate (0d)", "1–15 days", "16–30 days", "31–60 days", "61–90 days", "90+ days",
}

func noticeBucket(days int) string {
	switch {
	case days <= 0:
		return noticeBucketOrder[0]
	case days <= 15:
		return noticeBucketOrder[1]
	case days <= 30:
		return noticeBucketOrder[2]
	case days <= 60:
		return noticeBucketOrder[3]
	case days <= 90:
		return noticeBucketOrder[4]
	default:
		return noticeBucketOrder[5]
	}
}

// stateMapping resolves Indian state names from location substrings, with
// major cities mapped to their state.
var stateMapping = []struct{ key, state string }{
	{"maharashtra", "Maharashtra"}, {"mumbai", "Maharashtra"}, {"pune", "Maharashtra"}, {"nagpur", "Maharashtra"},
	{"karnataka", "Karnataka"}, {"bangalore", "Karnataka"}, {"bengaluru", "Karnataka"}, {"mysore", "Karnataka"},
	{"delhi", "Delhi"}, {"noida", "Uttar Pradesh"}, {"gurgaon", "Haryana"}, {"gurugram", "Haryana"},
	{"tamil nadu", "Tamil Nadu"}, {"chennai", "Tamil Nadu"}, {"coimbatore", "Tamil Nadu"},
	{"telangana", "Telangana"}, {"hyderabad", "Telangana"},
	{"west bengal", "West Bengal"}, {"kolkata", "West Bengal"},
	{"gujarat", "Gujarat"}, {"ahmedabad", "Gujarat"}, {"surat", "Gujarat"}, {"vadodara", "Gujarat"},
	{"rajasthan", "Rajasthan"}, {"jaipur", "Rajasthan"}, {"udaipur", "Rajasthan"},
	{"punjab", "Punjab"}, {"chandigarh", "Chandigarh"}, {"amritsar", "Punjab"},
	{"haryana", "Haryana"},
	{"uttar pradesh", "Uttar Pradesh"}, {"lucknow", "Uttar Pradesh"}, {"kanpur", "Uttar Pradesh"},
	{"madhya pradesh", "Madhya Pradesh"}, {"indore", "Madhya Pradesh"}, {"bhopal", "Madhya Pradesh"},
	{"kerala", "Kerala"}, {"kochi", "Kerala"}, {"thiruvananthapuram", "Kerala"},
	{"andhra pradesh", "Andhra Pradesh"}, {"visakhapatnam", "Andhra Pradesh"},
	{"bihar", "Bihar"}, {"patna", "Bihar"},
	{"odisha", "Odisha"}, {"bhubaneswar", "Odisha"},
	{"assam", "Assam"}, {"guwahati", "Assam"},
	{"chhattisgarh", "Chhattisgarh"}, {"raipur", "Chhattisgarh"},
	{"jharkhand", "Jharkhand"}, {"ranchi", "Jharkhand"},
	{"uttarakhand", "Uttarakhand"}, {"dehradun", "Uttarakhand"},
	{"himachal pradesh", "Himachal Pradesh"},
}

func mapState(location string) string {
	loc := strings.ToLower(location)
	for _, m := range stateMapping {
		if strings.Contains(loc, m.key) {
			return m.state
		}
	}
	return ""
}

func trendKeys(t time.Time) (day, month, quarter string) {
	quarterNum := (int(t.Month())-1)/3 + 1
	return t.Format("2006-01-02"),
		t.Format("2006-01"),
		fmt.Sprintf("%d-Q%d", t.Year(), quarterNum)
}

// Stats computes the dashboard payload. An optional user type filter narrows
// every resume-based metric to one source type.
func (s *Service) Stats(ctx context.Context, filterUserType string) (*DashboardStats, error) {
	records, err := s.resumes.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	if filterUserType != "" {
		canonical := filter.CanonicalType(filterUserType)
		kept := records[:0]
		for _, rec := range records {
			if filter.CanonicalType(rec.SourceType) == canonical {
				kept = append(kept, rec)
			}
		}
		records = kept
	}

	stats := &DashboardStats{
		TotalRecords:        len(records),
		UserTypeBreakdown:   map[string]int{},
		TopSkillsByUserType: map[string][]SkillCount{},
		Trends:              map[string][]TrendPoint{},
	}

	skillCounts := map[string]int{}
	skillsByType := map[string]map[string]int{}
	experienceCounts := map[int]int{}
	stateCounts := map[string]int{}
	noticeCounts := map[string]int{}
	roleCandidates := map[string][]RoleCandidate{}
	relocationReady := 0
	trendCounts := map[string]map[string]map[string]int{
		"day": {}, "month": {}, "quarter": {},
	}
	yearAgo := time.Now().UTC().AddDate(0, 0, -365)

	for i := range records {
		rec := &records[i]
		userType := filter.CanonicalType(rec.SourceType)
		stats.UserTypeBreakdown[userType]++

		for _, skill := range rec.Skills {
			skillCounts[skill]++
			if skillsByType[userType] == nil {
				skillsByType[userType] = map[string]int{}
			}
			skillsByType[userType][skill]++
		}

		if rec.ExperienceYears != nil {
			experienceCounts[int(*rec.ExperienceYears)]++
		}

		if state := mapState(rec.Location); state != "" {
			stateCounts[state]++
		}

		notice := 0
		if rec.NoticePeriodDays != nil {
			notice = *rec.NoticePeriodDays
		}
		noticeCounts[noticeBucket(notice)]++

		if rec.Role != "" {
			role := strings.TrimSpace(rec.Role)
			name := rec.FullName
			if name == "" {
				name = "Anonymous"
			}
			exp := 0.0
			if rec.ExperienceYears != nil {
				exp = *rec.ExperienceYears
			}
			roleCandidates[role] = append(roleCandidates[role], RoleCandidate{Name: name, Exp: exp})
		}

		if rec.WillingToRelocate {
			relocationReady++
		}

		if rec.UploadedAt != nil && rec.UploadedAt.After(yearAgo) {
			day, month, quarter := trendKeys(rec.UploadedAt.UTC())
			for period, key := range map[string]string{"day": day, "month": month, "quarter": quarter} {
				if trendCounts[period][key] == nil {
					trendCounts[period][key] = map[string]int{}
				}
				trendCounts[period][key][userType]++
			}
		}
	}

	stats.TopSkills = topCounts(skillCounts, 10)
	for userType, counts := range skillsByType {
		stats.TopSkillsByUserType[userType] = topCounts(counts, 5)
	}

	maxExp := 0
	for exp := range experienceCounts {
		if exp > maxExp {
			maxExp = exp
		}
	}
	if len(experienceCounts) > 0 {
		for exp := 0; exp <= maxExp; exp++ {
			stats.ExperienceDist = append(stats.ExperienceDist, ExperienceBin{Exp: exp, Count: experienceCounts[exp]})
		}
	}

	for state, count := range stateCounts {
		stats.LocationDist = append(stats.LocationDist, StateCount{State: state, Count: count})
	}
	sort.Slice(stats.LocationDist, func(i, j int) bool {
		return stats.LocationDist[i].Count > stats.LocationDist[j].Count
	})

	for role, cands := range roleCandidates {
		sort.Slice(cands, func(i, j int) bool { return cands[i].Exp > cands[j].Exp })
		stats.RoleDist = append(stats.RoleDist, RoleCount{Role: role, Count: len(cands), Candidates: cands})
	}
	sort.Slice(stats.RoleDist, func(i, j int) bool { return stats.RoleDist[i].Count > stats.RoleDist[j].Count })
	stats.TotalRoles = len(stats.RoleDist)

	for _, name := range noticeBucketOrder {
		stats.NoticePeriodDist = append(stats.NoticePeriodDist, NamedCount{Name: name, Count: noticeCounts[name]})
	}

	stats.RelocationDist = []NamedCount{
		{Name: "Ready to Relocate", Count: relocationReady},
		{Name: "Not open to relocation", Count: len(records) - relocationReady},
	}

	for period, buckets := range trendCounts {
		var points []TrendPoint
		for key, counts := range buckets {
			points = append(points, TrendPoint{Name: key, Counts: counts})
		}
		sort.Slice(points, func(i, j int) bool { return points[i].Name < points[j].Name })
		if period == "day" && len(points) > 30 {
			points = points[len(points)-30:]
		}
		stats.Trends[period] = points
	}

	if count, err := s.users.Count(ctx); err == nil {
		stats.TotalUsers = count
	}
	if count, err := s.employees.Count(ctx); err == nil {
		stats.TotalEmployees = count
	}
	if perJob, err := s.apps.CountByJob(ctx); err == nil {
		for _, n := range perJob {
			stats.TotalApplications += n
		}
	}
	if runs, err := s.analyses.History(ctx, 10); err == nil {
		stats.RecentAnalyses = runs
	}

	return stats, nil
}

func topCounts(counts map[string]int, n int) []SkillCount {
	out := make([]SkillCount, 0, len(counts))
	for skill, count := range counts {
		out = append(out, SkillCount{Skill: skill, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Skill < out[j].Skill
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
