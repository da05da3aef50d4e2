// internal/scoring/skills.go
package scoring

import (
	"sort"
	"strings"

	"talenthub/internal/models"
)

// NormalizeSkill collapses inner whitespace and lowercases.
func NormalizeSkill(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// NormalizeSkills normalizes, deduplicates, and sorts a skill list.
func NormalizeSkills(skills []string) []string {
	set := map[string]bool{}
	for _, s := range skills {
		if ns := NormalizeSkill(s); ns != "" {
			set[ns] = true
		}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Intersection returns the sorted normalized skills present in both lists.
func Intersection(a, b []string) []string {
	bSet := map[string]bool{}
	for _, s := range NormalizeSkills(b) {
		bSet[s] = true
	}
	out := []string{}
	for _, s := range NormalizeSkills(a) {
		if bSet[s] {
			out = append(out, s)
		}
	}
	return out
}

// Difference returns the sorted normalized skills of a not present in b.
func Difference(a, b []string) []string {
	bSet := map[string]bool{}
	for _, s := range NormalizeSkills(b) {
		bSet[s] = true
	}
	out := []string{}
	for _, s := range NormalizeSkills(a) {
		if !bSet[s] {
			out = append(out, s)
		}
	}
	return out
}

// CanonicalResumeSkills is the union of every skill field a candidate record
// carries, normalized for matching.
func CanonicalResumeSkills(rec *models.CandidateRecord) []string {
	all := make([]string, 0, len(rec.Skills)+len(rec.AllSkills)+len(rec.Certifications))
	all = append(all, rec.Skills...)
	all = append(all, rec.AllSkills...)
	all = append(all, rec.Certifications...)
	return NormalizeSkills(all)
}

// MatchAgainstJD splits the JD skill list into matched and missing relative
// to the candidate, preserving the JD's original casing in the output.
func MatchAgainstJD(jdSkills []string, resumeSkills []string) (matched, missing []string) {
	resumeSet := map[string]bool{}
	for _, s := range NormalizeSkills(resumeSkills) {
		resumeSet[s] = true
	}

	seen := map[string]bool{}
	for _, jd := range jdSkills {
		key := NormalizeSkill(jd)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if resumeSet[key] {
			matched = append(matched, strings.TrimSpace(jd))
		} else {
			missing = append(missing, strings.TrimSpace(jd))
		}
	}
	return matched, missing
}
