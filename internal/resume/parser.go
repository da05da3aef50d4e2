package resume

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"talenthub/internal/models"
	"talenthub/internal/scoring"
)

// ==========================================
// FIELD EXTRACTION
// ==========================================

// Parser derives structured candidate fields from extracted resume text.
// Extraction is rule based: contact details come from regexes, the rest from
// section headings and a skill vocabulary. Fields it cannot find stay empty.
type Parser struct {
	vocabulary []string
}

// NewParser builds a parser with the default skill vocabulary plus any extra
// terms, typically the seed skills of the scoring dimension library.
func NewParser(extraSkills ...string) *Parser {
	vocab := make([]string, 0, len(baseSkillVocabulary)+len(extraSkills))
	vocab = append(vocab, baseSkillVocabulary...)
	vocab = append(vocab, extraSkills...)
	return &Parser{vocabulary: vocab}
}

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`(?:\+?\d{1,3}[\s\-.]?)?(?:\(\d{2,4}\)[\s\-.]?)?\d{3,4}[\s\-.]?\d{3,4}(?:[\s\-.]?\d{2,4})?`)
	zipRe   = regexp.MustCompile(`\b\d{5,6}(?:-\d{4})?\b`)

	experienceRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)(?:\s+of)?(?:\s+experience)?`)
	noticeRe     = regexp.MustCompile(`(?i)notice\s*period\s*[:\-]?\s*(\d+)\s*days?`)
	immediateRe  = regexp.MustCompile(`(?i)notice\s*period\s*[:\-]?\s*immediate`)

	sectionHeadRe = regexp.MustCompile(`(?i)^(skills|technical skills|core skills|key skills|education|academic|experience|work experience|employment|projects|certifications?|achievements?|summary|profile|objective|languages|interests|references)\b`)
)

// degree keywords used to spot the education line.
var degreeKeywords = []string{
	"b.tech", "btech", "b.e.", "b.sc", "bsc", "bachelor", "m.tech", "mtech",
	"m.sc", "msc", "master", "mba", "phd", "doctorate", "diploma", "b.com", "m.com",
}

var roleKeywords = []string{
	"engineer", "developer", "architect", "manager", "consultant", "analyst",
	"administrator", "specialist", "lead", "director", "designer", "scientist",
	"intern", "officer", "technician", "devops", "sre",
}

// Parse extracts a candidate profile from resume text. The returned values
// never contain placeholder strings; absent fields are empty.
func (p *Parser) Parse(text string) models.ParsedResume {
	lines := splitLines(text)
	var out models.ParsedResume

	out.Email = strings.ToLower(emailRe.FindString(text))
	out.Phone = findPhone(lines)

	out.FullName = findName(lines, out.Email)
	out.FirstName, out.LastName = splitName(out.FullName)

	out.Role = findRole(lines, out.FullName)
	out.CurrentCompany = findCurrentCompany(lines)

	if years, ok := findExperienceYears(text); ok {
		out.Experience = strconv.FormatFloat(years, 'f', -1, 64)
	}

	out.Location = findLocation(lines)
	out.City, out.Country = splitLocation(out.Location)
	out.ZipCode = zipRe.FindString(out.Location)

	skills := p.findSkills(lines, text)
	if len(skills) > 0 {
		out.Skills = strings.Join(skills, ", ")
	}

	if degree, university := findEducation(lines); degree != "" {
		if university != "" {
			out.Education = degree + " - " + university
		} else {
			out.Education = degree
		}
	}

	return out
}

// ParseCandidate maps the parsed fields onto a candidate record, including
// the numeric conversions the storage layer needs.
func (p *Parser) ParseCandidate(text string) models.CandidateRecord {
	parsed := p.Parse(text)
	rec := models.CandidateRecord{
		FirstName:      parsed.FirstName,
		LastName:       parsed.LastName,
		FullName:       parsed.FullName,
		Email:          parsed.Email,
		Phone:          parsed.Phone,
		Role:           parsed.Role,
		CurrentCompany: parsed.CurrentCompany,
		Location:       parsed.Location,
		RawText:        text,
	}

	if parsed.Experience != "" {
		if years, err := strconv.ParseFloat(parsed.Experience, 64); err == nil {
			rec.ExperienceYears = &years
		}
	}
	if days, ok := findNoticePeriod(text); ok {
		rec.NoticePeriodDays = &days
	}

	rec.Skills = scoring.NormalizeSkills(p.findSkills(splitLines(text), text))
	rec.AllSkills = rec.Skills
	rec.Certifications = findCertifications(splitLines(text))

	if degree, university := findEducation(splitLines(text)); degree != "" {
		rec.Education = []models.EducationEntry{{Degree: degree, Institution: university}}
	}
	return rec
}

// ==========================================
// HEURISTICS
// ==========================================

func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}

func findPhone(lines []string) string {
	// Only trust matches near the top or on lines mentioning phone/mobile,
	// otherwise date ranges and zip codes produce false hits.
	for i, line := range lines {
		lower := strings.ToLower(line)
		if i < 6 || strings.Contains(lower, "phone") || strings.Contains(lower, "mobile") || strings.Contains(lower, "contact") {
			m := phoneRe.FindString(line)
			if len(digitsOf(m)) >= 8 {
				return strings.TrimSpace(m)
			}
		}
	}
	return ""
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func findName(lines []string, email string) string {
	for i, line := range lines {
		if i > 4 {
			break
		}
		if emailRe.MatchString(line) || len(digitsOf(line)) > 3 {
			continue
		}
		words := strings.Fields(line)
		if len(words) == 0 || len(words) > 4 {
			continue
		}
		if sectionHeadRe.MatchString(line) || looksLikeTitle(line) {
			continue
		}
		alpha := true
		for _, w := range words {
			for _, r := range w {
				if !isNameRune(r) {
					alpha = false
					break
				}
			}
		}
		if alpha {
			return line
		}
	}
	// Fall back to the email local part when no plausible name line exists.
	if email != "" {
		local, _, _ := strings.Cut(email, "@")
		local = strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(local)
		words := strings.Fields(local)
		for i, w := range words {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
		return strings.Join(words, " ")
	}
	return ""
}

func isNameRune(r rune) bool {
	return r == '.' || r == '\'' || r == '-' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func splitName(full string) (first, last string) {
	words := strings.Fields(full)
	switch {
	case len(words) == 0:
		return "", ""
	case len(words) == 1:
		return words[0], ""
	default:
		return words[0], strings.Join(words[1:], " ")
	}
}

func looksLikeTitle(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range roleKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func findRole(lines []string, name string) string {
	for i, line := range lines {
		if i > 8 {
			break
		}
		if line == name || emailRe.MatchString(line) {
			continue
		}
		if looksLikeTitle(line) && len(strings.Fields(line)) <= 6 {
			return line
		}
	}
	return ""
}

func findCurrentCompany(lines []string) string {
	// "Company | Jan 2022 - Present" or "at <Company> (Present)" style rows.
	presentRe := regexp.MustCompile(`(?i)\b(present|current)\b`)
	for _, line := range lines {
		if !presentRe.MatchString(line) {
			continue
		}
		candidate := line
		if idx := strings.IndexAny(candidate, "|,("); idx > 0 {
			candidate = candidate[:idx]
		}
		candidate = strings.TrimSpace(candidate)
		if candidate != "" && len(strings.Fields(candidate)) <= 6 && !looksLikeTitle(candidate) {
			return candidate
		}
	}
	return ""
}

func findExperienceYears(text string) (float64, bool) {
	best := 0.0
	found := false
	for _, m := range experienceRe.FindAllStringSubmatch(text, -1) {
		years, err := strconv.ParseFloat(m[1], 64)
		if err != nil || years > 50 {
			continue
		}
		if years > best {
			best = years
			found = true
		}
	}
	return best, found
}

func findNoticePeriod(text string) (int, bool) {
	if immediateRe.MatchString(text) {
		return 0, true
	}
	if m := noticeRe.FindStringSubmatch(text); m != nil {
		if days, err := strconv.Atoi(m[1]); err == nil {
			return days, true
		}
	}
	return 0, false
}

func findLocation(lines []string) string {
	locRe := regexp.MustCompile(`(?i)^(?:location|address|based in)\s*[:\-]\s*(.+)$`)
	for _, line := range lines {
		if m := locRe.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	// A short "City, Country" line near the contact block.
	for i, line := range lines {
		if i > 6 {
			break
		}
		if strings.Count(line, ",") >= 1 && len(strings.Fields(line)) <= 5 &&
			!emailRe.MatchString(line) && len(digitsOf(line)) <= 6 && !looksLikeTitle(line) {
			return line
		}
	}
	return ""
}

func splitLocation(location string) (city, country string) {
	if location == "" {
		return "", ""
	}
	parts := strings.Split(location, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(zipRe.ReplaceAllString(parts[i], ""))
	}
	switch len(parts) {
	case 1:
		return parts[0], ""
	default:
		return parts[0], parts[len(parts)-1]
	}
}

func (p *Parser) findSkills(lines []string, text string) []string {
	// Prefer an explicit skills section; fall back to vocabulary matching.
	if section := collectSection(lines, "skills"); len(section) > 0 {
		var skills []string
		for _, line := range section {
			line = strings.TrimLeft(line, "•-*· \t")
			for _, item := range strings.FieldsFunc(line, func(r rune) bool {
				return r == ',' || r == ';' || r == '|' || r == '•'
			}) {
				item = strings.TrimSpace(item)
				if item != "" && len(item) <= 40 {
					skills = append(skills, item)
				}
			}
		}
		if len(skills) > 0 {
			return skills
		}
	}

	lower := strings.ToLower(text)
	var skills []string
	seen := map[string]bool{}
	for _, skill := range p.vocabulary {
		key := strings.ToLower(skill)
		if !seen[key] && containsWord(lower, key) {
			seen[key] = true
			skills = append(skills, skill)
		}
	}
	return skills
}

func containsWord(haystack, needle string) bool {
	idx := 0
	for {
		i := strings.Index(haystack[idx:], needle)
		if i < 0 {
			return false
		}
		i += idx
		before := i == 0 || !isWordRune(rune(haystack[i-1]))
		afterIdx := i + len(needle)
		after := afterIdx >= len(haystack) || !isWordRune(rune(haystack[afterIdx]))
		if before && after {
			return true
		}
		idx = i + len(needle)
	}
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func collectSection(lines []string, heading string) []string {
	var out []string
	inSection := false
	for _, line := range lines {
		if m := sectionHeadRe.FindStringSubmatch(line); m != nil {
			head := strings.ToLower(m[1])
			if strings.Contains(head, heading) {
				inSection = true
				// Inline form: "Skills: Go, Python".
				if _, rest, ok := strings.Cut(line, ":"); ok && strings.TrimSpace(rest) != "" {
					out = append(out, strings.TrimSpace(rest))
				}
				continue
			}
			if inSection {
				break
			}
			continue
		}
		if inSection {
			out = append(out, line)
			if len(out) >= 15 {
				break
			}
		}
	}
	return out
}

func findEducation(lines []string) (degree, university string) {
	section := collectSection(lines, "education")
	if len(section) == 0 {
		section = collectSection(lines, "academic")
	}
	scan := section
	if len(scan) == 0 {
		scan = lines
	}
	for _, line := range scan {
		lower := strings.ToLower(line)
		for _, kw := range degreeKeywords {
			if !strings.Contains(lower, kw) {
				continue
			}
			line = strings.TrimLeft(line, "•-* \t")
			if d, u, ok := strings.Cut(line, " - "); ok {
				return strings.TrimSpace(d), strings.TrimSpace(u)
			}
			if d, u, ok := strings.Cut(line, ","); ok {
				return strings.TrimSpace(d), strings.TrimSpace(u)
			}
			return strings.TrimSpace(line), ""
		}
	}
	return "", ""
}

func findCertifications(lines []string) []string {
	var certs []string
	for _, line := range collectSection(lines, "certification") {
		line = strings.TrimLeft(line, "•-* \t")
		if line != "" && len(line) <= 80 {
			certs = append(certs, line)
		}
	}
	return certs
}

// ==========================================
// SOURCE MAPPING
// ==========================================

// MapSourceType canonicalizes the free-form source label sent by upload
// clients into a stored source type.
func MapSourceType(label string) string {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "guest user", "guest", "gmail":
		return models.SourceTypeGuest
	case "hired forces", "hired force":
		return models.SourceTypeHiredForce
	case "company employee":
		return models.SourceTypeCompanyEmployee
	case "freelancer":
		return models.SourceTypeFreelancer
	case "admin":
		return models.SourceTypeAdmin
	case "outlook":
		return models.SourceTypeOutlook
	default:
		return models.SourceTypeGuest
	}
}

// FreelancerID formats the yearly sequential freelancer identifier.
func FreelancerID(year int, seq int64) string {
	return fmt.Sprintf("FL-%d-%04d", year, seq)
}

// baseSkillVocabulary seeds skill detection when a resume has no skills
// section. It mirrors the technology spread the platform screens for.
var baseSkillVocabulary = []string{
	"Go", "Golang", "Python", "Java", "JavaScript", "TypeScript", "C++", "C#",
	"React", "Angular", "Vue", "Node.js", "Docker", "Kubernetes", "Terraform",
	"PostgreSQL", "MySQL", "MongoDB", "Redis", "Elasticsearch", "Kafka",
	"AWS", "Azure", "GCP", "Linux", "Git", "CI/CD", "Jenkins", "Ansible",
	"BGP", "OSPF", "MPLS", "TCP/IP", "DNS", "DHCP", "VPN", "Firewall",
	"Cisco", "Juniper", "Palo Alto", "Fortinet", "F5", "Wireshark",
	"SIEM", "Splunk", "Zscaler", "SD-WAN", "VMware", "OpenStack",
}
