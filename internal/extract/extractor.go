// Package extract turns raw résumé text into structured candidate profiles
// using regex and keyword heuristics over a shared skill taxonomy.
package extract

import (
	"math"
	"regexp"
	"strings"

	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/candidate"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/taxonomy"
)

// MinTextLength is the minimum amount of extractable text a résumé must
// yield before field extraction is attempted.
const MinTextLength = 50

// UsableText reports whether the extracted text is long enough to parse.
func UsableText(text string) bool {
	return len(strings.TrimSpace(text)) >= MinTextLength
}

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`)

	experiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s*(?:of\s*)?(?:experience|exp)`),
		regexp.MustCompile(`(?i)(\d+)\+?\s*yrs?\s*(?:of\s*)?(?:experience|exp)`),
		regexp.MustCompile(`(?i)experience\s*:\s*(\d+)\+?\s*years?`),
		regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s*in\s*(?:the\s*)?(?:field|industry)`),
	}

	yearPattern = regexp.MustCompile(`(?:19|20)\d{2}`)

	// Ordered highest first so the best match wins.
	educationPatterns = []struct {
		level    candidate.EducationLevel
		patterns []*regexp.Regexp
	}{
		{candidate.EducationPhD, compileAll(`ph\.?d\.?`, `doctorate`, `doctoral`)},
		{candidate.EducationMasters, compileAll(`master'?s?`, `m\.s\.?`, `m\.a\.?`, `mba`, `m\.sc\.?`)},
		{candidate.EducationBachelors, compileAll(`bachelor'?s?`, `b\.s\.?`, `b\.a\.?`, `b\.sc\.?`, `b\.tech`)},
		{candidate.EducationAssociates, compileAll(`associate'?s?`, `a\.a\.?`, `a\.s\.?`)},
		{candidate.EducationHighSchool, compileAll(`high\s*school`, `diploma`, `ged`)},
	}

	jobTitlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(senior|sr\.?|lead|principal|chief)\s+(\w+\s*){1,3}(engineer|developer|manager|architect|analyst)`),
		regexp.MustCompile(`(?i)(software|web|mobile|full[\s-]?stack)\s+(engineer|developer)`),
		regexp.MustCompile(`(?i)(project|product|engineering|technical)\s+manager`),
		regexp.MustCompile(`(?i)(data|business|systems)\s+analyst`),
		regexp.MustCompile(`(?i)(ui/ux|ux|ui)\s+designer`),
	}

	certificationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:AWS|Azure|Google Cloud|GCP)\s+(?:Certified|Certification)`),
		regexp.MustCompile(`(?i)\bPMP\b`),
		regexp.MustCompile(`(?i)\bCSM\b`),
		regexp.MustCompile(`(?i)\bCISSP\b`),
		regexp.MustCompile(`(?i)\bCEH\b`),
		regexp.MustCompile(`(?i)\bCPA\b`),
		regexp.MustCompile(`(?i)\bFRM\b`),
		regexp.MustCompile(`(?i)\bCFA\b`),
	}

	spokenLanguagePattern = regexp.MustCompile(`(?i)\b(English|Spanish|French|German|Chinese|Japanese|Korean|Hindi|Arabic)\b`)

	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`[A-Z][a-z]+,\s*[A-Z]{2}`),
		regexp.MustCompile(`[A-Z][a-z]+\s*[A-Z][a-z]*,\s*[A-Z]{2}`),
		regexp.MustCompile(`[A-Z][a-z]+,\s*[A-Z][a-z]+`),
	}

	skillSectionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(React|Angular|Vue)\b`),
		regexp.MustCompile(`(?i)\b(Node\.js|Express\.js)\b`),
		regexp.MustCompile(`(?i)\b(REST|GraphQL|API)\b`),
		regexp.MustCompile(`(?i)\b(Git|GitHub|GitLab)\b`),
		regexp.MustCompile(`(?i)\b(Linux|Unix|Windows)\b`),
	}

	nameExclusionKeywords = []string{"resume", "cv", "email", "@", "phone", "address"}

	allSectionKeywords = []string{
		"experience", "education", "skills", "projects", "certifications",
		"achievements", "awards", "references", "summary", "objective",
	}
)

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// Extractor parses résumé text into candidate profiles. The taxonomy is
// shared, read-only configuration so it can be substituted in tests.
type Extractor struct {
	skills        *taxonomy.Taxonomy
	skillPatterns map[string]*regexp.Regexp
}

func New(skills *taxonomy.Taxonomy) *Extractor {
	patterns := make(map[string]*regexp.Regexp)
	for _, skill := range skills.AllSkills() {
		patterns[skill] = regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToUpper(skill)) + `\b`)
	}
	return &Extractor{skills: skills, skillPatterns: patterns}
}

// Parse builds a profile from résumé text. It never fails: fields that
// cannot be extracted are left at their zero values.
func (e *Extractor) Parse(text, filename string) *candidate.CandidateProfile {
	profile := &candidate.CandidateProfile{
		Name:       extractName(text),
		Email:      extractEmail(text),
		Phone:      extractPhone(text),
		Location:   extractLocation(text),
		ResumeText: text,
		Source:     "Resume Upload",
	}

	if profile.Name == "" {
		profile.Name = "Candidate_" + filename
	}

	profile.Skills = e.extractSkills(text)
	profile.ExperienceYears = extractExperienceYears(text)
	profile.CurrentPosition = extractCurrentPosition(text)
	profile.EducationLevel = extractEducationLevel(text)
	profile.Certifications = extractCertifications(text)
	profile.Languages = extractLanguages(text)

	profile.OverallScore = overallScore(profile.Skills, profile.ExperienceYears, profile.EducationLevel)
	profile.TechnicalScore = e.technicalScore(profile.Skills)

	return profile
}

// ============================================================================
// Field Extraction
// ============================================================================

// extractName looks for a 2-4 word alphabetic line near the top.
func extractName(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) < 3 || len(line) > 50 {
			continue
		}

		lower := strings.ToLower(line)
		if containsAny(lower, nameExclusionKeywords) {
			continue
		}

		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		allAlpha := true
		for _, word := range words {
			cleaned := strings.NewReplacer(".", "", ",", "").Replace(word)
			if !isAlpha(cleaned) {
				allAlpha = false
				break
			}
		}
		if allAlpha {
			return line
		}
	}
	return ""
}

func extractEmail(text string) kernel.Email {
	return kernel.Email(emailPattern.FindString(text))
}

func extractPhone(text string) kernel.Phone {
	return kernel.Phone(phonePattern.FindString(text))
}

func extractLocation(text string) kernel.Location {
	for _, pattern := range locationPatterns {
		if match := pattern.FindString(text); match != "" {
			return kernel.Location(match)
		}
	}
	return ""
}

// extractSkills matches taxonomy skills with word boundaries, then mines
// the dedicated skills section for extras. Order of first occurrence is
// preserved and the list is capped.
func (e *Extractor) extractSkills(text string) []string {
	textUpper := strings.ToUpper(text)
	found := []string{}

	for _, skill := range e.skills.AllSkills() {
		if e.skillPatterns[skill].MatchString(textUpper) {
			found = append(found, skill)
		}
	}

	if section := extractSection(text, []string{"skills", "technical skills", "technologies"}); section != "" {
		for _, pattern := range skillSectionPatterns {
			found = append(found, pattern.FindAllString(section, -1)...)
		}
	}

	seen := make(map[string]bool)
	unique := []string{}
	for _, skill := range found {
		lower := strings.ToLower(skill)
		if !seen[lower] {
			seen[lower] = true
			unique = append(unique, skill)
		}
	}

	if len(unique) > candidate.MaxSkills {
		unique = unique[:candidate.MaxSkills]
	}
	return unique
}

// extractExperienceYears tries explicit "N years" statements first, then
// falls back to the span of years mentioned in the experience section.
func extractExperienceYears(text string) int {
	for _, pattern := range experiencePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			years := atoi(m[1])
			if years > candidate.MaxExperienceYears {
				return candidate.MaxExperienceYears
			}
			return years
		}
	}

	section := extractSection(text, []string{"experience", "work history", "employment"})
	if section != "" {
		years := yearPattern.FindAllString(section, -1)
		if len(years) >= 2 {
			min, max := atoi(years[0]), atoi(years[0])
			for _, y := range years[1:] {
				v := atoi(y)
				if v < min {
					min = v
				}
				if v > max {
					max = v
				}
			}
			span := max - min
			if span > candidate.MaxExperienceYears {
				span = candidate.MaxExperienceYears
			}
			return span
		}
	}

	return 0
}

func extractCurrentPosition(text string) string {
	section := extractSection(text, []string{"experience", "work history", "employment"})
	if section == "" {
		return ""
	}

	lines := strings.Split(section, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		for _, pattern := range jobTitlePatterns {
			if match := pattern.FindString(line); match != "" {
				return titleCase(match)
			}
		}
	}
	return ""
}

func extractEducationLevel(text string) candidate.EducationLevel {
	lower := strings.ToLower(text)
	for _, entry := range educationPatterns {
		for _, pattern := range entry.patterns {
			if pattern.MatchString(lower) {
				return entry.level
			}
		}
	}
	return ""
}

func extractCertifications(text string) []string {
	certifications := []string{}
	for _, pattern := range certificationPatterns {
		certifications = append(certifications, pattern.FindAllString(text, -1)...)
	}
	return certifications
}

// extractLanguages collects spoken languages, deduplicated in order of first
// occurrence.
func extractLanguages(text string) []string {
	matches := spokenLanguagePattern.FindAllString(text, -1)
	seen := make(map[string]bool)
	languages := []string{}
	for _, m := range matches {
		canonical := titleCase(m)
		if !seen[canonical] {
			seen[canonical] = true
			languages = append(languages, canonical)
		}
	}
	return languages
}

// titleCase capitalizes the first letter of each word. The inputs here are
// ASCII pattern matches, so no Unicode-aware casing is needed.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// extractSection returns the text from a heading matching one of the
// keywords up to the next unrelated section heading.
func extractSection(text string, keywords []string) string {
	lines := strings.Split(text, "\n")

	start := -1
	for i, line := range lines {
		if containsAny(strings.ToLower(strings.TrimSpace(line)), keywords) {
			start = i
			break
		}
	}
	if start == -1 {
		return ""
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		lower := strings.ToLower(strings.TrimSpace(lines[i]))
		if lower == "" {
			continue
		}
		if containsAny(lower, allSectionKeywords) && !containsAny(lower, keywords) {
			end = i
			break
		}
	}

	return strings.Join(lines[start:end], "\n")
}

// ============================================================================
// Profile Scoring
// ============================================================================

// overallScore blends skill count (40%), experience (40%) and education
// (20%) into a 0-100 quality score.
func overallScore(skills []string, experienceYears int, level candidate.EducationLevel) float64 {
	score := math.Min(float64(len(skills))/10.0, 1.0) * 40
	score += math.Min(float64(experienceYears)/10.0, 1.0) * 40
	score += level.Points()
	return round2(score)
}

// technicalScore weights each skill by its taxonomy category.
func (e *Extractor) technicalScore(skills []string) float64 {
	total := 0.0
	for _, skill := range skills {
		total += e.skills.Weight(skill)
	}
	return round2(math.Min(total, 100.0))
}

// ============================================================================
// Helpers
// ============================================================================

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return false
		}
	}
	return true
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return n
		}
		n = n*10 + int(r-'0')
	}
	return n
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
