package extract

import (
	"strings"
	"testing"

	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/candidate"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/taxonomy"
)

const sampleResume = `Jane Doe
jane.doe@example.com
(555) 123-4567
Austin, TX

Skills
Python, React, PostgreSQL, Git

Experience
Senior Software Engineer at Initech
7 years of experience

Education
Bachelor of Science in Computer Science

Spoken: English, Spanish, English
`

func TestParseFullResume(t *testing.T) {
	e := New(taxonomy.Default())
	profile := e.Parse(sampleResume, "jane_doe.pdf")

	if profile.Name != "Jane Doe" {
		t.Fatalf("expected name Jane Doe, got %q", profile.Name)
	}
	if profile.Email.String() != "jane.doe@example.com" {
		t.Fatalf("unexpected email: %q", profile.Email)
	}
	if profile.Phone.String() != "(555) 123-4567" {
		t.Fatalf("unexpected phone: %q", profile.Phone)
	}
	if profile.Location.String() != "Austin, TX" {
		t.Fatalf("unexpected location: %q", profile.Location)
	}
	if profile.ExperienceYears != 7 {
		t.Fatalf("expected 7 years experience, got %d", profile.ExperienceYears)
	}
	if profile.CurrentPosition != "Senior Software Engineer" {
		t.Fatalf("unexpected current position: %q", profile.CurrentPosition)
	}
	if profile.EducationLevel != candidate.EducationBachelors {
		t.Fatalf("expected Bachelors, got %q", profile.EducationLevel)
	}

	wantSkills := []string{"Python", "React", "PostgreSQL", "Git"}
	if len(profile.Skills) != len(wantSkills) {
		t.Fatalf("expected skills %v, got %v", wantSkills, profile.Skills)
	}
	for i, skill := range wantSkills {
		if profile.Skills[i] != skill {
			t.Fatalf("expected skill %q at %d, got %v", skill, i, profile.Skills)
		}
	}

	wantLanguages := []string{"English", "Spanish"}
	if len(profile.Languages) != len(wantLanguages) {
		t.Fatalf("expected languages %v, got %v", wantLanguages, profile.Languages)
	}
	for i, lang := range wantLanguages {
		if profile.Languages[i] != lang {
			t.Fatalf("expected language %q at %d, got %v", lang, i, profile.Languages)
		}
	}

	if profile.Source != "Resume Upload" {
		t.Fatalf("unexpected source: %q", profile.Source)
	}

	// 4 skills (16) + 7 years (28) + Bachelors (12)
	if profile.OverallScore != 56 {
		t.Fatalf("expected overall score 56, got %v", profile.OverallScore)
	}
	// Python 2.0 + React 1.5 + PostgreSQL 1.5 + Git 1.0
	if profile.TechnicalScore != 6 {
		t.Fatalf("expected technical score 6, got %v", profile.TechnicalScore)
	}
}

func TestParseFallsBackToFilenameName(t *testing.T) {
	e := New(taxonomy.Default())
	text := "Resume of a candidate\nContact: someone@example.com\nPython developer with many projects\n"

	profile := e.Parse(text, "mystery.pdf")
	if profile.Name != "Candidate_mystery.pdf" {
		t.Fatalf("expected filename fallback, got %q", profile.Name)
	}
}

func TestExtractNameSkipsHeaderLines(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"John Smith\nEngineer", "John Smith"},
		{"Resume\nJohn Smith\n", "John Smith"},
		{"Curriculum Vitae CV\nMary Jane Watson\n", "Mary Jane Watson"},
		{"john@example.com\nJohn Smith\n", "John Smith"},
		{"Dr. John A. Smith\n", "Dr. John A. Smith"},
		// Single word never qualifies
		{"Madonna\nSinger Songwriter Extraordinaire Deluxe Edition\n", ""},
		// Numbers disqualify a line
		{"John Smith 3rd\nJane Doe\n", "Jane Doe"},
	}

	for _, tc := range cases {
		if got := extractName(tc.text); got != tc.want {
			t.Fatalf("extractName(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestExtractSkillsUsesWordBoundaries(t *testing.T) {
	e := New(taxonomy.Default())

	// Golang must not register the Go skill; Java must not fire inside
	// JavaScript.
	skills := e.extractSkills("Golang developer working on JavaScript services")
	for _, s := range skills {
		if s == "Go" || s == "Java" {
			t.Fatalf("unexpected substring match %q in %v", s, skills)
		}
	}
	if !containsSkill(skills, "JavaScript") {
		t.Fatalf("expected JavaScript in %v", skills)
	}

	skills = e.extractSkills("Java and Go developer")
	if !containsSkill(skills, "Java") || !containsSkill(skills, "Go") {
		t.Fatalf("expected Java and Go in %v", skills)
	}
}

func TestExtractSkillsCapped(t *testing.T) {
	listed := []string{
		"Python", "Java", "JavaScript", "TypeScript", "PHP", "Ruby", "Go",
		"Rust", "Swift", "Kotlin", "Scala", "React", "Angular", "Django",
		"Flask", "Spring", "Laravel", "HTML", "CSS", "PostgreSQL", "MySQL",
		"MongoDB", "Redis",
	}
	e := New(taxonomy.Default())

	skills := e.extractSkills(strings.Join(listed, ", "))
	if len(skills) != candidate.MaxSkills {
		t.Fatalf("expected skill list capped at %d, got %d", candidate.MaxSkills, len(skills))
	}
}

func TestExtractExperienceYears(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"I have 7 years of experience in backend work", 7},
		{"5+ yrs experience with distributed systems", 5},
		{"Experience: 12 years", 12},
		{"3 years in the industry", 3},
		// Explicit statements clamp at the valid maximum
		{"60 years of experience", 50},
		{"no relevant phrasing here", 0},
	}
	for _, tc := range cases {
		if got := extractExperienceYears(tc.text); got != tc.want {
			t.Fatalf("extractExperienceYears(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestExtractExperienceFallsBackToYearSpan(t *testing.T) {
	text := `Jane Doe

Experience
Acme Corp 2015 - 2020
Initech 2012 - 2015

Education
Bachelor of Arts
`
	if got := extractExperienceYears(text); got != 8 {
		t.Fatalf("expected span 2012-2020 = 8, got %d", got)
	}
}

func TestExtractEducationLevelPrefersHighest(t *testing.T) {
	cases := []struct {
		text string
		want candidate.EducationLevel
	}{
		{"PhD in Computer Science, Master of Science", candidate.EducationPhD},
		{"Master of Science and Bachelor of Science", candidate.EducationMasters},
		{"MBA from somewhere", candidate.EducationMasters},
		{"Bachelor of Engineering", candidate.EducationBachelors},
		{"Associate degree in nursing", candidate.EducationAssociates},
		{"High school diploma", candidate.EducationHighSchool},
		{"nothing educational", ""},
	}
	for _, tc := range cases {
		if got := extractEducationLevel(tc.text); got != tc.want {
			t.Fatalf("extractEducationLevel(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestExtractCertifications(t *testing.T) {
	text := "AWS Certified Solutions Architect, PMP, and a CISSP holder"
	certs := extractCertifications(text)

	want := map[string]bool{"AWS Certified": true, "PMP": true, "CISSP": true}
	if len(certs) != len(want) {
		t.Fatalf("expected %d certifications, got %v", len(want), certs)
	}
	for _, c := range certs {
		if !want[c] {
			t.Fatalf("unexpected certification %q in %v", c, certs)
		}
	}
}

func TestTitleCase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"senior software engineer", "Senior Software Engineer"},
		{"SENIOR SOFTWARE ENGINEER", "Senior Software Engineer"},
		{"english", "English"},
		{"  spanish  ", "Spanish"},
	}
	for _, tc := range cases {
		if got := titleCase(tc.in); got != tc.want {
			t.Fatalf("titleCase(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExtractSectionStopsAtNextHeading(t *testing.T) {
	text := "Summary\nGeneralist\nSkills\nPython\nGo\nEducation\nBachelor of Science\n"

	section := extractSection(text, []string{"skills"})
	if !strings.Contains(section, "Python") || !strings.Contains(section, "Go") {
		t.Fatalf("expected section body in %q", section)
	}
	if strings.Contains(section, "Bachelor") {
		t.Fatalf("section leaked past the next heading: %q", section)
	}

	if got := extractSection(text, []string{"projects"}); got != "" {
		t.Fatalf("expected empty section for missing heading, got %q", got)
	}
}

func TestUsableText(t *testing.T) {
	if UsableText("   short   ") {
		t.Fatalf("expected short text to be unusable")
	}
	long := strings.Repeat("a", MinTextLength)
	if !UsableText(long) {
		t.Fatalf("expected %d chars to be usable", MinTextLength)
	}
	if UsableText("  " + strings.Repeat("a", MinTextLength-1) + "  ") {
		t.Fatalf("trailing whitespace must not count toward the minimum")
	}
}

func TestOverallScoreBlend(t *testing.T) {
	tenSkills := make([]string, 10)
	for i := range tenSkills {
		tenSkills[i] = "Skill"
	}

	if got := overallScore(tenSkills, 10, candidate.EducationPhD); got != 100 {
		t.Fatalf("expected maxed score 100, got %v", got)
	}
	if got := overallScore(nil, 0, ""); got != 0 {
		t.Fatalf("expected zero score, got %v", got)
	}
	// 5 skills (20) + 5 years (20) + Masters (16)
	if got := overallScore(tenSkills[:5], 5, candidate.EducationMasters); got != 56 {
		t.Fatalf("expected 56, got %v", got)
	}
}

func containsSkill(skills []string, target string) bool {
	for _, s := range skills {
		if s == target {
			return true
		}
	}
	return false
}
