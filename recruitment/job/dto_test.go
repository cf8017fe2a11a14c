package job

import (
	"testing"

	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/candidate"
)

func intPtr(v int) *int { return &v }

func TestCreateJobRequestValidate(t *testing.T) {
	valid := func() CreateJobRequest {
		return CreateJobRequest{
			Title:          "Backend Engineer",
			RequiredSkills: []string{"Go"},
			ExperienceMin:  2,
			ExperienceMax:  intPtr(8),
			SalaryMin:      intPtr(90000),
			SalaryMax:      intPtr(130000),
		}
	}

	if err := (&CreateJobRequest{Title: "Engineer"}).Validate(); err != nil {
		t.Fatalf("minimal request should validate: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*CreateJobRequest)
	}{
		{"blank title", func(r *CreateJobRequest) { r.Title = "   " }},
		{"negative experience", func(r *CreateJobRequest) { r.ExperienceMin = -1 }},
		{"inverted experience range", func(r *CreateJobRequest) { r.ExperienceMax = intPtr(1) }},
		{"inverted salary band", func(r *CreateJobRequest) { r.SalaryMin = intPtr(200000) }},
		{"unknown education level", func(r *CreateJobRequest) { r.EducationRequirement = "Bootcamp" }},
	}
	for _, tc := range cases {
		req := valid()
		tc.mutate(&req)
		if err := req.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}

	req := valid()
	req.EducationRequirement = candidate.EducationBachelors
	if err := req.Validate(); err != nil {
		t.Fatalf("known education level should validate: %v", err)
	}
}

func TestCreateJobRequestToDomain(t *testing.T) {
	req := CreateJobRequest{
		Title:          "  Backend Engineer  ",
		RequiredSkills: []string{"Go", "PostgreSQL"},
		ExperienceMin:  2,
		Location:       "Austin, TX",
		RemoteOK:       true,
	}

	posting := req.ToDomain()
	if posting.Title != "Backend Engineer" {
		t.Fatalf("expected trimmed title, got %q", posting.Title)
	}
	if posting.Status != StatusPublished {
		t.Fatalf("new postings should publish immediately, got %q", posting.Status)
	}
	if posting.Location.String() != "Austin, TX" {
		t.Fatalf("unexpected location: %q", posting.Location)
	}
	if !posting.RequiresSkills() {
		t.Fatalf("expected skill requirements")
	}
}

func TestExperienceInRange(t *testing.T) {
	bounded := &JobRequirement{ExperienceMin: 3, ExperienceMax: intPtr(6)}
	open := &JobRequirement{ExperienceMin: 3}

	cases := []struct {
		posting *JobRequirement
		years   int
		want    bool
	}{
		{bounded, 2, false},
		{bounded, 3, true},
		{bounded, 6, true},
		{bounded, 7, false},
		{open, 3, true},
		{open, 40, true},
		{open, 2, false},
	}
	for _, tc := range cases {
		if got := tc.posting.ExperienceInRange(tc.years); got != tc.want {
			t.Fatalf("ExperienceInRange(%d) = %v, want %v", tc.years, got, tc.want)
		}
	}
}
