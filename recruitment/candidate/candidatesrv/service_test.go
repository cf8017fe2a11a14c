package candidatesrv

import (
	"context"
	"testing"

	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/candidate"
)

type fakeRepo struct {
	byID       map[kernel.CandidateID]*candidate.CandidateProfile
	searchReqs []candidate.SearchRequest
}

func (f *fakeRepo) Create(ctx context.Context, profile *candidate.CandidateProfile) (kernel.CandidateID, error) {
	return profile.ID, nil
}

func (f *fakeRepo) CreateBulk(ctx context.Context, profiles []*candidate.CandidateProfile) ([]kernel.CandidateID, error) {
	return nil, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id kernel.CandidateID) (*candidate.CandidateProfile, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, candidate.ErrCandidateNotFound()
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email kernel.Email) (*candidate.CandidateProfile, error) {
	for _, p := range f.byID {
		if p.Email.Normalize() == email.Normalize() {
			return p, nil
		}
	}
	return nil, candidate.ErrCandidateNotFound()
}

func (f *fakeRepo) GetPool(ctx context.Context, jobID kernel.JobID, filters candidate.PoolFilters) ([]*candidate.CandidateProfile, error) {
	return nil, nil
}

func (f *fakeRepo) Search(ctx context.Context, req candidate.SearchRequest) (*kernel.Paginated[candidate.CandidateProfile], error) {
	f.searchReqs = append(f.searchReqs, req)
	return kernel.NewPaginated([]candidate.CandidateProfile{}, req.Pagination, 0), nil
}

func intPtr(v int) *int { return &v }

func TestGetByIDRejectsEmptyID(t *testing.T) {
	svc := NewService(&fakeRepo{})

	if _, err := svc.GetByID(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestGetByIDDelegates(t *testing.T) {
	profile := &candidate.CandidateProfile{ID: "cand-1", Name: "Jane Doe", Email: "jane@example.com"}
	repo := &fakeRepo{byID: map[kernel.CandidateID]*candidate.CandidateProfile{"cand-1": profile}}
	svc := NewService(repo)

	got, err := svc.GetByID(context.Background(), "cand-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Jane Doe" {
		t.Fatalf("unexpected profile: %+v", got)
	}

	if _, err := svc.GetByID(context.Background(), "cand-2"); err == nil {
		t.Fatalf("expected not-found error")
	}
}

func TestGetByEmailValidates(t *testing.T) {
	profile := &candidate.CandidateProfile{ID: "cand-1", Email: "jane@example.com"}
	repo := &fakeRepo{byID: map[kernel.CandidateID]*candidate.CandidateProfile{"cand-1": profile}}
	svc := NewService(repo)

	if _, err := svc.GetByEmail(context.Background(), "not-an-email"); err == nil {
		t.Fatalf("expected error for malformed email")
	}

	got, err := svc.GetByEmail(context.Background(), "Jane@Example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "cand-1" {
		t.Fatalf("unexpected profile: %+v", got)
	}
}

func TestSearchValidatesFilters(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	cases := []struct {
		name string
		req  candidate.SearchRequest
	}{
		{"negative min", candidate.SearchRequest{ExperienceMin: intPtr(-1)}},
		{"negative max", candidate.SearchRequest{ExperienceMax: intPtr(-5)}},
		{"inverted range", candidate.SearchRequest{ExperienceMin: intPtr(10), ExperienceMax: intPtr(5)}},
		{"unknown education", candidate.SearchRequest{EducationLevel: "Bootcamp"}},
	}
	for _, tc := range cases {
		if _, err := svc.Search(context.Background(), tc.req); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
	if len(repo.searchReqs) != 0 {
		t.Fatalf("invalid filters must not reach the repository")
	}

	req := candidate.SearchRequest{
		Skill:          "Python",
		ExperienceMin:  intPtr(2),
		ExperienceMax:  intPtr(8),
		EducationLevel: candidate.EducationBachelors,
		Pagination:     kernel.DefaultPagination(),
	}
	if _, err := svc.Search(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.searchReqs) != 1 {
		t.Fatalf("expected search delegated once, got %d", len(repo.searchReqs))
	}
}
