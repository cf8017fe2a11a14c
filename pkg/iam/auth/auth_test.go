package auth

import (
	"testing"
	"time"
)

func TestScopeAllows(t *testing.T) {
	cases := []struct {
		granted  string
		required string
		want     bool
	}{
		{"jobs:read", "jobs:read", true},
		{"jobs:read", "jobs:write", false},
		{"jobs:*", "jobs:read", true},
		{"jobs:*", "jobs:write", true},
		{"jobs:*", "candidates:read", false},
		{"jobs:read", "jobs:*", false},
		{"ingest:*", "ingest:write", true},
		{"", "jobs:read", false},
	}
	for _, tc := range cases {
		if got := scopeAllows(tc.granted, tc.required); got != tc.want {
			t.Fatalf("scopeAllows(%q, %q) = %v, want %v", tc.granted, tc.required, got, tc.want)
		}
	}
}

func TestAuthContextHasScope(t *testing.T) {
	ctx := &AuthContext{
		Subject: "user-1",
		Scopes:  []string{ScopeJobsRead, ScopeIngestAll},
	}

	if !ctx.HasScope(ScopeJobsRead) {
		t.Fatalf("expected direct scope grant")
	}
	if !ctx.HasScope(ScopeIngestWrite) {
		t.Fatalf("expected wildcard scope grant")
	}
	if ctx.HasScope(ScopeMatchesRun) {
		t.Fatalf("did not expect matches:run grant")
	}
}

func TestScopeGroupsCoverTheirRoutes(t *testing.T) {
	recruiter := &AuthContext{Scopes: ScopeGroups["recruiter"]}
	for _, scope := range []string{
		ScopeJobsRead, ScopeJobsWrite, ScopeCandidatesRead,
		ScopeMatchesRun, ScopeIngestWrite,
	} {
		if !recruiter.HasScope(scope) {
			t.Fatalf("recruiter missing %s", scope)
		}
	}

	hiringManager := &AuthContext{Scopes: ScopeGroups["hiring_manager"]}
	if !hiringManager.HasScope(ScopeMatchesRead) {
		t.Fatalf("hiring manager should read matches")
	}
	if hiringManager.HasScope(ScopeIngestWrite) || hiringManager.HasScope(ScopeJobsWrite) {
		t.Fatalf("hiring manager must be read-only")
	}

	operator := &AuthContext{Scopes: ScopeGroups["pipeline_operator"]}
	if !operator.HasScope(ScopeIngestWrite) || !operator.HasScope(ScopeCandidatesImport) {
		t.Fatalf("pipeline operator missing ingestion scopes")
	}
	if operator.HasScope(ScopeJobsWrite) {
		t.Fatalf("pipeline operator must not write jobs")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "test-issuer", time.Hour)

	token, err := svc.Generate("user-42", []string{ScopeJobsRead})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "user-42" {
		t.Fatalf("unexpected subject: %q", claims.Subject)
	}
	if len(claims.Scopes) != 1 || claims.Scopes[0] != ScopeJobsRead {
		t.Fatalf("unexpected scopes: %v", claims.Scopes)
	}
}

func TestJWTRejectsBadTokens(t *testing.T) {
	svc := NewJWTService("test-secret", "test-issuer", time.Hour)

	if _, err := svc.Validate("not-a-token"); err == nil {
		t.Fatalf("expected error for malformed token")
	}

	// Token signed with a different secret
	other := NewJWTService("other-secret", "test-issuer", time.Hour)
	token, err := other.Generate("user-42", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Validate(token); err == nil {
		t.Fatalf("expected error for wrong signature")
	}

	// Token from a different issuer
	foreign := NewJWTService("test-secret", "someone-else", time.Hour)
	token, err = foreign.Generate("user-42", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Validate(token); err == nil {
		t.Fatalf("expected error for wrong issuer")
	}
}

func TestJWTRejectsExpiredTokens(t *testing.T) {
	svc := NewJWTService("test-secret", "test-issuer", -time.Minute)

	token, err := svc.Generate("user-42", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Validate(token); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestAPIKeyValidation(t *testing.T) {
	hash, err := HashKey("super-secret-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc := NewAPIKeyService()
	svc.RegisterKey("pipeline", hash, ScopeGroups["pipeline_operator"])

	claims, err := svc.Validate("super-secret-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "apikey:pipeline" {
		t.Fatalf("unexpected subject: %q", claims.Subject)
	}
	if len(claims.Scopes) == 0 {
		t.Fatalf("expected scopes on API key claims")
	}

	if _, err := svc.Validate("wrong-key"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}
