package auth

// ============================================================================
// DOMAIN-SPECIFIC SCOPES - ATS (Applicant Tracking System)
// ============================================================================

const (
	// Job scopes
	ScopeJobsAll   = "jobs:*"
	ScopeJobsRead  = "jobs:read"
	ScopeJobsWrite = "jobs:write"

	// Candidate scopes
	ScopeCandidatesAll    = "candidates:*"
	ScopeCandidatesRead   = "candidates:read"
	ScopeCandidatesImport = "candidates:import"

	// Match scopes
	ScopeMatchesAll  = "matches:*"
	ScopeMatchesRead = "matches:read"
	ScopeMatchesRun  = "matches:run"

	// Ingestion scopes
	ScopeIngestAll   = "ingest:*"
	ScopeIngestRead  = "ingest:read"
	ScopeIngestWrite = "ingest:write"
)

// ScopeGroups defines role groupings used when minting tokens.
var ScopeGroups = map[string][]string{
	"recruiter": {
		ScopeJobsRead,
		ScopeJobsWrite,
		ScopeCandidatesAll,
		ScopeMatchesAll,
		ScopeIngestAll,
	},
	"hiring_manager": {
		ScopeJobsRead,
		ScopeCandidatesRead,
		ScopeMatchesRead,
	},
	"pipeline_operator": {
		ScopeCandidatesImport,
		ScopeIngestAll,
	},
}

// scopeAllows reports whether a granted scope satisfies a required one,
// honoring the "<resource>:*" wildcard.
func scopeAllows(granted, required string) bool {
	if granted == required {
		return true
	}
	if len(granted) > 2 && granted[len(granted)-2:] == ":*" {
		prefix := granted[:len(granted)-1]
		return len(required) > len(prefix) && required[:len(prefix)] == prefix
	}
	return false
}
