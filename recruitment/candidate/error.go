package candidate

import (
	"net/http"

	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("CANDIDATE")

var (
	CodeCandidateNotFound   = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Candidate not found")
	CodeDuplicateEmail      = ErrRegistry.Register("DUPLICATE_EMAIL", errx.TypeConflict, http.StatusConflict, "Duplicate email address")
	CodeInvalidProfileData  = ErrRegistry.Register("INVALID_DATA", errx.TypeValidation, http.StatusBadRequest, "Invalid candidate data")
	CodeStorageFailed       = ErrRegistry.Register("STORAGE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to store candidate")
	CodeBulkStorageFailed   = ErrRegistry.Register("BULK_STORAGE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to store candidate batch")
	CodePoolFetchFailed     = ErrRegistry.Register("POOL_FETCH_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to fetch candidate pool")
	CodeInvalidSearchFilter = ErrRegistry.Register("INVALID_FILTER", errx.TypeValidation, http.StatusBadRequest, "Invalid search filter")
)

func ErrCandidateNotFound() *errx.Error {
	return ErrRegistry.New(CodeCandidateNotFound)
}

func ErrDuplicateEmail() *errx.Error {
	return ErrRegistry.New(CodeDuplicateEmail)
}

func ErrInvalidProfileData() *errx.Error {
	return ErrRegistry.New(CodeInvalidProfileData)
}

func ErrStorageFailed() *errx.Error {
	return ErrRegistry.New(CodeStorageFailed)
}

func ErrBulkStorageFailed() *errx.Error {
	return ErrRegistry.New(CodeBulkStorageFailed)
}

func ErrPoolFetchFailed() *errx.Error {
	return ErrRegistry.New(CodePoolFetchFailed)
}

func ErrInvalidSearchFilter() *errx.Error {
	return ErrRegistry.New(CodeInvalidSearchFilter)
}
