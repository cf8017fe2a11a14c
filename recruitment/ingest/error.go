package ingest

import (
	"net/http"

	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("INGEST")

var (
	CodeLengthMismatch = ErrRegistry.Register("LENGTH_MISMATCH", errx.TypeValidation, http.StatusBadRequest, "Mismatched files and filenames lengths")
	CodeEmptyBatch     = ErrRegistry.Register("EMPTY_BATCH", errx.TypeValidation, http.StatusBadRequest, "Batch contains no files")
	CodeBatchNotFound  = ErrRegistry.Register("BATCH_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Batch job not found")
	CodeQueueFailed    = ErrRegistry.Register("QUEUE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to enqueue batch")
	CodeStorageFailed  = ErrRegistry.Register("STORAGE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to store batch job")
)

func ErrLengthMismatch() *errx.Error {
	return ErrRegistry.New(CodeLengthMismatch)
}

func ErrEmptyBatch() *errx.Error {
	return ErrRegistry.New(CodeEmptyBatch)
}

func ErrBatchNotFound() *errx.Error {
	return ErrRegistry.New(CodeBatchNotFound)
}

func ErrQueueFailed() *errx.Error {
	return ErrRegistry.New(CodeQueueFailed)
}

func ErrStorageFailed() *errx.Error {
	return ErrRegistry.New(CodeStorageFailed)
}
