package ingestapi

import (
	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/iam/auth"
	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/ingest"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/ingest/ingestsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for bulk ingestion
type Handlers struct {
	service *ingestsrv.Service
}

// NewHandlers creates a new ingestion handlers instance
func NewHandlers(service *ingestsrv.Service) *Handlers {
	return &Handlers{service: service}
}

// BulkRequest carries base64-encoded documents with aligned filenames and
// an optional job to score stored candidates against.
type BulkRequest struct {
	Files     []string `json:"files"`
	FileNames []string `json:"file_names"`
	JobID     string   `json:"job_id,omitempty"`
}

func (r *BulkRequest) jobID() *kernel.JobID {
	if r.JobID == "" {
		return nil
	}
	id := kernel.JobID(r.JobID)
	return &id
}

// ProcessSync runs a batch inline and returns per-item results plus the
// aggregate statistics
// POST /api/ingest/sync
func (h *Handlers) ProcessSync(c *fiber.Ctx) error {
	var req BulkRequest
	if err := c.BodyParser(&req); err != nil {
		return ingest.ErrEmptyBatch().WithDetail("parse_error", err.Error())
	}

	results, stats, err := h.service.ProcessSync(c.Context(), req.Files, req.FileNames, req.jobID())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"results":    results,
		"statistics": stats,
	})
}

// SubmitBatch queues a batch for background processing
// POST /api/ingest/batches
func (h *Handlers) SubmitBatch(c *fiber.Ctx) error {
	var req BulkRequest
	if err := c.BodyParser(&req); err != nil {
		return ingest.ErrEmptyBatch().WithDetail("parse_error", err.Error())
	}

	batch, err := h.service.SubmitBatch(c.Context(), req.Files, req.FileNames, req.jobID())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(batch)
}

// GetBatch returns a batch job's status and, once finished, its results
// GET /api/ingest/batches/:id
func (h *Handlers) GetBatch(c *fiber.Ctx) error {
	batchID := kernel.BatchJobID(c.Params("id"))
	if batchID.IsEmpty() {
		return ingest.ErrBatchNotFound().WithDetail("id", "missing or empty")
	}

	batch, err := h.service.GetBatch(c.Context(), batchID)
	if err != nil {
		return err
	}

	return c.JSON(batch)
}

// GetBatchStatistics returns only the statistics of a finished batch
// GET /api/ingest/batches/:id/statistics
func (h *Handlers) GetBatchStatistics(c *fiber.Ctx) error {
	batchID := kernel.BatchJobID(c.Params("id"))
	if batchID.IsEmpty() {
		return ingest.ErrBatchNotFound().WithDetail("id", "missing or empty")
	}

	batch, err := h.service.GetBatch(c.Context(), batchID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"batch_id":   batch.ID,
		"status":     batch.Status,
		"statistics": batch.Statistics,
	})
}

// GetQueueSize reports how many batches are waiting
// GET /api/ingest/queue/size
func (h *Handlers) GetQueueSize(c *fiber.Ctx) error {
	size, err := h.service.QueueSize(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"size": size})
}

// RegisterRoutes registers all ingestion routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	api := app.Group("/api/ingest")

	api.Post("/sync",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeIngestWrite),
		handlers.ProcessSync,
	)

	api.Post("/batches",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeIngestWrite),
		handlers.SubmitBatch,
	)

	api.Get("/batches/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeIngestRead),
		handlers.GetBatch,
	)

	api.Get("/batches/:id/statistics",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeIngestRead),
		handlers.GetBatchStatistics,
	)

	api.Get("/queue/size",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeIngestRead),
		handlers.GetQueueSize,
	)
}
