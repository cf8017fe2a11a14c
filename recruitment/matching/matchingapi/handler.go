package matchingapi

import (
	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/iam/auth"
	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/matching"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/matching/matchingsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for matching operations
type Handlers struct {
	engine *matchingsrv.Engine
}

// NewHandlers creates a new matching handlers instance
func NewHandlers(engine *matchingsrv.Engine) *Handlers {
	return &Handlers{engine: engine}
}

// RankRequest tunes a ranking run.
type RankRequest struct {
	MinScore float64 `json:"min_score"`
	Limit    int     `json:"limit"`
}

// RankCandidates scores the eligible pool for a job and stores the results
// POST /api/matches/jobs/:id/rank
func (h *Handlers) RankCandidates(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID == "" {
		return matching.ErrInvalidRequest().WithDetail("id", "missing or empty")
	}

	req := RankRequest{MinScore: 0.5, Limit: 50}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return matching.ErrInvalidRequest().WithDetail("parse_error", err.Error())
		}
	}

	results, err := h.engine.Rank(c.Context(), jobID, req.MinScore, req.Limit)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"job_id":  jobID,
		"count":   len(results),
		"matches": results,
	})
}

// GetTopMatches returns previously ranked results for a job
// GET /api/matches/jobs/:id/top
func (h *Handlers) GetTopMatches(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID == "" {
		return matching.ErrInvalidRequest().WithDetail("id", "missing or empty")
	}

	limit := c.QueryInt("limit", 10)
	results, err := h.engine.TopMatches(c.Context(), jobID, limit)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"job_id":  jobID,
		"count":   len(results),
		"matches": results,
	})
}

// RegisterRoutes registers all matching routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	api := app.Group("/api/matches")

	api.Post("/jobs/:id/rank",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeMatchesRun),
		handlers.RankCandidates,
	)

	api.Get("/jobs/:id/top",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeMatchesRead),
		handlers.GetTopMatches,
	)
}
