package candidateapi

import (
	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/iam/auth"
	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/candidate"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/candidate/candidatesrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for candidate operations
type Handlers struct {
	service *candidatesrv.Service
}

// NewHandlers creates a new candidate handlers instance
func NewHandlers(service *candidatesrv.Service) *Handlers {
	return &Handlers{service: service}
}

// GetCandidateByID retrieves a candidate by ID
// GET /api/candidates/:id
func (h *Handlers) GetCandidateByID(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return candidate.ErrCandidateNotFound().WithDetail("id", "missing or empty")
	}

	profile, err := h.service.GetByID(c.Context(), candidateID)
	if err != nil {
		return err
	}

	return c.JSON(profile.ToResponse())
}

// GetCandidateByEmail retrieves a candidate by email
// GET /api/candidates/by-email/:email
func (h *Handlers) GetCandidateByEmail(c *fiber.Ctx) error {
	email := kernel.Email(c.Params("email"))

	profile, err := h.service.GetByEmail(c.Context(), email)
	if err != nil {
		return err
	}

	return c.JSON(profile.ToResponse())
}

// SearchCandidates lists candidates by optional criteria
// POST /api/candidates/search
func (h *Handlers) SearchCandidates(c *fiber.Ctx) error {
	var req candidate.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidSearchFilter().WithDetail("parse_error", err.Error())
	}
	if req.Pagination.PageSize == 0 {
		req.Pagination = parsePaginationOptions(c)
	}

	page, err := h.service.Search(c.Context(), req)
	if err != nil {
		return err
	}

	responses := make([]*candidate.Response, 0, len(page.Items))
	for i := range page.Items {
		responses = append(responses, page.Items[i].ToResponse())
	}

	return c.JSON(fiber.Map{
		"items": responses,
		"page":  page.Page,
		"empty": page.Empty,
	})
}

func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	// Ensure valid values
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return kernel.PaginationOptions{
		Page:     page,
		PageSize: pageSize,
	}
}

// RegisterRoutes registers all candidate routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.UnifiedAuthMiddleware) {
	api := app.Group("/api/candidates")

	api.Get("/by-email/:email",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesRead),
		handlers.GetCandidateByEmail,
	)

	api.Get("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesRead),
		handlers.GetCandidateByID,
	)

	api.Post("/search",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesRead),
		handlers.SearchCandidates,
	)
}
