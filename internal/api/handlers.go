package api

import (
	"strconv"
	"time"

	"github.com/emlakpress/contentd/internal/apperrors"
	"github.com/emlakpress/contentd/internal/models"
	"github.com/emlakpress/contentd/internal/pipeline"
	"github.com/emlakpress/contentd/internal/review"
	"github.com/emlakpress/contentd/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

type Handlers struct {
	pipeline *pipeline.Pipeline
	workflow *review.Workflow
	store    store.ContentStore
}

func NewHandlers(p *pipeline.Pipeline, w *review.Workflow, st store.ContentStore) *Handlers {
	return &Handlers{pipeline: p, workflow: w, store: st}
}

func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// GenerateContent handles POST /api/v1/content/generate.
func (h *Handlers) GenerateContent(c *fiber.Ctx) error {
	var req models.ContentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}
	req.Author = actor(c, req.Author)

	rec, err := h.pipeline.Generate(c.Context(), req)
	if err != nil {
		return err
	}
	return created(c, rec)
}

// GetContent handles GET /api/v1/content/:type/:id.
func (h *Handlers) GetContent(c *fiber.Ctx) error {
	ct, err := contentType(c)
	if err != nil {
		return err
	}

	rec, err := h.store.GetByID(c.Context(), ct, c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, rec)
}

// ListPending handles GET /api/v1/content/:type/pending.
func (h *Handlers) ListPending(c *fiber.Ctx) error {
	ct, err := contentType(c)
	if err != nil {
		return err
	}
	page, pageSize := pagination(c)

	records, err := h.workflow.ListPending(c.Context(), ct, page, pageSize)
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{
		"page":      page,
		"page_size": pageSize,
		"items":     records,
	})
}

// Submit handles POST /api/v1/content/:type/:id/submit.
func (h *Handlers) Submit(c *fiber.Ctx) error {
	ct, err := contentType(c)
	if err != nil {
		return err
	}

	rec, err := h.workflow.Submit(c.Context(), ct, c.Params("id"), actor(c, ""))
	if err != nil {
		return err
	}
	return ok(c, rec)
}

type reviewBody struct {
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

// Approve handles POST /api/v1/content/:type/:id/approve.
func (h *Handlers) Approve(c *fiber.Ctx) error {
	ct, err := contentType(c)
	if err != nil {
		return err
	}
	body := parseReviewBody(c)

	rec, err := h.workflow.Approve(c.Context(), ct, c.Params("id"), actor(c, ""), body.Notes)
	if err != nil {
		return err
	}
	return ok(c, rec)
}

// Reject handles POST /api/v1/content/:type/:id/reject.
func (h *Handlers) Reject(c *fiber.Ctx) error {
	ct, err := contentType(c)
	if err != nil {
		return err
	}
	body := parseReviewBody(c)

	rec, err := h.workflow.Reject(c.Context(), ct, c.Params("id"), actor(c, ""), body.Reason, body.Notes)
	if err != nil {
		return err
	}
	return ok(c, rec)
}

// RequestChanges handles POST /api/v1/content/:type/:id/request-changes.
func (h *Handlers) RequestChanges(c *fiber.Ctx) error {
	ct, err := contentType(c)
	if err != nil {
		return err
	}
	body := parseReviewBody(c)

	rec, err := h.workflow.RequestChanges(c.Context(), ct, c.Params("id"), actor(c, ""), body.Notes)
	if err != nil {
		return err
	}
	return ok(c, rec)
}

func parseReviewBody(c *fiber.Ctx) reviewBody {
	var body reviewBody
	// Review bodies are optional; submit/approve without a body is valid.
	_ = c.BodyParser(&body)
	return body
}

func contentType(c *fiber.Ctx) (models.ContentType, error) {
	switch ct := models.ContentType(c.Params("type")); ct {
	case models.ContentTypeArticle, models.ContentTypeNews:
		return ct, nil
	default:
		return "", apperrors.Validation("unknown content type %q", c.Params("type"))
	}
}

func pagination(c *fiber.Ctx) (int, int) {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	switch {
	case pageSize > 100:
		pageSize = 100
	case pageSize <= 0:
		pageSize = 20
	}
	return page, pageSize
}

func actor(c *fiber.Ctx, fallback string) string {
	if a := c.Get("X-Actor"); a != "" {
		return a
	}
	return fallback
}

func ok(c *fiber.Ctx, data interface{}) error {
	return envelope(c, fiber.StatusOK, data)
}

func created(c *fiber.Ctx, data interface{}) error {
	return envelope(c, fiber.StatusCreated, data)
}

func envelope(c *fiber.Ctx, status int, data interface{}) error {
	id, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
	return c.Status(status).JSON(fiber.Map{
		"success":   true,
		"requestId": id,
		"data":      data,
	})
}
