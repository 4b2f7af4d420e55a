package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/imprenta-pro/internal/application/dto"
	"github.com/tu-usuario/imprenta-pro/internal/application/production"
)

// JobHandler maneja los trabajos de producción.
type JobHandler struct {
	uc *production.JobUseCase
}

// NewJobHandler construye el handler.
func NewJobHandler(uc *production.JobUseCase) *JobHandler {
	return &JobHandler{uc: uc}
}

// Create registra un trabajo.
// POST /api/jobs
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateJobRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	job, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

// GetByID obtiene un trabajo.
// GET /api/jobs/:id
func (h *JobHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "id")
	}
	job, err := h.uc.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(job)
}

// ListByStatus lista trabajos por estado.
// GET /api/jobs?status=...
func (h *JobHandler) ListByStatus(c *fiber.Ctx) error {
	status := c.Query("status")
	if status == "" {
		return missingParam(c, "status")
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	jobs, err := h.uc.ListByStatus(status, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(jobs)
}

// UpdateStatus transiciona el estado de un trabajo.
// PATCH /api/jobs/:id/status
func (h *JobHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "id")
	}
	var in dto.UpdateJobStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	job, err := h.uc.UpdateStatus(id, in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(job)
}

// UpdateProgress registra el avance de un trabajo.
// PATCH /api/jobs/:id/progress
func (h *JobHandler) UpdateProgress(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "id")
	}
	var in dto.UpdateJobProgressRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	job, err := h.uc.UpdateProgress(id, in.Progress)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(job)
}

// Assign asigna el trabajo a un usuario de producción.
// PATCH /api/jobs/:id/assignee
func (h *JobHandler) Assign(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "id")
	}
	var in struct {
		AssigneeID string `json:"assignee_id"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	job, err := h.uc.Assign(id, in.AssigneeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(job)
}

// ScanDeadlines dispara el barrido de vencimientos próximos.
// POST /api/jobs/deadline-scan
func (h *JobHandler) ScanDeadlines(c *fiber.Ctx) error {
	emitted, err := h.uc.ScanDeadlines(time.Now())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"alerts_emitted": emitted})
}
