package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/imprenta-pro/internal/application/dto"
	"github.com/tu-usuario/imprenta-pro/internal/application/production"
)

// SubstitutionHandler maneja las solicitudes de sustitución de material.
type SubstitutionHandler struct {
	uc *production.SubstitutionUseCase
}

// NewSubstitutionHandler construye el handler.
func NewSubstitutionHandler(uc *production.SubstitutionUseCase) *SubstitutionHandler {
	return &SubstitutionHandler{uc: uc}
}

// Create registra la propuesta de un proveedor.
// POST /api/substitutions
func (h *SubstitutionHandler) Create(c *fiber.Ctx) error {
	vendorID := GetVendorID(c)
	if vendorID == "" {
		return missingParam(c, "vendor_id")
	}
	var in dto.CreateSubstitutionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	req, err := h.uc.Create(vendorID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

// GetByID obtiene una solicitud.
// GET /api/substitutions/:id
func (h *SubstitutionHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "id")
	}
	req, err := h.uc.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(req)
}

// ListByJob lista las solicitudes de un trabajo.
// GET /api/jobs/:id/substitutions
func (h *SubstitutionHandler) ListByJob(c *fiber.Ctx) error {
	jobID := c.Params("id")
	if jobID == "" {
		return missingParam(c, "id")
	}
	list, err := h.uc.ListByJob(jobID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Approve aprueba una solicitud pendiente.
// POST /api/substitutions/:id/approve
func (h *SubstitutionHandler) Approve(c *fiber.Ctx) error {
	return h.decide(c, h.uc.Approve)
}

// Reject rechaza una solicitud pendiente.
// POST /api/substitutions/:id/reject
func (h *SubstitutionHandler) Reject(c *fiber.Ctx) error {
	return h.decide(c, h.uc.Reject)
}

func (h *SubstitutionHandler) decide(c *fiber.Ctx, fn func(id, decidedBy string) (*dto.SubstitutionResponse, error)) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "id")
	}
	req, err := fn(id, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(req)
}
