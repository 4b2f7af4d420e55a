package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/imprenta-pro/internal/application/dto"
	"github.com/tu-usuario/imprenta-pro/internal/application/production"
)

// DeliveryHandler maneja las entregas registradas por recepción.
type DeliveryHandler struct {
	uc *production.DeliveryUseCase
}

// NewDeliveryHandler construye el handler.
func NewDeliveryHandler(uc *production.DeliveryUseCase) *DeliveryHandler {
	return &DeliveryHandler{uc: uc}
}

// Record registra una entrega.
// POST /api/deliveries
func (h *DeliveryHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	record, err := h.uc.Record(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// ListByJob lista las entregas de un trabajo.
// GET /api/jobs/:id/deliveries
func (h *DeliveryHandler) ListByJob(c *fiber.Ctx) error {
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

// ListByVendor lista las entregas de un proveedor.
// GET /api/deliveries?vendor_id=...
func (h *DeliveryHandler) ListByVendor(c *fiber.Ctx) error {
	vendorID := c.Query("vendor_id")
	if own := GetVendorID(c); own != "" {
		vendorID = own
	}
	if vendorID == "" {
		return missingParam(c, "vendor_id")
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	list, err := h.uc.ListByVendor(vendorID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
