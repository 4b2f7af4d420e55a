package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/imprenta-pro/internal/application/billing"
	"github.com/tu-usuario/imprenta-pro/internal/application/dto"
)

// PurchaseOrderHandler maneja las órdenes de compra.
type PurchaseOrderHandler struct {
	uc *billing.PurchaseOrderUseCase
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(uc *billing.PurchaseOrderUseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc}
}

// Create emite una orden de compra a un proveedor activo.
// POST /api/purchase-orders
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	po, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(po)
}

// GetByID obtiene una orden de compra.
// GET /api/purchase-orders/:id
func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "id")
	}
	po, err := h.uc.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(po)
}

// ListByVendor lista las órdenes de un proveedor. Los usuarios de proveedor
// solo ven las suyas.
// GET /api/purchase-orders?vendor_id=...
func (h *PurchaseOrderHandler) ListByVendor(c *fiber.Ctx) error {
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
	orders, err := h.uc.ListByVendor(vendorID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}
