package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/imprenta-pro/internal/application/dto"
	"github.com/tu-usuario/imprenta-pro/internal/application/usecase"
)

// VendorHandler maneja las peticiones de proveedores (solo roles internos).
type VendorHandler struct {
	uc *usecase.VendorUseCase
}

// NewVendorHandler construye el handler.
func NewVendorHandler(uc *usecase.VendorUseCase) *VendorHandler {
	return &VendorHandler{uc: uc}
}

// Create registra un proveedor.
// POST /api/vendors
func (h *VendorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVendorRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	vendor, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(vendor)
}

// GetByID obtiene un proveedor.
// GET /api/vendors/:id
func (h *VendorHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "id")
	}
	vendor, err := h.uc.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(vendor)
}

// List lista proveedores.
// GET /api/vendors
func (h *VendorHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	vendors, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(vendors)
}

// SetActive activa o desactiva un proveedor.
// PATCH /api/vendors/:id/active
func (h *VendorHandler) SetActive(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "id")
	}
	var in struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	vendor, err := h.uc.SetActive(id, in.Active)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(vendor)
}
