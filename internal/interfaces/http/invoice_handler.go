package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/imprenta-pro/internal/application/billing"
	"github.com/tu-usuario/imprenta-pro/internal/application/dto"
)

// InvoiceHandler maneja las facturas de proveedor: registro, revisión,
// aprobación y exportaciones.
type InvoiceHandler struct {
	submit *billing.SubmitInvoiceUseCase
	review *billing.ReviewInvoiceUseCase
	export *billing.ExportInvoiceUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(
	submit *billing.SubmitInvoiceUseCase,
	review *billing.ReviewInvoiceUseCase,
	export *billing.ExportInvoiceUseCase,
) *InvoiceHandler {
	return &InvoiceHandler{submit: submit, review: review, export: export}
}

// Submit registra una factura contra una orden de compra. Los usuarios de
// proveedor siempre facturan a nombre de su propio proveedor.
// POST /api/invoices
func (h *InvoiceHandler) Submit(c *fiber.Ctx) error {
	vendorID := GetVendorID(c)
	if vendorID == "" {
		vendorID = c.Query("vendor_id")
	}
	if vendorID == "" {
		return missingParam(c, "vendor_id")
	}
	var in dto.SubmitInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	invoice, err := h.submit.Submit(c.Context(), vendorID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// GetByID obtiene una factura con sus líneas.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "id")
	}
	invoice, err := h.review.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// ListByVendor lista las facturas de un proveedor.
// GET /api/invoices?vendor_id=...
func (h *InvoiceHandler) ListByVendor(c *fiber.Ctx) error {
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
	invoices, err := h.review.ListByVendor(c.Context(), vendorID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoices)
}

// Validate corre la validación y devuelve el reporte con todos los defectos.
// POST /api/invoices/:id/validate
func (h *InvoiceHandler) Validate(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "id")
	}
	report, err := h.review.Validate(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// Approve autoriza para pago una factura validada (revalida antes de aprobar).
// POST /api/invoices/:id/approve
func (h *InvoiceHandler) Approve(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "id")
	}
	report, err := h.review.Approve(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// ExportXML descarga el XML de intercambio contable de una factura aprobada.
// GET /api/invoices/:id/export.xml
func (h *InvoiceHandler) ExportXML(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "id")
	}
	out, err := h.export.ExportXML(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="invoice-`+id+`.xml"`)
	return c.Send(out)
}

// ReportPDF descarga el reporte de revisión en PDF.
// GET /api/invoices/:id/report.pdf
func (h *InvoiceHandler) ReportPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "id")
	}
	out, err := h.export.ReportPDF(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="invoice-`+id+`.pdf"`)
	return c.Send(out)
}
