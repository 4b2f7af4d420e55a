package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/imprenta-pro/internal/application/crm"
	"github.com/tu-usuario/imprenta-pro/internal/application/dto"
)

// QuoteHandler maneja las cotizaciones.
type QuoteHandler struct {
	uc *crm.QuoteUseCase
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(uc *crm.QuoteUseCase) *QuoteHandler {
	return &QuoteHandler{uc: uc}
}

// Create registra una cotización en borrador.
// POST /api/quotes
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	quote, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(quote)
}

// GetByID obtiene una cotización con sus líneas.
// GET /api/quotes/:id
func (h *QuoteHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "id")
	}
	quote, err := h.uc.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(quote)
}

// ListByClient lista las cotizaciones de un cliente.
// GET /api/quotes?client_id=...
func (h *QuoteHandler) ListByClient(c *fiber.Ctx) error {
	clientID := c.Query("client_id")
	if clientID == "" {
		return missingParam(c, "client_id")
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	quotes, err := h.uc.ListByClient(clientID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(quotes)
}

// Send marca la cotización como enviada.
// POST /api/quotes/:id/send
func (h *QuoteHandler) Send(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "id")
	}
	quote, err := h.uc.Send(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(quote)
}

// Accept acepta la cotización y abre el trabajo de producción.
// POST /api/quotes/:id/accept
func (h *QuoteHandler) Accept(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "id")
	}
	resp, err := h.uc.Accept(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Reject rechaza la cotización.
// POST /api/quotes/:id/reject
func (h *QuoteHandler) Reject(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "id")
	}
	quote, err := h.uc.Reject(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(quote)
}
