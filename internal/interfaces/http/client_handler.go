package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/imprenta-pro/internal/application/crm"
	"github.com/tu-usuario/imprenta-pro/internal/application/dto"
)

// ClientHandler maneja los clientes de la imprenta.
type ClientHandler struct {
	uc *crm.ClientUseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *crm.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create registra un cliente; el account manager autenticado queda asignado.
// POST /api/clients
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	client, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// GetByID obtiene un cliente.
// GET /api/clients/:id
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "id")
	}
	client, err := h.uc.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(client)
}

// List lista clientes.
// GET /api/clients
func (h *ClientHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	clients, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(clients)
}
