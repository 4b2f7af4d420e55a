package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/imprenta-pro/internal/application/analytics"
	"github.com/tu-usuario/imprenta-pro/internal/application/dto"
)

// DashboardHandler expone los contadores agregados y el historial de notificaciones.
type DashboardHandler struct {
	dashboard     *analytics.DashboardUseCase
	notifications *analytics.NotificationUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(dashboard *analytics.DashboardUseCase, notifications *analytics.NotificationUseCase) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, notifications: notifications}
}

// Stats devuelve los contadores de los tableros.
// GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboard.Stats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// ListNotifications lista las notificaciones del usuario autenticado.
// GET /api/notifications
func (h *DashboardHandler) ListNotifications(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	list, err := h.notifications.ListByUser(GetUserID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// MarkNotificationRead marca una notificación propia como leída.
// POST /api/notifications/:id/read
func (h *DashboardHandler) MarkNotificationRead(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "id")
	}
	if err := h.notifications.MarkRead(id, GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
