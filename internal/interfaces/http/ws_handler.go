package http

import (
	"encoding/json"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/imprenta-pro/internal/application/access"
	"github.com/tu-usuario/imprenta-pro/internal/application/production"
	"github.com/tu-usuario/imprenta-pro/internal/realtime"
	"github.com/tu-usuario/imprenta-pro/pkg/jwt"
	"github.com/tu-usuario/imprenta-pro/pkg/logger"
)

// Mensajes entrantes aceptados por los canales.
const (
	wsMsgStatusUpdate   = "status_update"
	wsMsgProgressUpdate = "progress_update"
	wsMsgCommentAdded   = "comment_added"
)

// wsInbound sobre de los mensajes que envía el navegador.
type wsInbound struct {
	Type     string `json:"type"`
	Status   string `json:"status,omitempty"`
	Progress int    `json:"progress,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

// WSHandler maneja los canales WebSocket. El chequeo de acceso ocurre antes de
// unirse al tópico; un cliente sin acceso recibe el cierre sin detalle del
// motivo, igual que un recurso inexistente.
type WSHandler struct {
	hub     *realtime.Hub
	checker *access.Checker
	jobs    *production.JobUseCase
	subs    *production.SubstitutionUseCase
	log     *logger.Logger
}

// NewWSHandler construye el handler.
func NewWSHandler(
	hub *realtime.Hub,
	checker *access.Checker,
	jobs *production.JobUseCase,
	subs *production.SubstitutionUseCase,
	log *logger.Logger,
) *WSHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &WSHandler{hub: hub, checker: checker, jobs: jobs, subs: subs, log: log}
}

// Upgrade autentica con el token de query (los navegadores no mandan headers
// en el handshake WS) y permite el upgrade. Sin token válido no hay upgrade.
func Upgrade(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		claims, err := jwt.Parse(jwtSecret, c.Query("token"))
		if err != nil {
			return fiber.ErrUnauthorized
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalVendorID, claims.VendorID)
		return c.Next()
	}
}

func identityFromConn(c *websocket.Conn) access.Identity {
	str := func(key string) string {
		s, _ := c.Locals(key).(string)
		return s
	}
	return access.Identity{
		UserID:   str(LocalUserID),
		Role:     str(LocalRole),
		VendorID: str(LocalVendorID),
	}
}

// Job es el canal de un trabajo: snapshot inicial, difusión de cambios y
// mensajes entrantes de estado/avance.
// GET /ws/jobs/:id
func (h *WSHandler) Job() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		jobID := c.Params("id")
		id := identityFromConn(c)
		if !h.checker.CanViewJob(id, jobID) {
			_ = c.Close()
			return
		}

		snapshot, err := h.jobs.Get(jobID)
		if err != nil {
			_ = c.Close()
			return
		}

		sub := h.hub.Subscribe(realtime.JobTopic(jobID))
		defer h.hub.Unsubscribe(sub)

		if err := c.WriteJSON(realtime.NewEvent(realtime.EventJobSnapshot, map[string]any{"job": snapshot})); err != nil {
			return
		}

		go h.readJobMessages(c, sub, jobID)
		h.relay(c, sub)
	})
}

// Dashboard es el canal del tablero de un usuario. Solo recibe.
// GET /ws/dashboards/:kind/:userID
func (h *WSHandler) Dashboard() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		kind := c.Params("kind")
		userID := c.Params("userID")
		id := identityFromConn(c)
		if !h.checker.CanViewDashboard(id, userID) {
			_ = c.Close()
			return
		}

		sub := h.hub.Subscribe(realtime.DashboardTopic(kind, userID))
		defer h.hub.Unsubscribe(sub)

		go h.drain(c, sub)
		h.relay(c, sub)
	})
}

// Notifications es el canal personal de notificaciones. Solo recibe, y solo
// el propio usuario puede unirse.
// GET /ws/notifications
func (h *WSHandler) Notifications() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		id := identityFromConn(c)
		if id.UserID == "" {
			_ = c.Close()
			return
		}

		sub := h.hub.Subscribe(realtime.NotificationTopic(id.UserID))
		defer h.hub.Unsubscribe(sub)

		go h.drain(c, sub)
		h.relay(c, sub)
	})
}

// Substitution es el canal de una sustitución: decisiones y comentarios.
// GET /ws/substitutions/:id
func (h *WSHandler) Substitution() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		substitutionID := c.Params("id")
		id := identityFromConn(c)
		if !h.checker.CanViewSubstitution(id, substitutionID) {
			_ = c.Close()
			return
		}

		sub := h.hub.Subscribe(realtime.SubstitutionTopic(substitutionID))
		defer h.hub.Unsubscribe(sub)

		go h.readSubstitutionMessages(c, sub, substitutionID, id.UserID)
		h.relay(c, sub)
	})
}

// relay reenvía al socket los eventos del tópico hasta que la suscripción se
// cierre. El goroutine lector retira la suscripción al detectar la
// desconexión, lo que cierra el canal y termina este bucle aunque el tópico
// esté en silencio.
func (h *WSHandler) relay(c *websocket.Conn, sub *realtime.Subscription) {
	for event := range sub.C() {
		if err := c.WriteJSON(event); err != nil {
			return
		}
	}
}

// drain consume mensajes entrantes de canales de solo lectura para detectar
// el cierre del socket y retirar la suscripción.
func (h *WSHandler) drain(c *websocket.Conn, sub *realtime.Subscription) {
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			_ = c.Close()
			h.hub.Unsubscribe(sub)
			return
		}
	}
}

func (h *WSHandler) readJobMessages(c *websocket.Conn, sub *realtime.Subscription, jobID string) {
	for {
		_, raw, err := c.ReadMessage()
		if err != nil {
			_ = c.Close()
			h.hub.Unsubscribe(sub)
			return
		}
		var msg wsInbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case wsMsgStatusUpdate:
			if _, err := h.jobs.UpdateStatus(jobID, msg.Status); err != nil {
				h.log.Warn().Err(err).Str("job_id", jobID).Msg("status_update rechazado")
			}
		case wsMsgProgressUpdate:
			if _, err := h.jobs.UpdateProgress(jobID, msg.Progress); err != nil {
				h.log.Warn().Err(err).Str("job_id", jobID).Msg("progress_update rechazado")
			}
		}
	}
}

func (h *WSHandler) readSubstitutionMessages(c *websocket.Conn, sub *realtime.Subscription, substitutionID, userID string) {
	for {
		_, raw, err := c.ReadMessage()
		if err != nil {
			_ = c.Close()
			h.hub.Unsubscribe(sub)
			return
		}
		var msg wsInbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		if msg.Type != wsMsgCommentAdded {
			continue
		}
		if err := h.subs.AddComment(substitutionID, userID, msg.Comment); err != nil {
			h.log.Warn().Err(err).Str("substitution_id", substitutionID).Msg("comment_added rechazado")
		}
	}
}
