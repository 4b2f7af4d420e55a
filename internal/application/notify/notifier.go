// Package notify implementa el productor de notificaciones: persiste la
// notificación del usuario y la difunde por su canal en vivo. Es la única
// puerta de entrada del backend al tópico de notificaciones.
package notify

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pro/internal/domain/repository"
	"github.com/tu-usuario/imprenta-pro/internal/realtime"
	"github.com/tu-usuario/imprenta-pro/pkg/logger"
)

// Notifier persiste y difunde notificaciones tipadas por usuario.
type Notifier struct {
	repo repository.NotificationRepository
	hub  *realtime.Hub
	log  *logger.Logger
}

// NewNotifier construye el productor.
func NewNotifier(repo repository.NotificationRepository, hub *realtime.Hub, log *logger.Logger) *Notifier {
	if log == nil {
		log = logger.Nop()
	}
	return &Notifier{repo: repo, hub: hub, log: log}
}

// JobAssigned notifica a un usuario que se le asignó un trabajo.
func (n *Notifier) JobAssigned(userID, jobID, title string) error {
	return n.emit(userID, &entity.Notification{
		Type:    entity.NotifyJobAssigned,
		Title:   "Trabajo asignado",
		Message: "Se te asignó el trabajo: " + title,
		RefID:   jobID,
	}, realtime.JobAssignedEvent(jobID, title))
}

// SubstitutionDecision notifica al proveedor la decisión sobre su sustitución.
func (n *Notifier) SubstitutionDecision(userID, substitutionID, status string) error {
	title := "Sustitución rechazada"
	if status == entity.SubstitutionApproved {
		title = "Sustitución aprobada"
	}
	return n.emit(userID, &entity.Notification{
		Type:    entity.NotifySubstitutionDecision,
		Title:   title,
		Message: "Tu solicitud de sustitución de material quedó: " + status,
		RefID:   substitutionID,
	}, realtime.SubstitutionEvent(substitutionID, status))
}

// InvoiceStatus notifica al proveedor un cambio de estado de su factura.
func (n *Notifier) InvoiceStatus(userID, invoiceID, status string) error {
	return n.emit(userID, &entity.Notification{
		Type:    entity.NotifyInvoiceStatus,
		Title:   "Factura actualizada",
		Message: "Tu factura cambió de estado a: " + status,
		RefID:   invoiceID,
	}, realtime.InvoiceStatusEvent(invoiceID, status))
}

// DeadlineApproaching alerta de vencimiento próximo de un trabajo, con
// severidad warning o critical.
func (n *Notifier) DeadlineApproaching(userID, jobID, title, severity string) error {
	return n.emit(userID, &entity.Notification{
		Type:     entity.NotifyDeadlineApproaching,
		Title:    "Vencimiento próximo",
		Message:  "El trabajo está por vencer: " + title,
		Severity: severity,
		RefID:    jobID,
	}, realtime.DeadlineEvent(jobID, title, severity))
}

// emit persiste la notificación y la difunde al tópico del usuario. Si la
// persistencia falla no se difunde: el caller decide si reintenta.
func (n *Notifier) emit(userID string, notif *entity.Notification, event realtime.Event) error {
	notif.ID = uuid.New().String()
	notif.UserID = userID
	notif.CreatedAt = time.Now()

	if err := n.repo.Create(notif); err != nil {
		n.log.Error().Err(err).Str("user_id", userID).Str("type", notif.Type).
			Msg("no se pudo persistir la notificación")
		return err
	}
	n.hub.Broadcast(realtime.NotificationTopic(userID), event)
	return nil
}
