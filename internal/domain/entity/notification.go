package entity

import "time"

// Tipos de notificación entregados por el canal de notificaciones.
const (
	NotifyJobAssigned          = "job_assigned"
	NotifySubstitutionDecision = "substitution_decision"
	NotifyInvoiceStatus        = "invoice_status"
	NotifyDeadlineApproaching  = "deadline_approaching"
)

// Severidades para alertas de deadline.
const (
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Notification representa una notificación persistida para un usuario.
// El mismo contenido se difunde en vivo por el canal de notificaciones.
type Notification struct {
	ID        string
	UserID    string
	Type      string
	Title     string
	Message   string
	Severity  string // vacío salvo deadline_approaching
	RefID     string // id del recurso relacionado (job, factura, sustitución)
	ReadAt    *time.Time
	CreatedAt time.Time
}
