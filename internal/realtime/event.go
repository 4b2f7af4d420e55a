package realtime

import "time"

// Tipos de evento que viajan por los canales. El mismo sobre se usa para
// eventos originados en el backend y para mensajes retransmitidos de clientes:
// los consumidores no distinguen el origen.
const (
	EventJobStatusUpdated    = "job_status_updated"
	EventJobProgressUpdated  = "job_progress_updated"
	EventJobSnapshot         = "job_snapshot"
	EventJobAssigned         = "job_assigned"
	EventDashboardUpdate     = "dashboard_update"
	EventNewJobAlert         = "new_job_alert"
	EventJobCountUpdated     = "job_count_updated"
	EventSubstitutionUpdated = "substitution_status_updated"
	EventCommentAdded        = "comment_added"
	EventInvoiceStatus       = "invoice_status_updated"
	EventDeadlineApproaching = "deadline_approaching"
)

// Event es el sobre único de la capa de difusión: discriminador de tipo,
// payload específico del tipo y timestamp de emisión.
type Event struct {
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewEvent construye un evento con timestamp actual.
func NewEvent(eventType string, payload map[string]any) Event {
	if payload == nil {
		payload = map[string]any{}
	}
	return Event{Type: eventType, Payload: payload, Timestamp: time.Now()}
}

// JobStatusEvent evento de cambio de estado de un trabajo.
func JobStatusEvent(jobID, status string) Event {
	return NewEvent(EventJobStatusUpdated, map[string]any{"job_id": jobID, "status": status})
}

// JobProgressEvent evento de avance de un trabajo (0-100).
func JobProgressEvent(jobID string, progress int) Event {
	return NewEvent(EventJobProgressUpdated, map[string]any{"job_id": jobID, "progress": progress})
}

// JobAssignedEvent notificación de asignación de trabajo.
func JobAssignedEvent(jobID, title string) Event {
	return NewEvent(EventJobAssigned, map[string]any{"job_id": jobID, "title": title})
}

// SubstitutionEvent evento de decisión sobre una sustitución de material.
func SubstitutionEvent(substitutionID, status string) Event {
	return NewEvent(EventSubstitutionUpdated, map[string]any{"substitution_id": substitutionID, "status": status})
}

// CommentEvent comentario en una solicitud de sustitución.
func CommentEvent(substitutionID, userID, comment string) Event {
	return NewEvent(EventCommentAdded, map[string]any{
		"substitution_id": substitutionID,
		"user_id":         userID,
		"comment":         comment,
	})
}

// InvoiceStatusEvent evento de cambio de estado de una factura de proveedor.
func InvoiceStatusEvent(invoiceID, status string) Event {
	return NewEvent(EventInvoiceStatus, map[string]any{"invoice_id": invoiceID, "status": status})
}

// DeadlineEvent alerta de vencimiento próximo, con severidad warning o critical.
func DeadlineEvent(jobID, title, severity string) Event {
	return NewEvent(EventDeadlineApproaching, map[string]any{
		"job_id":   jobID,
		"title":    title,
		"severity": severity,
	})
}

// DashboardEvent refresco completo de los contadores de un tablero.
func DashboardEvent(jobsByStatus map[string]int, pendingInvoices, openSubstitutions int) Event {
	return NewEvent(EventDashboardUpdate, map[string]any{
		"jobs_by_status":     jobsByStatus,
		"pending_invoices":   pendingInvoices,
		"open_substitutions": openSubstitutions,
	})
}

// JobCountEvent actualización de contadores de trabajos para los tableros.
func JobCountEvent(counts map[string]int) Event {
	payload := make(map[string]any, len(counts))
	for k, v := range counts {
		payload[k] = v
	}
	return NewEvent(EventJobCountUpdated, payload)
}
