package dto

import "time"

// NotificationResponse notificación persistida de un usuario.
type NotificationResponse struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Severity  string     `json:"severity,omitempty"`
	RefID     string     `json:"ref_id,omitempty"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// DashboardStatsResponse contadores agregados para los tableros.
type DashboardStatsResponse struct {
	JobsByStatus      map[string]int `json:"jobs_by_status"`
	PendingInvoices   int            `json:"pending_invoices"`
	OpenSubstitutions int            `json:"open_substitutions"`
}
