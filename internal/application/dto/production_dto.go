package dto

import "time"

// CreateJobRequest alta de un trabajo de producción.
type CreateJobRequest struct {
	ClientID   string    `json:"client_id"`
	Title      string    `json:"title"`
	AssigneeID string    `json:"assignee_id,omitempty"`
	DueDate    time.Time `json:"due_date"`
}

// UpdateJobStatusRequest cambio de estado de un trabajo.
type UpdateJobStatusRequest struct {
	Status string `json:"status"`
}

// UpdateJobProgressRequest avance de un trabajo (0-100).
type UpdateJobProgressRequest struct {
	Progress int `json:"progress"`
}

// JobResponse trabajo en respuestas (también es el snapshot inicial del canal).
type JobResponse struct {
	ID         string    `json:"id"`
	ClientID   string    `json:"client_id"`
	QuoteID    string    `json:"quote_id,omitempty"`
	Title      string    `json:"title"`
	Status     string    `json:"status"`
	Progress   int       `json:"progress"`
	AssigneeID string    `json:"assignee_id,omitempty"`
	DueDate    time.Time `json:"due_date"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateSubstitutionRequest propuesta de sustitución de material.
type CreateSubstitutionRequest struct {
	JobID            string `json:"job_id"`
	OriginalMaterial string `json:"original_material"`
	ProposedMaterial string `json:"proposed_material"`
	Reason           string `json:"reason,omitempty"`
}

// SubstitutionResponse solicitud de sustitución en respuestas.
type SubstitutionResponse struct {
	ID               string     `json:"id"`
	JobID            string     `json:"job_id"`
	VendorID         string     `json:"vendor_id"`
	OriginalMaterial string     `json:"original_material"`
	ProposedMaterial string     `json:"proposed_material"`
	Reason           string     `json:"reason,omitempty"`
	Status           string     `json:"status"`
	DecidedBy        string     `json:"decided_by,omitempty"`
	DecidedAt        *time.Time `json:"decided_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// RecordDeliveryRequest registro de una entrega asociada a un trabajo.
type RecordDeliveryRequest struct {
	JobID       string    `json:"job_id"`
	VendorID    string    `json:"vendor_id"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	DeliveredAt time.Time `json:"delivered_at"`
}

// DeliveryResponse entrega en respuestas.
type DeliveryResponse struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id"`
	VendorID    string    `json:"vendor_id"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	DeliveredAt time.Time `json:"delivered_at"`
	ReceivedBy  string    `json:"received_by,omitempty"`
}
