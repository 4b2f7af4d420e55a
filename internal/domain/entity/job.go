package entity

import "time"

// Estados de un trabajo de producción.
const (
	JobStatusPending    = "pending"
	JobStatusInProgress = "in_progress"
	JobStatusQuality    = "quality_check"
	JobStatusCompleted  = "completed"
	JobStatusDelivered  = "delivered"
	JobStatusCancelled  = "cancelled"
)

// Job representa un trabajo de producción (impresión, acabado, instalación).
type Job struct {
	ID         string
	ClientID   string
	QuoteID    string
	Title      string
	Status     string
	Progress   int // 0-100
	AssigneeID string
	DueDate    time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsOpen indica si el trabajo sigue en curso (aplica para alertas de deadline).
func (j *Job) IsOpen() bool {
	switch j.Status {
	case JobStatusCompleted, JobStatusDelivered, JobStatusCancelled:
		return false
	}
	return true
}
