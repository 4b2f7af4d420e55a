package repository

import (
	"time"

	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
)

// JobRepository define el puerto de persistencia para Job.
type JobRepository interface {
	Create(job *entity.Job) error
	GetByID(id string) (*entity.Job, error)
	ListByStatus(status string, limit, offset int) ([]*entity.Job, error)
	// ListOpenDueBefore devuelve trabajos abiertos con vencimiento antes del límite
	// (para alertas de deadline).
	ListOpenDueBefore(limit time.Time) ([]*entity.Job, error)
	UpdateStatus(id, status string) error
	UpdateProgress(id string, progress int) error
	UpdateAssignee(id, assigneeID string) error
}
