package repository

import "github.com/tu-usuario/imprenta-pro/internal/domain/entity"

// SubstitutionRepository define el puerto de persistencia para SubstitutionRequest.
type SubstitutionRepository interface {
	Create(req *entity.SubstitutionRequest) error
	GetByID(id string) (*entity.SubstitutionRequest, error)
	ListByJob(jobID string) ([]*entity.SubstitutionRequest, error)
	Update(req *entity.SubstitutionRequest) error
}
