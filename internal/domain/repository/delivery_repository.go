package repository

import "github.com/tu-usuario/imprenta-pro/internal/domain/entity"

// DeliveryRepository define el puerto de persistencia para DeliveryRecord.
type DeliveryRepository interface {
	Create(record *entity.DeliveryRecord) error
	ListByJob(jobID string) ([]*entity.DeliveryRecord, error)
	ListByVendor(vendorID string, limit, offset int) ([]*entity.DeliveryRecord, error)
}
