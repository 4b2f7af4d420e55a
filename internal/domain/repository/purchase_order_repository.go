package repository

import "github.com/tu-usuario/imprenta-pro/internal/domain/entity"

// PurchaseOrderRepository define el puerto de persistencia para PurchaseOrder.
// De solo lectura desde el servicio de validación.
type PurchaseOrderRepository interface {
	Create(po *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	ListByVendor(vendorID string, limit, offset int) ([]*entity.PurchaseOrder, error)
	UpdateStatus(id, status string) error
}
