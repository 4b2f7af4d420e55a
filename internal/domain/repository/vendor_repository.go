package repository

import "github.com/tu-usuario/imprenta-pro/internal/domain/entity"

// VendorRepository define el puerto de persistencia para Vendor.
type VendorRepository interface {
	Create(vendor *entity.Vendor) error
	GetByID(id string) (*entity.Vendor, error)
	List(limit, offset int) ([]*entity.Vendor, error)
	Update(vendor *entity.Vendor) error
}
