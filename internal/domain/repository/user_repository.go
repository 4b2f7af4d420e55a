package repository

import "github.com/tu-usuario/imprenta-pro/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	// ListByVendor devuelve los usuarios del portal de un proveedor
	// (destinatarios de sus notificaciones).
	ListByVendor(vendorID string) ([]*entity.User, error)
}
