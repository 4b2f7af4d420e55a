package repository

import "github.com/tu-usuario/imprenta-pro/internal/domain/entity"

// NotificationRepository define el puerto de persistencia para Notification.
type NotificationRepository interface {
	Create(n *entity.Notification) error
	ListByUser(userID string, limit, offset int) ([]*entity.Notification, error)
	MarkRead(id, userID string) error
}
