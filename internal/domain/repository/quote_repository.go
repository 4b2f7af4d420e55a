package repository

import "github.com/tu-usuario/imprenta-pro/internal/domain/entity"

// QuoteRepository define el puerto de persistencia para Quote y sus líneas.
type QuoteRepository interface {
	Create(quote *entity.Quote) error
	CreateItem(item *entity.QuoteItem) error
	GetByID(id string) (*entity.Quote, error)
	GetItems(quoteID string) ([]*entity.QuoteItem, error)
	ListByClient(clientID string, limit, offset int) ([]*entity.Quote, error)
	UpdateStatus(id, status string) error
}
