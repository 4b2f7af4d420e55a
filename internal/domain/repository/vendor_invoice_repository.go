package repository

import "github.com/tu-usuario/imprenta-pro/internal/domain/entity"

// VendorInvoiceRepository define el puerto de persistencia para VendorInvoice y sus líneas.
type VendorInvoiceRepository interface {
	Create(invoice *entity.VendorInvoice) error
	CreateLineItem(item *entity.InvoiceLineItem) error
	GetByID(id string) (*entity.VendorInvoice, error)
	GetLineItems(invoiceID string) ([]*entity.InvoiceLineItem, error)
	ListByVendor(vendorID string, limit, offset int) ([]*entity.VendorInvoice, error)
	// UpdateStatus es la única mutación permitida después de la aprobación.
	UpdateStatus(id, status string) error
}
