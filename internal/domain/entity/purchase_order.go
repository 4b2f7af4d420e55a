package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	POStatusOpen      = "open"
	POStatusFulfilled = "fulfilled"
	POStatusCancelled = "cancelled"
)

// PurchaseOrder representa un compromiso de compra emitido a un proveedor
// por un monto acordado. Las facturas de proveedor se concilian contra ella.
type PurchaseOrder struct {
	ID          string
	VendorID    string
	JobID       string
	Description string
	Quantity    int
	Total       decimal.Decimal
	Status      string
	IssuedAt    time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
