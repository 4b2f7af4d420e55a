package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura de proveedor. Una vez aprobada, la factura es
// inmutable salvo transiciones de estado (approved -> paid).
const (
	InvoiceStatusSubmitted = "submitted" // registrada por el proveedor o por finanzas
	InvoiceStatusValidated = "validated" // pasó la validación, pendiente de aprobación
	InvoiceStatusRejected  = "rejected"  // la validación encontró errores
	InvoiceStatusApproved  = "approved"  // autorizada para pago
	InvoiceStatusPaid      = "paid"
)

// VendorInvoice representa la cabecera de una factura emitida por un proveedor
// contra una orden de compra.
type VendorInvoice struct {
	ID              string
	VendorID        string
	PurchaseOrderID string
	JobID           string
	Number          string
	InvoiceDate     time.Time
	DueDate         time.Time
	Total           decimal.Decimal
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// InvoiceLineItem representa una línea de detalle de una factura de proveedor.
// Quantity y UnitPrice son punteros: el servicio de validación distingue
// "campo ausente" de "campo en cero".
type InvoiceLineItem struct {
	ID          string
	InvoiceID   string
	Description string
	Quantity    *decimal.Decimal
	UnitPrice   *decimal.Decimal
}
