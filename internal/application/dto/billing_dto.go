package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemRequest línea de detalle recibida al registrar una factura.
// Quantity y UnitPrice son punteros para que el servicio de validación pueda
// distinguir campo ausente de campo en cero.
type LineItemRequest struct {
	Description string           `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// SubmitInvoiceRequest registro de una factura de proveedor contra una orden.
type SubmitInvoiceRequest struct {
	PurchaseOrderID string            `json:"purchase_order_id"`
	Number          string            `json:"number"`
	InvoiceDate     time.Time         `json:"invoice_date"`
	DueDate         time.Time         `json:"due_date"`
	Total           decimal.Decimal   `json:"total"`
	LineItems       []LineItemRequest `json:"line_items"`
}

// LineItemResponse línea de detalle en respuestas.
type LineItemResponse struct {
	ID          string           `json:"id"`
	Description string           `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// InvoiceResponse factura de proveedor en respuestas.
type InvoiceResponse struct {
	ID              string             `json:"id"`
	VendorID        string             `json:"vendor_id"`
	PurchaseOrderID string             `json:"purchase_order_id"`
	JobID           string             `json:"job_id,omitempty"`
	Number          string             `json:"number"`
	InvoiceDate     time.Time          `json:"invoice_date"`
	DueDate         time.Time          `json:"due_date"`
	Total           decimal.Decimal    `json:"total"`
	Status          string             `json:"status"`
	LineItems       []LineItemResponse `json:"line_items,omitempty"`
}

// ValidationReportResponse veredicto de validación para el revisor.
type ValidationReportResponse struct {
	InvoiceID  string              `json:"invoice_id"`
	IsValid    bool                `json:"is_valid"`
	Errors     []string            `json:"errors"`
	Warnings   []string            `json:"warnings"`
	AmountInfo *AmountInfoResponse `json:"amount_info,omitempty"`
	Summary    string              `json:"summary"`
	Status     string              `json:"status"` // estado resultante de la factura
}

// AmountInfoResponse cifras de variación cuando el chequeo de monto pasó.
type AmountInfoResponse struct {
	InvoiceTotal decimal.Decimal `json:"invoice_total"`
	OrderTotal   decimal.Decimal `json:"order_total"`
	Variance     decimal.Decimal `json:"variance"`
	VariancePct  decimal.Decimal `json:"variance_percentage"`
}

// CreatePurchaseOrderRequest emisión de una orden de compra a un proveedor.
type CreatePurchaseOrderRequest struct {
	VendorID    string          `json:"vendor_id"`
	JobID       string          `json:"job_id,omitempty"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
}

// PurchaseOrderResponse orden de compra en respuestas.
type PurchaseOrderResponse struct {
	ID          string          `json:"id"`
	VendorID    string          `json:"vendor_id"`
	JobID       string          `json:"job_id,omitempty"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
	Status      string          `json:"status"`
	IssuedAt    time.Time       `json:"issued_at"`
}
