package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateClientRequest alta de cliente.
type CreateClientRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TaxID     string `json:"tax_id"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	ManagerID string `json:"manager_id,omitempty"`
}

// QuoteItemRequest línea de una cotización.
type QuoteItemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateQuoteRequest alta de cotización para un cliente.
type CreateQuoteRequest struct {
	ClientID string             `json:"client_id"`
	Title    string             `json:"title"`
	ValidTo  time.Time          `json:"valid_to"`
	Items    []QuoteItemRequest `json:"items"`
}

// QuoteItemResponse línea de cotización en respuestas.
type QuoteItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// QuoteResponse cotización en respuestas.
type QuoteResponse struct {
	ID        string              `json:"id"`
	ClientID  string              `json:"client_id"`
	Title     string              `json:"title"`
	Status    string              `json:"status"`
	Total     decimal.Decimal     `json:"total"`
	ValidTo   time.Time           `json:"valid_to"`
	Items     []QuoteItemResponse `json:"items,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// AcceptQuoteResponse resultado de aceptar una cotización: el trabajo creado.
type AcceptQuoteResponse struct {
	Quote QuoteResponse `json:"quote"`
	Job   JobResponse   `json:"job"`
}
