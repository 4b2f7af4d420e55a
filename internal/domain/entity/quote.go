package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cotización.
const (
	QuoteStatusDraft    = "draft"
	QuoteStatusSent     = "sent"
	QuoteStatusAccepted = "accepted"
	QuoteStatusRejected = "rejected"
)

// Quote representa una cotización enviada a un cliente. Al aceptarse
// se crea el trabajo de producción correspondiente.
type Quote struct {
	ID        string
	ClientID  string
	Title     string
	Status    string
	Total     decimal.Decimal
	ValidTo   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// QuoteItem representa una línea de una cotización.
type QuoteItem struct {
	ID          string
	QuoteID     string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
