package entity

import "time"

// Client representa un cliente de la imprenta (empresa o persona).
type Client struct {
	ID        string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	ManagerID string // account manager asignado
	CreatedAt time.Time
	UpdatedAt time.Time
}
