package entity

import "time"

// Vendor representa un proveedor de producción (impresión, acabados, materiales).
type Vendor struct {
	ID        string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
