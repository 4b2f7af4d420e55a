package entity

import "time"

// DeliveryRecord representa una entrega de materiales o producto terminado
// asociada a un trabajo. La conciliación contra facturas de proveedor está
// pendiente de definir reglas (ver validation.CheckDeliveries).
type DeliveryRecord struct {
	ID          string
	JobID       string
	VendorID    string
	Description string
	Quantity    int
	DeliveredAt time.Time
	ReceivedBy  string
	CreatedAt   time.Time
}
