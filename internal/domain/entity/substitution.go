package entity

import "time"

// Estados de una solicitud de sustitución de material.
const (
	SubstitutionPending  = "pending"
	SubstitutionApproved = "approved"
	SubstitutionRejected = "rejected"
)

// SubstitutionRequest representa la propuesta de un proveedor para sustituir
// el material acordado de un trabajo por uno alternativo.
type SubstitutionRequest struct {
	ID               string
	JobID            string
	VendorID         string
	OriginalMaterial string
	ProposedMaterial string
	Reason           string
	Status           string
	DecidedBy        string
	DecidedAt        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
