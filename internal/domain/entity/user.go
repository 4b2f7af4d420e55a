package entity

import "time"

// Roles de la aplicación. Determinan el portal al que accede cada usuario.
const (
	RoleAdmin          = "admin"
	RoleAccountManager = "account_manager"
	RoleProduction     = "production"
	RoleVendor         = "vendor"
	RoleClient         = "client"
)

// User representa un usuario de cualquiera de los portales.
// VendorID solo está poblado para usuarios con rol vendor.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	VendorID     string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsStaff indica si el usuario pertenece al personal interno
// (producción o account manager). Los admin cuentan aparte.
func (u *User) IsStaff() bool {
	return u.Role == RoleProduction || u.Role == RoleAccountManager
}
