// Package access concentra los chequeos de autorización de los canales en
// vivo. Cada conexión los ejecuta antes de unirse a un grupo; un chequeo
// fallido cierra la conexión sin detalle (no se filtra si el recurso existe).
package access

import (
	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pro/internal/domain/repository"
)

// Identity es la identidad autenticada de la conexión (claims del JWT).
type Identity struct {
	UserID   string
	Role     string
	VendorID string
}

// isStaff: producción y account managers ven todos los trabajos y sustituciones.
func (id Identity) isStaff() bool {
	return id.Role == entity.RoleProduction || id.Role == entity.RoleAccountManager
}

func (id Identity) isAdmin() bool {
	return id.Role == entity.RoleAdmin
}

// Checker resuelve los chequeos de acceso que requieren consultar el almacén.
type Checker struct {
	jobs          repository.JobRepository
	substitutions repository.SubstitutionRepository
}

// NewChecker construye el verificador.
func NewChecker(jobs repository.JobRepository, substitutions repository.SubstitutionRepository) *Checker {
	return &Checker{jobs: jobs, substitutions: substitutions}
}

// CanViewJob: el asignado del trabajo, el personal interno o un admin.
// Un trabajo inexistente se reporta igual que uno prohibido.
func (c *Checker) CanViewJob(id Identity, jobID string) bool {
	if id.isAdmin() || id.isStaff() {
		return true
	}
	job, err := c.jobs.GetByID(jobID)
	if err != nil || job == nil {
		return false
	}
	return job.AssigneeID == id.UserID
}

// CanViewSubstitution: el proveedor de la solicitud, el personal interno
// o un admin.
func (c *Checker) CanViewSubstitution(id Identity, substitutionID string) bool {
	if id.isAdmin() || id.isStaff() {
		return true
	}
	req, err := c.substitutions.GetByID(substitutionID)
	if err != nil || req == nil {
		return false
	}
	return id.VendorID != "" && req.VendorID == id.VendorID
}

// CanViewDashboard: cada usuario solo su propio tablero; un admin puede
// observar el de cualquiera.
func (c *Checker) CanViewDashboard(id Identity, topicUserID string) bool {
	if id.isAdmin() {
		return true
	}
	return id.UserID == topicUserID
}
