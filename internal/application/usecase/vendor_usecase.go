package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/imprenta-pro/internal/application/dto"
	"github.com/tu-usuario/imprenta-pro/internal/domain"
	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pro/internal/domain/repository"
)

// VendorUseCase administración de proveedores.
type VendorUseCase struct {
	repo repository.VendorRepository
}

// NewVendorUseCase construye el caso de uso.
func NewVendorUseCase(repo repository.VendorRepository) *VendorUseCase {
	return &VendorUseCase{repo: repo}
}

// Create registra un proveedor nuevo, activo por defecto.
func (uc *VendorUseCase) Create(in dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	if in.Name == "" || in.TaxID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	vendor := &entity.Vendor{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(vendor); err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

// Get devuelve un proveedor por ID.
func (uc *VendorUseCase) Get(id string) (*dto.VendorResponse, error) {
	vendor, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, domain.ErrNotFound
	}
	return toVendorResponse(vendor), nil
}

// List lista proveedores con paginación.
func (uc *VendorUseCase) List(limit, offset int) ([]*dto.VendorResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.VendorResponse, 0, len(list))
	for _, v := range list {
		out = append(out, toVendorResponse(v))
	}
	return out, nil
}

// SetActive activa o desactiva un proveedor. Un proveedor inactivo no recibe
// órdenes nuevas y sus facturas fallan la validación.
func (uc *VendorUseCase) SetActive(id string, active bool) (*dto.VendorResponse, error) {
	vendor, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, domain.ErrNotFound
	}
	vendor.Active = active
	vendor.UpdatedAt = time.Now()
	if err := uc.repo.Update(vendor); err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

func toVendorResponse(v *entity.Vendor) *dto.VendorResponse {
	return &dto.VendorResponse{
		ID:     v.ID,
		Name:   v.Name,
		TaxID:  v.TaxID,
		Email:  v.Email,
		Phone:  v.Phone,
		Active: v.Active,
	}
}
