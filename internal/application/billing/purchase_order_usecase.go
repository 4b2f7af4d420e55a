package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/imprenta-pro/internal/application/dto"
	"github.com/tu-usuario/imprenta-pro/internal/domain"
	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pro/internal/domain/repository"
)

// PurchaseOrderUseCase emisión y consulta de órdenes de compra.
type PurchaseOrderUseCase struct {
	poRepo     repository.PurchaseOrderRepository
	vendorRepo repository.VendorRepository
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(poRepo repository.PurchaseOrderRepository, vendorRepo repository.VendorRepository) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{poRepo: poRepo, vendorRepo: vendorRepo}
}

// Create emite una orden de compra a un proveedor activo.
func (uc *PurchaseOrderUseCase) Create(in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if in.VendorID == "" || in.Description == "" {
		return nil, domain.ErrInvalidInput
	}
	vendor, err := uc.vendorRepo.GetByID(in.VendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, domain.ErrNotFound
	}
	if !vendor.Active {
		return nil, domain.ErrConflict // no se emiten órdenes a proveedores inactivos
	}

	now := time.Now()
	po := &entity.PurchaseOrder{
		ID:          uuid.New().String(),
		VendorID:    in.VendorID,
		JobID:       in.JobID,
		Description: in.Description,
		Quantity:    in.Quantity,
		Total:       in.Total,
		Status:      entity.POStatusOpen,
		IssuedAt:    now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.poRepo.Create(po); err != nil {
		return nil, err
	}
	return toPOResponse(po), nil
}

// Get devuelve una orden por ID.
func (uc *PurchaseOrderUseCase) Get(id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.poRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	return toPOResponse(po), nil
}

// ListByVendor lista las órdenes emitidas a un proveedor.
func (uc *PurchaseOrderUseCase) ListByVendor(vendorID string, limit, offset int) ([]*dto.PurchaseOrderResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.poRepo.ListByVendor(vendorID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		out = append(out, toPOResponse(po))
	}
	return out, nil
}

func toPOResponse(po *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	return &dto.PurchaseOrderResponse{
		ID:          po.ID,
		VendorID:    po.VendorID,
		JobID:       po.JobID,
		Description: po.Description,
		Quantity:    po.Quantity,
		Total:       po.Total,
		Status:      po.Status,
		IssuedAt:    po.IssuedAt,
	}
}
