package production

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/imprenta-pro/internal/application/dto"
	"github.com/tu-usuario/imprenta-pro/internal/domain"
	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pro/internal/domain/repository"
)

// DeliveryUseCase casos de uso de entregas.
type DeliveryUseCase struct {
	deliveryRepo repository.DeliveryRepository
	jobRepo      repository.JobRepository
}

// NewDeliveryUseCase construye el caso de uso.
func NewDeliveryUseCase(deliveryRepo repository.DeliveryRepository, jobRepo repository.JobRepository) *DeliveryUseCase {
	return &DeliveryUseCase{deliveryRepo: deliveryRepo, jobRepo: jobRepo}
}

// Record registra una entrega asociada a un trabajo existente.
func (uc *DeliveryUseCase) Record(receivedBy string, in dto.RecordDeliveryRequest) (*dto.DeliveryResponse, error) {
	if in.JobID == "" || in.VendorID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	job, err := uc.jobRepo.GetByID(in.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}

	deliveredAt := in.DeliveredAt
	if deliveredAt.IsZero() {
		deliveredAt = time.Now()
	}
	record := &entity.DeliveryRecord{
		ID:          uuid.New().String(),
		JobID:       in.JobID,
		VendorID:    in.VendorID,
		Description: in.Description,
		Quantity:    in.Quantity,
		DeliveredAt: deliveredAt,
		ReceivedBy:  receivedBy,
		CreatedAt:   time.Now(),
	}
	if err := uc.deliveryRepo.Create(record); err != nil {
		return nil, err
	}
	return toDeliveryResponse(record), nil
}

// ListByJob lista las entregas de un trabajo.
func (uc *DeliveryUseCase) ListByJob(jobID string) ([]*dto.DeliveryResponse, error) {
	list, err := uc.deliveryRepo.ListByJob(jobID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DeliveryResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDeliveryResponse(d))
	}
	return out, nil
}

// ListByVendor lista las entregas registradas de un proveedor.
func (uc *DeliveryUseCase) ListByVendor(vendorID string, limit, offset int) ([]*dto.DeliveryResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.deliveryRepo.ListByVendor(vendorID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DeliveryResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDeliveryResponse(d))
	}
	return out, nil
}

func toDeliveryResponse(d *entity.DeliveryRecord) *dto.DeliveryResponse {
	return &dto.DeliveryResponse{
		ID:          d.ID,
		JobID:       d.JobID,
		VendorID:    d.VendorID,
		Description: d.Description,
		Quantity:    d.Quantity,
		DeliveredAt: d.DeliveredAt,
		ReceivedBy:  d.ReceivedBy,
	}
}
