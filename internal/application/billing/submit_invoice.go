package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/imprenta-pro/internal/application/dto"
	"github.com/tu-usuario/imprenta-pro/internal/domain"
	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pro/internal/domain/repository"
)

// SubmitInvoiceUseCase registra una factura de proveedor contra una orden de
// compra. El registro es laxo a propósito: los defectos de contenido los
// reporta el servicio de validación al revisar, no el alta.
type SubmitInvoiceUseCase struct {
	tx     BillingTxRunner
	poRepo repository.PurchaseOrderRepository
}

// NewSubmitInvoiceUseCase construye el caso de uso.
func NewSubmitInvoiceUseCase(tx BillingTxRunner, poRepo repository.PurchaseOrderRepository) *SubmitInvoiceUseCase {
	return &SubmitInvoiceUseCase{tx: tx, poRepo: poRepo}
}

// Submit persiste la factura y sus líneas en una transacción, con estado
// submitted. vendorID es el proveedor autenticado (o el indicado por finanzas).
func (uc *SubmitInvoiceUseCase) Submit(ctx context.Context, vendorID string, in dto.SubmitInvoiceRequest) (*dto.InvoiceResponse, error) {
	if vendorID == "" || in.PurchaseOrderID == "" || in.Number == "" {
		return nil, domain.ErrInvalidInput
	}
	po, err := uc.poRepo.GetByID(in.PurchaseOrderID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	invoice := &entity.VendorInvoice{
		ID:              uuid.New().String(),
		VendorID:        vendorID,
		PurchaseOrderID: po.ID,
		JobID:           po.JobID,
		Number:          in.Number,
		InvoiceDate:     in.InvoiceDate,
		DueDate:         in.DueDate,
		Total:           in.Total,
		Status:          entity.InvoiceStatusSubmitted,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	items := make([]*entity.InvoiceLineItem, 0, len(in.LineItems))
	for _, li := range in.LineItems {
		items = append(items, &entity.InvoiceLineItem{
			ID:          uuid.New().String(),
			InvoiceID:   invoice.ID,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
		})
	}

	err = uc.tx.RunBilling(ctx, func(invoiceRepo repository.VendorInvoiceRepository, _ repository.PurchaseOrderRepository) error {
		if err := invoiceRepo.Create(invoice); err != nil {
			return err
		}
		for _, item := range items {
			if err := invoiceRepo.CreateLineItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toInvoiceResponse(invoice, items), nil
}

func toInvoiceResponse(inv *entity.VendorInvoice, items []*entity.InvoiceLineItem) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:              inv.ID,
		VendorID:        inv.VendorID,
		PurchaseOrderID: inv.PurchaseOrderID,
		JobID:           inv.JobID,
		Number:          inv.Number,
		InvoiceDate:     inv.InvoiceDate,
		DueDate:         inv.DueDate,
		Total:           inv.Total,
		Status:          inv.Status,
	}
	for _, item := range items {
		resp.LineItems = append(resp.LineItems, dto.LineItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return resp
}
