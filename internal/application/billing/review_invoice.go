package billing

import (
	"context"
	"time"

	"github.com/tu-usuario/imprenta-pro/internal/application/dto"
	"github.com/tu-usuario/imprenta-pro/internal/application/notify"
	"github.com/tu-usuario/imprenta-pro/internal/domain"
	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pro/internal/domain/repository"
	"github.com/tu-usuario/imprenta-pro/internal/domain/validation"
	"github.com/tu-usuario/imprenta-pro/pkg/logger"
)

// ReviewInvoiceUseCase revisa facturas de proveedor: ejecuta el servicio de
// validación, decide transiciones de estado y notifica al proveedor.
type ReviewInvoiceUseCase struct {
	invoiceRepo repository.VendorInvoiceRepository
	poRepo      repository.PurchaseOrderRepository
	vendorRepo  repository.VendorRepository
	userRepo    repository.UserRepository
	notifier    *notify.Notifier
	policy      validation.Policy
	log         *logger.Logger
}

// NewReviewInvoiceUseCase construye el caso de uso.
func NewReviewInvoiceUseCase(
	invoiceRepo repository.VendorInvoiceRepository,
	poRepo repository.PurchaseOrderRepository,
	vendorRepo repository.VendorRepository,
	userRepo repository.UserRepository,
	notifier *notify.Notifier,
	policy validation.Policy,
	log *logger.Logger,
) *ReviewInvoiceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReviewInvoiceUseCase{
		invoiceRepo: invoiceRepo,
		poRepo:      poRepo,
		vendorRepo:  vendorRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		policy:      policy,
		log:         log,
	}
}

// Validate carga la factura con sus colaboradores, corre el servicio de
// validación y persiste el estado derivado: validated si el veredicto es
// limpio, rejected si hay errores. Notifica al proveedor el resultado.
func (uc *ReviewInvoiceUseCase) Validate(ctx context.Context, invoiceID string) (*dto.ValidationReportResponse, error) {
	invoice, items, err := uc.loadInvoice(invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == entity.InvoiceStatusApproved || invoice.Status == entity.InvoiceStatusPaid {
		return nil, domain.ErrInvoiceImmutable
	}

	report, err := uc.run(invoice, items)
	if err != nil {
		return nil, err
	}

	status := entity.InvoiceStatusValidated
	if !report.IsValid {
		status = entity.InvoiceStatusRejected
	}
	if err := uc.invoiceRepo.UpdateStatus(invoice.ID, status); err != nil {
		return nil, err
	}
	invoice.Status = status

	uc.notifyVendor(invoice)

	return toReportResponse(invoice, report), nil
}

// Approve autoriza para pago una factura ya validada. Revalida antes de
// transicionar: los datos pudieron cambiar entre validación y aprobación.
func (uc *ReviewInvoiceUseCase) Approve(ctx context.Context, invoiceID string) (*dto.ValidationReportResponse, error) {
	invoice, items, err := uc.loadInvoice(invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != entity.InvoiceStatusValidated {
		return nil, domain.ErrInvalidTransition
	}

	report, err := uc.run(invoice, items)
	if err != nil {
		return nil, err
	}
	if !report.IsValid {
		// la revalidación encontró defectos: la factura regresa a rejected
		if err := uc.invoiceRepo.UpdateStatus(invoice.ID, entity.InvoiceStatusRejected); err != nil {
			return nil, err
		}
		invoice.Status = entity.InvoiceStatusRejected
		uc.notifyVendor(invoice)
		return toReportResponse(invoice, report), nil
	}

	if err := uc.invoiceRepo.UpdateStatus(invoice.ID, entity.InvoiceStatusApproved); err != nil {
		return nil, err
	}
	invoice.Status = entity.InvoiceStatusApproved
	uc.notifyVendor(invoice)

	return toReportResponse(invoice, report), nil
}

// Get devuelve la factura con sus líneas.
func (uc *ReviewInvoiceUseCase) Get(ctx context.Context, invoiceID string) (*dto.InvoiceResponse, error) {
	invoice, items, err := uc.loadInvoice(invoiceID)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice, items), nil
}

// ListByVendor lista las facturas de un proveedor.
func (uc *ReviewInvoiceUseCase) ListByVendor(ctx context.Context, vendorID string, limit, offset int) ([]*dto.InvoiceResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.invoiceRepo.ListByVendor(vendorID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceResponse(inv, nil))
	}
	return out, nil
}

// run arma el Input del servicio de validación y lo ejecuta.
func (uc *ReviewInvoiceUseCase) run(invoice *entity.VendorInvoice, items []*entity.InvoiceLineItem) (validation.Report, error) {
	po, err := uc.poRepo.GetByID(invoice.PurchaseOrderID)
	if err != nil {
		return validation.Report{}, err
	}
	vendor, err := uc.vendorRepo.GetByID(invoice.VendorID)
	if err != nil {
		return validation.Report{}, err
	}
	return validation.Validate(validation.Input{
		Invoice: invoice,
		Order:   po,
		Vendor:  vendor,
		Items:   items,
		Now:     time.Now(),
	}, uc.policy), nil
}

func (uc *ReviewInvoiceUseCase) loadInvoice(invoiceID string) (*entity.VendorInvoice, []*entity.InvoiceLineItem, error) {
	invoice, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, nil, err
	}
	if invoice == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.GetLineItems(invoiceID)
	if err != nil {
		return nil, nil, err
	}
	return invoice, items, nil
}

// notifyVendor avisa a los usuarios del portal del proveedor. Un fallo de
// notificación no revierte la transición: se registra y se sigue.
func (uc *ReviewInvoiceUseCase) notifyVendor(invoice *entity.VendorInvoice) {
	users, err := uc.userRepo.ListByVendor(invoice.VendorID)
	if err != nil {
		uc.log.Warn().Err(err).Str("vendor_id", invoice.VendorID).
			Msg("no se pudieron cargar los usuarios del proveedor")
		return
	}
	for _, u := range users {
		if err := uc.notifier.InvoiceStatus(u.ID, invoice.ID, invoice.Status); err != nil {
			uc.log.Warn().Err(err).Str("user_id", u.ID).Msg("notificación de factura fallida")
		}
	}
}

func toReportResponse(invoice *entity.VendorInvoice, report validation.Report) *dto.ValidationReportResponse {
	resp := &dto.ValidationReportResponse{
		InvoiceID: invoice.ID,
		IsValid:   report.IsValid,
		Errors:    report.Errors,
		Warnings:  report.Warnings,
		Summary:   report.Summary(),
		Status:    invoice.Status,
	}
	if report.AmountInfo != nil {
		resp.AmountInfo = &dto.AmountInfoResponse{
			InvoiceTotal: report.AmountInfo.InvoiceTotal,
			OrderTotal:   report.AmountInfo.OrderTotal,
			Variance:     report.AmountInfo.Variance,
			VariancePct:  report.AmountInfo.VariancePct,
		}
	}
	return resp
}
