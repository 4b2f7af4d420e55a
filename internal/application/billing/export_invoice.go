package billing

import (
	"context"

	"github.com/tu-usuario/imprenta-pro/internal/domain"
	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pro/internal/domain/repository"
	"github.com/tu-usuario/imprenta-pro/internal/domain/validation"
)

// ExportInvoiceUseCase genera documentos de salida de una factura: el XML de
// exportación contable (solo aprobadas) y el reporte PDF con su veredicto.
type ExportInvoiceUseCase struct {
	invoiceRepo repository.VendorInvoiceRepository
	poRepo      repository.PurchaseOrderRepository
	vendorRepo  repository.VendorRepository
	exporter    AccountingExporter
	pdf         InvoicePDFGenerator
	policy      validation.Policy
}

// NewExportInvoiceUseCase construye el caso de uso.
func NewExportInvoiceUseCase(
	invoiceRepo repository.VendorInvoiceRepository,
	poRepo repository.PurchaseOrderRepository,
	vendorRepo repository.VendorRepository,
	exporter AccountingExporter,
	pdf InvoicePDFGenerator,
	policy validation.Policy,
) *ExportInvoiceUseCase {
	return &ExportInvoiceUseCase{
		invoiceRepo: invoiceRepo,
		poRepo:      poRepo,
		vendorRepo:  vendorRepo,
		exporter:    exporter,
		pdf:         pdf,
		policy:      policy,
	}
}

// ExportXML genera el documento de exportación contable. Solo facturas
// aprobadas: el sync contable nunca recibe facturas en revisión.
func (uc *ExportInvoiceUseCase) ExportXML(ctx context.Context, invoiceID string) ([]byte, error) {
	invoice, items, vendor, po, err := uc.load(invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != entity.InvoiceStatusApproved && invoice.Status != entity.InvoiceStatusPaid {
		return nil, domain.ErrInvalidTransition
	}
	return uc.exporter.ExportInvoice(invoice, items, vendor, po)
}

// ReportPDF genera el reporte PDF de la factura con el veredicto vigente.
func (uc *ExportInvoiceUseCase) ReportPDF(ctx context.Context, invoiceID string) ([]byte, error) {
	invoice, items, vendor, po, err := uc.load(invoiceID)
	if err != nil {
		return nil, err
	}
	report := validation.Validate(validation.Input{
		Invoice: invoice,
		Order:   po,
		Vendor:  vendor,
		Items:   items,
	}, uc.policy)

	return uc.pdf.GenerateInvoiceReport(ctx, InvoiceReportData{
		Invoice:  invoice,
		Vendor:   vendor,
		Order:    po,
		Items:    items,
		Verdict:  report.Summary(),
		Warnings: report.Warnings,
	})
}

func (uc *ExportInvoiceUseCase) load(invoiceID string) (*entity.VendorInvoice, []*entity.InvoiceLineItem, *entity.Vendor, *entity.PurchaseOrder, error) {
	invoice, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if invoice == nil {
		return nil, nil, nil, nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.GetLineItems(invoiceID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	vendor, err := uc.vendorRepo.GetByID(invoice.VendorID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	po, err := uc.poRepo.GetByID(invoice.PurchaseOrderID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return invoice, items, vendor, po, nil
}
