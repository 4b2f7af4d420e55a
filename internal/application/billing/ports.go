package billing

import (
	"context"

	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pro/internal/domain/repository"
)

// BillingTxRunner ejecuta el registro de una factura y sus líneas dentro de
// una transacción. Lo implementa postgres.TxRunner.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.VendorInvoiceRepository,
		poRepo repository.PurchaseOrderRepository,
	) error) error
}

// AccountingExporter genera el documento de exportación contable de una
// factura aprobada (entrada del sync con el sistema contable externo).
type AccountingExporter interface {
	ExportInvoice(invoice *entity.VendorInvoice, items []*entity.InvoiceLineItem, vendor *entity.Vendor, po *entity.PurchaseOrder) ([]byte, error)
}

// InvoicePDFGenerator genera el reporte PDF de una factura con su veredicto.
type InvoicePDFGenerator interface {
	GenerateInvoiceReport(ctx context.Context, data InvoiceReportData) ([]byte, error)
}

// InvoiceReportData datos que consume el generador PDF.
type InvoiceReportData struct {
	Invoice  *entity.VendorInvoice
	Vendor   *entity.Vendor
	Order    *entity.PurchaseOrder
	Items    []*entity.InvoiceLineItem
	Verdict  string   // resumen de texto del veredicto
	Warnings []string // advertencias vigentes
}
