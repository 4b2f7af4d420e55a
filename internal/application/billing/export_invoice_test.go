package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/imprenta-pro/internal/application/billing"
	"github.com/tu-usuario/imprenta-pro/internal/domain"
	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pro/internal/domain/validation"
)

type fakeExporter struct {
	calls int
}

func (f *fakeExporter) ExportInvoice(*entity.VendorInvoice, []*entity.InvoiceLineItem, *entity.Vendor, *entity.PurchaseOrder) ([]byte, error) {
	f.calls++
	return []byte("<VendorInvoiceExport/>"), nil
}

type fakePDF struct {
	lastVerdict string
}

func (f *fakePDF) GenerateInvoiceReport(_ context.Context, data billing.InvoiceReportData) ([]byte, error) {
	f.lastVerdict = data.Verdict
	return []byte("%PDF-1.7"), nil
}

func newExportFixture(t *testing.T) (*billing.ExportInvoiceUseCase, *reviewFixture, *fakeExporter, *fakePDF) {
	t.Helper()
	fx := newReviewFixture(t)
	exporter := &fakeExporter{}
	pdf := &fakePDF{}
	uc := billing.NewExportInvoiceUseCase(
		fx.invoices, fx.orders, fx.vendors, exporter, pdf, validation.Policy{},
	)
	return uc, fx, exporter, pdf
}

// ──────────────────────────────────────────────────────────────────────────────
// ExportXML
// ──────────────────────────────────────────────────────────────────────────────

// El sync contable jala bajo demanda: solo facturas aprobadas (o pagadas)
// salen hacia el sistema externo.
func TestExportXML_SoloFacturasAprobadas(t *testing.T) {
	uc, fx, exporter, _ := newExportFixture(t)

	_, err := uc.ExportXML(context.Background(), "inv-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "una factura submitted no se exporta")
	assert.Zero(t, exporter.calls)

	fx.invoices.invoices["inv-1"].Status = entity.InvoiceStatusApproved
	out, err := uc.ExportXML(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Equal(t, 1, exporter.calls)
}

func TestExportXML_FacturaInexistente(t *testing.T) {
	uc, _, exporter, _ := newExportFixture(t)

	_, err := uc.ExportXML(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, exporter.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReportPDF
// ──────────────────────────────────────────────────────────────────────────────

func TestReportPDF_IncluyeElVeredictoVigente(t *testing.T) {
	uc, _, _, pdf := newExportFixture(t)

	out, err := uc.ReportPDF(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.NotEmpty(t, pdf.lastVerdict, "el reporte lleva el resumen del veredicto")
}
