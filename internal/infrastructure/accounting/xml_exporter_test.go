package accounting_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pro/internal/infrastructure/accounting"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func sampleData() (*entity.VendorInvoice, []*entity.InvoiceLineItem, *entity.Vendor, *entity.PurchaseOrder) {
	invoice := &entity.VendorInvoice{
		ID: "inv-1", VendorID: "vendor-a", PurchaseOrderID: "po-1", Number: "F-001",
		InvoiceDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		Total:       dec("1100.5"),
		Status:      entity.InvoiceStatusApproved,
	}
	items := []*entity.InvoiceLineItem{
		{ID: "li-1", InvoiceID: "inv-1", Description: "Resma papel", Quantity: decPtr("10"), UnitPrice: decPtr("100")},
		{ID: "li-2", InvoiceID: "inv-1", Description: "Flete", Quantity: decPtr("1"), UnitPrice: decPtr("100.50")},
	}
	vendor := &entity.Vendor{ID: "vendor-a", Name: "Papeles SAS", TaxID: "900555111", Active: true}
	po := &entity.PurchaseOrder{
		ID: "po-1", VendorID: "vendor-a", JobID: "job-1",
		Description: "Papel bond", Total: dec("1000"), Status: entity.POStatusOpen,
	}
	return invoice, items, vendor, po
}

func parse(t *testing.T, out []byte) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	return doc
}

func text(doc *etree.Document, path string) string {
	el := doc.FindElement(path)
	if el == nil {
		return ""
	}
	return el.Text()
}

// ──────────────────────────────────────────────────────────────────────────────
// ExportInvoice
// ──────────────────────────────────────────────────────────────────────────────

func TestExportInvoice_EstructuraCompleta(t *testing.T) {
	invoice, items, vendor, po := sampleData()

	out, err := accounting.NewXMLExporter().ExportInvoice(invoice, items, vendor, po)
	require.NoError(t, err)

	doc := parse(t, out)
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "VendorInvoiceExport", root.Tag)
	assert.Equal(t, "1.0", root.SelectAttrValue("version", ""))

	assert.Equal(t, "F-001", text(doc, "//Invoice/Number"))
	assert.Equal(t, entity.InvoiceStatusApproved, text(doc, "//Invoice/Status"))
	assert.Equal(t, "2026-03-10", text(doc, "//Invoice/InvoiceDate"))
	assert.Equal(t, "1100.50", text(doc, "//Invoice/Total"))

	assert.Equal(t, "Papeles SAS", text(doc, "//Vendor/Name"))
	assert.Equal(t, "900555111", text(doc, "//Vendor/TaxID"))

	assert.Equal(t, "Papel bond", text(doc, "//PurchaseOrder/Description"))
	assert.Equal(t, "1000.00", text(doc, "//PurchaseOrder/Total"))
	assert.Equal(t, "job-1", text(doc, "//PurchaseOrder/JobID"))

	lines := doc.FindElements("//Lines/Line")
	require.Len(t, lines, 2)
	assert.Equal(t, "1000.00", lines[0].SelectElement("Subtotal").Text())
	assert.Equal(t, "100.50", lines[1].SelectElement("Subtotal").Text())
}

func TestExportInvoice_LineaIncompleta_OmiteCifras(t *testing.T) {
	invoice, _, vendor, po := sampleData()
	items := []*entity.InvoiceLineItem{
		{ID: "li-1", InvoiceID: "inv-1", Description: "Sin cantidad", UnitPrice: decPtr("50")},
	}

	out, err := accounting.NewXMLExporter().ExportInvoice(invoice, items, vendor, po)
	require.NoError(t, err)

	doc := parse(t, out)
	line := doc.FindElement("//Lines/Line")
	require.NotNil(t, line)

	assert.Equal(t, "Sin cantidad", line.SelectElement("Description").Text())
	assert.Nil(t, line.SelectElement("Quantity"), "cantidad ausente no se inventa")
	assert.NotNil(t, line.SelectElement("UnitPrice"))
	assert.Nil(t, line.SelectElement("Subtotal"), "sin cantidad no hay subtotal")
}

func TestExportInvoice_SinOrden(t *testing.T) {
	invoice, items, vendor, _ := sampleData()

	_, err := accounting.NewXMLExporter().ExportInvoice(invoice, items, vendor, nil)
	assert.Error(t, err)
}

func TestExportInvoice_OrdenSinTrabajo_OmiteJobID(t *testing.T) {
	invoice, items, vendor, po := sampleData()
	po.JobID = ""

	out, err := accounting.NewXMLExporter().ExportInvoice(invoice, items, vendor, po)
	require.NoError(t, err)

	doc := parse(t, out)
	assert.Nil(t, doc.FindElement("//PurchaseOrder/JobID"))
}
