// Package pdf implementa el reporte de revisión de facturas de proveedor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Proveedor + NIT  │  N° Factura + Fecha             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORDEN DE COMPRA: referencia + monto comprometido           │
//	│  VEREDICTO: VÁLIDA / INVÁLIDA + advertencias                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Subtotal              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: facturado vs comprometido                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appbilling "github.com/tu-usuario/imprenta-pro/internal/application/billing"
	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorOK      = &props.Color{Red: 0, Green: 128, Blue: 64}
	colorBad     = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorAmber   = &props.Color{Red: 190, Green: 130, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbilling.InvoicePDFGenerator = (*MarotoInvoiceReport)(nil)

// MarotoInvoiceReport implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoInvoiceReport struct{}

// NewMarotoInvoiceReport construye el generador.
func NewMarotoInvoiceReport() *MarotoInvoiceReport { return &MarotoInvoiceReport{} }

// GenerateInvoiceReport genera el reporte de revisión y devuelve sus bytes.
func (g *MarotoInvoiceReport) GenerateInvoiceReport(_ context.Context, data appbilling.InvoiceReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de revisión de factura", true).
		WithAuthor(data.Vendor.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data.Invoice, data.Vendor))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(orderRow(data.Order))
	m.AddRows(verdictRows(data)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(data.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data.Invoice, data.Order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: proveedor + NIT (izq) y N° Factura + Fecha (der).
func headerRow(invoice *entity.VendorInvoice, vendor *entity.Vendor) core.Row {
	fecha := invoice.InvoiceDate.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(vendor.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+vendor.TaxID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA DE PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// orderRow: referencia de la orden de compra conciliada.
func orderRow(po *entity.PurchaseOrder) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("ORDEN DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Ref: %s   |   %s   |   Comprometido: $%s",
				po.ID, po.Description, po.Total.StringFixed(2),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// verdictRows: veredicto de la revisión + advertencias vigentes.
func verdictRows(data appbilling.InvoiceReportData) []core.Row {
	verdictColor := colorOK
	if data.Invoice.Status == entity.InvoiceStatusRejected {
		verdictColor = colorBad
	}

	rows := []core.Row{
		row.New(10).Add(col.New(12).Add(
			text.New(data.Verdict, props.Text{
				Style: fontstyle.Bold, Size: 11, Color: verdictColor, Top: 2,
			}),
		)),
	}
	for _, w := range data.Warnings {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("• "+w, props.Text{Size: 8, Color: colorAmber, Top: 1, Left: 2}),
		)))
	}
	return rows
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Descripción", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

// tableItemRows: una fila por línea de la factura. Las líneas con campos
// ausentes se marcan en rojo en vez de ocultarse.
func tableItemRows(items []*entity.InvoiceLineItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		qty, unit, subtotal := "—", "—", "—"
		itemColor := colorBad
		if it.Quantity != nil && it.UnitPrice != nil {
			qty = it.Quantity.StringFixed(0)
			unit = "$" + it.UnitPrice.StringFixed(2)
			subtotal = "$" + it.Quantity.Mul(*it.UnitPrice).StringFixed(2)
			itemColor = nil
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(qty, props.Text{Size: 8, Align: align.Center, Top: 1, Color: itemColor})),
			col.New(6).Add(text.New(it.Description, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1, Color: itemColor})),
			col.New(2).Add(text.New(unit, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: itemColor})),
			col.New(2).Add(text.New(subtotal, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: itemColor})),
		))
	}
	return result
}

// totalsRow: facturado vs comprometido.
func totalsRow(invoice *entity.VendorInvoice, po *entity.PurchaseOrder) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	diff := invoice.Total.Sub(po.Total)

	return row.New(20).Add(
		col.New(3),
		col.New(3).Add(
			label("Facturado:"),
			label("Comprometido:"),
			label("Diferencia:"),
		),
		col.New(3).Add(
			value("$"+invoice.Total.StringFixed(2)),
			value("$"+po.Total.StringFixed(2)),
			value("$"+diff.StringFixed(2)),
		),
		col.New(3),
	)
}
