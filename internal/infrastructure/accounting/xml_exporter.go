// Package accounting genera el documento XML de exportación contable de una
// factura de proveedor aprobada. Es la entrada del sync con el sistema
// contable externo (QuickBooks/Siigo), que consume este formato.
package accounting

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/tu-usuario/imprenta-pro/internal/application/billing"
	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
)

const exportVersion = "1.0"

var _ billing.AccountingExporter = (*XMLExporter)(nil)

// XMLExporter implementa billing.AccountingExporter con etree.
type XMLExporter struct{}

// NewXMLExporter construye el exportador.
func NewXMLExporter() *XMLExporter {
	return &XMLExporter{}
}

// ExportInvoice serializa la factura con sus líneas y referencias al formato
// de intercambio contable.
func (e *XMLExporter) ExportInvoice(
	invoice *entity.VendorInvoice,
	items []*entity.InvoiceLineItem,
	vendor *entity.Vendor,
	po *entity.PurchaseOrder,
) ([]byte, error) {
	if invoice == nil || vendor == nil || po == nil {
		return nil, fmt.Errorf("accounting: factura, proveedor y orden son obligatorios")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("VendorInvoiceExport")
	root.CreateAttr("version", exportVersion)

	inv := root.CreateElement("Invoice")
	inv.CreateElement("ID").SetText(invoice.ID)
	inv.CreateElement("Number").SetText(invoice.Number)
	inv.CreateElement("Status").SetText(invoice.Status)
	inv.CreateElement("InvoiceDate").SetText(invoice.InvoiceDate.Format("2006-01-02"))
	inv.CreateElement("DueDate").SetText(invoice.DueDate.Format("2006-01-02"))
	inv.CreateElement("Total").SetText(invoice.Total.StringFixed(2))

	v := root.CreateElement("Vendor")
	v.CreateElement("ID").SetText(vendor.ID)
	v.CreateElement("Name").SetText(vendor.Name)
	v.CreateElement("TaxID").SetText(vendor.TaxID)

	order := root.CreateElement("PurchaseOrder")
	order.CreateElement("ID").SetText(po.ID)
	order.CreateElement("Description").SetText(po.Description)
	order.CreateElement("Total").SetText(po.Total.StringFixed(2))
	if po.JobID != "" {
		order.CreateElement("JobID").SetText(po.JobID)
	}

	lines := root.CreateElement("Lines")
	for _, it := range items {
		line := lines.CreateElement("Line")
		line.CreateElement("Description").SetText(it.Description)
		if it.Quantity != nil {
			line.CreateElement("Quantity").SetText(it.Quantity.String())
		}
		if it.UnitPrice != nil {
			line.CreateElement("UnitPrice").SetText(it.UnitPrice.StringFixed(2))
		}
		if it.Quantity != nil && it.UnitPrice != nil {
			line.CreateElement("Subtotal").SetText(it.Quantity.Mul(*it.UnitPrice).StringFixed(2))
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("accounting: serializar XML: %w", err)
	}
	return out, nil
}
