package validation

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer con separadores de miles en español para los montos del resumen.
var printer = message.NewPrinter(language.Spanish)

// Summary devuelve una representación de texto del veredicto, pensada para
// mostrarse al revisor (portal de finanzas, correo). No es un formato de
// máquina: el contrato programático es IsValid/Errors/Warnings.
func (r Report) Summary() string {
	var b strings.Builder

	if r.IsValid {
		b.WriteString("Factura VÁLIDA para continuar a pago\n")
	} else {
		b.WriteString("Factura INVÁLIDA: no puede continuar a pago\n")
	}

	if len(r.Errors) > 0 {
		b.WriteString("Errores:\n")
		for _, e := range r.Errors {
			b.WriteString("  - " + e + "\n")
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("Advertencias:\n")
		for _, w := range r.Warnings {
			b.WriteString("  - " + w + "\n")
		}
	}
	if r.AmountInfo != nil {
		inv, _ := r.AmountInfo.InvoiceTotal.Float64()
		ord, _ := r.AmountInfo.OrderTotal.Float64()
		pct, _ := r.AmountInfo.VariancePct.Float64()
		b.WriteString(printer.Sprintf("Montos: factura $%.2f vs orden $%.2f (variación %.2f%%)\n", inv, ord, pct))
	}

	return b.String()
}
