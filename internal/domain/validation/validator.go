// Package validation implementa el servicio de validación de facturas de
// proveedor: conciliación contra la orden de compra (proveedor, montos),
// cordura de fechas y validación de líneas de detalle.
//
// Contrato hacia afuera: nunca lanza panics y siempre devuelve un Report.
// Los cuatro chequeos son independientes y se ejecutan todos, acumulando
// cada defecto encontrado, para que el revisor humano vea la lista completa
// en un solo ciclo de envío en lugar de un error por intento.
package validation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
)

// Valores por defecto de la política (configurables vía pkg/config).
const (
	DefaultTolerancePct = 10.0
	DefaultStaleDays    = 90
)

// Policy parametriza la validación de montos y fechas.
type Policy struct {
	TolerancePct float64 // variación máxima permitida factura vs orden (%)
	StaleDays    int     // antigüedad máxima de la fecha de factura
}

func (p Policy) withDefaults() Policy {
	if p.TolerancePct <= 0 {
		p.TolerancePct = DefaultTolerancePct
	}
	if p.StaleDays <= 0 {
		p.StaleDays = DefaultStaleDays
	}
	return p
}

// Input agrupa los datos que consume una validación. El servicio no hace I/O:
// el caso de uso carga factura, orden, proveedor y líneas antes de invocar.
type Input struct {
	Invoice *entity.VendorInvoice
	Order   *entity.PurchaseOrder
	Vendor  *entity.Vendor
	Items   []*entity.InvoiceLineItem
	Now     time.Time // vacío = time.Now()
}

// AmountInfo detalla la variación de montos cuando el chequeo de monto pasa.
type AmountInfo struct {
	InvoiceTotal decimal.Decimal
	OrderTotal   decimal.Decimal
	Variance     decimal.Decimal
	VariancePct  decimal.Decimal
}

// Report es el veredicto agregado de los cuatro chequeos.
// Errors mantiene el orden de chequeo: proveedor, monto, fechas, líneas.
type Report struct {
	IsValid    bool
	Errors     []string
	Warnings   []string
	AmountInfo *AmountInfo
}

// Validate ejecuta los cuatro chequeos sobre la factura y devuelve el veredicto.
// Es una función pura de sus entradas: reinvocar con los mismos datos produce
// un reporte idéntico. Cualquier panic dentro de un chequeo se degrada a un
// error de validación en lugar de propagarse.
func Validate(in Input, pol Policy) Report {
	pol = pol.withDefaults()
	if in.Now.IsZero() {
		in.Now = time.Now()
	}

	var report Report

	runCheck("proveedor", &report, func(r *Report) {
		checkVendor(in, r)
	})
	runCheck("monto", &report, func(r *Report) {
		checkAmount(in, pol, r)
	})
	runCheck("fechas", &report, func(r *Report) {
		checkDates(in, pol, r)
	})
	runCheck("líneas", &report, func(r *Report) {
		ok, errs := CheckLineItems(in.Items)
		if !ok {
			r.Errors = append(r.Errors, errs...)
		}
	})

	report.IsValid = len(report.Errors) == 0
	return report
}

// runCheck ejecuta un chequeo degradando panics a errores de validación.
// Un sub-registro malformado nunca debe abortar el reporte completo.
func runCheck(name string, r *Report, fn func(*Report)) {
	defer func() {
		if rec := recover(); rec != nil {
			r.Errors = append(r.Errors, fmt.Sprintf("el chequeo de %s falló internamente: %v", name, rec))
		}
	}()
	fn(r)
}

// checkVendor: la factura debe pertenecer al mismo proveedor que la orden de
// compra y el proveedor debe estar activo. Las discrepancias son error, nunca
// se corrigen en silencio.
func checkVendor(in Input, r *Report) {
	if in.Invoice == nil {
		r.Errors = append(r.Errors, "factura ausente")
		return
	}
	if in.Order == nil {
		r.Errors = append(r.Errors, "orden de compra ausente")
		return
	}
	if in.Invoice.VendorID != in.Order.VendorID {
		r.Errors = append(r.Errors, fmt.Sprintf(
			"el proveedor de la factura (%s) no coincide con el de la orden de compra (%s)",
			in.Invoice.VendorID, in.Order.VendorID))
	}
	if in.Vendor == nil {
		r.Errors = append(r.Errors, "proveedor no registrado")
		return
	}
	if !in.Vendor.Active {
		r.Errors = append(r.Errors, fmt.Sprintf("el proveedor %s está inactivo", in.Vendor.Name))
	}
}

// checkAmount: variación = total factura − total orden. Con orden en cero el
// chequeo pasa con variación 0% y una nota informativa. Si la variación
// porcentual absoluta supera la tolerancia, es error; si pasa con variación
// distinta de cero, se deja como advertencia para revisión humana — decisión
// explícita: los sobrecostos pequeños pasan pero quedan marcados.
func checkAmount(in Input, pol Policy, r *Report) {
	if in.Invoice == nil || in.Order == nil {
		// ya reportado por el chequeo de proveedor
		return
	}
	variance := in.Invoice.Total.Sub(in.Order.Total)

	if in.Order.Total.IsZero() {
		r.Warnings = append(r.Warnings, "la orden de compra tiene total cero; variación no evaluable")
		r.AmountInfo = &AmountInfo{
			InvoiceTotal: in.Invoice.Total,
			OrderTotal:   in.Order.Total,
			Variance:     variance,
			VariancePct:  decimal.Zero,
		}
		return
	}

	variancePct := variance.Div(in.Order.Total).Mul(decimal.NewFromInt(100))
	tolerance := decimal.NewFromFloat(pol.TolerancePct)

	if variancePct.Abs().GreaterThan(tolerance) {
		r.Errors = append(r.Errors, fmt.Sprintf(
			"la variación de monto (%s%%) supera la tolerancia de %s%%",
			variancePct.Round(2).String(), tolerance.String()))
		return
	}

	if !variance.IsZero() {
		r.Warnings = append(r.Warnings, fmt.Sprintf(
			"la factura difiere de la orden de compra en %s (%s%%)",
			variance.String(), variancePct.Round(2).String()))
	}
	r.AmountInfo = &AmountInfo{
		InvoiceTotal: in.Invoice.Total,
		OrderTotal:   in.Order.Total,
		Variance:     variance,
		VariancePct:  variancePct,
	}
}

// checkDates: la fecha de factura no puede ser futura, el vencimiento no puede
// preceder a la fecha de factura, y una factura con más de StaleDays días de
// antigüedad se considera vencida para trámite.
func checkDates(in Input, pol Policy, r *Report) {
	if in.Invoice == nil {
		return
	}
	inv := in.Invoice
	if inv.InvoiceDate.After(in.Now) {
		r.Errors = append(r.Errors, "la fecha de la factura está en el futuro")
	}
	if inv.DueDate.Before(inv.InvoiceDate) {
		r.Errors = append(r.Errors, "la fecha de vencimiento es anterior a la fecha de la factura")
	}
	staleLimit := in.Now.AddDate(0, 0, -pol.StaleDays)
	if inv.InvoiceDate.Before(staleLimit) {
		r.Errors = append(r.Errors, fmt.Sprintf(
			"la factura tiene más de %d días de antigüedad", pol.StaleDays))
	}
}

// CheckLineItems valida las líneas de detalle de una factura. Devuelve false y
// la lista completa de defectos (no corta en el primero): descripción, cantidad
// y precio unitario son obligatorios por línea, cantidad > 0 y precio >= 0.
// Los índices en los mensajes son 1-based, como los ve el usuario en pantalla.
func CheckLineItems(items []*entity.InvoiceLineItem) (bool, []string) {
	if len(items) == 0 {
		return false, []string{"la factura no tiene líneas de detalle"}
	}
	var errs []string
	for i, item := range items {
		n := i + 1
		if item == nil {
			errs = append(errs, fmt.Sprintf("línea %d: registro malformado", n))
			continue
		}
		if item.Description == "" {
			errs = append(errs, fmt.Sprintf("línea %d: falta el campo descripción (description)", n))
		}
		if item.Quantity == nil {
			errs = append(errs, fmt.Sprintf("línea %d: falta el campo cantidad (quantity)", n))
		} else if !item.Quantity.IsPositive() {
			errs = append(errs, fmt.Sprintf("línea %d: la cantidad debe ser mayor que cero", n))
		}
		if item.UnitPrice == nil {
			errs = append(errs, fmt.Sprintf("línea %d: falta el campo precio unitario (unit_price)", n))
		} else if item.UnitPrice.IsNegative() {
			errs = append(errs, fmt.Sprintf("línea %d: el precio unitario no puede ser negativo", n))
		}
	}
	return len(errs) == 0, errs
}

// CheckDeliveries concilia registros de entrega contra la factura.
// Las reglas de conciliación (cantidades entregadas vs facturadas, entregas
// sin orden) están pendientes de definición con operaciones; hasta entonces
// el chequeo acepta siempre y no aporta errores al reporte.
func CheckDeliveries(_ *entity.VendorInvoice, _ []*entity.DeliveryRecord) (bool, []string) {
	return true, nil
}
