package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/imprenta-pro/internal/domain"
	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pro/internal/domain/repository"
)

var _ repository.VendorInvoiceRepository = (*VendorInvoiceRepo)(nil)

// VendorInvoiceRepo implementación sobre PostgreSQL (usable con pool o tx).
type VendorInvoiceRepo struct {
	q Querier
}

// NewVendorInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVendorInvoiceRepository(q Querier) *VendorInvoiceRepo {
	return &VendorInvoiceRepo{q: q}
}

const invoiceColumns = `id, vendor_id, purchase_order_id, job_id, number, invoice_date, due_date, total, status, created_at, updated_at`

// Create persiste la cabecera de una factura de proveedor.
func (r *VendorInvoiceRepo) Create(invoice *entity.VendorInvoice) error {
	query := `
		INSERT INTO vendor_invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	jobID := (*string)(nil)
	if invoice.JobID != "" {
		jobID = &invoice.JobID
	}
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.VendorID, invoice.PurchaseOrderID, jobID, invoice.Number,
		invoice.InvoiceDate, invoice.DueDate, invoice.Total, invoice.Status,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vendor invoice: %w", err)
	}
	return nil
}

// CreateLineItem persiste una línea de detalle.
func (r *VendorInvoiceRepo) CreateLineItem(item *entity.InvoiceLineItem) error {
	query := `
		INSERT INTO invoice_line_items (id, invoice_id, description, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, item.Description, item.Quantity, item.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("insert invoice line item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una factura por ID.
func (r *VendorInvoiceRepo) GetByID(id string) (*entity.VendorInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM vendor_invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor invoice by id: %w", err)
	}
	return inv, nil
}

// GetLineItems devuelve las líneas de detalle de una factura.
func (r *VendorInvoiceRepo) GetLineItems(invoiceID string) ([]*entity.InvoiceLineItem, error) {
	query := `
		SELECT id, invoice_id, description, quantity, unit_price
		FROM invoice_line_items WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice line items: %w", err)
	}
	defer rows.Close()

	var items []*entity.InvoiceLineItem
	for rows.Next() {
		var it entity.InvoiceLineItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Description, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan invoice line item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// ListByVendor lista las facturas de un proveedor, más recientes primero.
func (r *VendorInvoiceRepo) ListByVendor(vendorID string, limit, offset int) ([]*entity.VendorInvoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM vendor_invoices WHERE vendor_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, vendorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vendor invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*entity.VendorInvoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vendor invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// UpdateStatus transiciona el estado de una factura. Única mutación permitida
// después de la aprobación.
func (r *VendorInvoiceRepo) UpdateStatus(id, status string) error {
	query := `UPDATE vendor_invoices SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update vendor invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanInvoice(row pgx.Row) (*entity.VendorInvoice, error) {
	var inv entity.VendorInvoice
	var jobID *string
	if err := row.Scan(
		&inv.ID, &inv.VendorID, &inv.PurchaseOrderID, &jobID, &inv.Number,
		&inv.InvoiceDate, &inv.DueDate, &inv.Total, &inv.Status,
		&inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if jobID != nil {
		inv.JobID = *jobID
	}
	return &inv, nil
}
