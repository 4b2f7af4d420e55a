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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const poColumns = `id, vendor_id, job_id, description, quantity, total, status, issued_at, created_at, updated_at`

// Create persiste una orden de compra.
func (r *PurchaseOrderRepo) Create(po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (` + poColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	jobID := (*string)(nil)
	if po.JobID != "" {
		jobID = &po.JobID
	}
	_, err := r.q.Exec(context.Background(), query,
		po.ID, po.VendorID, jobID, po.Description, po.Quantity, po.Total, po.Status,
		po.IssuedAt, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden de compra por ID.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders WHERE id = $1`
	po, err := scanPurchaseOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order by id: %w", err)
	}
	return po, nil
}

// ListByVendor lista las órdenes de compra de un proveedor.
func (r *PurchaseOrderRepo) ListByVendor(vendorID string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT ` + poColumns + `
		FROM purchase_orders WHERE vendor_id = $1
		ORDER BY issued_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, vendorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		orders = append(orders, po)
	}
	return orders, rows.Err()
}

// UpdateStatus transiciona el estado de una orden de compra.
func (r *PurchaseOrderRepo) UpdateStatus(id, status string) error {
	query := `UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	var jobID *string
	if err := row.Scan(
		&po.ID, &po.VendorID, &jobID, &po.Description, &po.Quantity, &po.Total, &po.Status,
		&po.IssuedAt, &po.CreatedAt, &po.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if jobID != nil {
		po.JobID = *jobID
	}
	return &po, nil
}
