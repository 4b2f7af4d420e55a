package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pro/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo implementación del puerto DeliveryRepository sobre PostgreSQL.
type DeliveryRepo struct {
	pool *pgxpool.Pool
}

// NewDeliveryRepository construye el adaptador de persistencia para entregas.
func NewDeliveryRepository(pool *pgxpool.Pool) *DeliveryRepo {
	return &DeliveryRepo{pool: pool}
}

const deliveryColumns = `id, job_id, vendor_id, description, quantity, delivered_at, received_by, created_at`

// Create persiste una entrega.
func (r *DeliveryRepo) Create(record *entity.DeliveryRecord) error {
	query := `
		INSERT INTO delivery_records (` + deliveryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	receivedBy := (*string)(nil)
	if record.ReceivedBy != "" {
		receivedBy = &record.ReceivedBy
	}
	_, err := r.pool.Exec(context.Background(), query,
		record.ID, record.JobID, record.VendorID, record.Description, record.Quantity,
		record.DeliveredAt, receivedBy, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert delivery record: %w", err)
	}
	return nil
}

// ListByJob lista las entregas de un trabajo.
func (r *DeliveryRepo) ListByJob(jobID string) ([]*entity.DeliveryRecord, error) {
	query := `
		SELECT ` + deliveryColumns + `
		FROM delivery_records WHERE job_id = $1 ORDER BY delivered_at DESC`
	rows, err := r.pool.Query(context.Background(), query, jobID)
	if err != nil {
		return nil, fmt.Errorf("list deliveries by job: %w", err)
	}
	return collectDeliveries(rows)
}

// ListByVendor lista las entregas de un proveedor.
func (r *DeliveryRepo) ListByVendor(vendorID string, limit, offset int) ([]*entity.DeliveryRecord, error) {
	query := `
		SELECT ` + deliveryColumns + `
		FROM delivery_records WHERE vendor_id = $1
		ORDER BY delivered_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, vendorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list deliveries by vendor: %w", err)
	}
	return collectDeliveries(rows)
}

func collectDeliveries(rows pgx.Rows) ([]*entity.DeliveryRecord, error) {
	defer rows.Close()
	var records []*entity.DeliveryRecord
	for rows.Next() {
		var d entity.DeliveryRecord
		var receivedBy *string
		if err := rows.Scan(
			&d.ID, &d.JobID, &d.VendorID, &d.Description, &d.Quantity,
			&d.DeliveredAt, &receivedBy, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan delivery record: %w", err)
		}
		if receivedBy != nil {
			d.ReceivedBy = *receivedBy
		}
		records = append(records, &d)
	}
	return records, rows.Err()
}
