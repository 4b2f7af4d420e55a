package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/imprenta-pro/internal/domain"
	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pro/internal/domain/repository"
)

var _ repository.VendorRepository = (*VendorRepo)(nil)

// VendorRepo implementación del puerto VendorRepository sobre PostgreSQL.
type VendorRepo struct {
	pool *pgxpool.Pool
}

// NewVendorRepository construye el adaptador de persistencia para proveedores.
func NewVendorRepository(pool *pgxpool.Pool) *VendorRepo {
	return &VendorRepo{pool: pool}
}

// Create persiste un nuevo proveedor.
func (r *VendorRepo) Create(vendor *entity.Vendor) error {
	query := `
		INSERT INTO vendors (id, name, tax_id, email, phone, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(context.Background(), query,
		vendor.ID, vendor.Name, vendor.TaxID, vendor.Email, vendor.Phone, vendor.Active,
		vendor.CreatedAt, vendor.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *VendorRepo) GetByID(id string) (*entity.Vendor, error) {
	query := `
		SELECT id, name, tax_id, email, phone, active, created_at, updated_at
		FROM vendors WHERE id = $1`
	var v entity.Vendor
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.Name, &v.TaxID, &v.Email, &v.Phone, &v.Active, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor by id: %w", err)
	}
	return &v, nil
}

// List lista proveedores con paginación.
func (r *VendorRepo) List(limit, offset int) ([]*entity.Vendor, error) {
	query := `
		SELECT id, name, tax_id, email, phone, active, created_at, updated_at
		FROM vendors ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	var vendors []*entity.Vendor
	for rows.Next() {
		var v entity.Vendor
		if err := rows.Scan(
			&v.ID, &v.Name, &v.TaxID, &v.Email, &v.Phone, &v.Active, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		vendors = append(vendors, &v)
	}
	return vendors, rows.Err()
}

// Update actualiza un proveedor.
func (r *VendorRepo) Update(vendor *entity.Vendor) error {
	query := `
		UPDATE vendors SET name = $2, tax_id = $3, email = $4, phone = $5, active = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query,
		vendor.ID, vendor.Name, vendor.TaxID, vendor.Email, vendor.Phone, vendor.Active, vendor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update vendor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
