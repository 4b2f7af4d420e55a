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

var _ repository.SubstitutionRepository = (*SubstitutionRepo)(nil)

// SubstitutionRepo implementación del puerto SubstitutionRepository sobre PostgreSQL.
type SubstitutionRepo struct {
	pool *pgxpool.Pool
}

// NewSubstitutionRepository construye el adaptador de persistencia para sustituciones.
func NewSubstitutionRepository(pool *pgxpool.Pool) *SubstitutionRepo {
	return &SubstitutionRepo{pool: pool}
}

const substitutionColumns = `id, job_id, vendor_id, original_material, proposed_material, reason, status, decided_by, decided_at, created_at, updated_at`

// Create persiste una solicitud de sustitución.
func (r *SubstitutionRepo) Create(req *entity.SubstitutionRequest) error {
	query := `
		INSERT INTO substitution_requests (` + substitutionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	decidedBy := (*string)(nil)
	if req.DecidedBy != "" {
		decidedBy = &req.DecidedBy
	}
	_, err := r.pool.Exec(context.Background(), query,
		req.ID, req.JobID, req.VendorID, req.OriginalMaterial, req.ProposedMaterial,
		req.Reason, req.Status, decidedBy, req.DecidedAt, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert substitution request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID.
func (r *SubstitutionRepo) GetByID(id string) (*entity.SubstitutionRequest, error) {
	query := `SELECT ` + substitutionColumns + ` FROM substitution_requests WHERE id = $1`
	req, err := scanSubstitution(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get substitution request by id: %w", err)
	}
	return req, nil
}

// ListByJob lista las solicitudes de un trabajo.
func (r *SubstitutionRepo) ListByJob(jobID string) ([]*entity.SubstitutionRequest, error) {
	query := `
		SELECT ` + substitutionColumns + `
		FROM substitution_requests WHERE job_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(context.Background(), query, jobID)
	if err != nil {
		return nil, fmt.Errorf("list substitution requests: %w", err)
	}
	defer rows.Close()

	var list []*entity.SubstitutionRequest
	for rows.Next() {
		req, err := scanSubstitution(rows)
		if err != nil {
			return nil, fmt.Errorf("scan substitution request: %w", err)
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

// Update actualiza la decisión de una solicitud.
func (r *SubstitutionRepo) Update(req *entity.SubstitutionRequest) error {
	query := `
		UPDATE substitution_requests
		SET status = $2, decided_by = $3, decided_at = $4, updated_at = $5
		WHERE id = $1`
	decidedBy := (*string)(nil)
	if req.DecidedBy != "" {
		decidedBy = &req.DecidedBy
	}
	tag, err := r.pool.Exec(context.Background(), query,
		req.ID, req.Status, decidedBy, req.DecidedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update substitution request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanSubstitution(row pgx.Row) (*entity.SubstitutionRequest, error) {
	var s entity.SubstitutionRequest
	var decidedBy *string
	if err := row.Scan(
		&s.ID, &s.JobID, &s.VendorID, &s.OriginalMaterial, &s.ProposedMaterial,
		&s.Reason, &s.Status, &decidedBy, &s.DecidedAt, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if decidedBy != nil {
		s.DecidedBy = *decidedBy
	}
	return &s, nil
}
