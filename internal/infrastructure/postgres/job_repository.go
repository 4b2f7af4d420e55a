package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/imprenta-pro/internal/domain"
	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pro/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

// JobRepo implementación del puerto JobRepository sobre PostgreSQL.
type JobRepo struct {
	pool *pgxpool.Pool
}

// NewJobRepository construye el adaptador de persistencia para trabajos.
func NewJobRepository(pool *pgxpool.Pool) *JobRepo {
	return &JobRepo{pool: pool}
}

const jobColumns = `id, client_id, quote_id, title, status, progress, assignee_id, due_date, created_at, updated_at`

// Estados que excluyen un trabajo de las alertas de deadline.
const closedJobStatuses = `('completed', 'delivered', 'cancelled')`

// Create persiste un trabajo.
func (r *JobRepo) Create(job *entity.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	quoteID := (*string)(nil)
	if job.QuoteID != "" {
		quoteID = &job.QuoteID
	}
	assigneeID := (*string)(nil)
	if job.AssigneeID != "" {
		assigneeID = &job.AssigneeID
	}
	_, err := r.pool.Exec(context.Background(), query,
		job.ID, job.ClientID, quoteID, job.Title, job.Status, job.Progress, assigneeID,
		job.DueDate, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// GetByID obtiene un trabajo por ID.
func (r *JobRepo) GetByID(id string) (*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	job, err := scanJob(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job by id: %w", err)
	}
	return job, nil
}

// ListByStatus lista trabajos por estado, más próximos a vencer primero.
func (r *JobRepo) ListByStatus(status string, limit, offset int) ([]*entity.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs WHERE status = $1
		ORDER BY due_date LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list jobs by status: %w", err)
	}
	return collectJobs(rows)
}

// ListOpenDueBefore devuelve trabajos abiertos cuyo vencimiento cae antes del límite.
func (r *JobRepo) ListOpenDueBefore(limit time.Time) ([]*entity.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs WHERE status NOT IN ` + closedJobStatuses + ` AND due_date < $1
		ORDER BY due_date`
	rows, err := r.pool.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list jobs due before: %w", err)
	}
	return collectJobs(rows)
}

// UpdateStatus transiciona el estado de un trabajo.
func (r *JobRepo) UpdateStatus(id, status string) error {
	return r.update(id, `status = $2`, status, "update job status")
}

// UpdateProgress registra el avance de un trabajo.
func (r *JobRepo) UpdateProgress(id string, progress int) error {
	return r.update(id, `progress = $2`, progress, "update job progress")
}

// UpdateAssignee asigna el trabajo a un usuario.
func (r *JobRepo) UpdateAssignee(id, assigneeID string) error {
	return r.update(id, `assignee_id = $2`, assigneeID, "update job assignee")
}

func (r *JobRepo) update(id, setClause string, value any, op string) error {
	query := `UPDATE jobs SET ` + setClause + `, updated_at = now() WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query, id, value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func collectJobs(rows pgx.Rows) ([]*entity.Job, error) {
	defer rows.Close()
	var jobs []*entity.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func scanJob(row pgx.Row) (*entity.Job, error) {
	var j entity.Job
	var quoteID, assigneeID *string
	if err := row.Scan(
		&j.ID, &j.ClientID, &quoteID, &j.Title, &j.Status, &j.Progress, &assigneeID,
		&j.DueDate, &j.CreatedAt, &j.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if quoteID != nil {
		j.QuoteID = *quoteID
	}
	if assigneeID != nil {
		j.AssigneeID = *assigneeID
	}
	return &j, nil
}
