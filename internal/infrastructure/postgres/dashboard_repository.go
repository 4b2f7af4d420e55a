package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/imprenta-pro/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas para los tableros sobre PostgreSQL.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador de consultas de tablero.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// Stats calcula los contadores agregados de los tableros.
func (r *DashboardRepo) Stats() (*repository.DashboardStats, error) {
	ctx := context.Background()
	stats := &repository.DashboardStats{JobsByStatus: make(map[string]int)}

	rows, err := r.pool.Query(ctx, `SELECT status, count(*) FROM jobs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count jobs by status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan job count: %w", err)
		}
		stats.JobsByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.pool.QueryRow(ctx,
		`SELECT count(*) FROM vendor_invoices WHERE status IN ('submitted', 'validated')`,
	).Scan(&stats.PendingInvoices)
	if err != nil {
		return nil, fmt.Errorf("count pending invoices: %w", err)
	}

	err = r.pool.QueryRow(ctx,
		`SELECT count(*) FROM substitution_requests WHERE status = 'pending'`,
	).Scan(&stats.OpenSubstitutions)
	if err != nil {
		return nil, fmt.Errorf("count open substitutions: %w", err)
	}

	return stats, nil
}
