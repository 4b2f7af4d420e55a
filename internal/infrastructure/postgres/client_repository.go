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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación del puerto ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	pool *pgxpool.Pool
}

// NewClientRepository construye el adaptador de persistencia para clientes.
func NewClientRepository(pool *pgxpool.Pool) *ClientRepo {
	return &ClientRepo{pool: pool}
}

const clientColumns = `id, name, tax_id, email, phone, manager_id, created_at, updated_at`

// Create persiste un cliente.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	managerID := (*string)(nil)
	if client.ManagerID != "" {
		managerID = &client.ManagerID
	}
	_, err := r.pool.Exec(context.Background(), query,
		client.ID, client.Name, client.TaxID, client.Email, client.Phone, managerID,
		client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, id), "get client by id")
}

// GetByTaxID obtiene un cliente por NIT.
func (r *ClientRepo) GetByTaxID(taxID string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE tax_id = $1 LIMIT 1`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, taxID), "get client by tax id")
}

// List lista clientes con paginación.
func (r *ClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// Update actualiza un cliente.
func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients SET name = $2, tax_id = $3, email = $4, phone = $5, manager_id = $6, updated_at = $7
		WHERE id = $1`
	managerID := (*string)(nil)
	if client.ManagerID != "" {
		managerID = &client.ManagerID
	}
	tag, err := r.pool.Exec(context.Background(), query,
		client.ID, client.Name, client.TaxID, client.Email, client.Phone, managerID, client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClientRepo) scanOne(row pgx.Row, op string) (*entity.Client, error) {
	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	var managerID *string
	if err := row.Scan(
		&c.ID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &managerID, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if managerID != nil {
		c.ManagerID = *managerID
	}
	return &c, nil
}
