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

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo implementación del puerto QuoteRepository sobre PostgreSQL.
type QuoteRepo struct {
	pool *pgxpool.Pool
}

// NewQuoteRepository construye el adaptador de persistencia para cotizaciones.
func NewQuoteRepository(pool *pgxpool.Pool) *QuoteRepo {
	return &QuoteRepo{pool: pool}
}

const quoteColumns = `id, client_id, title, status, total, valid_to, created_at, updated_at`

// Create persiste la cabecera de una cotización.
func (r *QuoteRepo) Create(quote *entity.Quote) error {
	query := `
		INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(context.Background(), query,
		quote.ID, quote.ClientID, quote.Title, quote.Status, quote.Total, quote.ValidTo,
		quote.CreatedAt, quote.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de cotización.
func (r *QuoteRepo) CreateItem(item *entity.QuoteItem) error {
	query := `
		INSERT INTO quote_items (id, quote_id, description, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(context.Background(), query,
		item.ID, item.QuoteID, item.Description, item.Quantity, item.UnitPrice, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert quote item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una cotización por ID.
func (r *QuoteRepo) GetByID(id string) (*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`
	var q entity.Quote
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&q.ID, &q.ClientID, &q.Title, &q.Status, &q.Total, &q.ValidTo, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote by id: %w", err)
	}
	return &q, nil
}

// GetItems devuelve las líneas de una cotización.
func (r *QuoteRepo) GetItems(quoteID string) ([]*entity.QuoteItem, error) {
	query := `
		SELECT id, quote_id, description, quantity, unit_price, subtotal
		FROM quote_items WHERE quote_id = $1 ORDER BY id`
	rows, err := r.pool.Query(context.Background(), query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("get quote items: %w", err)
	}
	defer rows.Close()

	var items []*entity.QuoteItem
	for rows.Next() {
		var it entity.QuoteItem
		if err := rows.Scan(&it.ID, &it.QuoteID, &it.Description, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// ListByClient lista las cotizaciones de un cliente, más recientes primero.
func (r *QuoteRepo) ListByClient(clientID string, limit, offset int) ([]*entity.Quote, error) {
	query := `
		SELECT ` + quoteColumns + `
		FROM quotes WHERE client_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, clientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	var quotes []*entity.Quote
	for rows.Next() {
		var q entity.Quote
		if err := rows.Scan(
			&q.ID, &q.ClientID, &q.Title, &q.Status, &q.Total, &q.ValidTo, &q.CreatedAt, &q.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		quotes = append(quotes, &q)
	}
	return quotes, rows.Err()
}

// UpdateStatus transiciona el estado de una cotización.
func (r *QuoteRepo) UpdateStatus(id, status string) error {
	query := `UPDATE quotes SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update quote status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
