package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// ItemRepository exposes the read-mostly catalog.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	List(ctx context.Context) ([]domain.Item, error)
	ListByName(ctx context.Context, name string) ([]domain.Item, error)
}

type itemRepository struct {
	pool *pgxpool.Pool
}

// NewItemRepository returns a Postgres-backed implementation.
func NewItemRepository(pool *pgxpool.Pool) ItemRepository {
	return &itemRepository{pool: pool}
}

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	const query = `
        INSERT INTO items (name, description, price)
        VALUES ($1, $2, $3::numeric)
        RETURNING id`

	return r.pool.QueryRow(ctx, query, item.Name, item.Description, item.Price.String()).Scan(&item.ID)
}

func (r *itemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	const query = `
        SELECT id, name, description, price::text
        FROM items WHERE id=$1`

	item, err := scanItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *itemRepository) List(ctx context.Context) ([]domain.Item, error) {
	const query = `
        SELECT id, name, description, price::text
        FROM items ORDER BY id`

	return r.list(ctx, query)
}

func (r *itemRepository) ListByName(ctx context.Context, name string) ([]domain.Item, error) {
	const query = `
        SELECT id, name, description, price::text
        FROM items WHERE name=$1 ORDER BY id`

	return r.list(ctx, query, name)
}

func (r *itemRepository) list(ctx context.Context, query string, args ...any) ([]domain.Item, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func scanItem(row pgx.Row) (*domain.Item, error) {
	var (
		item  domain.Item
		price string
	)
	if err := row.Scan(&item.ID, &item.Name, &item.Description, &price); err != nil {
		return nil, err
	}
	parsed, err := parseMoney(price)
	if err != nil {
		return nil, err
	}
	item.Price = parsed
	return &item, nil
}
