package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// CartRepository persists carts with their ordered item sequence.
type CartRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
}

type cartRepository struct {
	pool *pgxpool.Pool
}

// NewCartRepository returns a Postgres-backed implementation.
func NewCartRepository(pool *pgxpool.Pool) CartRepository {
	return &cartRepository{pool: pool}
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Cart, error) {
	const cartQuery = `
        SELECT c.id, c.user_id, u.username, c.total::text, c.updated_at
        FROM carts c JOIN users u ON u.id = c.user_id
        WHERE c.user_id=$1`
	const itemsQuery = `
        SELECT i.id, i.name, i.description, i.price::text
        FROM cart_items ci JOIN items i ON i.id = ci.item_id
        WHERE ci.cart_id=$1
        ORDER BY ci.position`

	var (
		cart  domain.Cart
		total string
	)
	if err := r.pool.QueryRow(ctx, cartQuery, userID).Scan(
		&cart.ID,
		&cart.UserID,
		&cart.Username,
		&total,
		&cart.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCartNotFound
		}
		return nil, err
	}
	parsed, err := parseMoney(total)
	if err != nil {
		return nil, err
	}
	cart.Total = parsed

	rows, err := r.pool.Query(ctx, itemsQuery, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cart.Items = make([]domain.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &cart, nil
}

// Save replaces the stored sequence and total in a single transaction.
func (r *cartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	const updateCart = `
        UPDATE carts SET total=$1::numeric, updated_at=NOW()
        WHERE id=$2
        RETURNING updated_at`
	const clearItems = `DELETE FROM cart_items WHERE cart_id=$1`
	const insertItem = `
        INSERT INTO cart_items (cart_id, position, item_id)
        VALUES ($1, $2, $3)`

	return execTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, updateCart, cart.Total.String(), cart.ID).Scan(&cart.UpdatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrCartNotFound
			}
			return err
		}
		if _, err := tx.Exec(ctx, clearItems, cart.ID); err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for pos, item := range cart.Items {
			batch.Queue(insertItem, cart.ID, pos, item.ID)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}
