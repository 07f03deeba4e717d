package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// OrderRepository stores immutable order snapshots.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a Postgres-backed implementation.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	const insertOrder = `
        INSERT INTO orders (user_id, total)
        VALUES ($1, $2::numeric)
        RETURNING id, created_at`
	const insertItem = `
        INSERT INTO order_items (order_id, position, item_id, price)
        VALUES ($1, $2, $3, $4::numeric)`

	return execTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertOrder, order.UserID, order.Total.String()).
			Scan(&order.ID, &order.CreatedAt); err != nil {
			return err
		}
		if len(order.Items) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for pos, item := range order.Items {
			batch.Queue(insertItem, order.ID, pos, item.ID, item.Price.String())
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	const ordersQuery = `
        SELECT o.id, o.user_id, u.username, o.total::text, o.created_at
        FROM orders o JOIN users u ON u.id = o.user_id
        WHERE o.user_id=$1
        ORDER BY o.id`
	const itemsQuery = `
        SELECT oi.order_id, i.id, i.name, i.description, oi.price::text
        FROM order_items oi
        JOIN orders o ON o.id = oi.order_id
        JOIN items i ON i.id = oi.item_id
        WHERE o.user_id=$1
        ORDER BY oi.order_id, oi.position`

	rows, err := r.pool.Query(ctx, ordersQuery, userID)
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0)
	index := make(map[int64]int)
	for rows.Next() {
		var (
			order domain.Order
			total string
		)
		if err := rows.Scan(&order.ID, &order.UserID, &order.Username, &total, &order.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		if order.Total, err = parseMoney(total); err != nil {
			rows.Close()
			return nil, err
		}
		order.Items = make([]domain.Item, 0)
		index[order.ID] = len(orders)
		orders = append(orders, order)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := r.pool.Query(ctx, itemsQuery, userID)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			orderID int64
			item    domain.Item
			price   string
		)
		if err := itemRows.Scan(&orderID, &item.ID, &item.Name, &item.Description, &price); err != nil {
			return nil, err
		}
		if item.Price, err = parseMoney(price); err != nil {
			return nil, err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return orders, itemRows.Err()
}
