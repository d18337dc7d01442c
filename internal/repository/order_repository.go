package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/domain"
)

// OrderRepository defines persistence access for diner orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	ListByDiner(ctx context.Context, dinerID string) ([]domain.Order, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a Postgres-backed implementation.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO diner_orders (id, diner_id, franchise_id, store_id, ordered_at)
        VALUES ($1, $2, $3, $4, $5)`

	if _, err := tx.Exec(ctx, query,
		order.ID,
		order.DinerID,
		order.FranchiseID,
		order.StoreID,
		order.Date,
	); err != nil {
		return err
	}

	const itemQuery = `
        INSERT INTO order_items (order_id, menu_id, description, price)
        VALUES ($1, $2, $3, $4)`

	for _, item := range order.Items {
		if _, err := tx.Exec(ctx, itemQuery, order.ID, item.MenuID, item.Description, item.Price); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) ListByDiner(ctx context.Context, dinerID string) ([]domain.Order, error) {
	const query = `
        SELECT id, diner_id, franchise_id, store_id, ordered_at
        FROM diner_orders WHERE diner_id=$1 ORDER BY ordered_at`

	rows, err := r.pool.Query(ctx, query, dinerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.DinerID, &order.FranchiseID, &order.StoreID, &order.Date); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	const query = `
        SELECT menu_id, description, price FROM order_items
        WHERE order_id=$1 ORDER BY menu_id`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.MenuID, &item.Description, &item.Price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
