package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/cart-checkout/internal/domain/order"
)

const (
	insertOrderSQL = `INSERT INTO orders (id, user_id, ordered_at, items, total_amount, shipping_address)
		VALUES ($1, $2, $3, $4, $5, $6)`

	clearCartSQL = `DELETE FROM cart_lines WHERE user_id = $1`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// CreateAndClearCart persists the order and deletes the user's cart lines in
// one transaction. Either both happen or neither does, so a crash mid-checkout
// never leaves an order on record with its cart still populated. Item
// snapshots are serialized to JSON for the JSONB column.
func (r *OrderRepository) CreateAndClearCart(ctx context.Context, o *order.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshaling order items: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx, insertOrderSQL,
		o.ID, o.UserID, o.OrderedAt, itemsJSON, o.TotalAmount, o.ShippingAddress,
	); err != nil {
		return fmt.Errorf("creating order %q: %w", o.ID, err)
	}

	if _, err := tx.Exec(ctx, clearCartSQL, o.UserID); err != nil {
		return fmt.Errorf("clearing cart for %q: %w", o.UserID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing order %q: %w", o.ID, err)
	}
	return nil
}
