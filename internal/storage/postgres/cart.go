package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/xenking/cart-checkout/internal/domain/cart"
)

const (
	// Single-statement conditional upsert: racing adds for the same
	// (user_id, product_id) serialize on the row, so no increment is lost.
	// The stored price is recomputed as submitted unit price × new quantity.
	upsertLineSQL = `INSERT INTO cart_lines (user_id, product_id, product_name, price, quantity)
		VALUES ($1, $2, $3, $4, 1)
		ON CONFLICT (user_id, product_id) DO UPDATE
		SET quantity = cart_lines.quantity + 1,
		    price = $4 * (cart_lines.quantity + 1),
		    product_name = EXCLUDED.product_name
		RETURNING product_name, price, quantity`

	listLinesByUserSQL = `SELECT user_id, product_id, product_name, price, quantity
		FROM cart_lines WHERE user_id = $1 ORDER BY added_at, product_id`
)

var _ cart.Repository = (*CartRepository)(nil)

// CartRepository implements cart.Repository backed by PostgreSQL.
type CartRepository struct {
	pool *pgxpool.Pool
}

// NewCartRepository returns a CartRepository that uses the given pool.
func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

// Upsert inserts or atomically increments the cart line for
// (line.UserID, line.ProductID) and returns the stored state. A returned
// quantity of 1 can only mean the line was just created, since every
// conflicting add raises the quantity above 1.
func (r *CartRepository) Upsert(ctx context.Context, line cart.Line) (cart.Line, bool, error) {
	stored := cart.Line{
		UserID:    line.UserID,
		ProductID: line.ProductID,
	}

	var price decimal.Decimal
	err := r.pool.QueryRow(ctx, upsertLineSQL,
		line.UserID, line.ProductID, line.ProductName, line.Price,
	).Scan(&stored.ProductName, &price, &stored.Quantity)
	if err != nil {
		return cart.Line{}, false, fmt.Errorf("upserting cart line (%q, %q): %w", line.UserID, line.ProductID, err)
	}
	stored.Price = price

	return stored, stored.Quantity == 1, nil
}

// ListByUser returns every cart line for the user in add order.
func (r *CartRepository) ListByUser(ctx context.Context, userID string) ([]cart.Line, error) {
	rows, err := r.pool.Query(ctx, listLinesByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("listing cart lines for %q: %w", userID, err)
	}
	return pgx.CollectRows(rows, scanLine)
}

func scanLine(row pgx.CollectableRow) (cart.Line, error) {
	var (
		l     cart.Line
		price decimal.Decimal
	)
	err := row.Scan(&l.UserID, &l.ProductID, &l.ProductName, &price, &l.Quantity)
	l.Price = price
	return l, err
}
