// Package order holds the checkout domain: converting a user's cart lines
// into a single immutable order.
package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrEmptyCart is returned when checkout is attempted with no cart lines.
var ErrEmptyCart = errors.New("cart is empty")

// Order represents a placed order. Created exactly once at checkout,
// immutable thereafter.
type Order struct {
	ID              string
	UserID          string
	OrderedAt       time.Time
	Items           []Item
	TotalAmount     decimal.Decimal
	ShippingAddress string
}

// Item is a snapshot of one ordered product. Unlike cart lines, Price holds
// the catalog unit price at checkout time.
type Item struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Repository defines persistence operations for orders.
type Repository interface {
	// CreateAndClearCart persists the order and deletes every cart line
	// belonging to the order's user in one atomic transaction, so the
	// recorded order and the cart can never diverge.
	CreateAndClearCart(ctx context.Context, o *Order) error
}

// EventPublisher emits an event after an order has been committed. Publish
// failures are logged, never surfaced to the caller: the order already exists.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, o *Order) error
}
