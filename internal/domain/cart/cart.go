// Package cart holds the shopping cart domain: one line per (user, product)
// pairing, with add-to-cart upsert semantics.
package cart

import (
	"context"

	"github.com/shopspring/decimal"
)

// Line represents one unpurchased (user, product) pairing in a cart.
//
// Price holds the running line total — the unit price submitted at add time
// multiplied by the current quantity — not the unit price. This mirrors the
// data already in production; orders store unit prices, so the asymmetry is
// deliberate and documented rather than normalized.
type Line struct {
	UserID      string
	ProductID   string
	ProductName string
	Price       decimal.Decimal
	Quantity    int
}

// Repository defines persistence operations for cart lines.
type Repository interface {
	// Upsert atomically inserts the line with quantity 1, or, when a line for
	// the same (user, product) already exists, increments its quantity and
	// recomputes the running price total from the submitted unit price. The
	// returned line reflects the stored state; created reports whether a new
	// line was inserted. The increment must be atomic so that concurrent adds
	// for the same pairing never lose an update.
	Upsert(ctx context.Context, line Line) (Line, bool, error)

	// ListByUser returns every cart line belonging to the user.
	ListByUser(ctx context.Context, userID string) ([]Line, error)
}
