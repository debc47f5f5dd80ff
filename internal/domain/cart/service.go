package cart

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// AddItemRequest holds the input for adding a product to a cart. Price is the
// unit price as submitted by the client, already parsed to an exact decimal.
type AddItemRequest struct {
	UserID      string
	ProductID   string
	ProductName string
	Price       decimal.Decimal
}

// AddItemResult holds the stored line after an add, plus a human-readable
// message describing what happened.
type AddItemResult struct {
	Line    Line
	Created bool
	Message string
}

// Service encapsulates cart mutation logic.
type Service struct {
	lines Repository
}

// NewService creates a cart Service backed by the given repository.
func NewService(lines Repository) *Service {
	return &Service{lines: lines}
}

// AddItem adds one unit of a product to the user's cart. The first add creates
// the line with quantity 1 and price equal to the unit price; every repeat add
// increments the quantity and stores price = unit price × new quantity.
func (s *Service) AddItem(ctx context.Context, req AddItemRequest) (*AddItemResult, error) {
	line, created, err := s.lines.Upsert(ctx, Line{
		UserID:      req.UserID,
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
		Price:       req.Price,
		Quantity:    1,
	})
	if err != nil {
		return nil, errors.Wrap(err, "upsert cart line")
	}

	msg := fmt.Sprintf("Added new product %s to cart", line.ProductName)
	if !created {
		msg = fmt.Sprintf("Updated quantity to %d for %s", line.Quantity, line.ProductName)
	}

	return &AddItemResult{
		Line:    line,
		Created: created,
		Message: msg,
	}, nil
}
