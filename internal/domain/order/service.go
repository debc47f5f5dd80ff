package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/cart-checkout/internal/domain/cart"
	"github.com/xenking/cart-checkout/internal/domain/product"
)

// PlaceOrderRequest holds the input for placing an order.
type PlaceOrderRequest struct {
	UserID          string
	ShippingAddress string
}

// Service encapsulates checkout business logic.
type Service struct {
	carts    cart.Repository
	products product.Repository
	orders   Repository
	events   EventPublisher
}

// NewService creates an order Service with the required domain dependencies.
func NewService(
	carts cart.Repository,
	products product.Repository,
	orders Repository,
	events EventPublisher,
) *Service {
	return &Service{
		carts:    carts,
		products: products,
		orders:   orders,
		events:   events,
	}
}

// PlaceOrder converts all of the user's cart lines into a single order.
//
// Each line is re-priced from the catalog of record: the cart's stored price
// is a running total captured at add time and is not authoritative. A line
// whose product has since vanished from the catalog is skipped and excluded
// from the order. That matches the behavior clients have relied on so far; it
// can silently shrink an order, so each skip is logged with the product ID.
//
// Persisting the order and clearing the cart happen in a single transaction.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	lines, err := s.carts.ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "list cart lines")
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	total := decimal.Zero
	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		p, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				zctx.From(ctx).Warn("Skipping cart line: product no longer in catalog",
					zap.String("user_id", req.UserID),
					zap.String("product_id", line.ProductID),
				)
				continue
			}
			return nil, errors.Wrapf(err, "get product %s", line.ProductID)
		}

		qty := decimal.NewFromInt(int64(line.Quantity))
		total = total.Add(p.Price.Mul(qty))

		items = append(items, Item{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    line.Quantity,
			Price:       p.Price,
		})
	}

	o := &Order{
		ID:              uuid.New().String(),
		UserID:          req.UserID,
		OrderedAt:       time.Now().UTC(),
		Items:           items,
		TotalAmount:     total,
		ShippingAddress: req.ShippingAddress,
	}
	if err := s.orders.CreateAndClearCart(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	if err := s.events.PublishOrderPlaced(ctx, o); err != nil {
		// The order is already committed; the event stream catches up later.
		zctx.From(ctx).Error("Publish OrderPlaced failed",
			zap.String("order_id", o.ID),
			zap.Error(err),
		)
	}

	return o, nil
}
