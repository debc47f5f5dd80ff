// Package events publishes domain events to RabbitMQ. Publishing is optional:
// when no broker is configured, the application wires NopPublisher instead.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"

	"github.com/xenking/cart-checkout/internal/domain/order"
)

// OrderPlacedQueue is the durable queue OrderPlaced events are published to.
const OrderPlacedQueue = "order.placed"

const publishTimeout = 3 * time.Second

// OrderPlaced is the wire contract for a placed order event.
type OrderPlaced struct {
	EventType   string            `json:"event_type"`
	OrderID     string            `json:"order_id"`
	UserID      string            `json:"user_id"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Items       []OrderPlacedItem `json:"items"`
	Timestamp   time.Time         `json:"timestamp"`
}

// OrderPlacedItem mirrors one order item snapshot.
type OrderPlacedItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

var _ order.EventPublisher = (*Publisher)(nil)

// Publisher emits events on an AMQP channel.
type Publisher struct {
	ch *amqp.Channel
}

// NewPublisher opens a channel on the connection and declares the queue, so a
// later publish never fails due to missing broker topology.
func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(OrderPlacedQueue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare %s: %w", OrderPlacedQueue, err)
	}

	return &Publisher{ch: ch}, nil
}

// Close closes the underlying channel.
func (p *Publisher) Close() error {
	return p.ch.Close()
}

// PublishOrderPlaced emits an OrderPlaced event for a committed order.
func (p *Publisher) PublishOrderPlaced(ctx context.Context, o *order.Order) error {
	ev := OrderPlaced{
		EventType:   "OrderPlaced",
		OrderID:     o.ID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		Timestamp:   time.Now().UTC(),
	}
	for _, it := range o.Items {
		ev.Items = append(ev.Items, OrderPlacedItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal OrderPlaced: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return p.ch.PublishWithContext(pubCtx,
		"",               // default exchange
		OrderPlacedQueue, // queue name as routing key
		false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

var _ order.EventPublisher = NopPublisher{}

// NopPublisher discards events. Used when no broker is configured.
type NopPublisher struct{}

// PublishOrderPlaced does nothing.
func (NopPublisher) PublishOrderPlaced(context.Context, *order.Order) error {
	return nil
}
