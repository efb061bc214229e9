// Package events publishes order lifecycle messages to other services.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tienda-verde/storefront-api/models"
)

const (
	OrderExchange = "order_exchange"

	OrderPlacedRoutingKey = "order.placed"
	OrderStatusRoutingKey = "order.status"
)

// Publisher sends a JSON-encodable message under a routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
	Close() error
}

type OrderPlaced struct {
	OrderID       string          `json:"order_id"`
	CustomerName  string          `json:"customer_name"`
	Items         []Item          `json:"items"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	CreatedAt     string          `json:"created_at"`
}

type Item struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type OrderStatusChanged struct {
	OrderID     string `json:"order_id"`
	OldStatus   string `json:"old_status"`
	Status      string `json:"status"`
	SaleCreated bool   `json:"sale_created"`
	CreatedAt   string `json:"created_at"`
}

func NewOrderPlaced(o models.Order) OrderPlaced {
	items := make([]Item, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, Item{ProductName: it.ProductName, Quantity: it.Quantity, Price: it.Price})
	}
	return OrderPlaced{
		OrderID:       o.ID,
		CustomerName:  o.SenderFullName,
		Items:         items,
		Total:         o.Total,
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.OrderDate.UTC().Format(time.RFC3339),
	}
}

// Nop discards every message; used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }
func (Nop) Close() error                               { return nil }
