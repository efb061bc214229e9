package notify

import (
	"context"
	"fmt"

	"github.com/tienda-verde/storefront-api/checkout"
	"github.com/tienda-verde/storefront-api/models"
)

// OrderMailer sends the store owner a copy of every new order. A nil
// *OrderMailer is valid and sends nothing.
type OrderMailer struct {
	client EmailClient
	from   string
	to     string
}

func NewOrderMailer(client EmailClient, from, to string) *OrderMailer {
	return &OrderMailer{client: client, from: from, to: to}
}

func (m *OrderMailer) OrderPlaced(ctx context.Context, order models.Order) error {
	if m == nil || m.client == nil {
		return nil
	}
	subject := fmt.Sprintf("Nuevo pedido %s - $%s", order.ShortRef(), order.Total.StringFixed(2))
	return m.client.Send(ctx, m.from, m.to, subject, checkout.Message(order))
}
