package checkout

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tienda-verde/storefront-api/models"
)

func TestMessage(t *testing.T) {
	order := models.Order{
		ID:               "0f8fad5b-d9cb-469f-a165-70867728950e",
		SenderFullName:   "Ana",
		ReceiverFullName: "Luis",
		ReceiverExtra:    "Llamar antes",
		PaymentMethod:    "Zelle",
		Total:            decimal.RequireFromString("25"),
		Items: []models.OrderItem{
			{ProductName: "Arroz", Quantity: 2, Price: decimal.RequireFromString("10")},
			{ProductName: "Aceite", Quantity: 1, Price: decimal.RequireFromString("5")},
		},
	}

	msg := Message(order)

	assert.Contains(t, msg, "*ID Pedido:* 0f8fad5b")
	assert.Contains(t, msg, "Adicionales: Llamar antes")
	assert.Contains(t, msg, "  Subtotal: $20.00")
	assert.Contains(t, msg, "*TOTAL: $25.00*")
	assert.Contains(t, msg, "Método de pago: Zelle")
	assert.Less(t, strings.Index(msg, "Arroz"), strings.Index(msg, "Aceite"))
}

func TestMessageOmitsEmptyExtra(t *testing.T) {
	assert.NotContains(t, Message(models.Order{}), "Adicionales")
}

func TestLink(t *testing.T) {
	link := Link("+1 (786) 883-0056", "Hola mundo & más")

	require.True(t, strings.HasPrefix(link, "https://wa.me/17868830056?text="))
	assert.Contains(t, link, "Hola%20mundo%20%26%20m%C3%A1s")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Hola mundo & más", u.Query().Get("text"))
}

func TestLinkKeepsOnlyASCIIDigits(t *testing.T) {
	link := Link("+53 ٥٥ 5 123-4567", "hola")
	assert.True(t, strings.HasPrefix(link, "https://wa.me/5351234567?text="), link)
}
