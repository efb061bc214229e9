package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tienda-verde/storefront-api/models"
)

// Message renders the order summary sent to the store over WhatsApp.
func Message(order models.Order) string {
	var b strings.Builder

	b.WriteString("🛒 *NUEVO PEDIDO*\n\n")
	fmt.Fprintf(&b, "📋 *ID Pedido:* %s\n\n", order.ShortRef())

	b.WriteString("👤 *CLIENTE*\n")
	fmt.Fprintf(&b, "Nombre: %s\n", order.SenderFullName)
	fmt.Fprintf(&b, "País: %s\n", order.SenderCountry)
	fmt.Fprintf(&b, "Email: %s\n", order.SenderEmail)
	fmt.Fprintf(&b, "Contacto: %s\n\n", order.SenderContact)

	b.WriteString("📦 *RECEPTOR*\n")
	fmt.Fprintf(&b, "Nombre: %s\n", order.ReceiverFullName)
	fmt.Fprintf(&b, "CI: %s\n", order.ReceiverIDNumber)
	fmt.Fprintf(&b, "Contacto: %s\n", order.ReceiverContact)
	fmt.Fprintf(&b, "Dirección: %s\n", order.ReceiverAddress)
	if order.ReceiverExtra != "" {
		fmt.Fprintf(&b, "Adicionales: %s\n", order.ReceiverExtra)
	}
	b.WriteString("\n")

	b.WriteString("🛍️ *PRODUCTOS*\n")
	for _, it := range order.Items {
		fmt.Fprintf(&b, "• %s\n", it.ProductName)
		fmt.Fprintf(&b, "  Cantidad: %d\n", it.Quantity)
		fmt.Fprintf(&b, "  Precio: $%s\n", it.Price.StringFixed(2))
		fmt.Fprintf(&b, "  Subtotal: $%s\n\n", it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))).StringFixed(2))
	}

	fmt.Fprintf(&b, "💰 *TOTAL: $%s*\n", order.Total.StringFixed(2))
	fmt.Fprintf(&b, "💳 Método de pago: %s\n", order.PaymentMethod)
	return b.String()
}

// Link builds a wa.me link to phone prefilled with message. Non-digit
// characters in phone are dropped.
func Link(phone, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	// spaces as %20, matching encodeURIComponent
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + digits + "?text=" + text
}
