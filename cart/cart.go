// Package cart holds storefront carts in memory. Nothing here touches the
// database; a cart only becomes an order at checkout.
package cart

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/tienda-verde/storefront-api/models"
)

var (
	ErrOutOfStock        = errors.New("product out of stock")
	ErrNoMoreStock       = errors.New("no more stock available for this product")
	ErrInsufficientStock = errors.New("not enough stock available")
	ErrItemNotFound      = errors.New("product is not in the cart")
)

// Item is one cart line. StockCeiling is the stock snapshot seen when the
// line was last added to.
type Item struct {
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"price"`
	StockCeiling int             `json:"stock_available"`
	ImageURL     string          `json:"image_url"`
}

func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is an ordered list of lines keyed by product name. It is not safe
// for concurrent use; Store serializes access.
type Cart struct {
	items []Item
}

// Add puts one unit of product in the cart.
func (c *Cart) Add(product models.Product, availableStock int) error {
	if availableStock <= 0 {
		return ErrOutOfStock
	}

	if i := c.index(product.Name); i >= 0 {
		if c.items[i].Quantity >= availableStock {
			return ErrNoMoreStock
		}
		c.items[i].Quantity++
		c.items[i].StockCeiling = availableStock
		return nil
	}

	c.items = append(c.items, Item{
		ProductName:  product.Name,
		Quantity:     1,
		UnitPrice:    product.Price,
		StockCeiling: availableStock,
		ImageURL:     product.ImageURL,
	})
	return nil
}

// SetQuantity replaces a line's quantity. Zero or less removes the line.
func (c *Cart) SetQuantity(productName string, qty int) error {
	i := c.index(productName)
	if i < 0 {
		return ErrItemNotFound
	}
	if qty <= 0 {
		c.removeAt(i)
		return nil
	}
	if qty > c.items[i].StockCeiling {
		return ErrInsufficientStock
	}
	c.items[i].Quantity = qty
	return nil
}

// Remove drops a line; removing an absent product is a no-op.
func (c *Cart) Remove(productName string) {
	if i := c.index(productName); i >= 0 {
		c.removeAt(i)
	}
}

func (c *Cart) Clear() { c.items = nil }

func (c *Cart) Len() int { return len(c.items) }

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (c *Cart) index(productName string) int {
	for i, it := range c.items {
		if it.ProductName == productName {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.items = append(c.items[:i], c.items[i+1:]...)
}
