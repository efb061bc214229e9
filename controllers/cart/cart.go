package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tienda-verde/storefront-api/cart"
	catalogControllers "github.com/tienda-verde/storefront-api/controllers/catalog"
	"gorm.io/gorm"
)

type AddItemInput struct {
	ProductName string `json:"product_name" binding:"required"`
}

type SetQuantityInput struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type cartResponse struct {
	Items []cart.Item     `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

func respond(c *gin.Context, status int, items []cart.Item) {
	total := decimal.Zero
	count := 0
	for _, it := range items {
		total = total.Add(it.Subtotal())
		count += it.Quantity
	}
	c.JSON(status, cartResponse{Items: items, Total: total, Count: count})
}

func cartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrOutOfStock),
		errors.Is(err, cart.ErrNoMoreStock),
		errors.Is(err, cart.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, cart.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
	}
}

// GET /store/cart
func GetCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, http.StatusOK, store.Snapshot(c.GetString("user_id")))
	}
}

// POST /store/cart
// Adds one unit, checked against the product's current stock balance.
func AddCartItem(db *gorm.DB, store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product, stock, err := catalogControllers.ProductStock(db, input.ProductName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		guestID := c.GetString("user_id")
		if err := store.Update(guestID, func(ct *cart.Cart) error {
			return ct.Add(product, stock)
		}); err != nil {
			cartError(c, err)
			return
		}
		respond(c, http.StatusOK, store.Snapshot(guestID))
	}
}

// PUT /store/cart/:product_name
func SetCartItemQuantity(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SetQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		guestID := c.GetString("user_id")
		if err := store.Update(guestID, func(ct *cart.Cart) error {
			return ct.SetQuantity(c.Param("product_name"), *input.Quantity)
		}); err != nil {
			cartError(c, err)
			return
		}
		respond(c, http.StatusOK, store.Snapshot(guestID))
	}
}

// DELETE /store/cart/:product_name
func DeleteCartItem(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID := c.GetString("user_id")
		_ = store.Update(guestID, func(ct *cart.Cart) error {
			ct.Remove(c.Param("product_name"))
			return nil
		})
		respond(c, http.StatusOK, store.Snapshot(guestID))
	}
}

// DELETE /store/cart
func ClearCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		store.Drop(c.GetString("user_id"))
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
