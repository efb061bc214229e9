package orderControllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tienda-verde/storefront-api/cart"
	"github.com/tienda-verde/storefront-api/checkout"
	"github.com/tienda-verde/storefront-api/events"
	"github.com/tienda-verde/storefront-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrUnknownPaymentMethod = errors.New("payment method is not available")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrOrderNotFound        = errors.New("order not found")
)

// StatusChange is the outcome of ChangeOrderStatus.
type StatusChange struct {
	Order       models.Order       `json:"order"`
	OldStatus   models.OrderStatus `json:"old_status"`
	SaleCreated bool               `json:"sale_created"`
}

// -------- Helpers --------

// Map string to OrderStatus
// statusAliases maps the Spanish status names used by the back-office UI.
var statusAliases = map[string]models.OrderStatus{
	"pendiente":  models.OrderStatusPending,
	"confirmada": models.OrderStatusConfirmed,
	"enviada":    models.OrderStatusShipped,
	"completada": models.OrderStatusCompleted,
	"vendido":    models.OrderStatusSold,
	"cancelada":  models.OrderStatusCancelled,
}

func mapOrderStatus(status string) (models.OrderStatus, error) {
	name := strings.ToLower(strings.TrimSpace(status))
	if s, ok := statusAliases[name]; ok {
		return s, nil
	}
	switch s := models.OrderStatus(name); s {
	case models.OrderStatusPending,
		models.OrderStatusConfirmed,
		models.OrderStatusShipped,
		models.OrderStatusCompleted,
		models.OrderStatusSold,
		models.OrderStatusCancelled:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}

// DebitNote is the ledger note written for stock leaving with an order.
func DebitNote(orderID string) string {
	return "Pedido #" + orderID
}

// WhatsAppPhone returns the store's WhatsApp number: the Telefono site
// setting when present, fallback otherwise.
func WhatsAppPhone(db *gorm.DB, fallback string) string {
	var setting models.SiteSetting
	res := db.Where("name = ?", models.SettingPhone).Limit(1).Find(&setting)
	if res.Error != nil || res.RowsAffected == 0 || strings.TrimSpace(setting.Value) == "" {
		return fallback
	}
	return setting.Value
}

// -------- Core Logic --------

// SubmitOrder turns a cart into an order. The order row, its items and one
// salida movement per item are written in a single transaction.
func SubmitOrder(db *gorm.DB, items []cart.Item, form checkout.Form) (*models.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}

	order := models.Order{
		SenderFullName:   form.SenderFullName,
		SenderCountry:    form.SenderCountry,
		SenderEmail:      form.SenderEmail,
		SenderContact:    form.SenderContact,
		ReceiverFullName: form.ReceiverFullName,
		ReceiverIDNumber: form.ReceiverIDNumber,
		ReceiverContact:  form.ReceiverContact,
		ReceiverAddress:  form.ReceiverAddress,
		ReceiverExtra:    form.ReceiverExtra,
		PaymentMethod:    form.PaymentMethod,
		Total:            total,
		Status:           models.OrderStatusPending,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var method models.PaymentMethod
		res := tx.Where("name = ? AND active = ?", form.PaymentMethod, true).Limit(1).Find(&method)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUnknownPaymentMethod
		}

		if err := tx.Omit("Items").Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		orderItems := make([]models.OrderItem, 0, len(items))
		for _, it := range items {
			orderItems = append(orderItems, models.OrderItem{
				OrderID:     order.ID,
				ProductName: it.ProductName,
				Quantity:    it.Quantity,
				Price:       it.UnitPrice,
			})
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return fmt.Errorf("create order items: %w", err)
		}
		order.Items = orderItems

		for _, it := range orderItems {
			if _, err := models.AppendStockMovement(tx, it.ProductName, models.MovementOut, it.Quantity, DebitNote(order.ID)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ChangeOrderStatus moves an order to status. The first move into sold
// records a sale; the unique order id on sales keeps later ones from
// adding another.
func ChangeOrderStatus(db *gorm.DB, orderID string, status models.OrderStatus) (*StatusChange, error) {
	var change StatusChange

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", orderID).
			Limit(1).
			Find(&change.Order)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOrderNotFound
		}

		change.OldStatus = change.Order.Status
		if err := tx.Model(&change.Order).Update("status", status).Error; err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		change.Order.Status = status

		if status != models.OrderStatusSold || change.OldStatus == models.OrderStatusSold {
			return nil
		}

		method := change.Order.PaymentMethod
		if method == "" {
			method = models.DefaultPaymentMethod
		}
		sale := models.Sale{
			OrderID:       change.Order.ID,
			CustomerName:  change.Order.SenderFullName,
			Total:         change.Order.Total,
			PaymentMethod: method,
			SaleDate:      time.Now(),
		}
		res = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoNothing: true,
		}).Create(&sale)
		if res.Error != nil {
			return fmt.Errorf("create sale: %w", res.Error)
		}
		change.SaleCreated = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &change, nil
}

// DeleteOrder removes an order and its items. Ledger rows and sales stay.
func DeleteOrder(db *gorm.DB, orderID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", orderID).Delete(&models.Order{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOrderNotFound
		}
		return nil
	})
}

// -------- Handlers --------

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GET /admin/orders?status=
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Items").Order("order_date DESC")
		if s := c.Query("status"); s != "" {
			status, err := mapOrderStatus(s)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			query = query.Where("status = ?", status)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /admin/orders/:orderID
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.Preload("Items").Where("id = ?", c.Param("orderID")).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": ErrOrderNotFound.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT /admin/orders/:orderID/status
func UpdateOrderStatusHandler(db *gorm.DB, publisher events.Publisher, feed *Feed) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		change, err := ChangeOrderStatus(db, c.Param("orderID"), newStatus)
		if err != nil {
			if errors.Is(err, ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			log.Printf("❌ Failed to update order %s: %v", c.Param("orderID"), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		if change.SaleCreated {
			log.Printf("💰 Sale recorded for order %s", change.Order.ShortRef())
		}

		msg := events.OrderStatusChanged{
			OrderID:     change.Order.ID,
			OldStatus:   string(change.OldStatus),
			Status:      string(change.Order.Status),
			SaleCreated: change.SaleCreated,
			CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		if publisher != nil {
			if err := publisher.Publish(c.Request.Context(), events.OrderStatusRoutingKey, msg); err != nil {
				log.Printf("⚠️ Failed to publish status change for %s: %v", change.Order.ID, err)
			}
		}
		if feed != nil {
			feed.Broadcast("order_status", msg)
		}

		c.JSON(http.StatusOK, gin.H{
			"message":      "Order status updated successfully",
			"status":       change.Order.Status,
			"sale_created": change.SaleCreated,
		})
	}
}

// DELETE /admin/orders/:orderID
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := DeleteOrder(db, c.Param("orderID")); err != nil {
			if errors.Is(err, ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
