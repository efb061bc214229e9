package orderControllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/tienda-verde/storefront-api/cart"
	"github.com/tienda-verde/storefront-api/checkout"
	"github.com/tienda-verde/storefront-api/events"
	"github.com/tienda-verde/storefront-api/models"
	"github.com/tienda-verde/storefront-api/notify"
	"gorm.io/gorm"
)

// Checkout bundles what placing an order touches besides the database.
// Feed, Events and Mailer may be nil.
type Checkout struct {
	DB            *gorm.DB
	Carts         *cart.Store
	Feed          *Feed
	Events        events.Publisher
	Mailer        *notify.OrderMailer
	WhatsAppPhone string
}

func respondCheckoutError(c *gin.Context, err error) {
	var fe *checkout.FieldError
	switch {
	case errors.As(err, &fe):
		c.JSON(http.StatusBadRequest, gin.H{"error": fe.Error(), "step": fe.Step, "field": fe.Field})
	case errors.Is(err, ErrEmptyCart), errors.Is(err, ErrUnknownPaymentMethod), errors.Is(err, checkout.ErrInvalidStep):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("❌ Checkout failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order: " + err.Error()})
	}
}

// bindForm decodes the checkout body. Tag violations are left to the
// step validator, which reports them with their step and field.
func bindForm(c *gin.Context, form *checkout.Form) bool {
	err := c.ShouldBindJSON(form)
	var verrs validator.ValidationErrors
	if err == nil || errors.As(err, &verrs) {
		return true
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
	return false
}

// POST /store/checkout/validate?step=N
func ValidateStepHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		step, err := strconv.Atoi(c.Query("step"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": checkout.ErrInvalidStep.Error()})
			return
		}
		var form checkout.Form
		if !bindForm(c, &form) {
			return
		}
		if err := form.ValidateStep(step); err != nil {
			respondCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"valid": true, "step": step})
	}
}

// POST /store/checkout
func PlaceOrderHandler(co *Checkout) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form checkout.Form
		if !bindForm(c, &form) {
			return
		}

		// Take empties the cart atomically, so a concurrent submit sees it empty
		guestID := c.GetString("user_id")
		items := co.Carts.Take(guestID)
		order, err := SubmitOrder(co.DB, items, form)
		if err != nil {
			co.Carts.Restore(guestID, items)
			respondCheckoutError(c, err)
			return
		}
		log.Printf("🛒 Order %s placed: %d items, $%s", order.ShortRef(), len(order.Items), order.Total.StringFixed(2))

		co.announce(c, *order)

		phone := WhatsAppPhone(co.DB, co.WhatsAppPhone)
		c.JSON(http.StatusCreated, gin.H{
			"order":        order,
			"whatsapp_url": checkout.Link(phone, checkout.Message(*order)),
		})
	}
}

// announce fans a placed order out to the feed, the broker and e-mail.
// Failures are logged; the order is already committed.
func (co *Checkout) announce(c *gin.Context, order models.Order) {
	if co.Feed != nil {
		co.Feed.Broadcast("order_placed", order)
	}
	if co.Events != nil {
		if err := co.Events.Publish(c.Request.Context(), events.OrderPlacedRoutingKey, events.NewOrderPlaced(order)); err != nil {
			log.Printf("⚠️ Failed to publish order %s: %v", order.ID, err)
		}
	}
	if err := co.Mailer.OrderPlaced(c.Request.Context(), order); err != nil {
		log.Printf("⚠️ Failed to e-mail order %s: %v", order.ID, err)
	}
}
