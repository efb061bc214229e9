package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // Order placed from the storefront
	OrderStatusConfirmed OrderStatus = "confirmed" // Confirmed with the customer
	OrderStatusShipped   OrderStatus = "shipped"   // Handed to delivery
	OrderStatusCompleted OrderStatus = "completed" // Delivered
	OrderStatusSold      OrderStatus = "sold"      // Paid; produces a Sale
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled by the store
)

// DefaultPaymentMethod is recorded on sales whose order carries none.
const DefaultPaymentMethod = "efectivo"

type Order struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// Sender (the buyer)
	SenderFullName string `gorm:"not null" json:"sender_full_name"`
	SenderCountry  string `json:"sender_country"`
	SenderEmail    string `json:"sender_email"`
	SenderContact  string `json:"sender_contact"`

	// Receiver (who gets the parcel)
	ReceiverFullName string `gorm:"not null" json:"receiver_full_name"`
	ReceiverIDNumber string `json:"receiver_id_number"`
	ReceiverContact  string `json:"receiver_contact"`
	ReceiverAddress  string `json:"receiver_address"`
	ReceiverExtra    string `json:"receiver_extra"`

	PaymentMethod string          `gorm:"size:60" json:"payment_method"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Status        OrderStatus     `gorm:"type:VARCHAR(20);default:'pending';index" json:"status"`
	OrderDate     time.Time       `gorm:"index" json:"order_date"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now()
	}
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	return nil
}

// ShortRef is the prefix of the order id shown to customers.
func (o Order) ShortRef() string {
	if len(o.ID) <= 8 {
		return o.ID
	}
	return o.ID[:8]
}

type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     string          `gorm:"index;size:36" json:"order_id"`
	ProductName string          `gorm:"not null" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2)" json:"subtotal"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (i *OrderItem) BeforeSave(tx *gorm.DB) error {
	i.Subtotal = i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
	return nil
}
