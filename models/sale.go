package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is the financial record of an order marked as sold. OrderID is
// unique so a given order can never produce two sales.
type Sale struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OrderID       string          `gorm:"uniqueIndex;size:36;not null" json:"order_id"`
	CustomerName  string          `json:"customer_name"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	PaymentMethod string          `gorm:"size:60" json:"payment_method"`
	SaleDate      time.Time       `gorm:"index" json:"sale_date"`
	CreatedAt     time.Time       `json:"created_at"`
}
