package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNameRequired = errors.New("product: name is required")
	ErrNegativePrice       = errors.New("product: price must not be negative")
)

// Product is keyed by its unique name; carts, order items and the stock
// ledger all reference products by name.
type Product struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string          `gorm:"uniqueIndex;size:160;not null" json:"name"`
	CategoryName    string          `gorm:"index;size:120" json:"category_name"`
	SubCategoryName string          `gorm:"index;size:120" json:"sub_category_name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	ImageURL        string          `json:"image_url"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Normalize trims text fields and checks the product can be stored.
func (p *Product) Normalize() error {
	p.Name = strings.TrimSpace(p.Name)
	p.CategoryName = strings.TrimSpace(p.CategoryName)
	p.SubCategoryName = strings.TrimSpace(p.SubCategoryName)
	if p.Name == "" {
		return ErrProductNameRequired
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}
