package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MovementType string

const (
	MovementIn  MovementType = "entrada"
	MovementOut MovementType = "salida"
)

var (
	ErrInvalidMovementType = errors.New("stock: movement type must be entrada or salida")
	ErrInvalidQuantity     = errors.New("stock: quantity must be greater than zero")
	ErrMovementProduct     = errors.New("stock: product name is required")
)

// StockMovement is one row of the append-only stock ledger. The current
// balance of a product is the NewBalance of its latest row.
type StockMovement struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	ProductName  string       `gorm:"index;size:160;not null" json:"product_name"`
	MovementType MovementType `gorm:"type:VARCHAR(10);not null" json:"movement_type"`
	Quantity     int          `gorm:"not null" json:"quantity"`
	PriorBalance int          `json:"prior_balance"`
	NewBalance   int          `json:"new_balance"`
	Note         string       `json:"note"`
	CreatedAt    time.Time    `gorm:"index" json:"created_at"`
}

// ParseMovementType accepts the ledger's own names plus in/out.
func ParseMovementType(s string) (MovementType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(MovementIn), "in":
		return MovementIn, nil
	case string(MovementOut), "out":
		return MovementOut, nil
	default:
		return "", ErrInvalidMovementType
	}
}

// Apply returns the balance after moving qty units from prior.
func (t MovementType) Apply(prior, qty int) int {
	if t == MovementIn {
		return prior + qty
	}
	return prior - qty
}

// LatestBalance returns the newest ledger balance for a product, or 0 when
// the product has no movements. Inside a transaction the row is locked.
func LatestBalance(db *gorm.DB, productName string) (int, error) {
	var last StockMovement
	res := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_name = ?", productName).
		Order("created_at DESC").
		Order("id DESC").
		Limit(1).
		Find(&last)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, nil
	}
	return last.NewBalance, nil
}

// AppendStockMovement records a movement and its resulting balance.
// Balances may go negative; nothing floors them at zero.
func AppendStockMovement(db *gorm.DB, productName string, kind MovementType, qty int, note string) (*StockMovement, error) {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return nil, ErrMovementProduct
	}
	if kind != MovementIn && kind != MovementOut {
		return nil, ErrInvalidMovementType
	}
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	prior, err := LatestBalance(db, productName)
	if err != nil {
		return nil, fmt.Errorf("read balance for %s: %w", productName, err)
	}

	mv := &StockMovement{
		ProductName:  productName,
		MovementType: kind,
		Quantity:     qty,
		PriorBalance: prior,
		NewBalance:   kind.Apply(prior, qty),
		Note:         note,
	}
	if err := db.Create(mv).Error; err != nil {
		return nil, fmt.Errorf("append movement for %s: %w", productName, err)
	}
	return mv, nil
}

// StockBalances returns the current balance of every product that has at
// least one ledger row.
func StockBalances(db *gorm.DB) (map[string]int, error) {
	var rows []StockMovement
	latest := db.Model(&StockMovement{}).Select("MAX(id)").Group("product_name")
	if err := db.Select("product_name", "new_balance").
		Where("id IN (?)", latest).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	balances := make(map[string]int, len(rows))
	for _, r := range rows {
		balances[r.ProductName] = r.NewBalance
	}
	return balances, nil
}
