package models_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tienda-verde/storefront-api/database/dbtest"
	"github.com/tienda-verde/storefront-api/models"
)

func TestOrderCreateFillsDefaults(t *testing.T) {
	db := dbtest.New(t)

	order := models.Order{
		SenderFullName:   "Ana",
		ReceiverFullName: "Luis",
		Total:            decimal.RequireFromString("12.50"),
		Items: []models.OrderItem{
			{ProductName: "Arroz", Quantity: 3, Price: decimal.RequireFromString("2.50")},
		},
	}
	require.NoError(t, db.Create(&order).Error)

	assert.Len(t, order.ID, 36)
	assert.Len(t, order.ShortRef(), 8)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.False(t, order.OrderDate.IsZero())
	assert.True(t, order.Items[0].Subtotal.Equal(decimal.RequireFromString("7.50")))
}

func TestProductNormalize(t *testing.T) {
	p := models.Product{Name: "  Café  ", Price: decimal.NewFromInt(3)}
	require.NoError(t, p.Normalize())
	assert.Equal(t, "Café", p.Name)

	p = models.Product{Name: "", Price: decimal.NewFromInt(1)}
	assert.ErrorIs(t, p.Normalize(), models.ErrProductNameRequired)

	p = models.Product{Name: "Sal", Price: decimal.NewFromInt(-1)}
	assert.ErrorIs(t, p.Normalize(), models.ErrNegativePrice)
}
