package orderControllers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tienda-verde/storefront-api/cart"
	"github.com/tienda-verde/storefront-api/checkout"
	"github.com/tienda-verde/storefront-api/database/dbtest"
	"github.com/tienda-verde/storefront-api/models"
	"gorm.io/gorm"
)

func validForm() checkout.Form {
	return checkout.Form{
		Sender: checkout.Sender{
			SenderFullName: "Ana Perez",
			SenderCountry:  "USA",
			SenderEmail:    "ana@example.com",
			SenderContact:  "+1 305 555 0100",
		},
		Receiver: checkout.Receiver{
			ReceiverFullName: "Luis Perez",
			ReceiverIDNumber: "85010112345",
			ReceiverContact:  "+53 5555 1234",
			ReceiverAddress:  "Calle 23, Vedado",
		},
		Payment: checkout.Payment{PaymentMethod: "Zelle"},
	}
}

func seedShop(t *testing.T) *gorm.DB {
	t.Helper()
	db := dbtest.New(t)
	require.NoError(t, db.Create(&models.PaymentMethod{Name: "Zelle", Active: true}).Error)
	require.NoError(t, db.Create(&models.PaymentMethod{Name: "Cheque", Active: false}).Error)
	_, err := models.AppendStockMovement(db, "Arroz", models.MovementIn, 10, "")
	require.NoError(t, err)
	_, err = models.AppendStockMovement(db, "Aceite", models.MovementIn, 3, "")
	require.NoError(t, err)
	return db
}

func sampleItems() []cart.Item {
	return []cart.Item{
		{ProductName: "Arroz", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
		{ProductName: "Aceite", Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
	}
}

func TestSubmitOrderWritesItemsAndDebits(t *testing.T) {
	db := seedShop(t)

	order, err := SubmitOrder(db, sampleItems(), validForm())
	require.NoError(t, err)

	assert.True(t, order.Total.Equal(decimal.RequireFromString("25.00")))
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Len(t, order.ID, 36)

	var items []models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&items).Error)
	assert.Len(t, items, 2)

	var debits []models.StockMovement
	require.NoError(t, db.Where("note = ?", DebitNote(order.ID)).Order("id").Find(&debits).Error)
	require.Len(t, debits, 2)
	assert.Equal(t, models.MovementOut, debits[0].MovementType)
	assert.Equal(t, 10, debits[0].PriorBalance)
	assert.Equal(t, 8, debits[0].NewBalance)

	balance, err := models.LatestBalance(db, "Aceite")
	require.NoError(t, err)
	assert.Equal(t, 2, balance)
}

func TestSubmitOrderRejections(t *testing.T) {
	db := seedShop(t)

	_, err := SubmitOrder(db, nil, validForm())
	assert.ErrorIs(t, err, ErrEmptyCart)

	form := validForm()
	form.ReceiverAddress = "  "
	_, err = SubmitOrder(db, sampleItems(), form)
	var fe *checkout.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, checkout.StepReceiver, fe.Step)

	form = validForm()
	form.PaymentMethod = "Cheque"
	_, err = SubmitOrder(db, sampleItems(), form)
	assert.ErrorIs(t, err, ErrUnknownPaymentMethod)

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
}

func TestSubmitOrderRollsBackOnFailedDebit(t *testing.T) {
	db := seedShop(t)
	items := append(sampleItems(), cart.Item{ProductName: " ", Quantity: 1, UnitPrice: decimal.NewFromInt(1)})

	_, err := SubmitOrder(db, items, validForm())
	assert.ErrorIs(t, err, models.ErrMovementProduct)

	var orders, orderItems, movements int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&orderItems).Error)
	require.NoError(t, db.Model(&models.StockMovement{}).Count(&movements).Error)
	assert.Zero(t, orders)
	assert.Zero(t, orderItems)
	assert.EqualValues(t, 2, movements)
}

func TestChangeOrderStatusCreatesOneSale(t *testing.T) {
	db := seedShop(t)
	order, err := SubmitOrder(db, sampleItems(), validForm())
	require.NoError(t, err)

	change, err := ChangeOrderStatus(db, order.ID, models.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.False(t, change.SaleCreated)
	assert.Equal(t, models.OrderStatusPending, change.OldStatus)

	change, err = ChangeOrderStatus(db, order.ID, models.OrderStatusSold)
	require.NoError(t, err)
	assert.True(t, change.SaleCreated)

	change, err = ChangeOrderStatus(db, order.ID, models.OrderStatusSold)
	require.NoError(t, err)
	assert.False(t, change.SaleCreated)

	// leaving and re-entering sold
	_, err = ChangeOrderStatus(db, order.ID, models.OrderStatusCompleted)
	require.NoError(t, err)
	change, err = ChangeOrderStatus(db, order.ID, models.OrderStatusSold)
	require.NoError(t, err)
	assert.False(t, change.SaleCreated)

	var sales []models.Sale
	require.NoError(t, db.Find(&sales).Error)
	require.Len(t, sales, 1)
	assert.Equal(t, order.ID, sales[0].OrderID)
	assert.Equal(t, "Zelle", sales[0].PaymentMethod)
	assert.Equal(t, "Ana Perez", sales[0].CustomerName)
	assert.True(t, sales[0].Total.Equal(decimal.NewFromInt(25)))
}

func TestChangeOrderStatusDefaultsPaymentMethod(t *testing.T) {
	db := dbtest.New(t)
	order := models.Order{SenderFullName: "X", ReceiverFullName: "Y", Total: decimal.NewFromInt(7)}
	require.NoError(t, db.Create(&order).Error)

	_, err := ChangeOrderStatus(db, order.ID, models.OrderStatusSold)
	require.NoError(t, err)

	var sale models.Sale
	require.NoError(t, db.First(&sale).Error)
	assert.Equal(t, "efectivo", sale.PaymentMethod)

	_, err = ChangeOrderStatus(db, "missing", models.OrderStatusSold)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestMapOrderStatus(t *testing.T) {
	s, err := mapOrderStatus(" Sold ")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusSold, s)

	for in, want := range map[string]models.OrderStatus{
		"pendiente":  models.OrderStatusPending,
		"Confirmada": models.OrderStatusConfirmed,
		"enviada":    models.OrderStatusShipped,
		"completada": models.OrderStatusCompleted,
		" VENDIDO ":  models.OrderStatusSold,
		"cancelada":  models.OrderStatusCancelled,
	} {
		got, err := mapOrderStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err = mapOrderStatus("returned")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestChangeOrderStatusSpanishSoldCreatesSale(t *testing.T) {
	db := seedShop(t)
	order, err := SubmitOrder(db, sampleItems(), validForm())
	require.NoError(t, err)

	status, err := mapOrderStatus("vendido")
	require.NoError(t, err)
	change, err := ChangeOrderStatus(db, order.ID, status)
	require.NoError(t, err)
	assert.True(t, change.SaleCreated)

	var sales int64
	require.NoError(t, db.Model(&models.Sale{}).Where("order_id = ?", order.ID).Count(&sales).Error)
	assert.Equal(t, int64(1), sales)
}

func TestWhatsAppPhone(t *testing.T) {
	db := dbtest.New(t)
	assert.Equal(t, "17868830056", WhatsAppPhone(db, "17868830056"))

	require.NoError(t, db.Create(&models.SiteSetting{Name: models.SettingPhone, Value: "+53 5 123 4567"}).Error)
	assert.Equal(t, "+53 5 123 4567", WhatsAppPhone(db, "17868830056"))
}

func TestDeleteOrder(t *testing.T) {
	db := seedShop(t)
	order, err := SubmitOrder(db, sampleItems(), validForm())
	require.NoError(t, err)

	require.NoError(t, DeleteOrder(db, order.ID))
	assert.ErrorIs(t, DeleteOrder(db, order.ID), ErrOrderNotFound)

	var items int64
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&items).Error)
	assert.Zero(t, items)
}
