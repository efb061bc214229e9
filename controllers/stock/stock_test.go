package stockControllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
	"github.com/tienda-verde/storefront-api/database/dbtest"
	"github.com/tienda-verde/storefront-api/models"
	"gorm.io/gorm"
)

func seedProducts(t *testing.T) *gorm.DB {
	t.Helper()
	db := dbtest.New(t)
	for _, p := range []models.Product{
		{Name: "Arroz", CategoryName: "Alimentos", Price: decimal.NewFromInt(10)},
		{Name: "Azucar", CategoryName: "Alimentos", Price: decimal.NewFromInt(4)},
		{Name: "Jabon", CategoryName: "Aseo", Price: decimal.NewFromInt(2)},
	} {
		require.NoError(t, db.Create(&p).Error)
	}
	return db
}

func TestStockStatus(t *testing.T) {
	assert.Equal(t, StatusOut, StockStatus(0, 10))
	assert.Equal(t, StatusOut, StockStatus(-3, 10))
	assert.Equal(t, StatusLow, StockStatus(9, 10))
	assert.Equal(t, StatusOK, StockStatus(10, 10))
}

func TestRecordMovement(t *testing.T) {
	db := seedProducts(t)

	mv, err := RecordMovement(db, MovementInput{ProductName: "Arroz", MovementType: "entrada", Quantity: 12})
	require.NoError(t, err)
	assert.Equal(t, 0, mv.PriorBalance)
	assert.Equal(t, 12, mv.NewBalance)

	mv, err = RecordMovement(db, MovementInput{ProductName: "Arroz", MovementType: "out", Quantity: 5, Note: "merma"})
	require.NoError(t, err)
	assert.Equal(t, models.MovementOut, mv.MovementType)
	assert.Equal(t, 12, mv.PriorBalance)
	assert.Equal(t, 7, mv.NewBalance)

	_, err = RecordMovement(db, MovementInput{ProductName: "Cafe", MovementType: "entrada", Quantity: 1})
	assert.ErrorIs(t, err, ErrUnknownProduct)

	_, err = RecordMovement(db, MovementInput{ProductName: "Arroz", MovementType: "ajuste", Quantity: 1})
	assert.ErrorIs(t, err, models.ErrInvalidMovementType)

	_, err = RecordMovement(db, MovementInput{ProductName: "Arroz", MovementType: "entrada", Quantity: 0})
	assert.ErrorIs(t, err, models.ErrInvalidQuantity)
}

func TestBuildReport(t *testing.T) {
	db := seedProducts(t)
	_, err := RecordMovement(db, MovementInput{ProductName: "Arroz", MovementType: "entrada", Quantity: 12})
	require.NoError(t, err)
	_, err = RecordMovement(db, MovementInput{ProductName: "Azucar", MovementType: "entrada", Quantity: 3})
	require.NoError(t, err)

	report, err := BuildReport(db, 10, "", "")
	require.NoError(t, err)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.InStock)
	assert.Equal(t, 1, report.LowStock)
	assert.Equal(t, 1, report.OutOfStock)
	assert.Equal(t, []string{"Alimentos", "Aseo"}, report.Categories)

	report, err = BuildReport(db, 10, "Alimentos", "azu")
	require.NoError(t, err)
	require.Len(t, report.Items, 1)
	assert.Equal(t, StatusLow, report.Items[0].Status)
	assert.Equal(t, 3, report.Items[0].Balance)
}

func TestStockHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := seedProducts(t)

	r := gin.New()
	r.POST("/movements", RecordMovementHandler(db))
	r.GET("/movements", ListMovementsHandler(db))
	r.GET("/export", ExportMovementsToExcel(db))

	body := `{"product_name":"Jabon","movement_type":"entrada","quantity":4}`
	req := httptest.NewRequest(http.MethodPost, "/movements", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/movements", bytes.NewBufferString(`{"product_name":"Jabon","movement_type":"x","quantity":4}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/movements?product=Jabon", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"new_balance":4`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/export", nil))
	require.Equal(t, http.StatusOK, w.Code)

	book, err := xlsx.OpenBinary(w.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, book.Sheets, 1)
	assert.Equal(t, "Jabon", book.Sheets[0].Rows[1].Cells[1].String())
}
