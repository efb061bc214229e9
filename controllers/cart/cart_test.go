package cartControllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tienda-verde/storefront-api/cart"
	"github.com/tienda-verde/storefront-api/database/dbtest"
	"github.com/tienda-verde/storefront-api/models"
)

func newCartRouter(t *testing.T) (*gin.Engine, *cart.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := dbtest.New(t)

	require.NoError(t, db.Create(&models.Product{Name: "Arroz", Price: decimal.NewFromInt(10)}).Error)
	require.NoError(t, db.Create(&models.Product{Name: "Aceite", Price: decimal.NewFromInt(5)}).Error)
	_, err := models.AppendStockMovement(db, "Arroz", models.MovementIn, 2, "")
	require.NoError(t, err)

	store := cart.NewStore()
	r := gin.New()
	g := r.Group("/store/cart", func(c *gin.Context) { c.Set("user_id", "guest_1") })
	g.GET("", GetCart(store))
	g.POST("", AddCartItem(db, store))
	g.PUT("/:product_name", SetCartItemQuantity(store))
	g.DELETE("/:product_name", DeleteCartItem(store))
	g.DELETE("", ClearCart(store))
	return r, store
}

func call(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCartFlow(t *testing.T) {
	r, store := newCartRouter(t)

	assert.Equal(t, http.StatusOK, call(r, http.MethodPost, "/store/cart", `{"product_name":"Arroz"}`).Code)
	assert.Equal(t, http.StatusOK, call(r, http.MethodPost, "/store/cart", `{"product_name":"Arroz"}`).Code)

	w := call(r, http.MethodPost, "/store/cart", `{"product_name":"Arroz"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), cart.ErrNoMoreStock.Error())

	w = call(r, http.MethodGet, "/store/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(20)))

	assert.Equal(t, http.StatusConflict, call(r, http.MethodPut, "/store/cart/Arroz", `{"quantity":3}`).Code)
	assert.Equal(t, http.StatusOK, call(r, http.MethodPut, "/store/cart/Arroz", `{"quantity":0}`).Code)
	assert.Empty(t, store.Snapshot("guest_1"))
}

func TestAddOutOfStockLeavesCartUnchanged(t *testing.T) {
	r, store := newCartRouter(t)

	w := call(r, http.MethodPost, "/store/cart", `{"product_name":"Aceite"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), cart.ErrOutOfStock.Error())
	assert.Empty(t, store.Snapshot("guest_1"))

	assert.Equal(t, http.StatusBadRequest, call(r, http.MethodPost, "/store/cart", `{"product_name":"Sal"}`).Code)
}

func TestDeleteAndClear(t *testing.T) {
	r, store := newCartRouter(t)
	require.Equal(t, http.StatusOK, call(r, http.MethodPost, "/store/cart", `{"product_name":"Arroz"}`).Code)

	assert.Equal(t, http.StatusOK, call(r, http.MethodDelete, "/store/cart/Arroz", "").Code)
	assert.Empty(t, store.Snapshot("guest_1"))

	require.Equal(t, http.StatusOK, call(r, http.MethodPost, "/store/cart", `{"product_name":"Arroz"}`).Code)
	assert.Equal(t, http.StatusOK, call(r, http.MethodDelete, "/store/cart", "").Code)
	assert.Zero(t, store.Len())
}
