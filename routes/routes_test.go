package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tienda-verde/storefront-api/auth"
	"github.com/tienda-verde/storefront-api/cart"
	"github.com/tienda-verde/storefront-api/config"
	orderControllers "github.com/tienda-verde/storefront-api/controllers/order"
	"github.com/tienda-verde/storefront-api/database/dbtest"
	"github.com/tienda-verde/storefront-api/events"
	"github.com/tienda-verde/storefront-api/models"
)

type testServer struct {
	router http.Handler
	env    *Env
}

func newServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := dbtest.New(t)

	sessions, err := auth.NewManager("secret", time.Hour, time.Hour)
	require.NoError(t, err)
	t.Cleanup(sessions.Close)
	require.NoError(t, auth.EnsureSuperAdmin(db, "boss@example.com", "boss-password"))

	env := &Env{
		DB:       db,
		Config:   &config.Config{APIKey: "api-key", WhatsAppPhone: "17868830056", LowStockThreshold: 10},
		Sessions: sessions,
		Auth:     &auth.Authenticator{DB: db, Sessions: sessions},
		Carts:    cart.NewStore(),
		Feed:     orderControllers.NewFeed(),
		Events:   events.Nop{},
	}
	r := gin.New()
	SetupRoutes(r, env)
	return &testServer{router: r, env: env}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if out != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func TestGuestCheckoutAndSale(t *testing.T) {
	s := newServer(t)

	// admin signs in and stocks the shop
	var login auth.SignInResult
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/auth/admin/login", "",
		gin.H{"email": "boss@example.com", "password": "boss-password"}, &login))
	admin := login.Token

	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/admin/products", admin,
		gin.H{"name": "Arroz", "category_name": "Alimentos", "price": "10"}, nil))
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/admin/products", admin,
		gin.H{"name": "Aceite", "category_name": "Alimentos", "price": "5"}, nil))
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/admin/payment-methods", admin,
		gin.H{"name": "Zelle"}, nil))
	for name, qty := range map[string]int{"Arroz": 5, "Aceite": 1} {
		require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/admin/stock/movements", admin,
			gin.H{"product_name": name, "movement_type": "entrada", "quantity": qty}, nil))
	}

	// guest shops
	var guest struct {
		Token string `json:"token"`
	}
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/auth/guest", "", nil, &guest))

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/store/cart", "", nil, nil))
	for _, name := range []string{"Arroz", "Arroz", "Aceite"} {
		require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/store/cart", guest.Token, gin.H{"product_name": name}, nil))
	}
	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodPost, "/store/cart", guest.Token, gin.H{"product_name": "Aceite"}, nil))

	var placed struct {
		Order       models.Order `json:"order"`
		WhatsAppURL string       `json:"whatsapp_url"`
	}
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/store/checkout", guest.Token, gin.H{
		"sender_full_name":   "Ana Perez",
		"sender_country":     "USA",
		"sender_email":       "ana@example.com",
		"sender_contact":     "3055550100",
		"receiver_full_name": "Luis Perez",
		"receiver_id_number": "85010112345",
		"receiver_contact":   "55551234",
		"receiver_address":   "Calle 23",
		"payment_method":     "Zelle",
	}, &placed))
	assert.Equal(t, "25.00", placed.Order.Total.StringFixed(2))
	assert.Contains(t, placed.WhatsAppURL, "https://wa.me/17868830056?text=")

	// Aceite is sold out and leaves the storefront
	var catalog struct {
		Products []struct {
			Name  string `json:"name"`
			Stock int    `json:"stock"`
		} `json:"products"`
	}
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/store/catalog", "", nil, &catalog))
	require.Len(t, catalog.Products, 1)
	assert.Equal(t, 3, catalog.Products[0].Stock)

	// guests cannot reach the back-office
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/admin/orders", guest.Token, nil, nil))

	path := "/admin/orders/" + placed.Order.ID + "/status"
	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, s.do(t, http.MethodPut, path, admin, gin.H{"status": "sold"}, nil))
	}

	var sales struct {
		Sales []models.Sale `json:"sales"`
		Stats struct {
			Count int             `json:"count"`
			Total decimal.Decimal `json:"total"`
		} `json:"stats"`
	}
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/admin/sales", admin, nil, &sales))
	require.Len(t, sales.Sales, 1)
	assert.Equal(t, 1, sales.Stats.Count)
	assert.Equal(t, "25.00", sales.Stats.Total.StringFixed(2))

	// sign-out ends the admin session
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/auth/admin/logout", admin, nil, nil))
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/admin/sales", admin, nil, nil))
}

func TestAPIKeyAndHealth(t *testing.T) {
	s := newServer(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/sales", nil)
	req.Header.Set("X-API-KEY", "api-key")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/healthz", "", nil, nil))
	assert.Equal(t, http.StatusNotImplemented, s.do(t, http.MethodPost, "/auth/admin/google", "", gin.H{"idToken": "x"}, nil))
}
