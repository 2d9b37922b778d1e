package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kayoemoeda/internal/database"
	"kayoemoeda/internal/models"
	"kayoemoeda/internal/repositories"
	"kayoemoeda/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	app   *fiber.App
	svc   *server.Services
	store *repositories.Store
}

// setupApp builds the full application on an in-memory SQLite database.
func setupApp(t *testing.T) *testApp {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	store := repositories.NewStore(db)
	opts := server.Options{JWTSecret: "test_jwt_secret", SnowflakeNode: 1}
	svc, err := server.NewServices(store, nil, opts)
	require.NoError(t, err)
	return &testApp{app: server.New(svc, opts), svc: svc, store: store}
}

// do sends a JSON request and decodes a JSON object response.
func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	resp := a.raw(t, method, path, token, body)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	if len(data) > 0 && data[0] == '{' {
		require.NoError(t, json.Unmarshal(data, &out), string(data))
	}
	return resp.StatusCode, out
}

func (a *testApp) raw(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1) // -1 for no timeout
	require.NoError(t, err)
	return resp
}

// staff creates an active account with the given role and returns its token.
func (a *testApp) staff(t *testing.T, role models.Role, email string) (string, *models.User) {
	t.Helper()
	ctx := context.Background()
	var user *models.User
	switch role {
	case models.RoleOwner:
		var err error
		user, _, err = a.svc.Auth.EnsureOwner(ctx, "Owner", email, "secret123")
		require.NoError(t, err)
	case models.RoleAdmin:
		user = &models.User{Name: "Admin", Email: email, Password: "secret123"}
		require.NoError(t, a.svc.Accounts.CreateAdmin(ctx, user))
	default:
		user = &models.User{Name: "Customer", Email: email, Password: "secret123"}
		require.NoError(t, a.svc.Auth.RegisterUser(ctx, user))
	}
	token, _, err := a.svc.Auth.LoginUser(ctx, email, "secret123")
	require.NoError(t, err)
	return token, user
}

func (a *testApp) product(t *testing.T, name string, price int64, stock int) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: price, Stock: stock}
	require.NoError(t, a.store.Products.Create(context.Background(), p))
	return p
}

// placeOrder fills the customer's cart and checks it out through the API.
func (a *testApp) placeOrder(t *testing.T, token string, p *models.Product, qty int) string {
	t.Helper()
	status, _ := a.do(t, http.MethodPost, "/api/v1/cart/items", token, fiber.Map{"productId": p.ID, "quantity": qty})
	require.Equal(t, http.StatusCreated, status)
	status, body := a.do(t, http.MethodPost, "/api/v1/orders/from-cart", token, checkoutBody)
	require.Equal(t, http.StatusCreated, status, body)
	return body["id"].(string)
}

var checkoutBody = fiber.Map{
	"recipientName": "Budi",
	"phone":         "081234567890",
	"address":       "Jl. Kaliurang 12",
	"city":          "Yogyakarta",
}

func TestAuthRegisterAndLogin(t *testing.T) {
	a := setupApp(t)

	// Test Registration
	status, body := a.do(t, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "User registered successfully", body["message"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "CUSTOMER", user["role"])
	assert.NotContains(t, user, "password")

	// Duplicate email
	status, _ = a.do(t, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"name": "Test User", "email": "TEST@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusConflict, status)

	// Validation errors are keyed by JSON field name
	status, body = a.do(t, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", body["message"])
	assert.Contains(t, body["errors"], "email")
	assert.Contains(t, body["errors"], "password")

	// Test Login
	status, body = a.do(t, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email": "test@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, status)
	token := body["token"].(string)
	assert.NotEmpty(t, token)

	status, body = a.do(t, http.MethodGet, "/api/v1/me", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "test@example.com", body["email"])

	// Wrong password
	status, body = a.do(t, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email": "test@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password", body["message"])

	// Missing or bad tokens
	status, _ = a.do(t, http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = a.do(t, http.MethodGet, "/api/v1/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestForgotAndResetPassword(t *testing.T) {
	a := setupApp(t)
	a.staff(t, models.RoleCustomer, "sari@example.com")

	status, _ := a.do(t, http.MethodPost, "/api/v1/auth/forgot-password", "", fiber.Map{"email": "nobody@example.com"})
	assert.Equal(t, http.StatusOK, status)

	token, err := a.svc.Auth.ForgotPassword(context.Background(), "sari@example.com")
	require.NoError(t, err)

	status, _ = a.do(t, http.MethodPost, "/api/v1/auth/reset-password", "", fiber.Map{"token": token.Token, "password": "brandnew1"})
	assert.Equal(t, http.StatusOK, status)
	status, _ = a.do(t, http.MethodPost, "/api/v1/auth/reset-password", "", fiber.Map{"token": token.Token, "password": "brandnew2"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = a.do(t, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{"email": "sari@example.com", "password": "brandnew1"})
	assert.Equal(t, http.StatusOK, status)
}

func TestCatalogHidesInactiveProducts(t *testing.T) {
	a := setupApp(t)
	a.product(t, "Kursi Jati", 50000, 5)
	hidden := &models.Product{Name: "Lemari Lama", Price: 10000, Stock: 1, Status: models.ProductInactive}
	require.NoError(t, a.store.Products.Create(context.Background(), hidden))

	resp := a.raw(t, http.MethodGet, "/api/v1/products", "", nil)
	defer resp.Body.Close()
	var products []models.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	require.Len(t, products, 1)
	assert.Equal(t, "Kursi Jati", products[0].Name)

	status, _ := a.do(t, http.MethodGet, "/api/v1/products/"+hidden.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAdminProductCRUD(t *testing.T) {
	a := setupApp(t)
	adminToken, _ := a.staff(t, models.RoleAdmin, "admin@kayoemoeda.id")
	customerToken, _ := a.staff(t, models.RoleCustomer, "budi@example.com")

	newProduct := fiber.Map{"name": "Rak Buku", "price": 450000, "stock": 4}
	status, _ := a.do(t, http.MethodPost, "/api/v1/admin/products", customerToken, newProduct)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := a.do(t, http.MethodPost, "/api/v1/admin/products", adminToken, newProduct)
	require.Equal(t, http.StatusCreated, status)
	id := body["id"].(string)
	assert.Equal(t, "ACTIVE", body["status"])

	status, body = a.do(t, http.MethodPut, "/api/v1/admin/products/"+id, adminToken,
		fiber.Map{"name": "Rak Buku Jati", "price": 500000, "stock": 2, "status": "INACTIVE"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "INACTIVE", body["status"])

	status, _ = a.do(t, http.MethodPost, "/api/v1/admin/products", adminToken, fiber.Map{"name": "X"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = a.do(t, http.MethodDelete, "/api/v1/admin/products/"+id, adminToken, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = a.do(t, http.MethodDelete, "/api/v1/admin/products/"+id, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreateOrderFromCart(t *testing.T) {
	a := setupApp(t)
	token, _ := a.staff(t, models.RoleCustomer, "budi@example.com")
	chair := a.product(t, "Kursi Jati", 50000, 5)

	status, _ := a.do(t, http.MethodPost, "/api/v1/orders/from-cart", "", checkoutBody)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := a.do(t, http.MethodPost, "/api/v1/orders/from-cart", token, checkoutBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Cart is empty", body["message"])

	status, body = a.do(t, http.MethodPost, "/api/v1/cart/items", token, fiber.Map{"productId": chair.ID, "quantity": 6})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, chair.ID, body["productId"])

	status, body = a.do(t, http.MethodPost, "/api/v1/cart/items", token, fiber.Map{"productId": chair.ID, "quantity": 2})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, float64(100000), body["total"])

	status, body = a.do(t, http.MethodPost, "/api/v1/orders/from-cart", token, fiber.Map{"recipientName": "Budi"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["errors"], "address")

	status, body = a.do(t, http.MethodPost, "/api/v1/orders/from-cart", token, checkoutBody)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, float64(100000), body["grossAmount"])
	assert.Equal(t, "PENDING", body["status"])
	assert.True(t, strings.HasPrefix(body["orderCode"].(string), "KM-"))
	orderID := body["id"].(string)

	status, body = a.do(t, http.MethodGet, "/api/v1/cart", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["total"])

	status, body = a.do(t, http.MethodGet, "/api/v1/orders/"+orderID, token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["items"], 1)

	otherToken, _ := a.staff(t, models.RoleCustomer, "sari@example.com")
	status, _ = a.do(t, http.MethodGet, "/api/v1/orders/"+orderID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAdminUpdateOrderStatus(t *testing.T) {
	a := setupApp(t)
	customerToken, _ := a.staff(t, models.RoleCustomer, "budi@example.com")
	adminToken, _ := a.staff(t, models.RoleAdmin, "admin@kayoemoeda.id")
	chair := a.product(t, "Kursi Jati", 50000, 5)
	orderID := a.placeOrder(t, customerToken, chair, 3)
	path := "/api/v1/admin/orders/" + orderID

	status, _ := a.do(t, http.MethodPatch, path, customerToken, fiber.Map{"status": "PROCESSING"})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = a.do(t, http.MethodPatch, path, adminToken, fiber.Map{"status": "SHIPPING"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = a.do(t, http.MethodPatch, path, adminToken, fiber.Map{})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = a.do(t, http.MethodPatch, "/api/v1/admin/orders/missing", adminToken, fiber.Map{"status": "PROCESSING"})
	assert.Equal(t, http.StatusNotFound, status)

	status, body := a.do(t, http.MethodPatch, path, adminToken, fiber.Map{"status": "processing"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "PROCESSING", body["status"])
	assert.Equal(t, "PACKED", body["shippingStatus"])
	assert.Equal(t, true, body["stockAdjusted"])

	stored, err := a.store.Products.GetByID(context.Background(), chair.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Stock)

	status, body = a.do(t, http.MethodPatch, path, adminToken, fiber.Map{"status": "CANCELLED"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "CANCELLED", body["paymentStatus"])

	stored, err = a.store.Products.GetByID(context.Background(), chair.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Stock)

	// The cancelled order's stock is already back; restoring again is a no-op.
	restored, err := a.svc.Stock.AdjustStock(context.Background(), orderID, models.StockRestore)
	require.NoError(t, err)
	assert.False(t, restored.StockAdjusted)
	stored, err = a.store.Products.GetByID(context.Background(), chair.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Stock)

	status, _ = a.do(t, http.MethodPost, path+"/confirm-payment", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = a.do(t, http.MethodGet, "/api/v1/admin/orders?status=cancelled", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = a.do(t, http.MethodGet, "/api/v1/admin/orders?status=bogus", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAdminConfirmPayment(t *testing.T) {
	a := setupApp(t)
	customerToken, _ := a.staff(t, models.RoleCustomer, "budi@example.com")
	ownerToken, _ := a.staff(t, models.RoleOwner, "owner@kayoemoeda.id")
	chair := a.product(t, "Kursi Jati", 50000, 5)
	orderID := a.placeOrder(t, customerToken, chair, 2)

	status, body := a.do(t, http.MethodPost, "/api/v1/admin/orders/"+orderID+"/confirm-payment", ownerToken, nil)
	require.Equal(t, http.StatusOK, status)
	order := body["order"].(map[string]interface{})
	assert.Equal(t, "PAID", order["paymentStatus"])
	assert.Equal(t, true, order["stockAdjusted"])

	stored, err := a.store.Products.GetByID(context.Background(), chair.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Stock)
}

func TestInsightsAndReports(t *testing.T) {
	a := setupApp(t)
	customerToken, _ := a.staff(t, models.RoleCustomer, "budi@example.com")
	adminToken, _ := a.staff(t, models.RoleAdmin, "admin@kayoemoeda.id")
	ownerToken, _ := a.staff(t, models.RoleOwner, "owner@kayoemoeda.id")
	chair := a.product(t, "Kursi Jati", 50000, 10)
	table := a.product(t, "Meja Kopi", 50000, 10)

	first := a.placeOrder(t, customerToken, chair, 2)
	second := a.placeOrder(t, customerToken, table, 1)
	for _, id := range []string{first, second} {
		status, _ := a.do(t, http.MethodPatch, "/api/v1/admin/orders/"+id, adminToken, fiber.Map{"status": "PROCESSING"})
		require.Equal(t, http.StatusOK, status)
	}

	status, body := a.do(t, http.MethodGet, "/api/v1/admin/insight/sales?months=1", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(150000), body["totalRevenue"])
	assert.Equal(t, float64(2), body["totalOrders"])
	assert.Equal(t, float64(75000), body["avgOrderValue"])
	monthly := body["monthly"].([]interface{})
	require.Len(t, monthly, 1)
	assert.Equal(t, time.Now().Format("2006-01"), monthly[0].(map[string]interface{})["month"])

	status, _ = a.do(t, http.MethodGet, "/api/v1/admin/insight/sales?startDate=garbage", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = a.do(t, http.MethodGet, "/api/v1/owner/insights?top=1", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, body = a.do(t, http.MethodGet, "/api/v1/owner/insights?top=1", ownerToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["topProducts"], 1)

	resp := a.raw(t, http.MethodGet, "/api/v1/reports/sales?format=csv", adminToken, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".csv")
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(strings.TrimSpace(string(data)), "\n")+1, "header plus two orders")

	status, _ = a.do(t, http.MethodGet, "/api/v1/reports/sales?format=docx", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = a.do(t, http.MethodGet, "/api/v1/reports/sales", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestOwnerManagesAdmins(t *testing.T) {
	a := setupApp(t)
	ownerToken, _ := a.staff(t, models.RoleOwner, "owner@kayoemoeda.id")

	status, body := a.do(t, http.MethodPost, "/api/v1/owner/admins", ownerToken, fiber.Map{
		"name": "Admin Gudang", "email": "gudang@kayoemoeda.id", "password": "gudang123",
	})
	require.Equal(t, http.StatusCreated, status)
	adminID := body["id"].(string)
	assert.Equal(t, "ADMIN", body["role"])

	status, body = a.do(t, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{"email": "gudang@kayoemoeda.id", "password": "gudang123"})
	require.Equal(t, http.StatusOK, status)
	adminToken := body["token"].(string)

	status, _ = a.do(t, http.MethodGet, "/api/v1/owner/admins", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = a.do(t, http.MethodPatch, "/api/v1/owner/admins/"+adminID, ownerToken, fiber.Map{"isActive": false})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["isActive"])

	// The disabled admin's session stops working immediately.
	status, _ = a.do(t, http.MethodGet, "/api/v1/admin/orders", adminToken, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestCustomOrdersAndReservations(t *testing.T) {
	a := setupApp(t)
	customerToken, _ := a.staff(t, models.RoleCustomer, "budi@example.com")
	adminToken, _ := a.staff(t, models.RoleAdmin, "admin@kayoemoeda.id")

	status, body := a.do(t, http.MethodPost, "/api/v1/custom-orders", customerToken, fiber.Map{
		"name": "Budi", "phone": "0812", "furnitureType": "Lemari", "description": "Lemari jati 3 pintu", "budget": 7500000,
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "NEW", body["status"])
	customID := body["id"].(string)

	status, body = a.do(t, http.MethodPatch, "/api/v1/admin/custom-orders/"+customID, adminToken, fiber.Map{"status": "CONTACTED"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "CONTACTED", body["status"])

	visit := time.Now().AddDate(0, 0, 3).Format("2006-01-02 15:04")
	status, body = a.do(t, http.MethodPost, "/api/v1/reservations", customerToken, fiber.Map{
		"name": "Budi", "phone": "0812", "visitDate": visit,
	})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "PENDING", body["status"])

	status, _ = a.do(t, http.MethodPost, "/api/v1/reservations", customerToken, fiber.Map{
		"name": "Budi", "phone": "0812", "visitDate": "2001-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = a.do(t, http.MethodGet, "/api/v1/admin/reservations", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestHealth(t *testing.T) {
	a := setupApp(t)
	status, body := a.do(t, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
}
