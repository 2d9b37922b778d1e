package services_test

import (
	"context"
	"testing"

	"kayoemoeda/internal/database"
	"kayoemoeda/internal/models"
	"kayoemoeda/internal/repositories"
	"kayoemoeda/internal/services"

	"github.com/stretchr/testify/require"
)

// shop is a migrated in-memory database with the order-side services on top.
type shop struct {
	store  *repositories.Store
	carts  *services.CartService
	orders *services.OrderService
	stock  *services.StockService
}

func newShop(t *testing.T) *shop {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	store := repositories.NewStore(db)
	codes, err := services.NewSnowflakeCodeGenerator(1)
	require.NoError(t, err)
	return &shop{
		store:  store,
		carts:  services.NewCartService(store.Carts, store.Products),
		orders: services.NewOrderService(store, codes, nil),
		stock:  services.NewStockService(store),
	}
}

func (s *shop) customer(t *testing.T, email string) *models.User {
	t.Helper()
	u := &models.User{Name: "Customer", Email: email, Password: "x", Role: models.RoleCustomer, IsActive: true}
	require.NoError(t, s.store.Users.Create(context.Background(), u))
	return u
}

func (s *shop) product(t *testing.T, name string, price int64, stock int) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: price, Stock: stock}
	require.NoError(t, s.store.Products.Create(context.Background(), p))
	return p
}

func (s *shop) stockOf(t *testing.T, id string) int {
	t.Helper()
	p, err := s.store.Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

// checkout puts the given quantities in the user's cart and converts it.
func (s *shop) checkout(t *testing.T, userID string, lines map[*models.Product]int) *models.Order {
	t.Helper()
	ctx := context.Background()
	for p, qty := range lines {
		_, err := s.carts.AddItem(ctx, userID, p.ID, qty)
		require.NoError(t, err)
	}
	order, err := s.orders.CreateOrderFromCart(ctx, userID, shipping)
	require.NoError(t, err)
	return order
}

var shipping = services.ShippingInfo{
	RecipientName: "Budi",
	Phone:         "081234567890",
	Address:       "Jl. Kaliurang 12",
	City:          "Yogyakarta",
	PostalCode:    "55281",
}
