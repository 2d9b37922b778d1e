package services_test

import (
	"context"
	"testing"

	"kayoemoeda/internal/apperrors"
	"kayoemoeda/internal/models"
	"kayoemoeda/internal/repositories"
	"kayoemoeda/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededProducts() *repositories.MockProductRepository {
	return repositories.NewMockProductRepository(
		models.Product{ID: "1", Name: "Kursi Jati", Price: 750000, Stock: 10},
		models.Product{ID: "2", Name: "Meja Makan", Price: 2500000, Stock: 3},
		models.Product{ID: "3", Name: "Lemari Arsip", Price: 1800000, Stock: 0, Status: models.ProductInactive},
	)
}

func TestProductService_GetAllProducts(t *testing.T) {
	service := services.NewProductService(seededProducts())
	ctx := context.Background()

	all, err := service.GetAllProducts(ctx, false)
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := service.GetAllProducts(ctx, true)
	assert.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Kursi Jati", active[0].Name)
	assert.Equal(t, "Meja Makan", active[1].Name)
}

func TestProductService_GetProductByID(t *testing.T) {
	service := services.NewProductService(seededProducts())
	ctx := context.Background()

	product, err := service.GetProductByID(ctx, "1")
	assert.NoError(t, err)
	assert.Equal(t, "Kursi Jati", product.Name)

	product, err = service.GetProductByID(ctx, "99")
	assert.Nil(t, product)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.EqualError(t, err, "product with ID 99 not found")
}

func TestProductService_GetCatalogProduct_HidesInactive(t *testing.T) {
	service := services.NewProductService(seededProducts())
	ctx := context.Background()

	_, err := service.GetCatalogProduct(ctx, "3")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	product, err := service.GetCatalogProduct(ctx, "2")
	assert.NoError(t, err)
	assert.Equal(t, models.ProductActive, product.Status)
}

func TestProductService_CreateProduct(t *testing.T) {
	repo := seededProducts()
	service := services.NewProductService(repo)
	ctx := context.Background()

	newProduct := &models.Product{Name: "  Rak Buku  ", Price: 450000, Stock: 5, Status: "inactive"}
	err := service.CreateProduct(ctx, newProduct)
	assert.NoError(t, err)
	assert.NotEmpty(t, newProduct.ID)
	assert.Equal(t, "Rak Buku", newProduct.Name)
	assert.Equal(t, models.ProductInactive, newProduct.Status)

	tests := []struct {
		name    string
		product models.Product
	}{
		{"zero price", models.Product{Name: "Bangku", Price: 0, Stock: 1}},
		{"negative stock", models.Product{Name: "Bangku", Price: 1000, Stock: -1}},
		{"unknown status", models.Product{Name: "Bangku", Price: 1000, Status: "ARCHIVED"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.product
			err := service.CreateProduct(ctx, &p)
			assert.True(t, apperrors.IsValidation(err), "got %v", err)
		})
	}
}

func TestProductService_UpdateProduct(t *testing.T) {
	service := services.NewProductService(seededProducts())
	ctx := context.Background()

	err := service.UpdateProduct(ctx, &models.Product{ID: "1", Name: "Kursi Jati Ukir", Price: 900000, Stock: 8})
	assert.NoError(t, err)
	updated, err := service.GetProductByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(900000), updated.Price)
	assert.Equal(t, models.ProductActive, updated.Status)

	err = service.UpdateProduct(ctx, &models.Product{ID: "99", Name: "Ghost", Price: 1, Stock: 1})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProductService_DeleteProduct(t *testing.T) {
	service := services.NewProductService(seededProducts())
	ctx := context.Background()

	assert.NoError(t, service.DeleteProduct(ctx, "1"))
	_, err := service.GetProductByID(ctx, "1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.ErrorIs(t, service.DeleteProduct(ctx, "1"), apperrors.ErrNotFound)
}
