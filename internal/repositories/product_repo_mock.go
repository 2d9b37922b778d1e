package repositories

import (
	"context"
	"sort"
	"sync"

	"kayoemoeda/internal/apperrors"
	"kayoemoeda/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It does not take part in Store transactions.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository(seed ...models.Product) *MockProductRepository {
	r := &MockProductRepository{
		products: make(map[string]models.Product),
	}
	for i := range seed {
		_ = r.Create(context.Background(), &seed[i])
	}
	return r
}

// GetAll returns products ordered by name.
func (r *MockProductRepository) GetAll(_ context.Context, activeOnly bool) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if activeOnly && p.Status != models.ProductActive {
			continue
		}
		productList = append(productList, p)
	}
	sort.Slice(productList, func(i, j int) bool { return productList[i].Name < productList[j].Name })
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.NotFound("product", id)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.Status == "" {
		product.Status = models.ProductActive
	}
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return apperrors.NotFound("product", product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return apperrors.NotFound("product", id)
	}
	delete(r.products, id)
	return nil
}

// DecrementStock lowers stock only when enough is left.
func (r *MockProductRepository) DecrementStock(_ context.Context, id string, qty int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	r.products[id] = p
	return true, nil
}

// IncrementStock raises stock of an existing product.
func (r *MockProductRepository) IncrementStock(_ context.Context, id string, qty int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return false, nil
	}
	p.Stock += qty
	r.products[id] = p
	return true, nil
}
