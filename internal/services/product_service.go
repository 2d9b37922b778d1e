package services

import (
	"context"
	"strings"

	"kayoemoeda/internal/apperrors"
	"kayoemoeda/internal/models"
	"kayoemoeda/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves products. The public catalog passes activeOnly.
func (s *ProductService) GetAllProducts(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	return s.repo.GetAll(ctx, activeOnly)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// GetCatalogProduct is GetProductByID for the storefront: inactive products
// are reported as missing.
func (s *ProductService) GetCatalogProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.Status != models.ProductActive {
		return nil, apperrors.NotFound("product", id)
	}
	return product, nil
}

// CreateProduct creates a new product. New products are ACTIVE unless told otherwise.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := normalizeProduct(product); err != nil {
		return err
	}
	return s.repo.Create(ctx, product)
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if err := normalizeProduct(product); err != nil {
		return err
	}
	return s.repo.Update(ctx, product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func normalizeProduct(p *models.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Status = models.ProductStatus(strings.ToUpper(string(p.Status)))
	if p.Status == "" {
		p.Status = models.ProductActive
	}
	if p.Status != models.ProductActive && p.Status != models.ProductInactive {
		return apperrors.Validation("invalid product status: %s", p.Status)
	}
	if p.Stock < 0 {
		return apperrors.Validation("stock cannot be negative")
	}
	if p.Price <= 0 {
		return apperrors.Validation("price must be greater than zero")
	}
	return nil
}
