package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nmehta6/shopassist/internal/domain"
)

// ProductService handles catalog management
type ProductService struct {
	productRepo domain.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo domain.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create adds a product to the catalog
func (s *ProductService) Create(ctx context.Context, input domain.ProductCreate) (*domain.Product, error) {
	exists, err := s.productRepo.SKUExists(ctx, input.SKU)
	if err != nil {
		return nil, fmt.Errorf("failed to check sku: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateSKU
	}

	now := time.Now()
	product := &domain.Product{
		ID:            uuid.New(),
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		Category:      input.Category,
		InStock:       input.InStock,
		StockQuantity: input.StockQuantity,
		SKU:           input.SKU,
		ImageURL:      input.ImageURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Get retrieves a product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// List returns the full catalog
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.productRepo.List(ctx)
}

// Update replaces a product's details
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, input domain.ProductCreate) (*domain.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.SKU != product.SKU {
		exists, err := s.productRepo.SKUExists(ctx, input.SKU)
		if err != nil {
			return nil, fmt.Errorf("failed to check sku: %w", err)
		}
		if exists {
			return nil, domain.ErrDuplicateSKU
		}
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Category = input.Category
	product.InStock = input.InStock
	product.StockQuantity = input.StockQuantity
	product.SKU = input.SKU
	product.ImageURL = input.ImageURL

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, id)
}
