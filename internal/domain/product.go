package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog item
type Product struct {
	ID            uuid.UUID `json:"id" bson:"_id"`
	Name          string    `json:"name" bson:"name"`
	Description   string    `json:"description" bson:"description"`
	Price         float64   `json:"price" bson:"price"`
	Category      string    `json:"category" bson:"category"`
	InStock       bool      `json:"in_stock" bson:"inStock"`
	StockQuantity int       `json:"stock_quantity" bson:"stockQuantity"`
	SKU           string    `json:"sku" bson:"sku"`
	ImageURL      string    `json:"image_url,omitempty" bson:"imageUrl,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updatedAt"`
}

// ProductCreate represents the payload for creating or updating a product
type ProductCreate struct {
	Name          string  `json:"name" validate:"required,max=255"`
	Description   string  `json:"description" validate:"required"`
	Price         float64 `json:"price" validate:"required,gte=0"`
	Category      string  `json:"category" validate:"required,max=100"`
	InStock       bool    `json:"in_stock"`
	StockQuantity int     `json:"stock_quantity" validate:"gte=0"`
	SKU           string  `json:"sku" validate:"required,max=64"`
	ImageURL      string  `json:"image_url" validate:"omitempty,url"`
}

// ProductRepository defines the interface for product storage.
// SKU uniqueness is enforced at creation.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindByName matches the supplied name case-insensitively as a substring.
	FindByName(ctx context.Context, name string) (*Product, error)
	SKUExists(ctx context.Context, sku string) (bool, error)
	List(ctx context.Context) ([]Product, error)
	// ListInStock returns in-stock products ordered by category then name.
	ListInStock(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
