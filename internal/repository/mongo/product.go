package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/nmehta6/shopassist/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductRepository implements domain.ProductRepository over MongoDB
type ProductRepository struct {
	coll *mongo.Collection
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{coll: db.Collection(productsCollection)}
}

// Create inserts a new product. Duplicate SKUs are rejected.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if _, err := r.coll.InsertOne(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateSKU
		}
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

// GetByID retrieves a product by ID; a missing product yields (nil, nil)
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var product domain.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

// FindByName matches the supplied name case-insensitively as a substring of
// the product name; a miss yields (nil, nil).
func (r *ProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	filter := bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(name), Options: "i"}}

	var product domain.Product
	err := r.coll.FindOne(ctx, filter).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

// SKUExists reports whether a product with the SKU already exists
func (r *ProductRepository) SKUExists(ctx context.Context, sku string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"sku": sku})
	if err != nil {
		return false, fmt.Errorf("failed to count products: %w", err)
	}
	return count > 0, nil
}

// List returns all products
func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// ListInStock returns in-stock products ordered by category then name
func (r *ProductRepository) ListInStock(ctx context.Context) ([]domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"inStock": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list in-stock products: %w", err)
	}

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// Update replaces the stored product
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	product.UpdatedAt = time.Now()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
