package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OrderStatus enumerates the order lifecycle
type OrderStatus string

const (
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
)

// OrderItem is a single line item on an order
type OrderItem struct {
	ProductID string  `json:"product_id" bson:"productId"`
	Name      string  `json:"name,omitempty" bson:"name,omitempty"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
}

// Address is an order shipping address
type Address struct {
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	ZipCode string `json:"zip_code" bson:"zipCode"`
	Country string `json:"country" bson:"country"`
}

// Order represents a customer order. Orders are read-only from the
// assistant's perspective.
type Order struct {
	ID                    uuid.UUID   `json:"id" bson:"_id"`
	OrderNumber           string      `json:"order_number" bson:"orderNumber"`
	UserID                uuid.UUID   `json:"user_id" bson:"userId"`
	Items                 []OrderItem `json:"items" bson:"items"`
	TotalAmount           float64     `json:"total_amount" bson:"totalAmount"`
	Status                OrderStatus `json:"status" bson:"status"`
	ShippingAddress       *Address    `json:"shipping_address,omitempty" bson:"shippingAddress,omitempty"`
	EstimatedShippingDate *time.Time  `json:"estimated_shipping_date,omitempty" bson:"estimatedShippingDate,omitempty"`
	CreatedAt             time.Time   `json:"created_at" bson:"createdAt"`
	UpdatedAt             time.Time   `json:"updated_at" bson:"updatedAt"`
}

// OrderRepository defines the interface for order storage
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	// GetByNumber looks up an order by its exact, upper-cased order number.
	GetByNumber(ctx context.Context, orderNumber string) (*Order, error)
	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)
}
