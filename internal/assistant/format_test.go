package assistant

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nmehta6/shopassist/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	cases := map[float64]string{
		0:         "₹0.00",
		50:        "₹50.00",
		999:       "₹999.00",
		1000:      "₹1,000.00",
		20567:     "₹20,567.00",
		82270:     "₹82,270.00",
		123404:    "₹1,23,404.00",
		1234567.5: "₹12,34,567.50",
		12345678:  "₹1,23,45,678.00",
	}

	for amount, want := range cases {
		assert.Equal(t, want, FormatCurrency(amount), "amount: %v", amount)
	}
}

func TestOrderContextDefaults(t *testing.T) {
	order := &domain.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD-009",
	}

	ctx := orderContext(order)
	assert.Equal(t, "ORD-009", ctx["orderNumber"])
	assert.Equal(t, "PROCESSING", ctx["status"])
	assert.Equal(t, "N/A", ctx["estimatedShipping"])
	assert.Equal(t, "No items found", ctx["items"])
	assert.Equal(t, "No shipping address available", ctx["shippingAddress"])
}

func TestOrderContextFull(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	shipping := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)

	order := &domain.Order{
		OrderNumber: "ORD-001",
		Status:      domain.OrderDelivered,
		TotalAmount: 82270,
		Items: []domain.OrderItem{
			{ProductID: "PHONE-X-001", Name: "Smartphone X", Quantity: 1, Price: 82270},
		},
		ShippingAddress: &domain.Address{
			Street: "42 MG Road", City: "Bangalore", State: "Karnataka",
			ZipCode: "560001", Country: "India",
		},
		CreatedAt:             created,
		EstimatedShippingDate: &shipping,
	}

	ctx := orderContext(order)
	assert.Equal(t, "DELIVERED", ctx["status"])
	assert.Equal(t, "1/3/2024", ctx["orderDate"])
	assert.Equal(t, "3/3/2024", ctx["estimatedShipping"])
	assert.Equal(t, "₹82,270.00", ctx["totalAmount"])
	assert.Equal(t, "- Smartphone X (Qty: 1, Price: ₹82,270.00)", ctx["items"])
	assert.Equal(t, "42 MG Road\nBangalore, Karnataka 560001\nIndia", ctx["shippingAddress"])
}
