package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/nmehta6/shopassist/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository mocks the ProductRepository interface
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) SKUExists(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListInStock(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOrderRepository mocks the OrderRepository interface
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

// MockPolicyRepository mocks the PolicyRepository interface
type MockPolicyRepository struct {
	mock.Mock
}

func (m *MockPolicyRepository) GetByType(ctx context.Context, policyType domain.PolicyType) (*domain.Policy, error) {
	args := m.Called(ctx, policyType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Policy), args.Error(1)
}

func (m *MockPolicyRepository) List(ctx context.Context) ([]domain.Policy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Policy), args.Error(1)
}

func (m *MockPolicyRepository) Upsert(ctx context.Context, policy *domain.Policy) error {
	args := m.Called(ctx, policy)
	return args.Error(0)
}

func (m *MockPolicyRepository) Delete(ctx context.Context, policyType domain.PolicyType) error {
	args := m.Called(ctx, policyType)
	return args.Error(0)
}

func newTestResponder() (*Responder, *MockProductRepository, *MockOrderRepository, *MockPolicyRepository) {
	products := new(MockProductRepository)
	orders := new(MockOrderRepository)
	policies := new(MockPolicyRepository)
	return NewResponder(products, orders, policies), products, orders, policies
}

func TestResponder_ProductAvailabilityGrouping(t *testing.T) {
	r, products, _, _ := newTestResponder()

	// Category order follows first occurrence, not alphabetical order
	products.On("ListInStock", mock.Anything).Return([]domain.Product{
		{Name: "Smartphone X", Category: "Electronics", Price: 82270, StockQuantity: 50, Description: "Latest flagship"},
		{Name: "Wireless Headphones", Category: "Audio", Price: 20567, StockQuantity: 100},
		{Name: "Laptop Pro", Category: "Electronics", Price: 123404, StockQuantity: 25},
	}, nil)

	got := r.ProductAvailability(context.Background())

	electronics := strings.Index(got, "Electronics:")
	audio := strings.Index(got, "Audio:")
	assert.True(t, electronics >= 0 && audio >= 0)
	assert.Less(t, electronics, audio)

	phone := strings.Index(got, "Smartphone X")
	laptop := strings.Index(got, "Laptop Pro")
	assert.True(t, phone >= 0 && laptop >= 0)
	assert.Less(t, phone, laptop)

	assert.Contains(t, got, "- Smartphone X (₹82,270.00)")
	assert.Contains(t, got, "Stock: 50 units available")
	assert.Contains(t, got, "Latest flagship")
	assert.Contains(t, got, "- Laptop Pro (₹1,23,404.00)")
}

func TestResponder_ProductAvailabilityEmptyCatalog(t *testing.T) {
	r, products, _, _ := newTestResponder()

	products.On("ListInStock", mock.Anything).Return([]domain.Product{}, nil)

	got := r.ProductAvailability(context.Background())
	assert.Equal(t, Template(IntentProductAvailability, SubcaseNotFound), got)
}

func TestResponder_Stock(t *testing.T) {
	t.Run("in stock", func(t *testing.T) {
		r, products, _, _ := newTestResponder()
		products.On("FindByName", mock.Anything, "Smart Watch").Return(&domain.Product{
			Name:          "Smart Watch",
			InStock:       true,
			StockQuantity: 75,
		}, nil)

		got := r.Stock(context.Background(), "Smart Watch")
		assert.Contains(t, got, "Stock Status for Smart Watch")
		assert.Contains(t, got, "In Stock: Yes")
		assert.Contains(t, got, "We have 75 units in stock")
	})

	t.Run("out of stock", func(t *testing.T) {
		r, products, _, _ := newTestResponder()
		products.On("FindByName", mock.Anything, "Gaming Console").Return(&domain.Product{
			Name:    "Gaming Console",
			InStock: false,
		}, nil)

		got := r.Stock(context.Background(), "Gaming Console")
		assert.Contains(t, got, "In Stock: No")
		assert.Contains(t, got, "This product is currently out of stock")
	})

	t.Run("unknown product named verbatim", func(t *testing.T) {
		r, products, _, _ := newTestResponder()
		products.On("FindByName", mock.Anything, "Unicorn Phone 9000").Return(nil, nil)

		got := r.Stock(context.Background(), "Unicorn Phone 9000")
		assert.Contains(t, got, "I couldn't find stock information for Unicorn Phone 9000")
	})
}

func TestResponder_ProductInfo(t *testing.T) {
	r, products, _, _ := newTestResponder()

	products.On("FindByName", mock.Anything, "Laptop Pro").Return(&domain.Product{
		Name:          "Laptop Pro",
		Price:         123404,
		Category:      "Electronics",
		InStock:       true,
		StockQuantity: 25,
	}, nil)

	got := r.ProductInfo(context.Background(), "Laptop Pro")
	assert.Contains(t, got, "Product: Laptop Pro")
	assert.Contains(t, got, "Price: ₹1,23,404.00")
	assert.Contains(t, got, "Available Quantity: 25")
	assert.Contains(t, got, "Description: No description available")
}

func TestResponder_Policy(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		r, _, _, policies := newTestResponder()
		policies.On("GetByType", mock.Anything, domain.PolicyReturn).Return(&domain.Policy{
			Type:    domain.PolicyReturn,
			Title:   "Return Policy",
			Content: "You can return items within 30 days.",
		}, nil)

		got := r.Policy(context.Background(), "return")
		assert.Equal(t, "Return Policy:\n\nYou can return items within 30 days.", got)
	})

	t.Run("missing type named in apology", func(t *testing.T) {
		r, _, _, policies := newTestResponder()
		policies.On("GetByType", mock.Anything, domain.PolicyType("general")).Return(nil, nil)

		got := r.Policy(context.Background(), "general")
		assert.Contains(t, got, "couldn't find our general policy information")
	})
}

// Store failures never propagate; each handler answers with its category's
// error template instead.
func TestResponder_StoreErrorsUseErrorTemplate(t *testing.T) {
	boom := errors.New("connection reset")
	ctx := context.Background()

	tests := []struct {
		name     string
		category string
		respond  func(r *Responder, products *MockProductRepository, orders *MockOrderRepository, policies *MockPolicyRepository) string
	}{
		{
			name:     "order status",
			category: IntentOrderStatus,
			respond: func(r *Responder, _ *MockProductRepository, orders *MockOrderRepository, _ *MockPolicyRepository) string {
				orders.On("GetByNumber", mock.Anything, "ORD-001").Return(nil, boom)
				return r.OrderStatus(ctx, "ord-001")
			},
		},
		{
			name:     "order history",
			category: IntentMyOrders,
			respond: func(r *Responder, _ *MockProductRepository, orders *MockOrderRepository, _ *MockPolicyRepository) string {
				orders.On("ListByUser", mock.Anything, mock.Anything).Return(nil, boom)
				return r.OrderHistory(ctx, uuid.New())
			},
		},
		{
			name:     "product availability",
			category: IntentProductAvailability,
			respond: func(r *Responder, products *MockProductRepository, _ *MockOrderRepository, _ *MockPolicyRepository) string {
				products.On("ListInStock", mock.Anything).Return(nil, boom)
				return r.ProductAvailability(ctx)
			},
		},
		{
			name:     "product info",
			category: IntentProduct,
			respond: func(r *Responder, products *MockProductRepository, _ *MockOrderRepository, _ *MockPolicyRepository) string {
				products.On("FindByName", mock.Anything, "Smartphone X").Return(nil, boom)
				return r.ProductInfo(ctx, "Smartphone X")
			},
		},
		{
			name:     "stock",
			category: IntentStock,
			respond: func(r *Responder, products *MockProductRepository, _ *MockOrderRepository, _ *MockPolicyRepository) string {
				products.On("FindByName", mock.Anything, "Smartphone X").Return(nil, boom)
				return r.Stock(ctx, "Smartphone X")
			},
		},
		{
			name:     "policy",
			category: IntentPolicy,
			respond: func(r *Responder, _ *MockProductRepository, _ *MockOrderRepository, policies *MockPolicyRepository) string {
				policies.On("GetByType", mock.Anything, mock.Anything).Return(nil, boom)
				return r.Policy(ctx, "return")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, products, orders, policies := newTestResponder()
			got := tt.respond(r, products, orders, policies)
			assert.Equal(t, Template(tt.category, SubcaseError), got)
		})
	}
}

func TestResponder_RespondDispatch(t *testing.T) {
	r, _, _, _ := newTestResponder()

	greeting := r.Respond(context.Background(), uuid.New(), Classification{Category: IntentGreeting})
	assert.Equal(t, Template(IntentGreeting, SubcaseDefault), greeting)
}
