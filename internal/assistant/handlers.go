package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nmehta6/shopassist/internal/domain"
	"github.com/rs/zerolog/log"
)

// Responder owns the per-intent handlers. Each handler queries the store for
// the classified entity and renders a natural-language answer; store failures
// are swallowed into the category's error template rather than propagated.
type Responder struct {
	products domain.ProductRepository
	orders   domain.OrderRepository
	policies domain.PolicyRepository
}

// NewResponder creates a responder over the given repositories
func NewResponder(products domain.ProductRepository, orders domain.OrderRepository, policies domain.PolicyRepository) *Responder {
	return &Responder{
		products: products,
		orders:   orders,
		policies: policies,
	}
}

// Respond dispatches a deterministic classification to its intent handler.
// Classifications with UseAI set never reach this method.
func (r *Responder) Respond(ctx context.Context, userID uuid.UUID, c Classification) string {
	switch c.Category {
	case IntentOrderStatus:
		return r.OrderStatus(ctx, c.Entity)
	case IntentMyOrders:
		return r.OrderHistory(ctx, userID)
	case IntentProductAvailability:
		return r.ProductAvailability(ctx)
	case IntentProduct:
		return r.ProductInfo(ctx, c.Entity)
	case IntentStock:
		return r.Stock(ctx, c.Entity)
	case IntentPolicy:
		return r.Policy(ctx, c.Entity)
	case IntentGreeting:
		return Template(IntentGreeting, SubcaseDefault)
	default:
		return Template(IntentDefault, SubcaseDefault)
	}
}

// OrderStatus answers an order-status question for the given order number
func (r *Responder) OrderStatus(ctx context.Context, orderNumber string) string {
	orderNumber = strings.ToUpper(orderNumber)

	order, err := r.orders.GetByNumber(ctx, orderNumber)
	if err != nil {
		log.Error().Err(err).Str("order_number", orderNumber).Msg("order lookup failed")
		return Template(IntentOrderStatus, SubcaseError)
	}
	if order == nil {
		return Render(Template(IntentOrderStatus, SubcaseNotFound), map[string]string{"orderNumber": orderNumber})
	}

	return Render(Template(IntentOrderStatus, SubcaseFound), orderContext(order))
}

// OrderHistory lists the caller's order numbers, newest first
func (r *Responder) OrderHistory(ctx context.Context, userID uuid.UUID) string {
	orders, err := r.orders.ListByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("order history lookup failed")
		return Template(IntentMyOrders, SubcaseError)
	}
	if len(orders) == 0 {
		return Template(IntentMyOrders, SubcaseNotFound)
	}

	numbers := make([]string, len(orders))
	for i, order := range orders {
		numbers[i] = order.OrderNumber
	}

	return Render(Template(IntentMyOrders, SubcaseFound), map[string]string{"orders": strings.Join(numbers, "\n")})
}

// ProductAvailability lists all in-stock products grouped by category, in
// first-occurrence order of each category.
func (r *Responder) ProductAvailability(ctx context.Context) string {
	products, err := r.products.ListInStock(ctx)
	if err != nil {
		log.Error().Err(err).Msg("product catalog lookup failed")
		return Template(IntentProductAvailability, SubcaseError)
	}
	if len(products) == 0 {
		return Template(IntentProductAvailability, SubcaseNotFound)
	}

	var categories []string
	grouped := make(map[string][]domain.Product)
	for _, p := range products {
		if _, seen := grouped[p.Category]; !seen {
			categories = append(categories, p.Category)
		}
		grouped[p.Category] = append(grouped[p.Category], p)
	}

	var b strings.Builder
	for _, category := range categories {
		b.WriteString(category + ":\n")
		for _, p := range grouped[category] {
			fmt.Fprintf(&b, "- %s (%s)\n", p.Name, FormatCurrency(p.Price))
			fmt.Fprintf(&b, "  Stock: %d units available\n", p.StockQuantity)
			if p.Description != "" {
				b.WriteString("  " + p.Description + "\n")
			}
		}
		b.WriteString("\n")
	}

	return Render(Template(IntentProductAvailability, SubcaseFound), map[string]string{"products": b.String()})
}

// ProductInfo answers a product-details question for the given product name
func (r *Responder) ProductInfo(ctx context.Context, name string) string {
	product, err := r.products.FindByName(ctx, name)
	if err != nil {
		log.Error().Err(err).Str("product", name).Msg("product lookup failed")
		return Template(IntentProduct, SubcaseError)
	}
	if product == nil {
		return Render(Template(IntentProduct, SubcaseNotFound), map[string]string{"product": name})
	}

	description := product.Description
	if description == "" {
		description = "No description available"
	}

	return Render(Template(IntentProduct, SubcaseFound), map[string]string{
		"name":          product.Name,
		"price":         FormatCurrency(product.Price),
		"category":      product.Category,
		"inStock":       yesNo(product.InStock),
		"stockQuantity": fmt.Sprintf("%d", product.StockQuantity),
		"description":   description,
	})
}

// Stock answers a stock-level question for the given product name
func (r *Responder) Stock(ctx context.Context, name string) string {
	product, err := r.products.FindByName(ctx, name)
	if err != nil {
		log.Error().Err(err).Str("product", name).Msg("stock lookup failed")
		return Template(IntentStock, SubcaseError)
	}
	if product == nil {
		return Render(Template(IntentStock, SubcaseNotFound), map[string]string{"product": name})
	}

	status := "This product is currently out of stock"
	if product.InStock {
		status = fmt.Sprintf("We have %d units in stock", product.StockQuantity)
	}

	return Render(Template(IntentStock, SubcaseFound), map[string]string{
		"name":     product.Name,
		"inStock":  yesNo(product.InStock),
		"quantity": fmt.Sprintf("%d", product.StockQuantity),
		"status":   status,
	})
}

// Policy answers a policy question for the extracted policy type
func (r *Responder) Policy(ctx context.Context, policyType string) string {
	policy, err := r.policies.GetByType(ctx, domain.PolicyType(policyType))
	if err != nil {
		log.Error().Err(err).Str("policy_type", policyType).Msg("policy lookup failed")
		return Template(IntentPolicy, SubcaseError)
	}
	if policy == nil {
		return Render(Template(IntentPolicy, SubcaseNotFound), map[string]string{"policyType": policyType})
	}

	return Render(Template(IntentPolicy, SubcaseFound), map[string]string{
		"title":   policy.Title,
		"content": policy.Content,
	})
}
