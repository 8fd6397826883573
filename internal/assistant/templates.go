package assistant

import "strings"

// Template subcases shared across categories
const (
	SubcaseFound    = "found"
	SubcaseNotFound = "not_found"
	SubcaseError    = "error"
	SubcaseDefault  = "default"
)

// globalDefaultTemplate answers messages for which no category template
// exists at all.
const globalDefaultTemplate = "I'm not sure I understand. Could you please rephrase your question? You can ask me about:\n- Products and recommendations\n- Order status and history\n- Shipping and returns\n- Account management\n- Payment methods\n- Technical support\n- Company information"

// responseTemplates keys canned response text by category and subcase.
// Placeholders use {name} syntax and are resolved by Render.
var responseTemplates = map[string]map[string]string{
	IntentOrderStatus: {
		SubcaseFound:    "Order {orderNumber} Details:\n\nStatus: {status}\nOrder Date: {orderDate}\nEstimated Shipping: {estimatedShipping}\nTotal Amount: {totalAmount}\n\nItems:\n{items}\n\nShipping Address:\n{shippingAddress}\n\nWould you like to know anything specific about this order?",
		SubcaseNotFound: "I couldn't find order {orderNumber}. Please check the order number and try again.",
		SubcaseError:    "I'm having trouble checking the order status right now. Please try again in a few moments.",
	},
	IntentMyOrders: {
		SubcaseFound:    "Here are your order numbers:\n\n{orders}\n\nTo check details of a specific order, just ask about the order number (e.g., \"What's the status of order ORD-001?\").",
		SubcaseNotFound: "You don't have any orders yet. Would you like to browse our products?",
		SubcaseError:    "I'm having trouble retrieving your orders right now. Please try again in a few moments.",
	},
	IntentProductAvailability: {
		SubcaseFound:    "Here are our available products by category:\n\n{products}Would you like more details about any specific product? Just ask about the product name!",
		SubcaseNotFound: "I'm sorry, but we don't have any products in stock at the moment. Please check back later.",
		SubcaseError:    "I'm having trouble retrieving our product catalog right now. Please try again in a few moments.",
	},
	IntentProduct: {
		SubcaseFound:    "Product: {name}\n\nPrice: {price}\nCategory: {category}\nIn Stock: {inStock}\nAvailable Quantity: {stockQuantity}\nDescription: {description}\n\nWould you like to know anything specific about this product?",
		SubcaseNotFound: "I couldn't find information about {product}. Please check the product name and try again.",
		SubcaseError:    "I'm having trouble retrieving product information right now. Please try again in a few moments.",
	},
	IntentStock: {
		SubcaseFound:    "Stock Status for {name}:\n\nIn Stock: {inStock}\nAvailable Quantity: {quantity}\nStatus: {status}\n\nWould you like to know anything else about this product?",
		SubcaseNotFound: "I couldn't find stock information for {product}. Would you like to see our available products?",
		SubcaseError:    "I'm having trouble checking stock information right now. Please try again in a few moments.",
	},
	IntentPolicy: {
		SubcaseFound:    "{title}:\n\n{content}",
		SubcaseNotFound: "I'm sorry, but I couldn't find our {policyType} policy information. Please try again later.",
		SubcaseError:    "I'm having trouble retrieving our policy information right now. Please try again in a few moments.",
	},
	IntentGreeting: {
		SubcaseDefault: "Hello! Welcome to our tech store. How can I assist you today?",
	},
	IntentDefault: {
		SubcaseDefault: globalDefaultTemplate,
		SubcaseError:   "I'm having trouble responding right now. Please try again in a few moments.",
	},
}

// Template looks up the canned text for a category and subcase, falling back
// to the category's default and finally to the global default template.
func Template(category, subcase string) string {
	byCategory, ok := responseTemplates[category]
	if !ok {
		return globalDefaultTemplate
	}
	if tpl, ok := byCategory[subcase]; ok {
		return tpl
	}
	if tpl, ok := byCategory[SubcaseDefault]; ok {
		return tpl
	}
	return globalDefaultTemplate
}

// Render substitutes every {key} placeholder in the template with the value
// from ctx. Unresolved placeholders are left verbatim, and substituted values
// are treated as opaque text: braces inside a value are never re-scanned.
func Render(template string, ctx map[string]string) string {
	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); {
		open := strings.IndexByte(template[i:], '{')
		if open < 0 {
			b.WriteString(template[i:])
			break
		}
		open += i
		b.WriteString(template[i:open])

		close := strings.IndexByte(template[open:], '}')
		if close < 0 {
			b.WriteString(template[open:])
			break
		}
		close += open

		key := template[open+1 : close]
		if value, ok := ctx[key]; ok {
			b.WriteString(value)
		} else {
			b.WriteString(template[open : close+1])
		}
		i = close + 1
	}

	return b.String()
}
