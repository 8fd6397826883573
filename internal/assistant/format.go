package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/nmehta6/shopassist/internal/domain"
)

// FormatCurrency renders an amount as Indian rupees with lakh/crore digit
// grouping, matching the rendering the storefront uses (₹82,270.00,
// ₹1,23,404.00).
func FormatCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	whole := fmt.Sprintf("%.2f", amount)
	dot := strings.IndexByte(whole, '.')
	intPart, fracPart := whole[:dot], whole[dot+1:]

	return sign + "₹" + groupIndian(intPart) + "." + fracPart
}

// groupIndian inserts commas after the last three digits and then every two
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return strings.Join(append(groups, tail), ",")
}

// formatDate renders a timestamp the way the chat surfaces dates
func formatDate(t time.Time) string {
	return t.Format("2/1/2006")
}

// orderContext flattens an order into the template context used by the
// order-status response. Absent fields fall back to literal placeholders so
// the rendered text never shows empty slots.
func orderContext(order *domain.Order) map[string]string {
	status := string(order.Status)
	if status == "" {
		status = "Processing"
	}

	orderDate := "N/A"
	if !order.CreatedAt.IsZero() {
		orderDate = formatDate(order.CreatedAt)
	}

	estimatedShipping := "N/A"
	if order.EstimatedShippingDate != nil {
		estimatedShipping = formatDate(*order.EstimatedShippingDate)
	}

	items := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		name := item.Name
		if name == "" {
			name = item.ProductID
		}
		if name == "" {
			name = "Unnamed Product"
		}
		items = append(items, fmt.Sprintf("- %s (Qty: %d, Price: %s)", name, item.Quantity, FormatCurrency(item.Price)))
	}
	itemList := strings.Join(items, "\n")
	if itemList == "" {
		itemList = "No items found"
	}

	address := "No shipping address available"
	if order.ShippingAddress != nil {
		a := order.ShippingAddress
		address = fmt.Sprintf("%s\n%s, %s %s\n%s", a.Street, a.City, a.State, a.ZipCode, a.Country)
	}

	return map[string]string{
		"orderNumber":       order.OrderNumber,
		"status":            strings.ToUpper(status),
		"orderDate":         orderDate,
		"estimatedShipping": estimatedShipping,
		"totalAmount":       FormatCurrency(order.TotalAmount),
		"items":             itemList,
		"shippingAddress":   address,
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
