package assistant

import (
	"regexp"
	"strings"
)

// Intent categories assigned by the classifier
const (
	IntentOrderStatus         = "order_status"
	IntentMyOrders            = "my_orders"
	IntentProductAvailability = "product_availability"
	IntentProduct             = "product"
	IntentStock               = "stock"
	IntentPolicy              = "policy"
	IntentGreeting            = "greeting"
	IntentDefault             = "default"
)

// PolicyTypeGeneral is the policy entity used when no specific type keyword
// appears in the message.
const PolicyTypeGeneral = "general"

// intentRule is one entry of the pattern catalog. Rules are evaluated in
// order and the first one that fires wins; a rule with entityRequired set
// only fires when its extractor captures an entity, otherwise evaluation
// falls through to later rules.
type intentRule struct {
	category       string
	patterns       []*regexp.Regexp
	extract        func(text string) (string, bool)
	entityRequired bool
}

var (
	orderStatusRe = regexp.MustCompile(`(?i)(?:what'?s|what is|check|tell me|show me|get|find|look up|status of|tracking for|track|where is).*?(?:order|ord)-?\d+`)
	orderNumberRe = regexp.MustCompile(`(?i)(?:order|ord)-?\d+`)

	orderHistoryRe = regexp.MustCompile(`(?i)(?:show|list|get|find|what are|tell me about|my).*?(?:orders|order history)`)

	availabilityRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:what|which|show|list|get|find|tell me about).*?(?:products|items).*?(?:available|do you have|do you sell|do you carry|do you stock)`),
		regexp.MustCompile(`(?i)(?:what|which).*?(?:products|items).*?(?:do you have|are there)`),
		regexp.MustCompile(`(?i)(?:what|which).*?(?:products|items).*?available`),
		regexp.MustCompile(`(?i)(?:what|which).*?(?:products|items)`),
		regexp.MustCompile(`(?i)(?:show|list).*?(?:products|items)`),
		regexp.MustCompile(`(?i)(?:do you have|do you sell|do you carry|do you stock).*?(?:any|some).*?(?:products|items)`),
		regexp.MustCompile(`(?i)(?:what products|what items)`),
		regexp.MustCompile(`(?i)(?:show me|list me).*?(?:products|items)`),
	}

	productInfoRe = regexp.MustCompile(`(?i)(?:what|tell me|show|get|find|look up|info|details|about).*?(?:product|item).*?(?:price|cost|stock|available|in stock)`)
	productNameRe = regexp.MustCompile(`(?i)(?:product|item)\s+([\w-]+)`)

	stockRe        = regexp.MustCompile(`(?i)(?:how many|quantity|stock|available|in stock).*?(?:units|items|products|left|remaining)`)
	stockProductRe = regexp.MustCompile(`(?i)(?:stock|availability).*?(?:of|for)\s+([\w-]+)`)

	policyRe     = regexp.MustCompile(`(?i)(?:what|tell me|show|get|find|look up|info|details|about).*?(?:policy|policies|rules|terms|conditions)`)
	policyTypeRe = regexp.MustCompile(`(?i)(return|refund|shipping|privacy|warranty).*?(?:policy|policies)`)

	greetingRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^hi\b`),
		regexp.MustCompile(`(?i)^hello\b`),
		regexp.MustCompile(`(?i)^hey\b`),
		regexp.MustCompile(`(?i)^good\s+(morning|afternoon|evening|night)\b`),
		regexp.MustCompile(`(?i)^greetings\b`),
		regexp.MustCompile(`(?i)^howdy\b`),
	}
)

func extractOrderNumber(text string) (string, bool) {
	m := orderNumberRe.FindString(text)
	if m == "" {
		return "", false
	}
	return strings.ToUpper(m), true
}

func extractProductName(text string) (string, bool) {
	m := productNameRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func extractStockProduct(text string) (string, bool) {
	m := stockProductRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// extractPolicyType never fails; messages that match the policy rule but name
// no specific type resolve to the general policy entity.
func extractPolicyType(text string) (string, bool) {
	m := policyTypeRe.FindString(text)
	if m == "" {
		return PolicyTypeGeneral, true
	}
	return strings.ToLower(strings.Fields(m)[0]), true
}

// defaultRules is the pattern catalog in priority order. Order matters: the
// classifier is greedy first-match, and the table position resolves overlaps
// between loosely phrased categories.
func defaultRules() []intentRule {
	return []intentRule{
		{
			category:       IntentOrderStatus,
			patterns:       []*regexp.Regexp{orderStatusRe},
			extract:        extractOrderNumber,
			entityRequired: true,
		},
		{
			category: IntentMyOrders,
			patterns: []*regexp.Regexp{orderHistoryRe},
		},
		{
			category: IntentProductAvailability,
			patterns: availabilityRes,
		},
		{
			category:       IntentProduct,
			patterns:       []*regexp.Regexp{productInfoRe},
			extract:        extractProductName,
			entityRequired: true,
		},
		{
			category:       IntentStock,
			patterns:       []*regexp.Regexp{stockRe},
			extract:        extractStockProduct,
			entityRequired: true,
		},
		{
			category: IntentPolicy,
			patterns: []*regexp.Regexp{policyRe},
			extract:  extractPolicyType,
		},
		{
			category: IntentGreeting,
			patterns: greetingRes,
		},
	}
}
