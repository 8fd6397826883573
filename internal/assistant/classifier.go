package assistant

import "regexp"

// Classification is the transient result of routing a message
type Classification struct {
	Category string `json:"category"`
	// Entity is the extracted order number, product name or policy type,
	// when the category carries one.
	Entity string `json:"entity,omitempty"`
	// UseAI marks messages that no deterministic rule matched; they are
	// answered by the external model instead of an intent handler.
	UseAI bool `json:"use_ai"`
}

// Classifier routes message text to an intent category by scanning an
// ordered rule table.
type Classifier struct {
	rules []intentRule
}

// NewClassifier creates a classifier with the default pattern catalog
func NewClassifier() *Classifier {
	return &Classifier{rules: defaultRules()}
}

// Classify assigns an intent category to the message. It never fails: text
// that matches no rule is classified as the default category with UseAI set.
func (c *Classifier) Classify(text string) (result Classification) {
	defer func() {
		if r := recover(); r != nil {
			result = Classification{Category: IntentDefault, UseAI: true}
		}
	}()

	for _, rule := range c.rules {
		if !matchAny(rule.patterns, text) {
			continue
		}

		entity := ""
		if rule.extract != nil {
			captured, ok := rule.extract(text)
			if !ok {
				if rule.entityRequired {
					// A pattern match without a capturable entity must not
					// short-circuit: fall through to later rules.
					continue
				}
			} else {
				entity = captured
			}
		}

		return Classification{Category: rule.category, Entity: entity}
	}

	return Classification{Category: IntentDefault, UseAI: true}
}

func matchAny(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
