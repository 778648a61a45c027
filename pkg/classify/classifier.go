// Package classify maps free-text queries to the closed intent set using
// ordered keyword rules. Classification is pure and deterministic: no learned
// model, no external calls, nothing beyond keyword matching.
package classify

import (
	"strings"
	"unicode"

	"github.com/helioscommand/helios/pkg/domain"
)

// Rule pairs a keyword set with the intent it selects. Rules are evaluated in
// order; the first rule whose keyword set intersects the tokenized query wins.
type Rule struct {
	Keywords []string
	Intent   domain.Intent
}

// Classifier evaluates an ordered rule list with a fallback default.
type Classifier struct {
	rules    []Rule
	fallback domain.Intent
}

// DefaultRules returns the fixed rule order. The order must be preserved for
// reproducibility.
func DefaultRules() []Rule {
	return []Rule{
		{Keywords: []string{"hospital", "beds", "icu", "admission", "emergency"}, Intent: domain.IntentHospital},
		{Keywords: []string{"pharmacy", "shop", "medicine", "drugstore"}, Intent: domain.IntentMedicalShop},
		{Keywords: []string{"email", "send", "mail"}, Intent: domain.IntentEmail},
	}
}

// Option configures the Classifier.
type Option func(*Classifier)

// WithRules replaces the default rule list.
func WithRules(rules []Rule) Option {
	return func(c *Classifier) {
		c.rules = rules
	}
}

// WithFallback replaces the default fallback intent.
func WithFallback(intent domain.Intent) Option {
	return func(c *Classifier) {
		c.fallback = intent
	}
}

// New creates a classifier with the default rules and the hospital fallback.
// Unmatched queries deliberately classify as hospital rather than unknown;
// IntentUnknown is never produced.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		rules:    DefaultRules(),
		fallback: domain.IntentHospital,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify maps a query to an intent. The query is case-folded and tokenized;
// tokens are lightly singularized so that "pharmacies" matches "pharmacy".
func (c *Classifier) Classify(query string) domain.Intent {
	tokens := tokenSet(query)
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if tokens[normalize(kw)] {
				return rule.Intent
			}
		}
	}
	return c.fallback
}

// tokenSet splits on non-letter/digit runes and normalizes each token.
func tokenSet(text string) map[string]bool {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[normalize(f)] = true
	}
	return set
}

// normalize trims common plural suffixes: "pharmacies" -> "pharmacy",
// "medicines" -> "medicine", "beds" -> "bed".
func normalize(token string) string {
	switch {
	case len(token) > 3 && strings.HasSuffix(token, "ies"):
		return token[:len(token)-3] + "y"
	case len(token) > 3 && strings.HasSuffix(token, "s") && !strings.HasSuffix(token, "ss"):
		return token[:len(token)-1]
	default:
		return token
	}
}
