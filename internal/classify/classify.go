// Package classify assigns budget labels to transactions using multiple methods:
// 1. The explicit label code carried on the row
// 2. The "Investment" category prefix rule
// 3. A category-to-label lookup table, extendable through a YAML rules file
package classify

import (
	"strings"

	"fjacquet/budget-board/internal/logging"
	"fjacquet/budget-board/internal/models"
	"fjacquet/budget-board/internal/store"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger for this package
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// defaultRules maps the categories shipped in the workbook template to their
// labels. Keys are lowercase; lookups normalize the category the same way.
var defaultRules = map[string]models.Label{
	"housing":           models.LabelNeeds,
	"utilities":         models.LabelNeeds,
	"groceries":         models.LabelNeeds,
	"health":            models.LabelNeeds,
	"insurance":         models.LabelNeeds,
	"transportation":    models.LabelNeeds,
	"debt payments":     models.LabelNeeds,
	"education":         models.LabelNeeds,
	"dining out":        models.LabelWants,
	"entertainment":     models.LabelWants,
	"shopping":          models.LabelWants,
	"subscriptions":     models.LabelWants,
	"personal care":     models.LabelWants,
	"gifts & donations": models.LabelWants,
}

// Classifier resolves labels for transactions that carry no explicit code.
// It is built once and is safe for concurrent use afterwards.
type Classifier struct {
	rules map[string]models.Label
}

// NewClassifier builds a classifier from the built-in category table, merged
// with any rules the store provides. Store rules win on conflict. A nil
// store or an unreadable rules file leaves the built-in table in place.
func NewClassifier(ruleStore *store.LabelRuleStore) *Classifier {
	c := &Classifier{rules: make(map[string]models.Label, len(defaultRules))}
	for category, label := range defaultRules {
		c.rules[category] = label
	}

	if ruleStore != nil {
		overrides, err := ruleStore.LoadRules()
		if err != nil {
			log.WithError(err).Warn("Failed to load label rules, using built-in table")
		} else {
			for category, label := range overrides {
				c.rules[strings.ToLower(category)] = label
			}
		}
	}

	return c
}

// Classify resolves the label of a single transaction. It is pure and total:
// the input comes back with Label resolved and nothing else changed, and
// every transaction receives a label from the taxonomy.
func (c *Classifier) Classify(txn models.Transaction) models.Transaction {
	if txn.Label != models.LabelUnlabeled && txn.Label != "" {
		return txn
	}

	if txn.IsInvestmentCategory() {
		txn.Label = models.LabelSavings
		return txn
	}

	if label, ok := c.rules[strings.ToLower(strings.TrimSpace(txn.Category))]; ok {
		txn.Label = label
		return txn
	}

	txn.Label = models.LabelUnlabeled
	return txn
}

// ClassifyAll resolves labels for a whole batch, preserving order.
func (c *Classifier) ClassifyAll(txns []models.Transaction) []models.Transaction {
	if len(txns) == 0 {
		return txns
	}
	classified := make([]models.Transaction, len(txns))
	for i, txn := range txns {
		classified[i] = c.Classify(txn)
	}
	return classified
}
