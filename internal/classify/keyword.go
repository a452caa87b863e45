package classify

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/finsight-dev/finsight/internal/model"
)

// rule maps a lowercase keyword to a category.
type rule struct {
	Keyword  string
	Category string
}

// defaultRules is the built-in keyword table, checked in order.
var defaultRules = []rule{
	{"grocery", "Groceries"},
	{"supermarket", "Groceries"},
	{"whole foods", "Groceries"},
	{"trader joe", "Groceries"},
	{"uber", "Transport"},
	{"lyft", "Transport"},
	{"gas station", "Transport"},
	{"rent", "Rent"},
	{"mortgage", "Rent"},
	{"coffee", "Dining"},
	{"restaurant", "Dining"},
	{"doordash", "Dining"},
	{"netflix", "Subscriptions"},
	{"spotify", "Subscriptions"},
	{"hulu", "Subscriptions"},
	{"subscription", "Subscriptions"},
	{"electric", "Utilities"},
	{"water bill", "Utilities"},
	{"internet", "Utilities"},
	{"pharmacy", "Health"},
	{"payroll", "Income"},
	{"salary", "Income"},
}

// keywordConfidence is reported for keyword matches.
var keywordConfidence = decimal.NewFromFloat(0.35)

// KeywordClassifier is the fixed-lookup fallback when no trained model
// is available. Unknown descriptions get the default category with zero
// confidence.
type KeywordClassifier struct {
	rules []rule
}

// NewKeywordClassifier returns a classifier using the built-in table.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{rules: defaultRules}
}

// rulesFile is the YAML shape for user-supplied keyword rules.
type rulesFile struct {
	Categories []struct {
		Name     string   `yaml:"name"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"categories"`
}

// LoadKeywordClassifier reads extra category rules from a YAML file and
// prepends them to the built-in table, so user rules win.
func LoadKeywordClassifier(path string) (*KeywordClassifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading category rules: %w", err)
	}
	var rf rulesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing category rules: %w", err)
	}

	var rules []rule
	for _, c := range rf.Categories {
		for _, kw := range c.Keywords {
			rules = append(rules, rule{Keyword: strings.ToLower(kw), Category: c.Name})
		}
	}
	return &KeywordClassifier{rules: append(rules, defaultRules...)}, nil
}

// Predict matches the description against the rule table in order.
func (k *KeywordClassifier) Predict(description string) Prediction {
	lowered := strings.ToLower(description)
	for _, r := range k.rules {
		if strings.Contains(lowered, r.Keyword) {
			return Prediction{Category: r.Category, Confidence: keywordConfidence}
		}
	}
	return Prediction{Category: model.DefaultCategory, Confidence: decimal.Zero}
}
