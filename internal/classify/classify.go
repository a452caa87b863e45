// Package classify assigns spending categories to transaction
// descriptions. Callers depend only on the Classifier capability; the
// concrete implementation is chosen at construction time.
package classify

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Prediction is a category label with an optional confidence in [0, 1].
type Prediction struct {
	Category   string
	Confidence decimal.Decimal
}

// Classifier predicts a category for a free-text description.
type Classifier interface {
	Predict(description string) Prediction
}

// Open returns the best available classifier: the trained model at
// modelPath, else user keyword rules at rulesPath, else the built-in
// keyword table. A missing or unreadable artifact is not fatal; the
// chain falls through.
func Open(modelPath, rulesPath string, log zerolog.Logger) Classifier {
	if modelPath != "" {
		m, err := LoadModel(modelPath)
		if err == nil {
			return m
		}
		log.Warn().Str("path", modelPath).Err(err).Msg("classifier model unavailable, falling back")
	}
	if rulesPath != "" {
		k, err := LoadKeywordClassifier(rulesPath)
		if err == nil {
			return k
		}
		log.Warn().Str("path", rulesPath).Err(err).Msg("category rules unavailable, using built-in table")
	}
	return NewKeywordClassifier()
}
