package classify

import (
	"encoding/gob"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/finsight-dev/finsight/internal/model"
)

// Example is one labeled training pair.
type Example struct {
	Description string
	Category    string
}

// Model is a multinomial naive Bayes text classifier over description
// tokens. It is trained offline and serialized to disk; the engine only
// loads and predicts.
type Model struct {
	Classes     []string
	ClassDocs   map[string]int            // documents per class
	TokenCounts map[string]map[string]int // class -> token -> count
	TotalTokens map[string]int            // class -> total token count
	VocabSize   int
	Docs        int
}

// Train builds a Model from labeled examples.
func Train(examples []Example) (*Model, error) {
	if len(examples) == 0 {
		return nil, fmt.Errorf("no training examples")
	}

	m := &Model{
		ClassDocs:   make(map[string]int),
		TokenCounts: make(map[string]map[string]int),
		TotalTokens: make(map[string]int),
	}
	vocab := make(map[string]struct{})

	for _, ex := range examples {
		if _, seen := m.ClassDocs[ex.Category]; !seen {
			m.Classes = append(m.Classes, ex.Category)
			m.TokenCounts[ex.Category] = make(map[string]int)
		}
		m.ClassDocs[ex.Category]++
		m.Docs++
		for _, tok := range tokenize(ex.Description) {
			m.TokenCounts[ex.Category][tok]++
			m.TotalTokens[ex.Category]++
			vocab[tok] = struct{}{}
		}
	}
	m.VocabSize = len(vocab)
	return m, nil
}

// Predict scores the description against every class and returns the
// best label with a normalized posterior as confidence.
func (m *Model) Predict(description string) Prediction {
	tokens := tokenize(description)
	if len(tokens) == 0 || m.Docs == 0 {
		return Prediction{Category: model.DefaultCategory, Confidence: decimal.Zero}
	}

	scores := make([]float64, len(m.Classes))
	for i, class := range m.Classes {
		score := math.Log(float64(m.ClassDocs[class]) / float64(m.Docs))
		denom := float64(m.TotalTokens[class] + m.VocabSize)
		for _, tok := range tokens {
			score += math.Log(float64(m.TokenCounts[class][tok]+1) / denom)
		}
		scores[i] = score
	}

	best := 0
	for i := range scores {
		if scores[i] > scores[best] {
			best = i
		}
	}

	// Normalize in log space for a stable posterior.
	var sum float64
	for _, s := range scores {
		sum += math.Exp(s - scores[best])
	}
	confidence := 1.0 / sum

	return Prediction{
		Category:   m.Classes[best],
		Confidence: decimal.NewFromFloat(confidence).Round(4),
	}
}

// Save serializes the model with gob, creating parent directories.
func (m *Model) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating model dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating model file: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(m); err != nil {
		return fmt.Errorf("encoding model: %w", err)
	}
	return nil
}

// LoadModel reads a serialized model from disk.
func LoadModel(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening model: %w", err)
	}
	defer f.Close()

	var m Model
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding model: %w", err)
	}
	return &m, nil
}

// tokenize lowercases and splits a description on non-alphanumerics,
// dropping single-character tokens.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var tokens []string
	for _, f := range fields {
		if len(f) > 1 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
