package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryBudget is a user-configured monthly spending limit for one category.
type CategoryBudget struct {
	Category string
	Limit    decimal.Decimal
	Shared   bool
}

// FixedExpense is a recurring bill due on a fixed day of the month.
type FixedExpense struct {
	Name     string
	Amount   decimal.Decimal
	DueDay   int // 1-31
	Priority Priority
	Shared   bool
}

// Priority ranks how essential a fixed expense is.
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)

// ParsePriority canonicalizes a priority label, case-insensitively.
// Unrecognized values fall back to Medium.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return PriorityCritical
	case "high":
		return PriorityHigh
	case "low":
		return PriorityLow
	default:
		return PriorityMedium
	}
}
