package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/finsight-dev/finsight/internal/model"
)

// Config represents the top-level finsight.yaml configuration.
type Config struct {
	DataDir       string         `yaml:"data_dir"`
	ModelPath     string         `yaml:"model_path,omitempty"`
	CategoryRules string         `yaml:"category_rules,omitempty"`
	Anomaly       AnomalyConfig  `yaml:"anomaly"`
	Sync          SyncConfig     `yaml:"sync"`
	Budgets       []BudgetEntry  `yaml:"budgets,omitempty"`
	FixedExpenses []ExpenseEntry `yaml:"fixed_expenses,omitempty"`
	Loans         []LoanEntry    `yaml:"loans,omitempty"`
}

// AnomalyConfig controls spike detection.
type AnomalyConfig struct {
	LookbackMonths int `yaml:"lookback_months"`
}

// SyncConfig controls the external bank feed. The access token itself
// comes from the environment, never the config file.
type SyncConfig struct {
	Enabled     bool   `yaml:"enabled"`
	AccessToken string `yaml:"-"`
	TokenEnvVar string `yaml:"token_env_var"`
}

// BudgetEntry is a monthly category limit.
type BudgetEntry struct {
	Category string  `yaml:"category"`
	Limit    float64 `yaml:"limit"`
	Shared   bool    `yaml:"shared"`
}

// ExpenseEntry is a recurring fixed bill.
type ExpenseEntry struct {
	Name     string  `yaml:"name"`
	Amount   float64 `yaml:"amount"`
	DueDay   int     `yaml:"due_day"`
	Priority string  `yaml:"priority"`
	Shared   bool    `yaml:"shared"`
}

// LoanEntry is an outstanding debt.
type LoanEntry struct {
	Lender     string  `yaml:"lender"`
	Principal  float64 `yaml:"principal"`
	Balance    float64 `yaml:"balance"`
	RateAPR    float64 `yaml:"rate_apr"`
	MinPayment float64 `yaml:"min_payment"`
	Shared     bool    `yaml:"shared"`
}

// Load reads a finsight.yaml file from disk and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new setup.
func Default(dataDir string) *Config {
	return &Config{
		DataDir: dataDir,
		Anomaly: AnomalyConfig{LookbackMonths: 6},
		Sync: SyncConfig{
			Enabled:     false,
			TokenEnvVar: "FINSIGHT_SYNC_TOKEN",
		},
	}
}

// Validate checks record invariants: loan balance within principal,
// non-negative rates, fixed-expense due days in 1-31.
func (c *Config) Validate() error {
	for _, l := range c.Loans {
		if err := l.Loan().Validate(); err != nil {
			return err
		}
	}
	for _, e := range c.FixedExpenses {
		if e.DueDay < 1 || e.DueDay > 31 {
			return fmt.Errorf("fixed expense %s: due day %d out of range 1-31", e.Name, e.DueDay)
		}
	}
	return nil
}

// ModelBudgets converts the configured budgets to model records.
func (c *Config) ModelBudgets() []model.CategoryBudget {
	out := make([]model.CategoryBudget, len(c.Budgets))
	for i, b := range c.Budgets {
		out[i] = model.CategoryBudget{
			Category: b.Category,
			Limit:    decimal.NewFromFloat(b.Limit),
			Shared:   b.Shared,
		}
	}
	return out
}

// ModelFixedExpenses converts the configured bills to model records.
func (c *Config) ModelFixedExpenses() []model.FixedExpense {
	out := make([]model.FixedExpense, len(c.FixedExpenses))
	for i, e := range c.FixedExpenses {
		out[i] = model.FixedExpense{
			Name:     e.Name,
			Amount:   decimal.NewFromFloat(e.Amount),
			DueDay:   e.DueDay,
			Priority: model.ParsePriority(e.Priority),
			Shared:   e.Shared,
		}
	}
	return out
}

// ModelLoans converts the configured loans to model records.
func (c *Config) ModelLoans() []model.Loan {
	out := make([]model.Loan, len(c.Loans))
	for i, l := range c.Loans {
		out[i] = l.Loan()
	}
	return out
}

// Loan converts one entry to a model record.
func (l LoanEntry) Loan() model.Loan {
	return model.Loan{
		Lender:     l.Lender,
		Principal:  decimal.NewFromFloat(l.Principal),
		Balance:    decimal.NewFromFloat(l.Balance),
		RateAPR:    decimal.NewFromFloat(l.RateAPR),
		MinPayment: decimal.NewFromFloat(l.MinPayment),
		Shared:     l.Shared,
	}
}
