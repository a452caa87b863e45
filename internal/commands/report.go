package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/finsight-dev/finsight/internal/anomaly"
	"github.com/finsight-dev/finsight/internal/budget"
	"github.com/finsight-dev/finsight/internal/forecast"
	"github.com/finsight-dev/finsight/internal/insight"
	"github.com/finsight-dev/finsight/internal/ledger"
)

func newReportCommand() *cobra.Command {
	var query string
	var sharedOnly bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run the analytics pass and print ranked insights",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			txns, err := store.Transactions()
			if err != nil {
				return err
			}
			if sharedOnly {
				txns = ledger.SharedOnly(txns)
			}

			now := time.Now()
			budgets := cfg.ModelBudgets()
			fixed := cfg.ModelFixedExpenses()

			obs := insight.Compose(insight.Inputs{
				Transactions: txns,
				Budgets:      budget.Evaluate(txns, budgets, now),
				Pace:         budget.Pace(txns, budgets, now),
				Anomalies:    anomaly.Detect(txns, cfg.Anomaly.LookbackMonths),
				Forecast:     forecast.NextMonth(txns),
				Fixed:        fixed,
				Loans:        cfg.ModelLoans(),
				Query:        query,
			})

			for _, o := range obs {
				fmt.Println("-", o.Text)
			}

			for _, p := range forecast.ProjectHorizons(txns, fixed) {
				fmt.Printf("Projected balance in %d days: $%s (avg daily net $%s over %d sampled days)\n",
					p.HorizonDays, p.Projected.StringFixed(0), p.AvgDailyNet.StringFixed(2), p.SampleDays)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "free-text question to route supplemental insights")
	cmd.Flags().BoolVar(&sharedOnly, "shared-only", false, "restrict to transactions marked shared")

	return cmd
}
