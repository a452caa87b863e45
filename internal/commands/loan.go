package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finsight-dev/finsight/internal/loan"
)

func newLoanCommand() *cobra.Command {
	loanCmd := &cobra.Command{
		Use:   "loan",
		Short: "Loan payoff tools",
	}
	loanCmd.AddCommand(newLoanSimulateCommand())
	loanCmd.AddCommand(newLoanAvalancheCommand())
	loanCmd.AddCommand(newLoanSavingsCommand())
	return loanCmd
}

func newLoanSimulateCommand() *cobra.Command {
	var lender string
	var extra float64

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate a loan's amortization schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			for _, l := range cfg.ModelLoans() {
				if l.Lender != lender {
					continue
				}
				schedule := loan.Simulate(l.Balance, l.RateAPR, l.MinPayment, decimal.NewFromFloat(extra))
				if len(schedule) == 0 {
					fmt.Printf("%s: the payment does not cover interest; this loan will never pay off at these terms.\n", l.Lender)
					return nil
				}

				last := schedule[len(schedule)-1]
				fmt.Printf("%s: paid off in %d months (%d years %d months), total interest $%s\n",
					l.Lender, last.Month, last.Month/12, last.Month%12,
					loan.TotalInterest(schedule).StringFixed(2))
				for _, row := range schedule {
					fmt.Printf("  month %4d  payment $%10s  interest $%9s  principal $%9s  balance $%11s\n",
						row.Month, row.Payment.StringFixed(2), row.Interest.StringFixed(2),
						row.Principal.StringFixed(2), row.Balance.StringFixed(2))
				}
				return nil
			}
			return fmt.Errorf("no loan configured for lender %q", lender)
		},
	}

	cmd.Flags().StringVar(&lender, "lender", "", "lender name from config (required)")
	_ = cmd.MarkFlagRequired("lender")
	cmd.Flags().Float64Var(&extra, "extra", 0, "extra monthly payment")

	return cmd
}

func newLoanSavingsCommand() *cobra.Command {
	var goal float64
	var starting float64
	var byDate string

	cmd := &cobra.Command{
		Use:   "savings",
		Short: "Monthly savings needed to reach a goal by a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			goalDate, err := time.Parse("2006-01-02", byDate)
			if err != nil {
				return fmt.Errorf("parsing --by date: %w", err)
			}

			plan := loan.RequiredSavings(
				decimal.NewFromFloat(goal), decimal.NewFromFloat(starting),
				goalDate, time.Now())
			fmt.Printf("Save $%s per month for %d months to reach $%s by %s\n",
				plan.MonthlyRequired.StringFixed(2), plan.MonthsLeft,
				decimal.NewFromFloat(goal).StringFixed(0), byDate)
			return nil
		},
	}

	cmd.Flags().Float64Var(&goal, "goal", 0, "target amount (required)")
	_ = cmd.MarkFlagRequired("goal")
	cmd.Flags().Float64Var(&starting, "starting", 0, "current saved amount")
	cmd.Flags().StringVar(&byDate, "by", "", "goal date, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("by")

	return cmd
}

func newLoanAvalancheCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "avalanche",
		Short: "Order configured loans for fastest interest payoff",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ordered := loan.Avalanche(cfg.ModelLoans())
			if len(ordered) == 0 {
				fmt.Println("No loans configured.")
				return nil
			}
			for i, l := range ordered {
				line := fmt.Sprintf("%d. %s: $%s at %s%% APR, minimum payment $%s",
					i+1, l.Lender, l.Balance.StringFixed(0), l.RateAPR.StringFixed(2), l.MinPayment.StringFixed(0))
				if months, ok := loan.EstimateMonths(l.Balance, l.RateAPR, l.MinPayment); ok {
					line += fmt.Sprintf(" (~%.0f months left)", months)
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}
