package commands

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finsight-dev/finsight/internal/ledger"
	"github.com/finsight-dev/finsight/internal/model"
)

func newNetWorthCommand() *cobra.Command {
	nwCmd := &cobra.Command{
		Use:   "networth",
		Short: "Net worth snapshots",
	}
	nwCmd.AddCommand(newNetWorthCaptureCommand())
	nwCmd.AddCommand(newNetWorthListCommand())
	return nwCmd
}

func newNetWorthCaptureCommand() *cobra.Command {
	var assets float64

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Record today's net worth snapshot",
		Long:  "Records assets from the flag and liabilities from configured loan balances. Re-capturing the same date overwrites.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}

			liabilities := decimal.Zero
			for _, l := range cfg.ModelLoans() {
				liabilities = liabilities.Add(l.Balance)
			}

			snap := model.NetWorthSnapshot{
				Date:        time.Now(),
				Assets:      decimal.NewFromFloat(assets),
				Liabilities: liabilities,
			}
			if err := ledger.CaptureNetWorth(store, snap); err != nil {
				return err
			}
			fmt.Printf("Captured net worth $%s (assets $%s, liabilities $%s)\n",
				snap.NetWorth().StringFixed(2), snap.Assets.StringFixed(2), snap.Liabilities.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().Float64Var(&assets, "assets", 0, "total assets (required)")
	_ = cmd.MarkFlagRequired("assets")

	return cmd
}

func newNetWorthListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			snaps, err := store.Snapshots()
			if err != nil {
				return err
			}
			sort.Slice(snaps, func(i, j int) bool { return snaps[i].Date.Before(snaps[j].Date) })
			for _, s := range snaps {
				fmt.Printf("%s  net $%s (assets $%s, liabilities $%s)\n",
					s.Date.Format("2006-01-02"), s.NetWorth().StringFixed(2),
					s.Assets.StringFixed(2), s.Liabilities.StringFixed(2))
			}
			return nil
		},
	}
}
