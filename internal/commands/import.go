package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finsight-dev/finsight/internal/ledger"
	"github.com/finsight-dev/finsight/internal/logger"
	"github.com/finsight-dev/finsight/internal/model"
	"github.com/finsight-dev/finsight/internal/statement"
)

func newImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Normalize, classify, and reconcile statement files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}

			log := logger.New()
			report, err := statement.ProcessFiles(args, log)
			if err != nil {
				return err
			}

			rec := ledger.NewReconciler(store, openClassifier(cfg), log)
			inserted, err := rec.Reconcile(report.Rows, model.ProvenanceImported)
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d new transactions from %d file(s)\n", inserted, len(report.Parsed))
			for _, skipped := range report.Skipped {
				fmt.Printf("Skipped %s: %s\n", skipped.Path, skipped.Reason)
			}
			return nil
		},
	}
	return cmd
}
