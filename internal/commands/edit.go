package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEditCommand() *cobra.Command {
	var category string
	var shared bool

	cmd := &cobra.Command{
		Use:   "edit <transaction-id>",
		Short: "Edit a reconciled transaction's category or visibility",
		Args:  cobra.ExactArgs(1),
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
			for _, txn := range txns {
				if txn.ID != args[0] {
					continue
				}
				if cmd.Flags().Changed("category") {
					txn.Category = category
				}
				if cmd.Flags().Changed("shared") {
					txn.Shared = shared
				}
				if err := store.UpdateTransaction(txn); err != nil {
					return err
				}
				if err := store.Commit(); err != nil {
					return fmt.Errorf("committing edit: %w", err)
				}
				fmt.Printf("Updated %s: category=%s shared=%v\n", txn.ID, txn.Category, txn.Shared)
				return nil
			}
			return fmt.Errorf("no transaction with id %q", args[0])
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "new category label")
	cmd.Flags().BoolVar(&shared, "shared", false, "mark visible to shared viewers")

	return cmd
}
