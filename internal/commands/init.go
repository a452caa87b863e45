package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/finsight-dev/finsight/internal/config"
)

func newInitCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new finsight setup",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(absDir, dataDir)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "data", "ledger data directory, relative to the setup directory")

	return cmd
}

func runInit(dir, dataDir string) error {
	for _, d := range []string{dataDir, "statements", "models"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(filepath.Join(dir, dataDir))
	if err := config.Save(filepath.Join(dir, "finsight.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	rulesContent := "categories: []\n"
	if err := os.WriteFile(filepath.Join(dir, "category-rules.yaml"), []byte(rulesContent), 0o644); err != nil {
		return fmt.Errorf("writing category rules: %w", err)
	}

	fmt.Printf("Initialized finsight setup at %s\n", dir)
	return nil
}
