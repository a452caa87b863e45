package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/finsight-dev/finsight/internal/classify"
	"github.com/finsight-dev/finsight/internal/config"
	"github.com/finsight-dev/finsight/internal/ledger"
	"github.com/finsight-dev/finsight/internal/logger"
)

// loadConfig reads the config named by the root --config flag, folding
// in a .env file when one exists.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	// A missing .env is fine; it only supplies credentials.
	_ = godotenv.Load()

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cfg.Sync.TokenEnvVar != "" {
		cfg.Sync.AccessToken = os.Getenv(cfg.Sync.TokenEnvVar)
	}
	return cfg, nil
}

// openStore opens the file-backed ledger store under the config's data
// directory.
func openStore(cfg *config.Config) (*ledger.FileStore, error) {
	store, err := ledger.OpenFileStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening ledger store: %w", err)
	}
	return store, nil
}

// openClassifier selects the best available classifier: trained model,
// user keyword rules, or the built-in keyword table.
func openClassifier(cfg *config.Config) classify.Classifier {
	return classify.Open(cfg.ModelPath, cfg.CategoryRules, logger.New())
}
