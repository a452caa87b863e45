package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finsight-dev/finsight/internal/extsync"
	"github.com/finsight-dev/finsight/internal/logger"
)

func newSyncCommand() *cobra.Command {
	var feedPath string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Pull new transactions from the bank feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}

			fetcher, err := extsync.OpenFileFetcher(feedPath)
			if err != nil {
				return err
			}

			inserted, err := extsync.Sync(cmd.Context(), fetcher, cfg.Sync.AccessToken, store, logger.New())
			if err != nil {
				return err
			}
			fmt.Printf("Synced %d new transactions\n", inserted)
			return nil
		},
	}

	cmd.Flags().StringVar(&feedPath, "feed", "", "recorded feed JSON file to replay")
	_ = cmd.MarkFlagRequired("feed")

	return cmd
}
