package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/success-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "success-cli",
	Short: "Customer success analytics over sales, deployment, and support exports",
	Long:  "Links opportunity, deployment, and support-case spreadsheets on order number, detects repeat issues, and computes account, product, use-case, and service-channel metrics.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
