package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "leadctl",
	Short: "Analyze company websites and score them as sales leads",
	Long: `Fetches a company website, extracts firmographic signals (industry, contacts,
social presence, technologies, team size, funding stage) and asks the configured
reasoning backend for a 0-100 lead score with an outreach recommendation.

Configuration is read from the environment (or a .env file): BACKEND_PROVIDER,
BACKEND_API_KEY, BACKEND_MODEL, FETCH_TIMEOUT, PHONE_REGION, LOG_LEVEL, ...`,
	SilenceUsage: true,
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
