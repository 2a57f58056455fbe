package main

import (
	"encoding/json"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/fetcher"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/service"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Analyze one company website and print the result as JSON",
	Long: `Runs the full pipeline for one URL and prints the profile, lead score and
insights as indented JSON. A URL without a scheme is fetched over https.

Examples:
  leadctl analyze acme.io
  leadctl analyze https://acme.io --skip-insights --timeout 30s`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.Bool("skip-insights", false, "do not request the outreach advisory")
	f.Duration("timeout", 0, "fetch timeout (overrides FETCH_TIMEOUT)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	skipInsights, _ := cmd.Flags().GetBool("skip-insights")
	if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout > 0 {
		cfg.Fetch.Timeout = timeout
	}

	log := zap.L().With(zap.String("command", "analyze"))

	analyzer, err := service.BuildAnalyzer(ctx, cfg, nil, log)
	if err != nil {
		return eris.Wrap(err, "analyze: build pipeline")
	}

	start := time.Now()
	result, err := analyzer.Analyze(ctx, args[0], service.AnalyzeOptions{SkipInsights: skipInsights})

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	var fetchErr *fetcher.FetchError
	switch {
	case errors.As(err, &fetchErr):
		_ = enc.Encode(result.Profile)
		return eris.Wrapf(err, "analyze: could not fetch %s", fetchErr.URL)
	case err != nil:
		return eris.Wrap(err, "analyze")
	}

	log.Debug("analysis finished", zap.Duration("elapsed", time.Since(start)))
	return enc.Encode(result)
}
