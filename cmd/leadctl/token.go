package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token <subject>",
	Short: "Mint a bearer token for the HTTP API",
	Long: `Signs a token with JWT_SECRET. The subject is the identity analyses are
stored under; --scope limits what the token may do (analyze, history).`,
	Args: cobra.ExactArgs(1),
	RunE: runToken,
}

func init() {
	f := tokenCmd.Flags()
	f.StringSlice("scope", nil, "scopes to grant (default: all)")
	f.Duration("ttl", 0, "token lifetime (overrides JWT_TTL)")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	if cfg.JWTSecret == "" {
		return errors.New("token: JWT_SECRET is not set")
	}

	ttl := cfg.TokenTTL
	if override, _ := cmd.Flags().GetDuration("ttl"); override > 0 {
		ttl = override
	}
	scopes, _ := cmd.Flags().GetStringSlice("scope")

	token, err := auth.NewJWTManager(cfg.JWTSecret, ttl).GenerateToken(args[0], scopes...)
	if err != nil {
		return fmt.Errorf("token: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
