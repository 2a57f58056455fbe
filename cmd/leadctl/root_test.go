package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/auth"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/entity"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/service"
	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/service/scoring"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"analyze", "token"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestAnalyzeCommand_Flags(t *testing.T) {
	flag := analyzeCmd.Flags().Lookup("skip-insights")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)

	flag = analyzeCmd.Flags().Lookup("timeout")
	require.NotNil(t, flag)
	assert.Equal(t, "0s", flag.DefValue)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("BACKEND_PROVIDER", "none")

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAnalyzeCommand_Degraded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Acme</title></head><body>SaaS platform, hello@acme.io</body></html>`))
	}))
	defer srv.Close()

	out, err := execute(t, "analyze", srv.URL, "--timeout", "2s")
	require.NoError(t, err)

	var result service.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "Acme", result.Profile.Name)
	assert.Equal(t, "SaaS", result.Profile.Industry)
	assert.True(t, result.Degraded)
	require.NotNil(t, result.Score)
	assert.Equal(t, scoring.DegradedRationale, result.Score.Rationale)
}

func TestAnalyzeCommand_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	out, err := execute(t, "analyze", srv.URL)
	require.Error(t, err)

	var profile entity.CompanyProfile
	require.NoError(t, json.Unmarshal([]byte(out), &profile))
	assert.True(t, profile.Failed())
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")

	out, err := execute(t, "token", "team-growth", "--scope", "analyze", "--ttl", "1h")
	require.NoError(t, err)

	claims, err := auth.NewJWTManager("cli-secret", time.Hour).ParseToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "team-growth", claims.Subject)
	assert.Equal(t, []string{"analyze"}, claims.Scopes)
}

func TestTokenCommand_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := execute(t, "token", "team-growth")
	require.Error(t, err)
}
