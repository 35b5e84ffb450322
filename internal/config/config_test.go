package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/*opportunit*.xlsx", cfg.Data.OpportunitiesPath)
	assert.Equal(t, "data/*deploy*.xlsx", cfg.Data.DeploymentsPath)
	assert.Equal(t, "data/*case*.xlsx", cfg.Data.CasesPath)
	assert.False(t, cfg.Analysis.OnlyFullyLinked)
	assert.InDelta(t, 2.0, cfg.Analysis.RateLimitRPS, 0.001)
	assert.Equal(t, int64(2048), cfg.Analysis.MaxTokens)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.HaikuModel)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.SonnetModel)
	assert.Equal(t, "json", cfg.Report.Format)
	assert.Equal(t, "reports", cfg.Report.OutDir)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
data:
  cases_path: exports/cases.xlsx
log:
  level: debug
  format: console
server:
  port: 9090
analysis:
  only_fully_linked: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "exports/cases.xlsx", cfg.Data.CasesPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Analysis.OnlyFullyLinked)
	// Defaults still apply for unset values
	assert.Equal(t, "data/*deploy*.xlsx", cfg.Data.DeploymentsPath)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
log:
  level: debug
report:
  format: yaml
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("SUCCESS_LOG_LEVEL", "warn")
	t.Setenv("SUCCESS_REPORT_FORMAT", "csv")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "csv", cfg.Report.Format)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("SUCCESS_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Data.OpportunitiesPath = "data/opps.xlsx"
	cfg.Data.DeploymentsPath = "data/deploys.xlsx"
	cfg.Data.CasesPath = "data/cases.xlsx"
	cfg.Analysis.RateLimitRPS = 2.0
	cfg.Server.Port = 8080
	return cfg
}

func TestValidateLink(t *testing.T) {
	assert.NoError(t, validDefaults().Validate("link"))

	cfg := validDefaults()
	cfg.Data.CasesPath = ""
	err := cfg.Validate("link")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "data.cases_path is required")
}

func TestValidateAnalyze(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("analyze")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic.key is required")

	cfg.Anthropic.Key = "sk-ant-key"
	assert.NoError(t, cfg.Validate("analyze"))

	cfg.Analysis.RateLimitRPS = 0
	err = cfg.Validate("analyze")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "rate_limit_rps")
}

func TestValidateServe(t *testing.T) {
	assert.NoError(t, validDefaults().Validate("serve"))

	cfg := validDefaults()
	cfg.Server.Port = 0
	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
}

func TestValidateUnknownMode(t *testing.T) {
	err := validDefaults().Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}
