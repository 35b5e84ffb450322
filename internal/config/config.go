package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data      DataConfig      `yaml:"data" mapstructure:"data"`
	Analysis  AnalysisConfig  `yaml:"analysis" mapstructure:"analysis"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Report    ReportConfig    `yaml:"report" mapstructure:"report"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the three spreadsheet exports. Paths may contain glob
// patterns; the first match sorted by name wins.
type DataConfig struct {
	OpportunitiesPath string `yaml:"opportunities_path" mapstructure:"opportunities_path"`
	DeploymentsPath   string `yaml:"deployments_path" mapstructure:"deployments_path"`
	CasesPath         string `yaml:"cases_path" mapstructure:"cases_path"`
}

// AnalysisConfig configures the analysis layers.
type AnalysisConfig struct {
	OnlyFullyLinked bool    `yaml:"only_fully_linked" mapstructure:"only_fully_linked"`
	RateLimitRPS    float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	MaxTokens       int64   `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key         string `yaml:"key" mapstructure:"key"`
	HaikuModel  string `yaml:"haiku_model" mapstructure:"haiku_model"`
	SonnetModel string `yaml:"sonnet_model" mapstructure:"sonnet_model"`
}

// ReportConfig configures report output.
type ReportConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
	OutDir string `yaml:"out_dir" mapstructure:"out_dir"`
}

// ServerConfig configures the read-only API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SUCCESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.opportunities_path", "data/*opportunit*.xlsx")
	v.SetDefault("data.deployments_path", "data/*deploy*.xlsx")
	v.SetDefault("data.cases_path", "data/*case*.xlsx")
	v.SetDefault("analysis.only_fully_linked", false)
	v.SetDefault("analysis.rate_limit_rps", 2.0)
	v.SetDefault("analysis.max_tokens", 2048)
	v.SetDefault("anthropic.haiku_model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.sonnet_model", "claude-sonnet-4-5-20250929")
	v.SetDefault("report.format", "json")
	v.SetDefault("report.out_dir", "reports")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the configuration for a command mode. Modes: "link",
// "metrics", "analyze", "serve".
func (c *Config) Validate(mode string) error {
	var missing []string

	requireData := func() {
		if c.Data.OpportunitiesPath == "" {
			missing = append(missing, "data.opportunities_path is required")
		}
		if c.Data.DeploymentsPath == "" {
			missing = append(missing, "data.deployments_path is required")
		}
		if c.Data.CasesPath == "" {
			missing = append(missing, "data.cases_path is required")
		}
	}

	switch mode {
	case "link", "metrics":
		requireData()
	case "analyze":
		requireData()
		if c.Anthropic.Key == "" {
			missing = append(missing, "anthropic.key is required")
		}
		if c.Analysis.RateLimitRPS <= 0 {
			missing = append(missing, "analysis.rate_limit_rps must be > 0")
		}
	case "serve":
		requireData()
		if c.Server.Port <= 0 {
			missing = append(missing, "server.port must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(missing) > 0 {
		return eris.New("config: " + strings.Join(missing, "; "))
	}

	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
