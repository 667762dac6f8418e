// Package config loads runtime configuration for the claims orchestrator:
// an optional YAML file overlaid with environment variables, environment
// always winning. There are no package-level globals — Load returns a
// Config value the caller threads through explicitly.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full set of runtime settings for one orchestrator process.
type Config struct {
	// ListenAddr is loaded but not read: the demo entry point has no listener.
	ListenAddr string `yaml:"listen_addr"`

	// SupervisorModelDeployment names the model deployment backing the
	// supervisor agent (e.g. "gpt-4o").
	SupervisorModelDeployment string `yaml:"supervisor_model_deployment"`

	// RunPollInterval is loaded but not read: the orchestrator and the
	// specialist adapters poll runs at a fixed 500ms.
	RunPollInterval time.Duration `yaml:"run_poll_interval"`
	// RunTimeout is loaded but not read: supervisor runs use a fixed
	// 3-minute deadline and specialist runs a fixed 2-minute one.
	RunTimeout time.Duration `yaml:"run_timeout"`

	// RedisURL and RedisPassword are loaded but not read: the registry runs
	// purely in-memory and nothing constructs a DistributedCache from them.
	RedisURL      string `yaml:"redis_url"`
	RedisPassword string `yaml:"redis_password"`

	// MongoURI and MongoDatabase configure the execution store. Empty
	// MongoURI selects the in-memory store.
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`

	// AnalyticsSQLiteDSN configures the specialist delegation adapters' SQL
	// fallback data source.
	AnalyticsSQLiteDSN string `yaml:"analytics_sqlite_dsn"`

	// Evaluator selects the judge backend: "anthropic", "bedrock", or "" to
	// disable evaluation.
	Evaluator       string `yaml:"evaluator"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	BedrockRegion   string `yaml:"bedrock_region"`

	OpenAIAPIKey string `yaml:"openai_api_key"`
}

// Default returns the configuration used when neither a config file nor
// environment overrides are present.
func Default() Config {
	return Config{
		ListenAddr:                ":8080",
		SupervisorModelDeployment: "gpt-4o",
		RunPollInterval:           500 * time.Millisecond,
		RunTimeout:                2 * time.Minute,
		RedisURL:                  "",
		MongoURI:                  "",
		MongoDatabase:             "claims",
		AnalyticsSQLiteDSN:        "file:analytics.db?mode=memory&cache=shared",
		Evaluator:                 "",
	}
}

// Load builds a Config by starting from Default, overlaying the YAML file
// at path (if path is non-empty and the file exists), then overlaying
// environment variables. Environment variables always win.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Missing config file is not an error; environment and defaults
			// still apply.
		default:
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	cfg.ListenAddr = envOr("CLAIMS_LISTEN_ADDR", cfg.ListenAddr)
	cfg.SupervisorModelDeployment = envOr("CLAIMS_SUPERVISOR_MODEL", cfg.SupervisorModelDeployment)
	cfg.RunPollInterval = envDurationOr("CLAIMS_RUN_POLL_INTERVAL", cfg.RunPollInterval)
	cfg.RunTimeout = envDurationOr("CLAIMS_RUN_TIMEOUT", cfg.RunTimeout)
	cfg.RedisURL = envOr("REDIS_URL", cfg.RedisURL)
	cfg.RedisPassword = envOr("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.MongoURI = envOr("MONGO_URI", cfg.MongoURI)
	cfg.MongoDatabase = envOr("MONGO_DATABASE", cfg.MongoDatabase)
	cfg.AnalyticsSQLiteDSN = envOr("CLAIMS_ANALYTICS_SQLITE_DSN", cfg.AnalyticsSQLiteDSN)
	cfg.Evaluator = envOr("CLAIMS_EVALUATOR", cfg.Evaluator)
	cfg.AnthropicAPIKey = envOr("ANTHROPIC_API_KEY", cfg.AnthropicAPIKey)
	cfg.BedrockRegion = envOr("AWS_REGION", cfg.BedrockRegion)
	cfg.OpenAIAPIKey = envOr("OPENAI_API_KEY", cfg.OpenAIAPIKey)
}

func envOr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envIntOr(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func envDurationOr(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
