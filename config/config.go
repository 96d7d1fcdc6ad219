package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every tunable of the assistant: calculator thresholds,
// provider credentials, and storage locations.
type Config struct {
	DataDir    string `json:"data_dir"`
	CacheDir   string `json:"cache_dir"`
	LedgerPath string `json:"ledger_path"`

	// LLM renderer settings. The renderer is optional product glue; the
	// core never talks to a model.
	LLMProvider string `json:"llm_provider"` // "deepseek" or "openai"
	LLMModel    string `json:"llm_model"`
	LLMAPIKey   string `json:"llm_api_key"`
	BackendURL  string `json:"backend_url"`

	// Market data provider selection.
	QuoteProvider       string `json:"quote_provider"` // "yahoo" or "longport"
	LongportAppKey      string `json:"longport_app_key"`
	LongportAppSecret   string `json:"longport_app_secret"`
	LongportAccessToken string `json:"longport_access_token"`

	// Optional Redis backend for the key-value store; empty means the
	// in-memory store.
	RedisAddr string `json:"redis_addr"`

	// Sentiment label cutoffs and the payoff simulation horizon.
	BullishThreshold    float64 `json:"bullish_threshold"`
	BearishThreshold    float64 `json:"bearish_threshold"`
	PayoffHorizonMonths int     `json:"payoff_horizon_months"`

	CacheEnabled bool `json:"cache_enabled"`
	Debug        bool `json:"debug"`
}

// DefaultConfig returns the built-in defaults overridden by any environment
// variables, loading a .env file first when present.
func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()

	cfg := &Config{
		DataDir:    filepath.Join(currentDir, "data"),
		CacheDir:   filepath.Join(currentDir, "data", "cache"),
		LedgerPath: filepath.Join(currentDir, "data", "budget.db"),

		LLMProvider: "deepseek",
		LLMModel:    "deepseek-chat",
		BackendURL:  "https://api.deepseek.com/v1",

		QuoteProvider: "yahoo",

		BullishThreshold:    0.15,
		BearishThreshold:    -0.15,
		PayoffHorizonMonths: 1200,

		CacheEnabled: true,
	}

	_ = godotenv.Load()
	cfg.loadFromEnv()

	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("FINGENIE_DATA_DIR"); val != "" {
		c.DataDir = val
	}
	if val := os.Getenv("FINGENIE_CACHE_DIR"); val != "" {
		c.CacheDir = val
	}
	if val := os.Getenv("FINGENIE_LEDGER_PATH"); val != "" {
		c.LedgerPath = val
	}

	if val := os.Getenv("LLM_PROVIDER"); val != "" {
		c.LLMProvider = val
	}
	if val := os.Getenv("LLM_MODEL"); val != "" {
		c.LLMModel = val
	}
	if val := os.Getenv("LLM_API_KEY"); val != "" {
		c.LLMAPIKey = val
	}
	if val := os.Getenv("DEEPSEEK_API_KEY"); val != "" {
		c.LLMAPIKey = val
	}
	if val := os.Getenv("BACKEND_URL"); val != "" {
		c.BackendURL = val
	}

	if val := os.Getenv("QUOTE_PROVIDER"); val != "" {
		c.QuoteProvider = val
	}
	if val := os.Getenv("LONGPORT_APP_KEY"); val != "" {
		c.LongportAppKey = val
	}
	if val := os.Getenv("LONGPORT_APP_SECRET"); val != "" {
		c.LongportAppSecret = val
	}
	if val := os.Getenv("LONGPORT_ACCESS_TOKEN"); val != "" {
		c.LongportAccessToken = val
	}

	if val := os.Getenv("FINGENIE_REDIS_ADDR"); val != "" {
		c.RedisAddr = val
	}

	if val := os.Getenv("FINGENIE_BULLISH_THRESHOLD"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.BullishThreshold = f
		}
	}
	if val := os.Getenv("FINGENIE_BEARISH_THRESHOLD"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.BearishThreshold = f
		}
	}
	if val := os.Getenv("FINGENIE_PAYOFF_HORIZON"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.PayoffHorizonMonths = v
		}
	}

	if val := os.Getenv("FINGENIE_CACHE_ENABLED"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.CacheEnabled = enabled
		}
	}
	if val := os.Getenv("FINGENIE_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}
}

// Validate rejects threshold and horizon settings the calculators cannot
// work with.
func (c *Config) Validate() error {
	if c.BearishThreshold >= c.BullishThreshold {
		return fmt.Errorf("bearish threshold %v must be below bullish threshold %v",
			c.BearishThreshold, c.BullishThreshold)
	}
	if c.BullishThreshold > 1 || c.BearishThreshold < -1 {
		return fmt.Errorf("sentiment thresholds must lie within [-1, 1]")
	}
	if c.PayoffHorizonMonths <= 0 {
		return fmt.Errorf("payoff horizon must be positive, got %d", c.PayoffHorizonMonths)
	}
	switch c.QuoteProvider {
	case "", "yahoo", "longport":
	default:
		return fmt.Errorf("unknown quote provider %q", c.QuoteProvider)
	}
	return nil
}

// EnsureDirectories creates the data and cache directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.DataDir, c.CacheDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
