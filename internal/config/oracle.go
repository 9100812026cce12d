package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/navi-hq/navi/internal/oracle"
)

// Default oracle models per provider.
const (
	DefaultAnthropicModel = "claude-3-5-haiku-20241022"
	DefaultOpenAIModel    = "gpt-4o"
)

// LoadOracleConfig loads oracle provider settings. It follows this
// precedence:
// 1. Viper configuration (from config file or NAVI_ env vars)
// 2. Provider API key environment variables (ANTHROPIC_API_KEY, OPENAI_API_KEY)
// 3. Default values
func LoadOracleConfig() oracle.Config {
	cfg := oracle.Config{
		Provider:    viper.GetString("oracle.provider"),
		APIKey:      viper.GetString("oracle.api_key"),
		Model:       viper.GetString("oracle.model"),
		Temperature: viper.GetFloat64("oracle.temperature"),
		MaxTokens:   viper.GetInt("oracle.max_tokens"),
	}

	if cfg.Provider == "" {
		cfg.Provider = "anthropic"
	}

	if cfg.APIKey == "" {
		switch strings.ToLower(cfg.Provider) {
		case "anthropic":
			cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case "openai":
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	if cfg.Model == "" {
		switch strings.ToLower(cfg.Provider) {
		case "openai":
			cfg.Model = DefaultOpenAIModel
		default:
			cfg.Model = DefaultAnthropicModel
		}
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1024
	}

	return cfg
}
