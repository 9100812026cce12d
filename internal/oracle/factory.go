package oracle

import (
	"fmt"
	"strings"
)

// Config holds provider settings for an oracle client.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Tracker     *CostTracker
}

// New creates an Oracle for the configured provider.
func New(cfg Config) (Oracle, error) {
	switch strings.ToLower(cfg.Provider) {
	case "anthropic":
		client, err := newAnthropicClient(cfg)
		if err != nil {
			return nil, err
		}
		return judger{c: client}, nil
	case "openai":
		client, err := newOpenAIClient(cfg)
		if err != nil {
			return nil, err
		}
		return judger{c: client}, nil
	default:
		return nil, fmt.Errorf("unsupported oracle provider: %s", cfg.Provider)
	}
}
