package cfg

import (
	"errors"
	"flag"
	"fmt"
)

// Providers the console can dispatch analysis exchanges to.
const (
	ProviderMistral = "mistral"
	ProviderClaude  = "claude"
)

// Config adds app-specific configuration fields to the
// common cfg.Registerable and cfg.Validatable interfaces
type Config struct {
	DrainSeconds          int
	ShutdownBudgetSeconds int
	APIPort               int
	APIToken              string
	DatabaseURL           string
	Provider              string
	MistralAPIKey         string
	MistralModel          string
	MistralEndpoint       string
	ClaudeAPIKey          string
	ClaudeModel           string
	ExchangeTimeoutSecs   int
	SlackWebhookURL       string
}

// RegisterFlags binds Config fields to the given FlagSet with defaults inline
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.DrainSeconds, "drain-seconds", 60, "seconds to wait for in-flight requests to drain before shutdown (1..300)")
	fs.IntVar(&c.ShutdownBudgetSeconds, "shutdown-budget-seconds", 90, "total seconds for component shutdown after drain (1..300)")
	fs.IntVar(&c.APIPort, "http-port", 8080, "API listen TCP port (1..65535)")
	fs.StringVar(&c.APIToken, "api-token", "", "bearer token protecting the API (empty = no auth)")
	fs.StringVar(&c.DatabaseURL, "database-url", "", "PostgreSQL connection URL (empty = in-memory store)")
	fs.StringVar(&c.Provider, "analysis-provider", ProviderMistral, "analysis backend to dispatch exchanges to (mistral or claude)")
	fs.StringVar(&c.MistralAPIKey, "mistral-api-key", "", "API key for the Together AI chat-completions endpoint")
	fs.StringVar(&c.MistralModel, "mistral-model", "mistralai/Mixtral-8x7B-Instruct-v0.1", "Mistral model to use")
	fs.StringVar(&c.MistralEndpoint, "mistral-endpoint", "", "chat-completions endpoint override (empty = Together AI)")
	fs.StringVar(&c.ClaudeAPIKey, "claude-api-key", "", "API key for accessing the Claude provider")
	fs.StringVar(&c.ClaudeModel, "claude-model", "claude-sonnet-4-20250514", "Claude model to use")
	fs.IntVar(&c.ExchangeTimeoutSecs, "exchange-timeout-seconds", 30, "timeout for a single analysis exchange (1..300)")
	fs.StringVar(&c.SlackWebhookURL, "slack-webhook-url", "", "Slack webhook URL for critical alert notifications")
}

// Validate checks all configuration fields for correctness.
// It returns an error if any field is invalid, or nil if all fields are valid.
func (c *Config) Validate() error {
	var errs []error

	// Drain and shutdown budgets
	if c.DrainSeconds <= 0 || c.DrainSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid DRAIN_SECONDS %d (must be 1..300)", c.DrainSeconds))
	}
	if c.ShutdownBudgetSeconds <= 0 || c.ShutdownBudgetSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid SHUTDOWN_BUDGET_SECONDS %d (must be 1..300)", c.ShutdownBudgetSeconds))
	}

	// Shutdown budget must be greater than drain time
	if c.ShutdownBudgetSeconds <= c.DrainSeconds {
		errs = append(errs, fmt.Errorf("SHUTDOWN_BUDGET_SECONDS %d must be greater than DRAIN_SECONDS %d", c.ShutdownBudgetSeconds, c.DrainSeconds))
	}

	// API port must be valid TCP port number
	if c.APIPort <= 0 || c.APIPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP_PORT %d (must be 1..65535)", c.APIPort))
	}

	if c.ExchangeTimeoutSecs <= 0 || c.ExchangeTimeoutSecs > 300 {
		errs = append(errs, fmt.Errorf("invalid EXCHANGE_TIMEOUT_SECONDS %d (must be 1..300)", c.ExchangeTimeoutSecs))
	}

	// The selected analysis backend must be fully configured
	switch c.Provider {
	case ProviderMistral:
		if c.MistralAPIKey == "" {
			errs = append(errs, errors.New("MISTRAL_API_KEY is required"))
		}
		if c.MistralModel == "" {
			errs = append(errs, errors.New("MISTRAL_MODEL is required"))
		}
	case ProviderClaude:
		if c.ClaudeAPIKey == "" {
			errs = append(errs, errors.New("CLAUDE_API_KEY is required"))
		}
		if c.ClaudeModel == "" {
			errs = append(errs, errors.New("CLAUDE_MODEL is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown ANALYSIS_PROVIDER %q (must be mistral or claude)", c.Provider))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
