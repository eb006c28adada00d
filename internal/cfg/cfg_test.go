package cfg

import (
	"flag"
	"strings"
	"testing"
)

func validConfig() *Config {
	c := &Config{}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)
	c.MistralAPIKey = "key"
	return c
}

func TestRegisterFlagsDefaults(t *testing.T) {
	t.Parallel()

	c := &Config{}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)

	if c.DrainSeconds != 60 {
		t.Errorf("DrainSeconds = %d, want 60", c.DrainSeconds)
	}
	if c.ShutdownBudgetSeconds != 90 {
		t.Errorf("ShutdownBudgetSeconds = %d, want 90", c.ShutdownBudgetSeconds)
	}
	if c.APIPort != 8080 {
		t.Errorf("APIPort = %d, want 8080", c.APIPort)
	}
	if c.Provider != ProviderMistral {
		t.Errorf("Provider = %q, want %q", c.Provider, ProviderMistral)
	}
	if c.MistralModel != "mistralai/Mixtral-8x7B-Instruct-v0.1" {
		t.Errorf("MistralModel = %q", c.MistralModel)
	}
	if c.ExchangeTimeoutSecs != 30 {
		t.Errorf("ExchangeTimeoutSecs = %d, want 30", c.ExchangeTimeoutSecs)
	}
}

func TestRegisterFlagsParse(t *testing.T) {
	t.Parallel()

	c := &Config{}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)

	err := fs.Parse([]string{
		"-http-port=9090",
		"-analysis-provider=claude",
		"-claude-api-key=secret",
		"-exchange-timeout-seconds=45",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.APIPort != 9090 {
		t.Errorf("APIPort = %d, want 9090", c.APIPort)
	}
	if c.Provider != ProviderClaude {
		t.Errorf("Provider = %q, want claude", c.Provider)
	}
	if c.ExchangeTimeoutSecs != 45 {
		t.Errorf("ExchangeTimeoutSecs = %d, want 45", c.ExchangeTimeoutSecs)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"drain too large", func(c *Config) { c.DrainSeconds = 301; c.ShutdownBudgetSeconds = 350 }, "DRAIN_SECONDS"},
		{"drain zero", func(c *Config) { c.DrainSeconds = 0 }, "DRAIN_SECONDS"},
		{"budget not greater than drain", func(c *Config) { c.ShutdownBudgetSeconds = 60 }, "must be greater than"},
		{"port out of range", func(c *Config) { c.APIPort = 70000 }, "HTTP_PORT"},
		{"timeout zero", func(c *Config) { c.ExchangeTimeoutSecs = 0 }, "EXCHANGE_TIMEOUT_SECONDS"},
		{"mistral without key", func(c *Config) { c.MistralAPIKey = "" }, "MISTRAL_API_KEY"},
		{"mistral without model", func(c *Config) { c.MistralModel = "" }, "MISTRAL_MODEL"},
		{"claude without key", func(c *Config) { c.Provider = ProviderClaude }, "CLAUDE_API_KEY"},
		{"claude without model", func(c *Config) {
			c.Provider = ProviderClaude
			c.ClaudeAPIKey = "k"
			c.ClaudeModel = ""
		}, "CLAUDE_MODEL"},
		{"unknown provider", func(c *Config) { c.Provider = "gemini" }, "ANALYSIS_PROVIDER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("Validate() = %q, want substring %q", err, tt.wantSub)
			}
		})
	}
}
