package appconfig

import (
	"os"
	"strings"
)

// DefaultModel is used when ANTHROPIC_MODEL is not set.
const DefaultModel = "claude-3-5-sonnet-20241022"

// ProviderConfig captures the provider-facing configuration of a single
// request. It is resolved from the environment on every request so that
// credential changes take effect without a restart.
type ProviderConfig struct {
	APIKey    string
	Model     string
	OAuthMode bool
}

// ResolveProvider reads the provider configuration from the environment.
func ResolveProvider() ProviderConfig {
	model := os.Getenv("ANTHROPIC_MODEL")
	if model == "" {
		model = DefaultModel
	}

	return ProviderConfig{
		APIKey:    os.Getenv("ANTHROPIC_API_KEY"),
		Model:     model,
		OAuthMode: strings.EqualFold(os.Getenv("CLAUDE_USE_OAUTH"), "true"),
	}
}

// Configured reports whether the provider can be called at all.
func (c ProviderConfig) Configured() bool {
	return c.APIKey != ""
}

// HTTPPort returns the listen port from PORT, defaulting to 8000.
func HTTPPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}
