package appconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveProviderDefaults(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("ANTHROPIC_MODEL", "")
	t.Setenv("CLAUDE_USE_OAUTH", "")

	cfg := ResolveProvider()

	assert.False(t, cfg.Configured())
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.False(t, cfg.OAuthMode)
}

func TestResolveProviderFromEnvironment(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("ANTHROPIC_MODEL", "claude-3-5-haiku-20241022")
	t.Setenv("CLAUDE_USE_OAUTH", "TRUE")

	cfg := ResolveProvider()

	assert.True(t, cfg.Configured())
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, "claude-3-5-haiku-20241022", cfg.Model)
	assert.True(t, cfg.OAuthMode)
}

func TestHTTPPort(t *testing.T) {
	t.Setenv("PORT", "")
	assert.Equal(t, "8000", HTTPPort())

	t.Setenv("PORT", "9090")
	assert.Equal(t, "9090", HTTPPort())
}
