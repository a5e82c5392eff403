package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TERMFOLIO_HOME", dir)
	t.Setenv("TERMFOLIO_ENDPOINT", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	return dir
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	path := filepath.Join(dir, ".termfolio", "config.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestLoadConfig_CreatesDefault(t *testing.T) {
	dir := setHome(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "default", cfg.ActiveProfile)
	assert.Equal(t, ProviderGemini, cfg.GetProvider())
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel())
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 10*time.Millisecond, cfg.TypingInterval())
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
	assert.False(t, cfg.IsValid())

	info, err := os.Stat(filepath.Join(dir, ".termfolio", "config.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestRequireCredential(t *testing.T) {
	setHome(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	err = cfg.RequireCredential()
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "profiles.default.api_key", cfgErr.Field)
	assert.Contains(t, cfgErr.Error(), "GEMINI_API_KEY")
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	setHome(t)
	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("TERMFOLIO_ENDPOINT", "http://localhost:9000")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsValid())
	assert.NoError(t, cfg.RequireCredential())
	assert.Equal(t, "from-env", cfg.GetAPIKey())
	assert.Equal(t, "http://localhost:9000", cfg.GetEndpoint())
	assert.Empty(t, cfg.Endpoint)

	cfg.OverrideEndpoint("http://flag:1")
	assert.Equal(t, "http://flag:1", cfg.GetEndpoint())
	cfg.OverrideEndpoint("")
	assert.Equal(t, "http://flag:1", cfg.GetEndpoint())
}

func TestSave_DoesNotPersistEnvOverrides(t *testing.T) {
	dir := setHome(t)
	t.Setenv("TERMFOLIO_ENDPOINT", "http://example.invalid")
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NoError(t, cfg.Use("default"))
	require.NoError(t, cfg.Save())

	data, err := os.ReadFile(filepath.Join(dir, ".termfolio", "config.json"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "example.invalid")
	assert.NotContains(t, string(data), "env-key")

	t.Setenv("TERMFOLIO_ENDPOINT", "")
	t.Setenv("GEMINI_API_KEY", "")
	reloaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, reloaded.GetEndpoint())
	assert.Empty(t, reloaded.GetAPIKey())
}

func TestGetEndpoint_SavedValue(t *testing.T) {
	dir := setHome(t)
	writeConfig(t, dir, `{
		"profiles": {"default": {"provider": "gemini"}},
		"active_profile": "default",
		"endpoint": "http://saved:8080"
	}`)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://saved:8080", cfg.GetEndpoint())

	t.Setenv("TERMFOLIO_ENDPOINT", "http://env:9000")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://env:9000", cfg.GetEndpoint())
	require.NoError(t, cfg.Save())

	t.Setenv("TERMFOLIO_ENDPOINT", "")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://saved:8080", cfg.GetEndpoint())
}

func TestLoadConfig_ProfileKeyWinsOverEnv(t *testing.T) {
	dir := setHome(t)
	t.Setenv("OPENAI_API_KEY", "env-key")
	writeConfig(t, dir, `{
		"profiles": {"work": {"provider": "openai", "api_key": "file-key", "model": "gpt-4o"}},
		"active_profile": "work"
	}`)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.GetAPIKey())
	assert.Equal(t, "gpt-4o", cfg.GetModel())
	assert.Equal(t, ProviderOpenAI, cfg.GetProvider())
}

func TestLoadConfig_MissingActiveProfileFallsBack(t *testing.T) {
	dir := setHome(t)
	writeConfig(t, dir, `{
		"profiles": {
			"zeta": {"provider": "anthropic"},
			"alpha": {"provider": "openai"}
		},
		"active_profile": "gone"
	}`)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "alpha", cfg.ActiveProfile)
	assert.Equal(t, "gpt-4o-mini", cfg.GetModel())
}

func TestLoadConfig_UnknownProvider(t *testing.T) {
	dir := setHome(t)
	writeConfig(t, dir, `{"profiles": {"x": {"provider": "cohere"}}, "active_profile": "x"}`)

	_, err := LoadConfig()
	var cfgErr *ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestUseAndSave(t *testing.T) {
	setHome(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	cfg.Profiles["claude"] = Profile{Provider: ProviderAnthropic, APIKey: "k"}

	assert.Error(t, cfg.Use("missing"))
	require.NoError(t, cfg.Use("claude"))
	require.NoError(t, cfg.Save())

	reloaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "claude", reloaded.ActiveProfile)
	assert.Equal(t, "claude-3-5-haiku-latest", reloaded.GetModel())
	assert.Equal(t, []string{"claude", "default"}, reloaded.ProfileNames())
}
