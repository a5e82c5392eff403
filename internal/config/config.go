package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

var defaultModels = map[string]string{
	ProviderGemini:    "gemini-2.5-flash-lite",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-3-5-haiku-latest",
}

var apiKeyEnv = map[string]string{
	ProviderGemini:    "GEMINI_API_KEY",
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderAnthropic: "ANTHROPIC_API_KEY",
}

// Profile holds the credentials for one model provider.
type Profile struct {
	Provider string `json:"provider"`
	APIKey   string `json:"api_key"`
	BaseURL  string `json:"base_url,omitempty"`
	Model    string `json:"model"`
}

type Config struct {
	Profiles         map[string]Profile `json:"profiles"`
	ActiveProfile    string             `json:"active_profile"`
	Endpoint         string             `json:"endpoint,omitempty"`
	ListenAddr       string             `json:"listen_addr"`
	LogFile          string             `json:"log_file,omitempty"`
	LogLevel         string             `json:"log_level"`
	TypingIntervalMs int                `json:"typing_interval_ms"`
	RequestTimeoutS  int                `json:"request_timeout_s"`
	Portfolio        string             `json:"portfolio,omitempty"`
	currentProfile   *Profile
	endpointOverride string
}

// ConfigError reports a setting that is missing or unusable.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	config.applyDefaults()

	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}
	config.applyEnv()

	return config, nil
}

// IsValid reports whether the active profile can reach its provider.
func (c *Config) IsValid() bool {
	return c.currentProfile != nil && c.currentProfile.APIKey != ""
}

// RequireCredential fails when the active profile has no API key.
func (c *Config) RequireCredential() error {
	if c.currentProfile == nil {
		return &ConfigError{Field: "active_profile", Reason: "no profile selected"}
	}
	if c.currentProfile.APIKey == "" {
		return &ConfigError{
			Field:  "profiles." + c.ActiveProfile + ".api_key",
			Reason: "not set (set it in the profile or via " + apiKeyEnv[c.GetProvider()] + ")",
		}
	}
	return nil
}

func (c *Config) GetAPIKey() string {
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.APIKey
}

func (c *Config) GetProvider() string {
	if c.currentProfile == nil || c.currentProfile.Provider == "" {
		return ProviderGemini
	}
	return c.currentProfile.Provider
}

func (c *Config) GetModel() string {
	if c.currentProfile == nil || c.currentProfile.Model == "" {
		return DefaultModel(c.GetProvider())
	}
	return c.currentProfile.Model
}

func (c *Config) GetBaseURL() string {
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.BaseURL
}

// GetEndpoint returns the chat endpoint, preferring a flag or environment
// override to the saved value. Empty means answer in process.
func (c *Config) GetEndpoint() string {
	if c.endpointOverride != "" {
		return c.endpointOverride
	}
	return c.Endpoint
}

// OverrideEndpoint sets an endpoint for this run only. Save does not write it.
func (c *Config) OverrideEndpoint(endpoint string) {
	if endpoint != "" {
		c.endpointOverride = endpoint
	}
}

func (c *Config) TypingInterval() time.Duration {
	return time.Duration(c.TypingIntervalMs) * time.Millisecond
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutS) * time.Second
}

// DefaultModel returns the model used when a profile leaves it empty.
func DefaultModel(provider string) string {
	return defaultModels[provider]
}

// ValidProvider reports whether provider names a supported model provider.
func ValidProvider(provider string) bool {
	_, ok := defaultModels[provider]
	return ok
}

// Providers lists the supported providers in a stable order.
func Providers() []string {
	return []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic}
}

func getConfigPath() (string, error) {
	var configDir string

	// Use TERMFOLIO_HOME if set, otherwise use user's home directory
	if home := os.Getenv("TERMFOLIO_HOME"); home != "" {
		configDir = home
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = homeDir
	}

	return filepath.Join(configDir, ".termfolio", "config.json"), nil
}

func ensureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func loadConfigFile(configPath string) (*Config, error) {
	// If config file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: map[string]Profile{
			"default": {
				Provider: ProviderGemini,
				Model:    DefaultModel(ProviderGemini),
			},
		},
		ActiveProfile: "default",
	}
	config.applyDefaults()

	if err := saveConfig(config, configPath); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.TypingIntervalMs <= 0 {
		c.TypingIntervalMs = 10
	}
	if c.RequestTimeoutS <= 0 {
		c.RequestTimeoutS = 30
	}
}

// applyEnv fills values from the environment without persisting them.
func (c *Config) applyEnv() {
	c.OverrideEndpoint(os.Getenv("TERMFOLIO_ENDPOINT"))
	if c.currentProfile != nil && c.currentProfile.APIKey == "" {
		c.currentProfile.APIKey = os.Getenv(apiKeyEnv[c.GetProvider()])
	}
}

func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	return saveConfig(c, configPath)
}

// Use switches the active profile.
func (c *Config) Use(name string) error {
	if _, exists := c.Profiles[name]; !exists {
		return &ConfigError{Field: "active_profile", Reason: fmt.Sprintf("profile %q does not exist", name)}
	}
	c.ActiveProfile = name
	if err := c.setCurrentProfile(); err != nil {
		return err
	}
	c.applyEnv()
	return nil
}

// ProfileNames returns profile names sorted alphabetically.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Config) setCurrentProfile() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// Fall back to the first profile by name
		name := c.ProfileNames()[0]
		c.ActiveProfile = name
		profile = c.Profiles[name]
	}

	if profile.Provider != "" && !ValidProvider(profile.Provider) {
		return &ConfigError{
			Field:  "profiles." + c.ActiveProfile + ".provider",
			Reason: fmt.Sprintf("unknown provider %q", profile.Provider),
		}
	}

	c.currentProfile = &profile
	return nil
}
