// Package config handles the XDG configuration directory, its files and
// the settings read from config.yaml and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	// AppName is the application directory name.
	AppName = "household"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// SessionFile is the stored session filename.
	SessionFile = "session.json"

	// SettingsFile is the optional settings filename.
	SettingsFile = "config.yaml"

	// EnvFile is an optional dotenv file loaded before settings.
	EnvFile = ".env"

	// EnvPrefix prefixes environment overrides (HOUSEHOLD_USER, ...).
	EnvPrefix = "HOUSEHOLD"

	// TasksScope is the OAuth scope for Google Tasks.
	TasksScope = "https://www.googleapis.com/auth/tasks"
)

// Backend names.
const (
	BackendMemory = "memory"
	BackendGoogle = "google"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// User is the assignee label of the signed-in member.
	User string

	// Backend selects where records come from: "memory" or "google".
	Backend string

	// GoogleList is the Google Tasks list holding household tasks.
	GoogleList string
}

// New creates a Config with the default or specified config directory and
// loads settings from it. Missing settings files are not an error.
// If configDir is empty, uses XDG_CONFIG_HOME/household or $HOME/.config/household.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}
	if err := cfg.load(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func (c *Config) load() error {
	envPath := filepath.Join(c.Dir, EnvFile)
	if fileExists(envPath) {
		if err := godotenv.Load(envPath); err != nil {
			return fmt.Errorf("failed to read %s: %w", EnvFile, err)
		}
	}

	v := viper.New()
	v.SetDefault("user", "You")
	v.SetDefault("backend", BackendMemory)
	v.SetDefault("google.list", "Household")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := c.SettingsPath(); fileExists(path) {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read %s: %w", SettingsFile, err)
		}
	}

	c.User = strings.TrimSpace(v.GetString("user"))
	c.GoogleList = strings.TrimSpace(v.GetString("google.list"))
	return c.SetBackend(v.GetString("backend"))
}

// SetBackend validates and sets the backend name.
func (c *Config) SetBackend(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case BackendMemory, BackendGoogle:
		c.Backend = name
		return nil
	}
	return fmt.Errorf("unknown backend: %s", name)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// SessionPath returns the path to the stored session file.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Dir, SessionFile)
}

// SettingsPath returns the path to config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// OAuthConfig loads the OAuth client credentials for the Tasks scope.
func (c *Config) OAuthConfig() (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(c.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", OAuthClientFile, err)
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, TasksScope)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", OAuthClientFile, err)
	}
	return oauthConfig, nil
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	return fileExists(c.OAuthClientPath())
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
