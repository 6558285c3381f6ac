// Package config handles the configuration directory, file paths and API settings.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "taskdash"

	// TokenFile is the stored bearer token filename.
	TokenFile = "token.json"

	// UserFile is the stored current-user filename.
	UserFile = "user.json"

	// EnvFile is the optional dotenv file inside the config directory.
	EnvFile = ".env"

	// DefaultAPIURL is used when neither --api nor TASKDASH_API_URL is set.
	DefaultAPIURL = "http://localhost:8000/api"

	// EnvAPIURL overrides the API base URL.
	EnvAPIURL = "TASKDASH_API_URL"

	// EnvConfigDir overrides the configuration directory.
	EnvConfigDir = "TASKDASH_CONFIG_DIR"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the base URL of the task API, without a trailing slash.
	APIURL string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a Config for configDir and apiURL.
// If configDir is empty, TASKDASH_CONFIG_DIR is used, then the XDG default.
// The directory's .env file is loaded before the API URL is resolved;
// variables already present in the environment win.
// If apiURL is empty, TASKDASH_API_URL is used, then DefaultAPIURL.
func New(configDir, apiURL string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = os.Getenv(EnvConfigDir)
	}
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := &Config{Dir: dir}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	if apiURL == "" {
		apiURL = os.Getenv(EnvAPIURL)
	}
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	cfg.APIURL = strings.TrimRight(strings.TrimSpace(apiURL), "/")
	return cfg, nil
}

// loadEnv loads <dir>/.env if present.
func (c *Config) loadEnv() error {
	err := godotenv.Load(c.EnvPath())
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
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

// TokenPath returns the path to the stored token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// UserPath returns the path to the stored user file.
func (c *Config) UserPath() string {
	return filepath.Join(c.Dir, UserFile)
}

// EnvPath returns the path to the dotenv file.
func (c *Config) EnvPath() string {
	return filepath.Join(c.Dir, EnvFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
