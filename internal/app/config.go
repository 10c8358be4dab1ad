// Package app provides application-level configuration and initialization.
package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/lazyvibe/storefront/internal/model"
)

// Environment variables that override the stored configuration.
const (
	EnvAPIURL       = "STOREFRONT_API_URL"
	EnvDataDir      = "STOREFRONT_DATA_DIR"
	EnvLogLevel     = "STOREFRONT_LOG_LEVEL"
	EnvStorageQuota = "STOREFRONT_STORAGE_QUOTA"
)

const (
	defaultAPIBaseURL   = "http://localhost:8080/"
	defaultStorageQuota = 5 << 20
	defaultPageSize     = 20
	maxRecentSearches   = 20
)

// Config holds the application configuration.
type Config struct {
	// Initialized is set once the first-run wizard has completed.
	Initialized bool `json:"initialized"`
	// APIBaseURL is the storefront backend root. Service paths are joined to it.
	APIBaseURL string `json:"api_base_url"`
	// DataDir holds collection data, the cookie jar and the log file.
	DataDir string `json:"data_dir,omitempty"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level"`
	// StorageQuotaBytes bounds the collection data file. Zero means unlimited.
	StorageQuotaBytes int64 `json:"storage_quota_bytes"`
	// Currency is the ISO code prices are shown in.
	Currency string `json:"currency"`
	// PageSize is the number of products fetched per catalog page.
	PageSize int `json:"page_size,omitempty"`
	// Notification configures cart and checkout notifications.
	Notification model.NotificationConfig `json:"notification"`
	// RecentSearches stores recent catalog searches, most recent first.
	RecentSearches []string `json:"recent_searches,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:        defaultAPIBaseURL,
		LogLevel:          "info",
		StorageQuotaBytes: defaultStorageQuota,
		Currency:          "KZT",
		PageSize:          defaultPageSize,
		RecentSearches:    []string{},
	}
}

// ConfigPath returns the path to the config file.
func ConfigPath(configDir string) string {
	return filepath.Join(configDir, "config.json")
}

// LoadConfig loads the configuration from disk, then applies a .env file from
// the working directory and environment overrides.
func LoadConfig(configDir string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(ConfigPath(configDir))
	switch {
	case err == nil:
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, err
	}

	// A missing .env file is normal.
	_ = godotenv.Load()

	if err := config.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	config.fillDefaults(configDir)
	return config, nil
}

// SaveConfig saves the configuration to disk.
func SaveConfig(configDir string, config *Config) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigPath(configDir), data, 0644)
}

// applyEnv overrides fields from the environment.
func (c *Config) applyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvAPIURL)); v != "" {
		c.APIBaseURL = v
	}
	if v := strings.TrimSpace(getenv(EnvDataDir)); v != "" {
		c.DataDir = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv(EnvStorageQuota)); v != "" {
		n, err := humanize.ParseBytes(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvStorageQuota, err)
		}
		c.StorageQuotaBytes = int64(n)
	}
	return nil
}

func (c *Config) fillDefaults(configDir string) {
	if c.APIBaseURL == "" {
		c.APIBaseURL = defaultAPIBaseURL
	}
	if !strings.HasSuffix(c.APIBaseURL, "/") {
		c.APIBaseURL += "/"
	}
	if c.DataDir == "" {
		c.DataDir = filepath.Join(configDir, "data")
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Currency == "" {
		c.Currency = "KZT"
	}
	if c.PageSize <= 0 {
		c.PageSize = defaultPageSize
	}
	if c.StorageQuotaBytes < 0 {
		c.StorageQuotaBytes = 0
	}
}

// ValidateAPIURL reports whether raw is a usable backend root.
func ValidateAPIURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return errors.New("API URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid API URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("API URL must start with http:// or https://")
	}
	if u.Host == "" {
		return errors.New("API URL has no host")
	}
	return nil
}

// QuotaString returns the storage quota in human-readable form.
func (c *Config) QuotaString() string {
	if c.StorageQuotaBytes <= 0 {
		return "unlimited"
	}
	return humanize.IBytes(uint64(c.StorageQuotaBytes))
}

// AddRecentSearch adds a query to the recent searches list.
func (c *Config) AddRecentSearch(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	searches := make([]string, 0, len(c.RecentSearches))
	for _, q := range c.RecentSearches {
		if !strings.EqualFold(q, query) {
			searches = append(searches, q)
		}
	}

	c.RecentSearches = append([]string{query}, searches...)

	if len(c.RecentSearches) > maxRecentSearches {
		c.RecentSearches = c.RecentSearches[:maxRecentSearches]
	}
}

// GetRecentSearches returns recent searches starting with prefix.
func (c *Config) GetRecentSearches(prefix string) []string {
	if prefix == "" {
		return c.RecentSearches
	}

	var matches []string
	lower := strings.ToLower(prefix)
	for _, q := range c.RecentSearches {
		if strings.HasPrefix(strings.ToLower(q), lower) {
			matches = append(matches, q)
		}
	}
	return matches
}
