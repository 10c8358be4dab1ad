package app

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/", cfg.APIBaseURL)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.DataDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, int64(5<<20), cfg.StorageQuotaBytes)
	assert.Equal(t, "KZT", cfg.Currency)
	assert.Equal(t, 20, cfg.PageSize)
}

func TestSaveAndLoadConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.APIBaseURL = "https://shop.example.com/api"
	cfg.Notification.Desktop = true
	cfg.AddRecentSearch("thinkpad")

	require.NoError(t, SaveConfig(dir, cfg))

	loaded, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/api/", loaded.APIBaseURL)
	assert.True(t, loaded.Notification.Desktop)
	assert.Equal(t, []string{"thinkpad"}, loaded.RecentSearches)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(ConfigPath(dir), []byte("{"), 0644))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvAPIURL, "http://api.test/")
	t.Setenv(EnvDataDir, "/tmp/storefront-data")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvStorageQuota, "64KiB")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://api.test/", cfg.APIBaseURL)
	assert.Equal(t, "/tmp/storefront-data", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(64*1024), cfg.StorageQuotaBytes)
	assert.Equal(t, "64 KiB", cfg.QuotaString())
}

func TestLoadConfig_BadQuota(t *testing.T) {
	t.Setenv(EnvStorageQuota, "lots")

	_, err := LoadConfig(t.TempDir())
	assert.ErrorContains(t, err, EnvStorageQuota)
}

func TestAddRecentSearch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AddRecentSearch("asus")
	cfg.AddRecentSearch("  ")
	cfg.AddRecentSearch("lenovo")
	cfg.AddRecentSearch("ASUS")

	assert.Equal(t, []string{"ASUS", "lenovo"}, cfg.RecentSearches)
	assert.Equal(t, []string{"lenovo"}, cfg.GetRecentSearches("Len"))

	for i := 0; i < 30; i++ {
		cfg.AddRecentSearch(fmt.Sprintf("q%d", i))
	}
	assert.Len(t, cfg.RecentSearches, 20)
	assert.Equal(t, "q29", cfg.RecentSearches[0])
}

func TestValidateAPIURL(t *testing.T) {
	assert.NoError(t, ValidateAPIURL("https://shop.example.kz/"))
	assert.NoError(t, ValidateAPIURL(" http://localhost:8080 "))
	assert.Error(t, ValidateAPIURL(""))
	assert.Error(t, ValidateAPIURL("ftp://shop.example.kz"))
	assert.Error(t, ValidateAPIURL("http://"))
}
