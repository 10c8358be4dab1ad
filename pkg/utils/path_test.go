package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "shop"), ExpandPath("~/shop/"))
	assert.Equal(t, "/var/data", ExpandPath("/var//data"))
	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, "~/shop", ShortenHome(filepath.Join(home, "shop")))
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	dir, err := ConfigDir("storefront")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/storefront", dir)
}
