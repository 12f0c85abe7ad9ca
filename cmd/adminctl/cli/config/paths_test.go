package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir_UsesXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")

	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg-config", "adminctl"), dir)
}

func TestDir_DefaultsToHomeConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/tmp/fake-home")

	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/fake-home", ".config", "adminctl"), dir)
}
