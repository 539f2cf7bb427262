package testutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/outparse/pkg/testutil"
)

func TestCreateFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "nested/config.toml", "a = 1")

	assert.Equal(t, filepath.Join(dir, "nested", "config.toml"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a = 1", string(data))
}

func TestIsolateXDG(t *testing.T) {
	dir := testutil.IsolateXDG(t)

	assert.Equal(t, filepath.Join(dir, "config"), xdg.ConfigHome)
	assert.Equal(t, filepath.Join(dir, "state"), xdg.StateHome)
	assert.Equal(t, []string{filepath.Join(dir, "etc")}, xdg.ConfigDirs)
}
