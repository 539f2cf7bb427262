// Package testutil provides helpers shared by outparse tests
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

// CreateFile creates a file with the given content in the specified directory.
// It fails the test if the file cannot be created.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
	return path
}

// WithXDG sets XDG environment variables for the duration of the test and
// reloads the xdg package so its directories follow them.
func WithXDG(t *testing.T, vars map[string]string) {
	t.Helper()
	// registered first so it runs after the environment is restored
	t.Cleanup(xdg.Reload)
	for key, value := range vars {
		t.Setenv(key, value)
	}
	xdg.Reload()
}

// IsolateXDG points the config and state directories at a fresh temporary
// directory, which is returned. Config is under "config", system config under
// "etc" and state under "state".
func IsolateXDG(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	WithXDG(t, map[string]string{
		"XDG_CONFIG_HOME": filepath.Join(dir, "config"),
		"XDG_CONFIG_DIRS": filepath.Join(dir, "etc"),
		"XDG_STATE_HOME":  filepath.Join(dir, "state"),
	})
	return dir
}
