package config

import (
	_ "embed"
	"errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

//go:embed embedded/starter.toml
var starterConfig []byte

// DefaultContent returns the embedded defaults document
func DefaultContent() string {
	return string(defaultConfig)
}

// StarterContent returns the example action definitions used by genconfig
func StarterContent() string {
	return string(starterConfig)
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}
