package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigYAML(t *testing.T) {
	data := []byte(`
name: Compression
bufferSize: 4096
iterations: 10
output: out.json
`)

	cfg, err := ParseConfig(data, "bench.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Compression", cfg.Name)
	assert.Equal(t, 4096, cfg.BufferSize)
	assert.Equal(t, 10, cfg.Iterations)
	assert.Equal(t, "out.json", cfg.Output)
}

func TestParseConfigJSON(t *testing.T) {
	data := []byte(`{"name":"Compression","bufferSize":4096,"iterations":2}`)

	cfg, err := ParseConfig(data, "bench.json")
	require.NoError(t, err)
	assert.Equal(t, "Compression", cfg.Name)
	assert.Equal(t, 4096, cfg.BufferSize)
	assert.Equal(t, 2, cfg.Iterations)
}

func TestParseConfigDefaults(t *testing.T) {
	// Unset fields keep their defaults.
	cfg, err := ParseConfig([]byte(`name: Partial`), "bench.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Partial", cfg.Name)
	assert.Equal(t, 1000000, cfg.BufferSize)
	assert.Equal(t, 1, cfg.Iterations)
}

func TestParseConfigInvalid(t *testing.T) {
	_, err := ParseConfig([]byte(`{not json`), "bench.json")
	assert.Error(t, err)

	_, err = ParseConfig([]byte("\tbad yaml"), "bench.yaml")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: FromFile\nbufferSize: 128\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "FromFile", cfg.Name)
	assert.Equal(t, 128, cfg.BufferSize)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *BenchConfig
		wantErr bool
	}{
		{"default is valid", DefaultBenchConfig(), false},
		{"nil", nil, true},
		{"zero buffer", &BenchConfig{Name: "x", BufferSize: 0, Iterations: 1}, true},
		{"negative iterations", &BenchConfig{Name: "x", BufferSize: 1, Iterations: -1}, true},
		{"anonymous is valid", &BenchConfig{BufferSize: 1, Iterations: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
