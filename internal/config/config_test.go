package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, BackendDir, cfg.Store.Backend)
	assert.Equal(t, ".formbuilder", cfg.Store.Path)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "formbuilder.yaml")
	content := "store:\n  backend: sqlite\n  path: forms.db\noutput:\n  format: yaml\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "forms.db", cfg.Store.Path)
	assert.Equal(t, "yaml", cfg.Output.Format)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "formbuilder.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  backend: memory\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".formbuilder.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"store": {"backend": "dir", "path": "out"}}`), 0o644))

	cfg, err := LoadFromPath(dir)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.Store.Path)
}

func TestLoadFromPath_MissingYieldsDefaults(t *testing.T) {
	cfg, err := LoadFromPath(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults pass", mutate: func(c *Config) {}},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Store.Backend = "redis" },
			wantErr: "unsupported store backend",
		},
		{
			name:    "dir backend needs path",
			mutate:  func(c *Config) { c.Store.Path = "" },
			wantErr: "requires store.path",
		},
		{
			name: "memory backend needs no path",
			mutate: func(c *Config) {
				c.Store.Backend = BackendMemory
				c.Store.Path = ""
			},
		},
		{
			name:    "unknown output format",
			mutate:  func(c *Config) { c.Output.Format = "xml" },
			wantErr: "unsupported output format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
