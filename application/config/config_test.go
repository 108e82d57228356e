package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "llamacpp", cfg.ModuleName)
	assert.Equal(t, uint32(1024*1024), cfg.MaxRequestSize)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    func(t *testing.T, cfg Config)
		wantErr string
	}{
		{
			name: "empty document keeps defaults",
			yaml: "",
			want: func(t *testing.T, cfg Config) {
				assert.Equal(t, Default(), cfg)
			},
		},
		{
			name: "overrides",
			yaml: "module_name: env\nlog_level: debug\nlog_format: json\nmax_request_size: 4096\n",
			want: func(t *testing.T, cfg Config) {
				assert.Equal(t, "env", cfg.ModuleName)
				assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
				assert.Equal(t, "json", cfg.LogFormat)
				assert.Equal(t, uint32(4096), cfg.MaxRequestSize)
			},
		},
		{
			name:    "unknown key",
			yaml:    "module: env\n",
			wantErr: "failed to parse config",
		},
		{
			name:    "bad level",
			yaml:    "log_level: loud\n",
			wantErr: "LogLevel",
		},
		{
			name:    "module name with space",
			yaml:    "module_name: \"two words\"\n",
			wantErr: "ModuleName",
		},
		{
			name:    "request size too small",
			yaml:    "max_request_size: 8\n",
			wantErr: "MaxRequestSize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.want(t, cfg)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bindings.yaml")
		require.NoError(t, os.WriteFile(path, []byte("log_level: warn\n"), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.LogFormat = "json"

	cfg.NewLogger(&buf).Info("hello", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "v", line["k"])

	buf.Reset()
	cfg.NewLogger(&buf).Debug("hidden")
	assert.Empty(t, buf.String())
}
