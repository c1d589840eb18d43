package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/cogniscribe-batch/internal/domain"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  *Default(),
			wantErr: false,
		},
		{
			name: "lower ratio bound",
			config: Config{
				Request: RequestConfig{Ratio: 0.05},
			},
			wantErr: false,
		},
		{
			name: "upper ratio bound",
			config: Config{
				Request: RequestConfig{Ratio: 1.0},
			},
			wantErr: false,
		},
		{
			name: "ratio too small",
			config: Config{
				Request: RequestConfig{Ratio: 0.04},
			},
			wantErr: true,
		},
		{
			name: "ratio too large",
			config: Config{
				Request: RequestConfig{Ratio: 1.01},
			},
			wantErr: true,
		},
		{
			name: "negative timeout",
			config: Config{
				Server:  ServerConfig{Timeout: -time.Second},
				Request: RequestConfig{Ratio: 0.2},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	cfg := Config{Request: RequestConfig{Ratio: 0.3}}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultURL, cfg.Server.URL)
	assert.Equal(t, DefaultTimeout, cfg.Server.Timeout)
	assert.Equal(t, DefaultOutput, cfg.Paths.Output)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestValidateRatioError(t *testing.T) {
	cfg := Default()
	cfg.Request.Ratio = 2
	assert.ErrorIs(t, cfg.Validate(), domain.ErrInvalidRatio)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	content := `
server:
  url: "http://transcriber:9000"
  timeout: 15m

request:
  ratio: 0.25
  subject: "pharmacology"

paths:
  output: "semester1"

artifacts:
  docx: true

logging:
  level: "debug"
  format: "json"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://transcriber:9000", cfg.Server.URL)
	assert.Equal(t, 15*time.Minute, cfg.Server.Timeout)
	assert.Equal(t, 0.25, cfg.Request.Ratio)
	assert.Equal(t, "pharmacology", cfg.ProcessingRequest().Subject)
	assert.Equal(t, "semester1", cfg.Paths.Output)
	assert.True(t, cfg.Artifacts.Docx)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("request:\n  subject: anatomy\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultURL, cfg.Server.URL)
	assert.Equal(t, domain.DefaultRatio, cfg.Request.Ratio)
	assert.Equal(t, "anatomy", cfg.Request.Subject)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	assert.Error(t, err)
}

func TestLoadOptionalMissingFile(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOptionalMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0644))

	_, err := LoadOptional(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvURL, "http://env-host:8080")
	t.Setenv(EnvOutput, "env_output")
	t.Setenv(EnvSubject, "anatomy")
	t.Setenv(EnvLevel, "debug")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "http://env-host:8080", cfg.Server.URL)
	assert.Equal(t, "env_output", cfg.Paths.Output)
	assert.Equal(t, "anatomy", cfg.Request.Subject)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("COGNISCRIBE_OUTPUT=from_dotenv\n"), 0644))
	t.Setenv(EnvOutput, "")
	require.NoError(t, os.Unsetenv(EnvOutput))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from_dotenv", os.Getenv(EnvOutput))

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
