package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexfrei/go-asa/api/rest"
	"github.com/lexfrei/go-asa/internal/config"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()

	assert.Equal(t, rest.DefaultTimeout, cfg.Device.Timeout)
	assert.Equal(t, rest.DefaultPageLimit, cfg.Device.PageLimit)
	assert.False(t, cfg.Device.VerifyCert)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestParseValidConfig(t *testing.T) {
	t.Parallel()

	data := `
device:
  host: fw01.example.com:8443
  username: admin
  password: secret
  verify_cert: true
  timeout: 10s
  page_limit: 50
logging:
  level: debug
`

	cfg, err := config.Parse([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, "fw01.example.com:8443", cfg.Device.Host)
	assert.Equal(t, "admin", cfg.Device.Username)
	assert.Equal(t, "secret", cfg.Device.Password)
	assert.True(t, cfg.Device.VerifyCert)
	assert.Equal(t, 10*time.Second, cfg.Device.Timeout)
	assert.Equal(t, 50, cfg.Device.PageLimit)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestParseAppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte("device:\n  host: 10.0.0.1\n  username: admin\n"))
	require.NoError(t, err)

	assert.Equal(t, rest.DefaultTimeout, cfg.Device.Timeout)
	assert.Equal(t, rest.DefaultPageLimit, cfg.Device.PageLimit)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestParseValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr []string
	}{
		{
			name:    "missing host and username",
			data:    "logging:\n  level: info\n",
			wantErr: []string{"device.host is required", "device.username is required"},
		},
		{
			name:    "host with scheme",
			data:    "device:\n  host: https://10.0.0.1\n  username: admin\n",
			wantErr: []string{"must not include a scheme"},
		},
		{
			name:    "bad log level",
			data:    "device:\n  host: 10.0.0.1\n  username: admin\nlogging:\n  level: loud\n",
			wantErr: []string{"invalid log level: loud"},
		},
		{
			name:    "negative page limit",
			data:    "device:\n  host: 10.0.0.1\n  username: admin\n  page_limit: -5\n",
			wantErr: []string{"device.page_limit must not be negative"},
		},
		{
			name:    "unset host variable",
			data:    "device:\n  host: ${ASA_TEST_SURELY_UNSET_HOST}\n  username: admin\n",
			wantErr: []string{"unset variable"},
		},
		{
			name:    "malformed yaml",
			data:    "device: [",
			wantErr: []string{"failed to parse config"},
		},
		{
			name:    "bad duration",
			data:    "device:\n  host: 10.0.0.1\n  username: admin\n  timeout: soon\n",
			wantErr: []string{"failed to parse config"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := config.Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Nil(t, cfg)

			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestParseCriticalLevel(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte("device:\n  host: 10.0.0.1\n  username: admin\nlogging:\n  level: CRITICAL\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := cfg.Logger(&buf)

	logger.Warn("dropped warning")
	logger.Error("dropped error")
	logger.Critical("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
	assert.Contains(t, buf.String(), "level=CRITICAL")
}

func TestParseEnvSubstitution(t *testing.T) {
	t.Setenv("ASA_TEST_HOST", "10.9.8.7")
	t.Setenv("ASA_TEST_PASSWORD", "from-env")

	data := `
device:
  host: ${ASA_TEST_HOST}
  username: admin
  password: $ASA_TEST_PASSWORD
`

	cfg, err := config.Parse([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, "10.9.8.7", cfg.Device.Host)
	assert.Equal(t, "from-env", cfg.Device.Password)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "asa.yaml")
	require.NoError(t, os.WriteFile(path, []byte("device:\n  host: 10.0.0.1\n  username: admin\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", cfg.Device.Host)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("ASA_HOST", "fw02.example.com")
	t.Setenv("ASA_USERNAME", "ops")
	t.Setenv("ASA_PASSWORD", "hunter2")
	t.Setenv("ASA_VERIFY_CERT", "true")
	t.Setenv("ASA_TIMEOUT", "15s")
	t.Setenv("ASA_PAGE_LIMIT", "")
	t.Setenv("ASA_LOG_LEVEL", "warning")

	cfg, err := config.FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "fw02.example.com", cfg.Device.Host)
	assert.Equal(t, "ops", cfg.Device.Username)
	assert.Equal(t, "hunter2", cfg.Device.Password)
	assert.True(t, cfg.Device.VerifyCert)
	assert.Equal(t, 15*time.Second, cfg.Device.Timeout)
	assert.Equal(t, rest.DefaultPageLimit, cfg.Device.PageLimit)
	assert.Equal(t, "warning", cfg.Logging.Level)
}

func TestFromEnvMissingHost(t *testing.T) {
	t.Setenv("ASA_HOST", "")
	t.Setenv("ASA_USERNAME", "ops")

	cfg, err := config.FromEnv()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "device.host is required")
}

func TestClientConfig(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte("device:\n  host: 10.0.0.1\n  username: admin\n  password: secret\n  page_limit: 25\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	clientCfg := cfg.ClientConfig(&buf)

	assert.Equal(t, "10.0.0.1", clientCfg.Host)
	assert.Equal(t, "admin", clientCfg.Username)
	assert.Equal(t, "secret", clientCfg.Password)
	assert.Equal(t, 25, clientCfg.PageLimit)
	require.NotNil(t, clientCfg.Logger)

	clientCfg.Logger.Info("configured")
	assert.Contains(t, buf.String(), "configured")

	client, err := rest.NewWithConfig(clientCfg)
	require.NoError(t, err)
	assert.Equal(t, 25, client.PageLimit())
}
