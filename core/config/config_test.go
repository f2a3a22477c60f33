package config

import (
	"os"
	"path/filepath"
	"testing"

	"loyalty-sync/core/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validEnv = `PARTNER_URL=https://partner.example.com/api
PARTNER_USERNAME=user
PARTNER_PASSWORD=secret
PARTNER_REQUEST_KEY=key
PARTNER_WHOLESALER=1234
PARTNER_COUNTRY=FI
DATABASE_HOST=sql.local
DATABASE_NAME=sales
`

// clearEnv unsets every variable the loader could pick up from a previous test.
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PARTNER_URL", "PARTNER_USERNAME", "PARTNER_PASSWORD", "PARTNER_REQUEST_KEY",
		"PARTNER_WHOLESALER", "PARTNER_COUNTRY", "PARTNER_BATCH_SIZE", "PARTNER_TEST_MODE",
		"DATABASE_HOST", "DATABASE_NAME", "DATABASE_DRIVER", "QUEUE_BACKEND", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeEnv(t *testing.T, dir, name, content string) {
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeEnv(t, dir, ".env", validEnv)

	cfg, err := LoadConfig(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "https://partner.example.com/api", cfg.Partner.URL)
	assert.Equal(t, 60, cfg.Partner.TimeoutSeconds)
	assert.Equal(t, 100, cfg.Partner.BatchSize)
	assert.Equal(t, 300, cfg.Partner.ProductBatchSize)
	assert.False(t, cfg.Partner.TestMode)
	assert.Equal(t, "sqlserver", cfg.Database.Driver)
	assert.Equal(t, 60, cfg.Database.TimeoutSeconds)
	assert.Equal(t, "CustomersLoyalty", cfg.Database.CustomerTable)
	assert.Equal(t, "file", cfg.Queue.Backend)
	assert.Equal(t, "tmp/failed_turnovers.json", cfg.Queue.Path)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_Profile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeEnv(t, dir, ".env.prod", validEnv+"PARTNER_BATCH_SIZE=25\nPARTNER_TEST_MODE=true\n")

	cfg, err := LoadConfig(dir, "prod")
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Partner.BatchSize)
	assert.True(t, cfg.Partner.TestMode)
}

func TestLoadConfig_MissingProfileFile(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig(t.TempDir(), "staging")
	assert.ErrorIs(t, err, apperr.ErrConfiguration)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeEnv(t, dir, ".env", "PARTNER_URL=https://partner.example.com\nDATABASE_NAME=sales\n")

	_, err := LoadConfig(dir, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConfiguration)
	assert.Contains(t, err.Error(), "PARTNER_USERNAME")
	assert.Contains(t, err.Error(), "PARTNER_REQUEST_KEY")
	assert.Contains(t, err.Error(), "DATABASE_HOST")
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeEnv(t, dir, ".env", validEnv+"PARTNER_COUNTRY=FIN\nQUEUE_BACKEND=redis\n")

	_, err := LoadConfig(dir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PARTNER_COUNTRY")
	assert.Contains(t, err.Error(), "QUEUE_BACKEND")
}

func TestLoadConfig_SQLiteNeedsNoHost(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	env := `PARTNER_URL=https://partner.example.com
PARTNER_USERNAME=user
PARTNER_PASSWORD=secret
PARTNER_REQUEST_KEY=key
PARTNER_WHOLESALER=1234
PARTNER_COUNTRY=SE
DATABASE_DRIVER=sqlite
DATABASE_NAME=local.db
`
	writeEnv(t, dir, ".env", env)

	cfg, err := LoadConfig(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "PARTNER_REQUEST_KEY", envName("Config.Partner.RequestKey"))
	assert.Equal(t, "DATABASE_HOST", envName("Config.Database.Host"))
}
