package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempDir runs the test from an empty directory so no stray
// expensecat.yaml is picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	inTempDir(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5000", cfg.Server.Addr)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, time.Duration(0), cfg.Server.CacheTTL)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, int64(32<<20), cfg.Server.MaxImportBytes)
	assert.Equal(t, "expense_model.gob", cfg.Model.Path)
	assert.Equal(t, "alnum", cfg.Model.Tokenizer)
	assert.Equal(t, 1.0, cfg.Model.Alpha)
	assert.Equal(t, StoreNone, cfg.Store.Driver)
	assert.Equal(t, "5432", cfg.Store.Postgres.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := inTempDir(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: 127.0.0.1:9000
  cache_ttl: 5m
model:
  path: models/current.gob
  alpha: 0.5
store:
  driver: postgres
  postgres:
    host: db.internal
`), 0o644))

	t.Setenv("EXPENSECAT_MODEL_PATH", "from-env.gob")
	t.Setenv("EXPENSECAT_STORE_POSTGRES_PASSWORD", "secret")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("addr", "", "")
	fs.String("tokenizer", "alnum", "")
	require.NoError(t, fs.Parse([]string{"--addr", "0.0.0.0:7000"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:7000", cfg.Server.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Server.CacheTTL)
	assert.Equal(t, "from-env.gob", cfg.Model.Path)
	assert.Equal(t, 0.5, cfg.Model.Alpha)
	assert.Equal(t, "alnum", cfg.Model.Tokenizer)
	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.Equal(t, "db.internal", cfg.Store.Postgres.Host)
	assert.Equal(t, "secret", cfg.Store.Postgres.Password)
}

func TestLoad_ImplicitFile(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "expensecat.yaml"), []byte("store:\n  driver: sqlite\n"), 0o644))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, StoreSQLite, cfg.Store.Driver)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := inTempDir(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  string
		val  string
	}{
		{"Bad store driver", "EXPENSECAT_STORE_DRIVER", "mongo"},
		{"Bad mode", "EXPENSECAT_SERVER_MODE", "turbo"},
		{"Zero alpha", "EXPENSECAT_MODEL_ALPHA", "0"},
		{"Negative rate", "EXPENSECAT_SERVER_RATE_LIMIT", "-1"},
		{"Zero import limit", "EXPENSECAT_SERVER_MAX_IMPORT_BYTES", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inTempDir(t)
			t.Setenv(tt.env, tt.val)

			_, err := Load("", nil)
			assert.Error(t, err)
		})
	}
}
