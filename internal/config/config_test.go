package config

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/intake/pkg/persistence/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the global and project lookups at empty temp directories.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, 500*time.Millisecond, cfg.Persistence.Debounce)
	assert.Equal(t, 24*time.Hour, cfg.Persistence.MaxAge)
	assert.Equal(t, 300*time.Millisecond, cfg.Wizard.CloseDelay)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_ProjectMergesOverGlobal(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := t.TempDir()
	wd, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	global := filepath.Join(xdg, "intake", "intake.yml")
	require.NoError(t, os.MkdirAll(filepath.Dir(global), 0755))
	require.NoError(t, os.WriteFile(global, []byte("log:\n  level: debug\nstore:\n  backend: memory\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "intake.yml"), []byte("store:\n  backend: sqlite\n"), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  backend: redis
  redis:
    addr: cache:6379
    ttl: 12h
persistence:
  debounce: 250ms
`), 0644))
	t.Setenv("INTAKE_STORE_REDIS_DB", "3")
	t.Setenv("INTAKE_WIZARD_CLOSE_DELAY", "1s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "cache:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 3, cfg.Store.Redis.DB)
	assert.Equal(t, 12*time.Hour, cfg.Store.Redis.TTL)
	assert.Equal(t, 250*time.Millisecond, cfg.Persistence.Debounce)
	assert.Equal(t, time.Second, cfg.Wizard.CloseDelay)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "nope.yml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"unknown backend", func(c *Config) { c.Store.Backend = "s3" }, false},
		{"file without dir", func(c *Config) { c.Store.Dir = "" }, false},
		{"sqlite without path", func(c *Config) { c.Store.Backend = BackendSQLite; c.Store.SQLitePath = "" }, false},
		{"redis without addr", func(c *Config) { c.Store.Backend = BackendRedis; c.Store.Redis.Addr = "" }, false},
		{"negative debounce", func(c *Config) { c.Persistence.Debounce = -time.Second }, false},
		{"zero max age", func(c *Config) { c.Persistence.MaxAge = 0 }, false},
		{"negative close delay", func(c *Config) { c.Wizard.CloseDelay = -1 }, false},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, false},
		{"short key", func(c *Config) {
			c.Store.EncryptionKey = base64.StdEncoding.EncodeToString([]byte("short"))
		}, false},
		{"not base64", func(c *Config) { c.Store.EncryptionKey = "%%%" }, false},
		{"valid key", func(c *Config) {
			c.Store.EncryptionKey = base64.StdEncoding.EncodeToString(make([]byte, 32))
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	dir := isolate(t)
	cfg := Default()
	cfg.Store.Backend = BackendMemory
	cfg.Metrics.Addr = ":2112"

	path := filepath.Join(dir, "nested", "intake.yml")
	require.NoError(t, Write(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestOpenStore_FileEncrypted(t *testing.T) {
	cfg := Default()
	cfg.Store.Dir = t.TempDir()
	cfg.Store.EncryptionKey = base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
	ctx := context.Background()

	store, closer, err := cfg.OpenStore(ctx)
	require.NoError(t, err)
	defer closer.Close()

	require.NoError(t, store.Save(ctx, "modal-form-speak", []byte(`{"fields":{}}`)))
	got, err := store.Load(ctx, "modal-form-speak")
	require.NoError(t, err)
	assert.JSONEq(t, `{"fields":{}}`, string(got))

	raw, err := os.ReadFile(filepath.Join(cfg.Store.Dir, "modal-form-speak.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "__encrypted__")
	assert.NotContains(t, string(raw), "fields")

	cfg.Store.EncryptionKey = ""
	plain, closer2, err := cfg.OpenStore(ctx)
	require.NoError(t, err)
	defer closer2.Close()
	_, err = plain.Load(ctx, "modal-form-speak")
	require.NoError(t, err, "the plain store reads the envelope as opaque bytes")

	_, err = middleware.Chain(plain, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey: []byte("0123456789abcdef0123456789abcdef"),
	})).Load(ctx, "modal-form-speak")
	assert.NoError(t, err)
}

func TestOpenStore_SQLite(t *testing.T) {
	cfg := Default()
	cfg.Store.Backend = BackendSQLite
	cfg.Store.SQLitePath = filepath.Join(t.TempDir(), "intake.db")
	ctx := context.Background()

	store, closer, err := cfg.OpenStore(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "k", []byte("v")))
	require.NoError(t, closer.Close())
}

func TestOpenStore_MemoryAndOptions(t *testing.T) {
	cfg := Default()
	cfg.Store.Backend = BackendMemory

	store, closer, err := cfg.OpenStore(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, store)
	assert.NoError(t, closer.Close())
	assert.Len(t, cfg.PersistenceOptions(), 2)
}
