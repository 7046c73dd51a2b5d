// Package config provides centralized configuration management using Viper.
package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// ErrInvalid wraps every Validate failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all configuration values for intake.
type Config struct {
	Store       StoreConfig       `mapstructure:"store" yaml:"store"`
	Persistence PersistenceConfig `mapstructure:"persistence" yaml:"persistence"`
	Wizard      WizardConfig      `mapstructure:"wizard" yaml:"wizard"`
	Log         LogConfig         `mapstructure:"log" yaml:"log"`
	Metrics     MetricsConfig     `mapstructure:"metrics" yaml:"metrics"`
}

// StoreConfig selects and configures the snapshot store.
type StoreConfig struct {
	Backend    string      `mapstructure:"backend" yaml:"backend"`
	Dir        string      `mapstructure:"dir" yaml:"dir"`
	SQLitePath string      `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	Redis      RedisConfig `mapstructure:"redis" yaml:"redis"`
	// EncryptionKey is a base64 AES-256 key. Empty stores slots in clear.
	EncryptionKey string `mapstructure:"encryption_key" yaml:"encryption_key"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr" yaml:"addr"`
	Password string        `mapstructure:"password" yaml:"password"`
	DB       int           `mapstructure:"db" yaml:"db"`
	Prefix   string        `mapstructure:"prefix" yaml:"prefix"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// PersistenceConfig tunes the draft adapter.
type PersistenceConfig struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
	MaxAge   time.Duration `mapstructure:"max_age" yaml:"max_age"`
}

// WizardConfig tunes the controllers.
type WizardConfig struct {
	CloseDelay time.Duration `mapstructure:"close_delay" yaml:"close_delay"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// MetricsConfig configures the Prometheus listener. An empty address disables it.
type MetricsConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

var keys = []string{
	"store.backend",
	"store.dir",
	"store.sqlite_path",
	"store.redis.addr",
	"store.redis.password",
	"store.redis.db",
	"store.redis.prefix",
	"store.redis.ttl",
	"store.encryption_key",
	"persistence.debounce",
	"persistence.max_age",
	"wizard.close_delay",
	"log.level",
	"log.format",
	"metrics.addr",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.backend", BackendFile)
	v.SetDefault("store.dir", ".intake/snapshots")
	v.SetDefault("store.sqlite_path", ".intake/intake.db")
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.prefix", "intake:snapshot:")
	v.SetDefault("store.redis.ttl", 24*time.Hour)
	v.SetDefault("store.encryption_key", "")
	v.SetDefault("persistence.debounce", 500*time.Millisecond)
	v.SetDefault("persistence.max_age", 24*time.Hour)
	v.SetDefault("wizard.close_delay", 300*time.Millisecond)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("metrics.addr", "")
}

// Default returns the configuration used when no file or environment override exists.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Load loads configuration with full precedence:
// ENV vars > explicit file, or project config > XDG global config > defaults.
// When file is empty the global and project files are merged if present.
func Load(file string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("intake")
	setDefaults(v)

	v.SetEnvPrefix("INTAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Unmarshal only sees env values for keys it knows about.
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", k, err)
		}
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", file, err)
		}
	} else {
		if globalPath := GlobalPath(); fileExists(globalPath) {
			v.SetConfigFile(globalPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading global config: %w", err)
			}
		}
		if projectPath := ProjectPath(); fileExists(projectPath) {
			v.SetConfigFile(projectPath)
			if err := v.MergeInConfig(); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and backend requirements.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory:
	case BackendFile:
		if c.Store.Dir == "" {
			return fmt.Errorf("%w: store.dir cannot be empty", ErrInvalid)
		}
	case BackendSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("%w: store.sqlite_path cannot be empty", ErrInvalid)
		}
	case BackendRedis:
		if c.Store.Redis.Addr == "" {
			return fmt.Errorf("%w: store.redis.addr cannot be empty", ErrInvalid)
		}
		if c.Store.Redis.TTL < 0 {
			return fmt.Errorf("%w: store.redis.ttl must be >= 0", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown store.backend %q", ErrInvalid, c.Store.Backend)
	}

	if c.Store.EncryptionKey != "" {
		if _, err := c.EncryptionKey(); err != nil {
			return err
		}
	}
	if c.Persistence.Debounce < 0 {
		return fmt.Errorf("%w: persistence.debounce must be >= 0", ErrInvalid)
	}
	if c.Persistence.MaxAge <= 0 {
		return fmt.Errorf("%w: persistence.max_age must be > 0", ErrInvalid)
	}
	if c.Wizard.CloseDelay < 0 {
		return fmt.Errorf("%w: wizard.close_delay must be >= 0", ErrInvalid)
	}
	if f := c.Log.Format; f != "text" && f != "json" {
		return fmt.Errorf("%w: log.format must be text or json, got %q", ErrInvalid, f)
	}
	return nil
}

// EncryptionKey decodes store.encryption_key. It returns nil when encryption is off.
func (c *Config) EncryptionKey() ([]byte, error) {
	if c.Store.EncryptionKey == "" {
		return nil, nil
	}
	key, err := base64.StdEncoding.DecodeString(c.Store.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("%w: store.encryption_key is not base64: %v", ErrInvalid, err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("%w: store.encryption_key must decode to 32 bytes, got %d", ErrInvalid, len(key))
	}
	return key, nil
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/intake/intake.yml or $XDG_CONFIG_HOME/intake/intake.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "intake", "intake.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "intake", "intake.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "intake.yml"
}

// Write stores cfg as YAML at path, creating parent directories.
func Write(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
