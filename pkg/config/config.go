// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/TFMV/ExpenseClassifier/pkg/db"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. EXPENSECAT_SERVER_ADDR.
const EnvPrefix = "EXPENSECAT"

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Model   ModelConfig   `mapstructure:"model"`
	Store   StoreConfig   `mapstructure:"store"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	Mode            string        `mapstructure:"mode"`
	RateLimit       float64       `mapstructure:"rate_limit"`
	RateBurst       int           `mapstructure:"rate_burst"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
	MaxImportBytes  int64         `mapstructure:"max_import_bytes"`
}

type ModelConfig struct {
	Path      string  `mapstructure:"path"`
	Dataset   string  `mapstructure:"dataset"`
	Tokenizer string  `mapstructure:"tokenizer"`
	Alpha     float64 `mapstructure:"alpha"`
}

type StoreConfig struct {
	Driver   string     `mapstructure:"driver"`
	Path     string     `mapstructure:"path"`
	Postgres db.DBCreds `mapstructure:"postgres"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const (
	StoreNone     = "none"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

var defaults = map[string]any{
	"server.addr":             "0.0.0.0:5000",
	"server.mode":             "release",
	"server.rate_limit":       0.0,
	"server.rate_burst":       20,
	"server.cache_ttl":        "0s",
	"server.shutdown_timeout": "10s",
	"server.max_body_bytes":   1 << 20,
	"server.max_import_bytes": 32 << 20,
	"model.path":              "expense_model.gob",
	"model.dataset":           "",
	"model.tokenizer":         "alnum",
	"model.alpha":             1.0,
	"store.driver":            StoreNone,
	"store.path":              "expenses.db",
	"store.postgres.host":     "localhost",
	"store.postgres.port":     "5432",
	"store.postgres.username": "",
	"store.postgres.password": "",
	"store.postgres.database": "expenses",
	"store.postgres.sslmode":  "",
	"logging.level":           "info",
	"logging.format":          "console",
}

// flagKeys maps command line flag names to config keys.
var flagKeys = map[string]string{
	"addr":       "server.addr",
	"model":      "model.path",
	"dataset":    "model.dataset",
	"tokenizer":  "model.tokenizer",
	"alpha":      "model.alpha",
	"store":      "store.driver",
	"cache-ttl":  "server.cache_ttl",
	"log-level":  "logging.level",
	"log-format": "logging.format",
}

// Load resolves configuration from defaults, the YAML file at path (or
// ./expensecat.yaml when path is empty), EXPENSECAT_* environment variables
// and any flags in fs that were set explicitly.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("expensecat")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if flag := fs.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("unable to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values no component can run with.
func (c *Config) Validate() error {
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid server.mode %q", c.Server.Mode)
	}
	switch c.Store.Driver {
	case StoreNone, StoreSQLite, StorePostgres:
	default:
		return fmt.Errorf("invalid store.driver %q", c.Store.Driver)
	}
	if c.Model.Path == "" {
		return errors.New("model.path must not be empty")
	}
	if !(c.Model.Alpha > 0) || math.IsInf(c.Model.Alpha, 0) {
		return fmt.Errorf("model.alpha must be a positive number, got %v", c.Model.Alpha)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative, got %v", c.Server.RateLimit)
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst < 1 {
		return fmt.Errorf("server.rate_burst must be at least 1, got %d", c.Server.RateBurst)
	}
	if c.Server.MaxBodyBytes <= 0 || c.Server.MaxImportBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes and server.max_import_bytes must be positive")
	}
	if c.Server.CacheTTL < 0 {
		return fmt.Errorf("server.cache_ttl must not be negative, got %s", c.Server.CacheTTL)
	}
	return nil
}
