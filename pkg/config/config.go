// Package config loads the units configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/units/config.toml (or
// ~/.config/units/config.toml). Every section is optional:
//
//	[log]
//	level = "debug"
//
//	[store]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//
//	[[units]]
//	name = "centifoot"
//	symbol = "cft"
//	dimension = { length = 1 }
//	coefficient = 0.003048
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/units/pkg/errors"
	"github.com/matzehuels/units/pkg/registry"
)

const appName = "units"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

var (
	backends  = []string{BackendMemory, BackendFile, BackendRedis, BackendMongo}
	logLevels = []string{"debug", "info", "warn", "error"}
)

// Config is the parsed configuration file.
type Config struct {
	Log    LogConfig             `toml:"log"`
	Store  StoreConfig           `toml:"store"`
	Server ServerConfig          `toml:"server"`
	Units  []registry.Definition `toml:"units"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// StoreConfig selects and configures the definition store.
type StoreConfig struct {
	Backend         string `toml:"backend"`
	Path            string `toml:"path"`
	RedisAddr       string `toml:"redis_addr"`
	RedisKey        string `toml:"redis_key"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info"},
		Store: StoreConfig{
			Backend:         BackendFile,
			RedisAddr:       "localhost:6379",
			RedisKey:        "units:definitions",
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   "units",
			MongoCollection: "definitions",
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Dir returns the configuration directory (XDG_CONFIG_HOME/units or ~/.config/units).
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInternal, err, "resolve home directory")
	}
	return filepath.Join(home, ".config", appName), nil
}

// Path returns the default configuration file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the configuration at path over the defaults. An empty path
// means the default location, which may be absent; an explicit path must
// exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = Path(); err != nil {
			return Config{}, err
		}
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	if !slices.Contains(logLevels, c.Log.Level) {
		return errs.New(errs.ErrCodeInvalidInput, "log level %q is not one of %v", c.Log.Level, logLevels)
	}
	if !slices.Contains(backends, c.Store.Backend) {
		return errs.New(errs.ErrCodeInvalidInput, "store backend %q is not one of %v", c.Store.Backend, backends)
	}
	for i, def := range c.Units {
		if def.Symbol == "" {
			return errs.New(errs.ErrCodeInvalidInput, "units[%d]: symbol is required", i)
		}
	}
	return nil
}

// StorePath returns the file store directory, defaulting to a "defs"
// directory next to the configuration file.
func (c Config) StorePath() (string, error) {
	if c.Store.Path != "" {
		return c.Store.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "defs"), nil
}
