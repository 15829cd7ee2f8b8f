package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/units/pkg/builtin"
	"github.com/matzehuels/units/pkg/config"
	errs "github.com/matzehuels/units/pkg/errors"
	"github.com/matzehuels/units/pkg/registry"
	"github.com/matzehuels/units/pkg/store"
	"github.com/matzehuels/units/pkg/store/mongo"
	"github.com/matzehuels/units/pkg/store/redis"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display and completions.
const appName = "units"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	config     config.Config

	// newStore overrides the configured store backend. Tests use it to run
	// commands against an in-memory store.
	newStore func(ctx context.Context) (store.Store, error)
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the configuration file and applies its log level unless
// --verbose was given.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg

	if c.verbose {
		c.SetLogLevel(LogDebug)
		return nil
	}
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "log level %q", cfg.Log.Level)
	}
	c.SetLogLevel(level)
	return nil
}

// =============================================================================
// Environment - Registry and Store
// =============================================================================

// environment is the registry a command works on together with the store
// that persists user definitions.
type environment struct {
	reg   *registry.Registry
	store store.Store
}

// Close releases the store.
func (e *environment) Close() error {
	return e.store.Close()
}

// newEnvironment builds the registry in three layers: the builtin catalog,
// the [[units]] tables of the config file, then the definition store.
// Definitions that fail to register are logged and skipped.
func (c *CLI) newEnvironment(ctx context.Context) (*environment, error) {
	logger := loggerFromContext(ctx)

	reg, err := builtin.New(registry.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	for _, def := range c.config.Units {
		if _, err := reg.Define(def); err != nil {
			logger.Warn("skipping configured unit", "symbol", def.Symbol, "err", err)
		}
	}

	s, err := c.openStore(ctx)
	if err != nil {
		return nil, err
	}
	report, err := store.Load(ctx, s, reg)
	if err != nil {
		s.Close()
		return nil, err
	}
	for _, f := range report.Failed {
		logger.Warn("skipping stored unit", "symbol", f.Symbol, "err", f.Err)
	}
	logger.Debug("registry ready", "units", reg.Len(), "stored", len(report.Loaded))

	return &environment{reg: reg, store: s}, nil
}

// openStore connects to the configured definition store.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	if c.newStore != nil {
		return c.newStore(ctx)
	}

	cfg := c.config.Store
	logger := loggerFromContext(ctx)
	logger.Debug("opening store", "backend", cfg.Backend)

	var (
		s   store.Store
		err error
	)
	switch cfg.Backend {
	case config.BackendMemory:
		return store.NewMemoryStore(), nil
	case config.BackendFile:
		var path string
		if path, err = c.config.StorePath(); err == nil {
			s, err = store.NewFileStore(path)
		}
	case config.BackendRedis:
		sp := newSpinnerWithContext(ctx, "Connecting to redis at "+cfg.RedisAddr)
		sp.Start()
		s, err = redis.NewStore(ctx, redis.Config{Addr: cfg.RedisAddr, Key: cfg.RedisKey})
		sp.Stop()
	case config.BackendMongo:
		sp := newSpinnerWithContext(ctx, "Connecting to mongo")
		sp.Start()
		s, err = mongo.NewStore(ctx, mongo.Config{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
		sp.Stop()
	default:
		return nil, errs.New(errs.ErrCodeInvalidInput, "unknown store backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
