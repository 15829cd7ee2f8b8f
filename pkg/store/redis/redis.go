// Package redis stores unit definitions in a Redis hash.
//
// Every definition is one hash field keyed by its symbol, holding the
// definition as JSON:
//
//	store, err := redis.NewStore(ctx, redis.Config{
//	    Addr: "localhost:6379",
//	})
package redis

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"slices"

	goredis "github.com/redis/go-redis/v9"

	errs "github.com/matzehuels/units/pkg/errors"
	"github.com/matzehuels/units/pkg/registry"
	"github.com/matzehuels/units/pkg/store"
)

// DefaultKey is the hash key used when Config.Key is empty.
const DefaultKey = "units:definitions"

// Config configures the Redis connection.
type Config struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// Store is a [store.Store] backed by a Redis hash.
type Store struct {
	client goredis.UniversalClient
	key    string
}

// NewStore connects to Redis and verifies the connection, retrying
// transient failures.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	err := store.Ping(ctx, "redis at "+cfg.Addr, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewStoreWithClient(client, cfg.Key), nil
}

// NewStoreWithClient wraps an existing client. The store takes ownership
// and closes the client on Close.
func NewStoreWithClient(client goredis.UniversalClient, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{client: client, key: key}
}

func (s *Store) List(ctx context.Context) ([]registry.Definition, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "list definitions")
	}

	defs := make([]registry.Definition, 0, len(fields))
	for symbol, raw := range fields {
		def, err := decode(symbol, raw)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	slices.SortFunc(defs, func(a, b registry.Definition) int { return cmp.Compare(a.Symbol, b.Symbol) })
	return defs, nil
}

func (s *Store) Get(ctx context.Context, symbol string) (registry.Definition, error) {
	raw, err := s.client.HGet(ctx, s.key, symbol).Result()
	if errors.Is(err, goredis.Nil) {
		return registry.Definition{}, store.NotFound(symbol)
	}
	if err != nil {
		return registry.Definition{}, errs.Wrap(errs.ErrCodeInternal, err, "get definition %q", symbol)
	}
	return decode(symbol, raw)
}

func (s *Store) Put(ctx context.Context, def registry.Definition) error {
	if err := store.ValidateKey(def); err != nil {
		return err
	}
	data, err := json.Marshal(def)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "marshal definition %q", def.Symbol)
	}
	if err := s.client.HSet(ctx, s.key, def.Symbol, data).Err(); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "put definition %q", def.Symbol)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, symbol string) error {
	n, err := s.client.HDel(ctx, s.key, symbol).Result()
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "delete definition %q", symbol)
	}
	if n == 0 {
		return store.NotFound(symbol)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func decode(symbol, raw string) (registry.Definition, error) {
	var def registry.Definition
	if err := json.Unmarshal([]byte(raw), &def); err != nil {
		return registry.Definition{}, errs.Wrap(errs.ErrCodeInternal, err, "decode definition %q", symbol)
	}
	return def, nil
}

var _ store.Store = (*Store)(nil)
