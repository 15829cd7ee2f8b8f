// Package store persists user-defined unit definitions.
//
// The registry itself is in-memory and append-only; a [Store] keeps the
// definitions added through the CLI or the HTTP API so they can be
// registered again at startup with [Load].
//
// Backends:
//   - [MemoryStore]: in-process, for tests and ephemeral servers
//   - [FileStore]: one JSON file per definition, for the CLI
//   - redis: a single Redis hash, for shared deployments (package store/redis)
//   - mongo: one document per definition (package store/mongo)
//
// All backends report a missing definition as ErrCodeUnitNotFound.
package store

import (
	"context"

	errs "github.com/matzehuels/units/pkg/errors"
	"github.com/matzehuels/units/pkg/registry"
)

// Store holds unit definitions keyed by symbol.
type Store interface {
	// List returns every stored definition ordered by symbol.
	List(ctx context.Context) ([]registry.Definition, error)
	// Get returns the definition stored under symbol.
	Get(ctx context.Context, symbol string) (registry.Definition, error)
	// Put stores def, replacing any definition with the same symbol.
	Put(ctx context.Context, def registry.Definition) error
	// Delete removes the definition stored under symbol.
	Delete(ctx context.Context, symbol string) error
	// Close releases the backend's resources.
	Close() error
}

// NotFound returns the error every backend reports for a missing symbol.
func NotFound(symbol string) error {
	return errs.New(errs.ErrCodeUnitNotFound, "no stored definition for %q", symbol)
}

// ValidateKey rejects definitions that cannot be stored.
func ValidateKey(def registry.Definition) error {
	if def.Symbol == "" {
		return errs.New(errs.ErrCodeInvalidSymbol, "definition has no symbol")
	}
	return nil
}

// PutAliases replaces the aliases of symbol's stored definition. Units that
// are not stored, such as builtins, are left alone. Callers persist before
// changing the registry so that a failed write leaves both untouched.
func PutAliases(ctx context.Context, s Store, symbol string, aliases []string) error {
	def, err := s.Get(ctx, symbol)
	if errs.Is(err, errs.ErrCodeUnitNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	def.Aliases = aliases
	return s.Put(ctx, def)
}
