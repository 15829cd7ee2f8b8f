// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup
// to receive events about unit registration, lookups, conversions and API
// requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Registry and conversion hooks are synchronous and called on the caller's
// goroutine, so implementations must be cheap and safe for concurrent use.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    stats := observability.NewStats()
//	    observability.SetRegistryHooks(stats)
//	    observability.SetConversionHooks(stats)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Registry().OnDefine(symbol, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Registry Hooks
// =============================================================================

// RegistryHooks receives events from symbol registries.
type RegistryHooks interface {
	// OnDefine records a unit registration attempt. err is nil on success.
	OnDefine(symbol string, err error)

	// OnLookup records a symbol, name or alias lookup.
	OnLookup(key string, found bool)

	// OnAliasChange records a change to a unit's alias set.
	OnAliasChange(symbol string, aliases []string)
}

// =============================================================================
// Conversion Hooks
// =============================================================================

// ConversionHooks receives events from value conversions.
type ConversionHooks interface {
	// OnConvert records a conversion between two unit expressions.
	OnConvert(from, to string, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API server.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRegistryHooks is a no-op implementation of RegistryHooks.
type NoopRegistryHooks struct{}

func (NoopRegistryHooks) OnDefine(string, error)         {}
func (NoopRegistryHooks) OnLookup(string, bool)          {}
func (NoopRegistryHooks) OnAliasChange(string, []string) {}

// NoopConversionHooks is a no-op implementation of ConversionHooks.
type NoopConversionHooks struct{}

func (NoopConversionHooks) OnConvert(string, string, time.Duration, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	registryHooks   RegistryHooks   = NoopRegistryHooks{}
	conversionHooks ConversionHooks = NoopConversionHooks{}
	httpHooks       HTTPHooks       = NoopHTTPHooks{}
	hooksMu         sync.RWMutex
)

// SetRegistryHooks registers custom registry hooks.
// This should be called once at application startup before any registry is built.
func SetRegistryHooks(h RegistryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		registryHooks = h
	}
}

// SetConversionHooks registers custom conversion hooks.
func SetConversionHooks(h ConversionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		conversionHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before serving requests.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Registry returns the registered registry hooks.
func Registry() RegistryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return registryHooks
}

// Conversion returns the registered conversion hooks.
func Conversion() ConversionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return conversionHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	registryHooks = NoopRegistryHooks{}
	conversionHooks = NoopConversionHooks{}
	httpHooks = NoopHTTPHooks{}
}
