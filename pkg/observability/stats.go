package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Stats is a counting implementation of every hook interface.
// It is safe for concurrent use.
type Stats struct {
	defines        atomic.Int64
	defineFailures atomic.Int64
	lookups        atomic.Int64
	lookupMisses   atomic.Int64
	aliasChanges   atomic.Int64
	conversions    atomic.Int64
	convertErrors  atomic.Int64
	requests       atomic.Int64
	serverErrors   atomic.Int64
}

// NewStats returns zeroed counters.
func NewStats() *Stats { return &Stats{} }

// Install registers s as the registry, conversion and HTTP hooks.
func Install(s *Stats) {
	SetRegistryHooks(s)
	SetConversionHooks(s)
	SetHTTPHooks(s)
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Defines          int64 `json:"defines"`
	DefineFailures   int64 `json:"define_failures"`
	Lookups          int64 `json:"lookups"`
	LookupMisses     int64 `json:"lookup_misses"`
	AliasChanges     int64 `json:"alias_changes"`
	Conversions      int64 `json:"conversions"`
	ConversionErrors int64 `json:"conversion_errors"`
	Requests         int64 `json:"requests"`
	ServerErrors     int64 `json:"server_errors"`
}

// Snapshot returns the current counter values.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Defines:          s.defines.Load(),
		DefineFailures:   s.defineFailures.Load(),
		Lookups:          s.lookups.Load(),
		LookupMisses:     s.lookupMisses.Load(),
		AliasChanges:     s.aliasChanges.Load(),
		Conversions:      s.conversions.Load(),
		ConversionErrors: s.convertErrors.Load(),
		Requests:         s.requests.Load(),
		ServerErrors:     s.serverErrors.Load(),
	}
}

func (s *Stats) OnDefine(_ string, err error) {
	s.defines.Add(1)
	if err != nil {
		s.defineFailures.Add(1)
	}
}

func (s *Stats) OnLookup(_ string, found bool) {
	s.lookups.Add(1)
	if !found {
		s.lookupMisses.Add(1)
	}
}

func (s *Stats) OnAliasChange(string, []string) {
	s.aliasChanges.Add(1)
}

func (s *Stats) OnConvert(_, _ string, _ time.Duration, err error) {
	s.conversions.Add(1)
	if err != nil {
		s.convertErrors.Add(1)
	}
}

func (s *Stats) OnRequest(context.Context, string, string) {
	s.requests.Add(1)
}

func (s *Stats) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	if status >= 500 {
		s.serverErrors.Add(1)
	}
}

var (
	_ RegistryHooks   = (*Stats)(nil)
	_ ConversionHooks = (*Stats)(nil)
	_ HTTPHooks       = (*Stats)(nil)
)
