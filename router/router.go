// Package router holds the process-wide registry of compiled-in codec
// backends: name/id lookup and the strategy-driven heuristic the pipeline
// uses when a caller doesn't name an algorithm explicitly.
package router

import (
	"strings"
	"sync"

	"github.com/rdawebb/compresso/codec"
	"github.com/rdawebb/compresso/errs"
)

// Strategy is a coarse preference used to auto-select a backend when the
// caller leaves algo unspecified.
type Strategy string

const (
	StrategyFast     Strategy = "fast"
	StrategyBalanced Strategy = "balanced"
	StrategyMaxRatio Strategy = "max_ratio"
)

// preference lists name the backend search order for each strategy.
// spec.md §3 fixes these orders; they are not configurable.
var preference = map[Strategy][]string{
	StrategyFast:     {"lz4", "snappy", "zstd", "zlib", "bzip2", "lzma"},
	StrategyBalanced: {"zstd", "zlib", "bzip2", "lzma", "lz4", "snappy"},
	StrategyMaxRatio: {"bzip2", "lzma", "zstd", "zlib", "lz4", "snappy"},
}

// Capability is the snapshot returned by List/GetCapabilities; callers must
// not rely on pointer stability (spec.md §4.2).
type Capability = codec.Capabilities

// Registry is the process-wide, write-once-read-many table of compiled-in
// backends. The zero value is unusable; use Default() to get the
// lazily-initialized singleton, or New() to build an independent one (used
// by tests exercising property 6: "removing the top choice must select the
// next-in-list backend").
type Registry struct {
	backends []codec.Backend
	byName   map[string]codec.Backend
	byID     map[uint8]codec.Backend
}

// New builds a Registry from an explicit backend list, filtering out any
// whose Available() reports false. Order is preserved.
func New(backends ...codec.Backend) *Registry {
	r := &Registry{
		byName: make(map[string]codec.Backend, len(backends)),
		byID:   make(map[uint8]codec.Backend, len(backends)),
	}

	for _, b := range backends {
		if !b.Available() {
			continue
		}

		r.backends = append(r.backends, b)
		r.byName[b.Name()] = b
		r.byID[b.ID()] = b
	}

	return r
}

// allBackends returns every backend this build compiles in, in registration
// order. Ids are append-only across releases (spec.md §3).
func allBackends() []codec.Backend {
	return []codec.Backend{
		codec.NewZlibBackend(),
		codec.NewBzip2Backend(),
		codec.NewLzmaBackend(),
		codec.NewZstdBackend(),
		codec.NewLz4Backend(),
		codec.NewSnappyBackend(),
	}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide Registry, building it on first call. The
// sync.Once guards concurrent first callers (spec.md §5: "single-flight or
// idempotent construction").
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New(allBackends()...)
	})

	return defaultRegistry
}

// List returns a stable-order snapshot of every available backend's
// capabilities.
func (r *Registry) List() []Capability {
	out := make([]Capability, len(r.backends))
	for i, b := range r.backends {
		out[i] = b.Capabilities()
	}

	return out
}

// ByName looks up a backend by case-insensitive exact name match.
func (r *Registry) ByName(name string) (codec.Backend, bool) {
	b, ok := r.byName[strings.ToLower(name)]
	return b, ok
}

// ByID looks up a backend by its persisted algorithm id.
func (r *Registry) ByID(id uint8) (codec.Backend, bool) {
	b, ok := r.byID[id]
	return b, ok
}

// Choose applies the strategy preference table and returns the first
// available backend in it. An unrecognized strategy is treated as
// "balanced", matching the original CLI's default (original_source's
// cli.py defaults strategies to ["fast", "balanced", "max_ratio"] but falls
// through to balanced ordering when asked to pick one automatically).
func (r *Registry) Choose(strategy Strategy) (codec.Backend, error) {
	order, ok := preference[strategy]
	if !ok {
		order = preference[StrategyBalanced]
	}

	for _, name := range order {
		if b, ok := r.byName[name]; ok {
			return b, nil
		}
	}

	return nil, errs.ErrNoBackendAvailable
}
