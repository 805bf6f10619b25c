package pipeline

import (
	"github.com/rdawebb/compresso/codec"
	"github.com/rdawebb/compresso/errs"
	"github.com/rdawebb/compresso/internal/options"
	"github.com/rdawebb/compresso/router"
)

// Config holds the resolved settings for a single CompressFile or
// DecompressFile call. The zero value is never used directly; defaultConfig
// supplies the documented defaults from spec.md §6 (algo=none, heuristic;
// strategy="balanced"; level=unspecified).
type Config struct {
	// Algorithm, when non-empty, names an exact backend by name and
	// overrides Strategy selection entirely.
	Algorithm string
	Strategy  router.Strategy
	Level     codec.Level

	// chunkSize is unexported: production callers always get ChunkSize,
	// tests in this package override it via withChunkSize to exercise
	// multi-chunk and chunk-boundary behavior without 64 KiB fixtures.
	chunkSize int
}

func defaultConfig() *Config {
	return &Config{
		Strategy:  router.StrategyBalanced,
		Level:     codec.Unspecified,
		chunkSize: ChunkSize,
	}
}

// Option configures a Config. Built with WithAlgorithm, WithStrategy, and
// WithLevel, following the functional-options idiom internal/options
// supplies for any type.
type Option = options.Option[*Config]

// WithAlgorithm selects a backend by exact name, bypassing strategy-based
// selection.
func WithAlgorithm(name string) Option {
	return options.NoError(func(c *Config) {
		c.Algorithm = name
	})
}

// WithStrategy sets the heuristic used when Algorithm is left empty.
func WithStrategy(s router.Strategy) Option {
	return options.NoError(func(c *Config) {
		c.Strategy = s
	})
}

// WithLevel sets the compression level. A level outside [0,9] is rejected
// at option-application time, before any file is opened or backend touched
// (spec.md §8 property 7).
func WithLevel(l int) Option {
	return options.New(func(c *Config) error {
		lvl := codec.Level(l)
		if err := lvl.Validate(); err != nil {
			return errs.NewError("WithLevel", "", err)
		}
		c.Level = lvl
		return nil
	})
}

// withChunkSize overrides the read/write chunk size. Unexported: only this
// package's tests use it.
func withChunkSize(n int) Option {
	return options.NoError(func(c *Config) {
		c.chunkSize = n
	})
}
