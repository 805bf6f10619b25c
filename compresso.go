// Package compresso is a multi-codec file compression tool. It wraps a
// fixed set of compression backends (zlib, bzip2, lzma, zstd, lz4, snappy)
// behind a uniform file-level interface that writes a self-describing
// container: the container records which codec, level, and original length
// were used, so decompression never requires the caller to know the
// algorithm.
//
// # Basic usage
//
// Compressing and decompressing a file with the default heuristic:
//
//	err := compresso.CompressFile(ctx, "report.csv", "report.csv.cmp")
//	err = compresso.DecompressFile(ctx, "report.csv.cmp", "report.csv")
//
// Picking an explicit algorithm and level:
//
//	err := compresso.CompressFile(ctx, src, dest,
//	    compresso.WithAlgorithm("zstd"),
//	    compresso.WithLevel(9),
//	)
//
// Inspecting a container without decompressing it:
//
//	res, _ := compresso.Inspect("report.csv.cmp")
//	fmt.Println(res.AlgoName, res.OrigSize)
//
// # Package structure
//
// This package is a thin wrapper over pipeline, router, inspect, and
// speedcache. For advanced usage — a non-default backend registry, or direct
// access to container headers through the container package — use those
// packages directly.
package compresso

import (
	"context"

	"github.com/rdawebb/compresso/inspect"
	"github.com/rdawebb/compresso/pipeline"
	"github.com/rdawebb/compresso/router"
	"github.com/rdawebb/compresso/speedcache"
)

// Option configures a CompressFile or DecompressFile call. Built with
// WithAlgorithm, WithStrategy, and WithLevel.
type Option = pipeline.Option

// WithAlgorithm selects a backend by exact, case-insensitive name,
// overriding strategy-based selection.
func WithAlgorithm(name string) Option { return pipeline.WithAlgorithm(name) }

// WithStrategy sets the heuristic used to select a backend when no
// algorithm is named explicitly. Defaults to "balanced".
func WithStrategy(s router.Strategy) Option { return pipeline.WithStrategy(s) }

// WithLevel sets the compression level, 0-9. A value outside that range is
// rejected before any file is touched.
func WithLevel(l int) Option { return pipeline.WithLevel(l) }

// CompressFile compresses src into dest, selecting a codec backend by
// explicit name (WithAlgorithm) or by heuristic strategy (WithStrategy,
// default "balanced"). dest is created or truncated; on any failure it is
// best-effort removed.
func CompressFile(ctx context.Context, src, dest string, opts ...Option) error {
	return pipeline.CompressFile(ctx, src, dest, opts...)
}

// DecompressFile reads the container header from src and writes the
// decoded payload to dest, verifying the decoded byte count against the
// header's recorded original size.
func DecompressFile(ctx context.Context, src, dest string, opts ...Option) error {
	return pipeline.DecompressFile(ctx, src, dest, opts...)
}

// GetCapabilities reports every backend compiled into this build.
func GetCapabilities() []router.Capability {
	return router.Default().List()
}

// Inspect reads a container's header without decompressing its payload.
func Inspect(path string) (inspect.Result, error) {
	return inspect.Inspect(path)
}

// GetEstimatedSpeed returns the measured or default throughput, in MB/s,
// for algo/op, as recorded in $HOME/.compresso/speeds.json.
func GetEstimatedSpeed(algo string, op speedcache.Operation) float64 {
	return speedcache.Estimate(speedcache.Load(), algo, op)
}
