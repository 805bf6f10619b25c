// Package benchmark is the timing collaborator behind cmd/compresso-bench:
// it repeatedly compresses and decompresses a file across combinations of
// algorithm, strategy, and level, and can fold the measured throughput into
// the speed cache. It is a collaborator per spec.md §1, not part of the
// core compression path.
package benchmark

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rdawebb/compresso/codec"
	"github.com/rdawebb/compresso/pipeline"
	"github.com/rdawebb/compresso/router"
	"github.com/rdawebb/compresso/speedcache"
)

// Result holds one (algo, strategy, level) combination's averaged timing,
// matching original_source/src/benchmark.py's BenchmarkResult.
type Result struct {
	Algo     string
	Strategy router.Strategy
	Level    codec.Level

	CompressTime   time.Duration
	DecompressTime time.Duration
	InputSize      int64
	CompressedSize int64
}

// Ratio is the compressed/original size ratio; smaller is better.
func (r Result) Ratio() float64 {
	if r.InputSize == 0 {
		return 0
	}
	return float64(r.CompressedSize) / float64(r.InputSize)
}

// CompressMBPerSecond is the measured compression throughput.
func (r Result) CompressMBPerSecond() float64 {
	return mbPerSecond(r.InputSize, r.CompressTime)
}

// DecompressMBPerSecond is the measured decompression throughput.
func (r Result) DecompressMBPerSecond() float64 {
	return mbPerSecond(r.InputSize, r.DecompressTime)
}

func mbPerSecond(size int64, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return (float64(size) / (1024 * 1024)) / d.Seconds()
}

// Options configures a Run. Empty Algos/Strategies/Levels fall back to "all
// compiled-in backends", "all three strategies", and "{auto, 1, 3, 6, 9}"
// respectively — the same defaults cli.py applies.
type Options struct {
	Algos      []string
	Strategies []router.Strategy
	Levels     []codec.Level
	Repeats    int
	TempDir    string
}

func (o Options) resolve() Options {
	out := o
	if len(out.Algos) == 0 {
		for _, c := range router.Default().List() {
			out.Algos = append(out.Algos, c.Name)
		}
	}
	if len(out.Strategies) == 0 {
		out.Strategies = []router.Strategy{router.StrategyFast, router.StrategyBalanced, router.StrategyMaxRatio}
	}
	if len(out.Levels) == 0 {
		out.Levels = []codec.Level{codec.Unspecified, 1, 3, 6, 9}
	}
	if out.Repeats <= 0 {
		out.Repeats = 1
	}
	if out.TempDir == "" {
		out.TempDir = os.TempDir()
	}

	return out
}

// Run benchmarks src across every (algo, strategy, level) combination in
// opts, each repeated opts.Repeats times and averaged, mirroring
// original_source/src/benchmark.py's benchmark_file.
func Run(ctx context.Context, src string, opts Options) ([]Result, error) {
	opts = opts.resolve()

	fi, err := os.Stat(src)
	if err != nil {
		return nil, err
	}
	inputSize := fi.Size()

	var results []Result
	for _, algo := range opts.Algos {
		for _, strategy := range opts.Strategies {
			for _, level := range opts.Levels {
				r, err := runOne(ctx, src, algo, strategy, level, inputSize, opts)
				if err != nil {
					return nil, fmt.Errorf("benchmark %s/%s/%s: %w", algo, strategy, levelLabel(level), err)
				}
				results = append(results, r)
			}
		}
	}

	return results, nil
}

func runOne(ctx context.Context, src, algo string, strategy router.Strategy, level codec.Level, inputSize int64, opts Options) (Result, error) {
	var compTotal, decompTotal time.Duration
	var compressedSize int64

	for i := 0; i < opts.Repeats; i++ {
		compPath := filepath.Join(opts.TempDir, fmt.Sprintf("compresso-bench-%d-%d.comp", os.Getpid(), i))
		decompPath := filepath.Join(opts.TempDir, fmt.Sprintf("compresso-bench-%d-%d.decomp", os.Getpid(), i))

		compOpts := []pipeline.Option{pipeline.WithAlgorithm(algo), pipeline.WithStrategy(strategy)}
		if level != codec.Unspecified {
			compOpts = append(compOpts, pipeline.WithLevel(int(level)))
		}

		start := time.Now()
		if err := pipeline.CompressFile(ctx, src, compPath, compOpts...); err != nil {
			return Result{}, err
		}
		compTotal += time.Since(start)

		fi, err := os.Stat(compPath)
		if err != nil {
			os.Remove(compPath)
			return Result{}, err
		}
		compressedSize = fi.Size()

		start = time.Now()
		if err := pipeline.DecompressFile(ctx, compPath, decompPath); err != nil {
			os.Remove(compPath)
			return Result{}, err
		}
		decompTotal += time.Since(start)

		os.Remove(compPath)
		os.Remove(decompPath)
	}

	return Result{
		Algo:           algo,
		Strategy:       strategy,
		Level:          level,
		CompressTime:   compTotal / time.Duration(opts.Repeats),
		DecompressTime: decompTotal / time.Duration(opts.Repeats),
		InputSize:      inputSize,
		CompressedSize: compressedSize,
	}, nil
}

func levelLabel(l codec.Level) string {
	if l == codec.Unspecified {
		return "auto"
	}
	return fmt.Sprintf("%d", int(l))
}

// UpdateCache folds results into the persisted speed cache, weighted by
// sample count (speedcache.Update), and saves it. It is the only path that
// writes speeds.json (spec.md §5: "written only by the benchmark
// collaborator").
func UpdateCache(results []Result) error {
	samples := make([]speedcache.Sample, 0, len(results))
	for _, r := range results {
		samples = append(samples, speedcache.Sample{
			Algo:      r.Algo,
			CompMBs:   r.CompressMBPerSecond(),
			DecompMBs: r.DecompressMBPerSecond(),
		})
	}

	updated := speedcache.Update(speedcache.Load(), samples)
	return speedcache.Save(updated)
}
