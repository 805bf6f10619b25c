// Command compresso-bench drives internal/benchmark from the shell: it
// compresses and decompresses one file across a matrix of algorithms,
// strategies, and levels, and prints a table of the measured throughput and
// ratio, mirroring original_source/src/compresso/cli.py.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rdawebb/compresso/codec"
	"github.com/rdawebb/compresso/internal/benchmark"
	"github.com/rdawebb/compresso/router"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("compresso-bench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] <file>\n", fs.Name())
		fs.PrintDefaults()
	}

	algosFlag := fs.String("algos", "", "comma-separated algorithms to benchmark (default: all compiled in)")
	strategiesFlag := fs.String("strategies", "", "comma-separated strategies to benchmark (default: fast,balanced,max_ratio)")
	levelFlag := fs.String("level", "", "comma-separated levels, or 'auto' for the backend default (default: auto,1,3,6,9)")
	repeats := fs.Int("repeats", 1, "number of times to repeat each combination")
	tempDir := fs.String("temp-dir", "", "directory for intermediate files (default: system temp)")
	updateCache := fs.Bool("update-cache", false, "fold results into $HOME/.compresso/speeds.json")

	if err := fs.Parse(argv); err != nil {
		return 2
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	src := fs.Arg(0)

	if fi, err := os.Stat(src); err != nil || !fi.Mode().IsRegular() {
		fmt.Fprintf(stderr, "compresso-bench: input file does not exist: %s\n", src)
		return 1
	}

	opts := benchmark.Options{
		Algos:      parseCSV(*algosFlag),
		Strategies: parseStrategies(*strategiesFlag),
		Repeats:    *repeats,
		TempDir:    *tempDir,
	}

	levels, err := parseLevels(*levelFlag)
	if err != nil {
		fmt.Fprintf(stderr, "compresso-bench: %v\n", err)
		return 2
	}
	opts.Levels = levels

	results, err := benchmark.Run(context.Background(), src, opts)
	if err != nil {
		fmt.Fprintf(stderr, "compresso-bench: %v\n", err)
		return 1
	}

	printResults(stdout, results)

	if *updateCache {
		if err := benchmark.UpdateCache(results); err != nil {
			fmt.Fprintf(stderr, "compresso-bench: updating speed cache: %v\n", err)
			return 1
		}
	}

	return 0
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseStrategies(s string) []router.Strategy {
	names := parseCSV(s)
	if names == nil {
		return nil
	}
	out := make([]router.Strategy, 0, len(names))
	for _, n := range names {
		out = append(out, router.Strategy(n))
	}
	return out
}

// parseLevels parses a comma-separated list of levels, accepting "auto" or
// "default" as codec.Unspecified, matching cli.py's parse_levels.
func parseLevels(s string) ([]codec.Level, error) {
	parts := parseCSV(s)
	if parts == nil {
		return nil, nil
	}
	out := make([]codec.Level, 0, len(parts))
	for _, p := range parts {
		if strings.EqualFold(p, "auto") || strings.EqualFold(p, "default") {
			out = append(out, codec.Unspecified)
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid level %q: %w", p, err)
		}
		out = append(out, codec.Level(n))
	}
	return out, nil
}

func printResults(w *os.File, results []benchmark.Result) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGO\tSTRATEGY\tLEVEL\tRATIO\tCOMP MB/S\tDECOMP MB/S")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.3f\t%.2f\t%.2f\n",
			r.Algo, r.Strategy, levelLabel(r.Level), r.Ratio(), r.CompressMBPerSecond(), r.DecompressMBPerSecond())
	}
	tw.Flush()
}

func levelLabel(l codec.Level) string {
	if l == codec.Unspecified {
		return "auto"
	}
	return strconv.Itoa(int(l))
}
