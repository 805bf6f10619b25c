// Package pipeline implements the chunked file-to-file transform described
// in spec.md §4.4: CompressFile streams a source file through a chosen
// codec backend into a self-describing container; DecompressFile reverses
// the process and verifies the round-trip byte count.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rdawebb/compresso/codec"
	"github.com/rdawebb/compresso/container"
	"github.com/rdawebb/compresso/errs"
	"github.com/rdawebb/compresso/internal/options"
	"github.com/rdawebb/compresso/internal/pool"
	"github.com/rdawebb/compresso/router"
)

// ChunkSize is the recommended read/write chunk size from spec.md §4.4.
const ChunkSize = 64 * 1024

// CompressFile reads src, compresses it through the backend selected by
// opts (an explicit WithAlgorithm wins over WithStrategy's heuristic), and
// writes a complete container to dest. dest is truncated and created if
// necessary; on any failure it is best-effort removed (spec.md §4.4 step 7).
func CompressFile(ctx context.Context, src, dest string, opts ...Option) error {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}

	backend, err := chooseBackend(cfg)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return errs.NewError("open source", src, err)
	}
	defer in.Close()

	if fi, statErr := in.Stat(); statErr == nil && !fi.Mode().IsRegular() {
		return errs.NewError("open source", src, errs.ErrNotRegularFile)
	}

	out, err := os.Create(dest)
	if err != nil {
		return errs.NewError("create destination", dest, err)
	}
	abort := func(cause error) error {
		out.Close()
		os.Remove(dest)
		return cause
	}

	enc, err := backend.NewEncoder(cfg.Level)
	if err != nil {
		return abort(err)
	}

	if err := container.WriteHeader(out, backend.ID(), cfg.Level, 0); err != nil {
		return abort(errs.NewError("write header", dest, err))
	}

	slog.DebugContext(ctx, "compress starting", "algo", backend.Name(), "src", src, "dest", dest)

	chunk := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(chunk)
	chunk.Grow(cfg.chunkSize)
	chunk.SetLength(cfg.chunkSize)
	readBuf := chunk.Bytes()

	var total uint64
	for {
		n, rerr := in.Read(readBuf)
		if n > 0 {
			total += uint64(n)
			encOut, eerr := enc.Push(readBuf[:n])
			if eerr != nil {
				return abort(errs.NewBackendError(backend.Name(), "push failed", eerr))
			}
			if len(encOut) > 0 {
				if _, werr := out.Write(encOut); werr != nil {
					return abort(errs.NewError("write", dest, werr))
				}
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return abort(errs.NewError("read", src, rerr))
		}
	}

	final, err := enc.Finish()
	if err != nil {
		return abort(errs.NewBackendError(backend.Name(), "finish failed", err))
	}
	if len(final) > 0 {
		if _, werr := out.Write(final); werr != nil {
			return abort(errs.NewError("write", dest, werr))
		}
	}

	if _, err := out.Seek(0, io.SeekStart); err != nil {
		return abort(errs.NewError("seek", dest, err))
	}
	if err := container.WriteHeader(out, backend.ID(), cfg.Level, total); err != nil {
		return abort(errs.NewError("rewrite header", dest, err))
	}

	if err := out.Close(); err != nil {
		os.Remove(dest)
		return errs.NewError("close", dest, err)
	}

	slog.DebugContext(ctx, "compress finished", "algo", backend.Name(), "bytes", total)
	return nil
}

// DecompressFile reads the container header from src, resolves the backend
// it names (or the caller's override), and writes the decoded payload to
// dest, failing with a BackendError if the decoded byte count doesn't match
// the header's orig_size (spec.md §4.4 step 5).
func DecompressFile(ctx context.Context, src, dest string, opts ...Option) error {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return errs.NewError("open source", src, err)
	}
	defer in.Close()

	hdr, err := container.ReadHeader(in)
	if err != nil {
		// dest is never created on a header failure (spec.md §8 property 3).
		return err
	}

	backend, err := resolveDecodeBackend(cfg, hdr)
	if err != nil {
		return err
	}

	dec, err := backend.NewDecoder()
	if err != nil {
		return err
	}

	out, err := os.Create(dest)
	if err != nil {
		return errs.NewError("create destination", dest, err)
	}
	abort := func(cause error) error {
		out.Close()
		os.Remove(dest)
		return cause
	}

	slog.DebugContext(ctx, "decompress starting", "algo", backend.Name(), "src", src, "dest", dest)

	chunk := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(chunk)
	chunk.Grow(cfg.chunkSize)
	chunk.SetLength(cfg.chunkSize)
	readBuf := chunk.Bytes()

	var total uint64
	for {
		n, rerr := in.Read(readBuf)
		if n > 0 {
			decOut, derr := dec.Push(readBuf[:n])
			if derr != nil {
				return abort(errs.NewBackendError(backend.Name(), "push failed", derr))
			}
			if len(decOut) > 0 {
				total += uint64(len(decOut))
				if _, werr := out.Write(decOut); werr != nil {
					return abort(errs.NewError("write", dest, werr))
				}
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return abort(errs.NewError("read", src, rerr))
		}
	}

	final, err := dec.Finish()
	if err != nil {
		return abort(errs.NewBackendError(backend.Name(), "finish failed", err))
	}
	if len(final) > 0 {
		total += uint64(len(final))
		if _, werr := out.Write(final); werr != nil {
			return abort(errs.NewError("write", dest, werr))
		}
	}

	if total != hdr.OrigSize {
		return abort(errs.NewBackendError(
			backend.Name(),
			fmt.Sprintf("size mismatch: expected %d, got %d", hdr.OrigSize, total),
			errs.ErrSizeMismatch,
		))
	}

	if err := out.Close(); err != nil {
		os.Remove(dest)
		return errs.NewError("close", dest, err)
	}

	slog.DebugContext(ctx, "decompress finished", "algo", backend.Name(), "bytes", total)
	return nil
}

// chooseBackend resolves the encoder-side backend: an explicit Algorithm
// wins outright, otherwise the Strategy preference table decides.
func chooseBackend(cfg *Config) (codec.Backend, error) {
	reg := router.Default()

	if cfg.Algorithm != "" {
		b, ok := reg.ByName(cfg.Algorithm)
		if !ok {
			return nil, errs.NewError("resolve backend", cfg.Algorithm, errs.ErrUnknownAlgoName)
		}
		return b, nil
	}

	b, err := reg.Choose(cfg.Strategy)
	if err != nil {
		return nil, errs.NewError("resolve backend", "", err)
	}

	return b, nil
}

// resolveDecodeBackend picks the decoder-side backend: the header's algo_id
// is normal; an explicit Algorithm override is accepted even if it
// disagrees with the header (spec.md §4.4 step 2 — "caller takes
// responsibility").
func resolveDecodeBackend(cfg *Config, hdr container.Header) (codec.Backend, error) {
	reg := router.Default()

	if cfg.Algorithm != "" {
		b, ok := reg.ByName(cfg.Algorithm)
		if !ok {
			return nil, errs.NewError("resolve backend", cfg.Algorithm, errs.ErrUnknownAlgoName)
		}
		return b, nil
	}

	b, ok := reg.ByID(hdr.AlgoID)
	if !ok {
		return nil, errs.NewBackendError(
			fmt.Sprintf("algo id %d", hdr.AlgoID),
			"backend not available",
			errs.ErrBackendUnavailable,
		)
	}

	return b, nil
}
