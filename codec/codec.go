// Package codec implements the compiled-in compression backends
// (zlib, bzip2, lzma, zstd, lz4, snappy) behind a single capability
// contract, so the router and pipeline packages can dispatch to any of
// them by name, id, or heuristic strategy without knowing the concrete
// wire format underneath.
package codec

import (
	"fmt"

	"github.com/rdawebb/compresso/errs"
)

// Level is a 0-9 compression-effort scale, or Unspecified meaning "use the
// backend's own default". It is the in-memory counterpart of the header's
// level byte (spec.md §3): Unspecified persists as 0xFF, everything else
// passes through verbatim.
type Level int

// Unspecified is the sentinel level: "let the backend choose". It never
// appears on disk; container.WriteHeader maps it to 0xFF and ReadHeader maps
// 0xFF back to it.
const Unspecified Level = -1

const (
	MinLevel = 0
	MaxLevel = 9
)

// Validate reports whether l is Unspecified or within [MinLevel, MaxLevel].
func (l Level) Validate() error {
	if l == Unspecified {
		return nil
	}
	if l < MinLevel || l > MaxLevel {
		return fmt.Errorf("%w: got %d", errs.ErrLevelOutOfRange, int(l))
	}

	return nil
}

// Encoder is a short-lived, stateful compression session owned by a single
// pipeline invocation. It is not safe for concurrent use; two Encoders in
// different goroutines are entirely independent (spec.md §4.1).
type Encoder interface {
	// Push compresses data and returns any bytes the backend is ready to
	// emit. Backends may buffer internally; Push is not required to emit
	// output for every call.
	Push(data []byte) ([]byte, error)
	// Finish flushes any buffered state and returns the final bytes,
	// including backend framing (footers, checksums). After Finish the
	// Encoder must not be reused.
	Finish() ([]byte, error)
}

// Decoder mirrors Encoder for the read path. It fails if the input ends
// mid-frame (spec.md §4.1).
type Decoder interface {
	Push(data []byte) ([]byte, error)
	Finish() ([]byte, error)
}

// Capabilities is the static, value-type description of a Backend, safe to
// hand to callers as a snapshot (spec.md §4.2: "callers must not rely on
// pointer stability").
type Capabilities struct {
	Name      string
	ID        uint8
	HasBuffer bool
	HasStream bool
}

// Backend is the uniform contract every compiled-in codec implements.
// Implementations are concrete types held in a table keyed on name and ID
// (see router.Registry) and called through this interface; the set of
// backends is closed and known at init time (spec.md §9).
type Backend interface {
	Name() string
	ID() uint8
	HasBuffer() bool
	HasStream() bool
	// Available reports whether this build actually links the backend's
	// native library. All backends in this module are pure dependencies
	// compiled in unconditionally, so Available always returns true here;
	// the hook exists so a build that ships a subset of backends (spec.md
	// §4.2) can report false without changing the Backend interface.
	Available() bool

	Capabilities() Capabilities

	NewEncoder(level Level) (Encoder, error)
	NewDecoder() (Decoder, error)
}
