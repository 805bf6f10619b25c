// Package container implements the fixed 16-byte compresso header: read,
// write, and the invariant checks spec.md §4.3 requires (magic and version;
// an unknown algorithm id is passed through to the caller). It performs no I/O beyond those 16 bytes — rewriting the
// header after a payload is flushed is the pipeline package's job.
package container

import (
	"fmt"
	"io"

	"github.com/rdawebb/compresso/codec"
	"github.com/rdawebb/compresso/endian"
	"github.com/rdawebb/compresso/errs"
)

// HeaderSize is the fixed on-disk size of a compresso container header:
// 4 (magic) + 1 (version) + 1 (algo_id) + 1 (level) + 1 (flags) + 8
// (orig_size) bytes.
const HeaderSize = 16

// Magic is the 4-byte ASCII tag every compresso file starts with.
var Magic = [4]byte{'C', 'O', 'M', 'P'}

// Version is the only header version this release writes or accepts.
const Version = 1

// levelUnspecifiedByte is the on-disk sentinel for codec.Unspecified.
const levelUnspecifiedByte = 0xFF

// Header is the value-type representation of a parsed or about-to-be-written
// container header. Header records are created on write, read once on open,
// and never mutated in place (spec.md §3 lifecycles).
type Header struct {
	Version  uint8
	AlgoID   uint8
	Level    codec.Level
	Flags    uint8
	OrigSize uint64
}

// WriteHeader emits the 16-byte header exactly as spec.md §3 describes.
func WriteHeader(w io.Writer, algoID uint8, level codec.Level, origSize uint64) error {
	buf := make([]byte, HeaderSize)
	copy(buf[0:4], Magic[:])
	buf[4] = Version
	buf[5] = algoID
	buf[6] = levelByte(level)
	buf[7] = 0 // flags: writers set 0, readers ignore unknown bits

	engine := endian.GetLittleEndianEngine()
	engine.PutUint64(buf[8:16], origSize)

	_, err := w.Write(buf)
	return err
}

func levelByte(level codec.Level) byte {
	if level == codec.Unspecified {
		return levelUnspecifiedByte
	}

	return byte(level)
}

// ReadHeader reads and validates the 16-byte header per spec.md §4.3's five
// rules. It returns a HeaderError for a short read, bad magic, or bad
// version. An unrecognized algo id is NOT an error here — the Header is
// still returned with AlgoID set, and callers (the inspector, or
// DecompressFile) decide how to react, per spec.md rule 4.
func ReadHeader(r io.Reader) (Header, error) {
	buf := make([]byte, HeaderSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && n < HeaderSize {
		return Header{}, errs.NewHeaderError("file too small to be a valid compresso file", errs.ErrFileTooSmall)
	}

	if string(buf[0:4]) != string(Magic[:]) {
		return Header{}, errs.NewHeaderError("not a compresso file", errs.ErrBadMagic)
	}

	version := buf[4]
	if version != Version {
		return Header{}, errs.NewHeaderError(
			fmt.Sprintf("unsupported version %d", version),
			errs.ErrUnsupportedVersion,
		)
	}

	level := codec.Level(buf[6])
	if buf[6] == levelUnspecifiedByte {
		level = codec.Unspecified
	}

	engine := endian.GetLittleEndianEngine()

	return Header{
		Version:  version,
		AlgoID:   buf[5],
		Level:    level,
		Flags:    buf[7],
		OrigSize: engine.Uint64(buf[8:16]),
	}, nil
}
