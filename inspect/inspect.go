// Package inspect implements the header-only metadata reader described in
// spec.md §4.5: it recognizes a compresso container, surfaces its header
// fields, and estimates decompression time from the speed cache, without
// ever opening the compressed payload.
package inspect

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/rdawebb/compresso/codec"
	"github.com/rdawebb/compresso/container"
	"github.com/rdawebb/compresso/errs"
	"github.com/rdawebb/compresso/router"
	"github.com/rdawebb/compresso/speedcache"
)

// Result is the pure, side-effect-free report inspect produces. It never
// carries an error on its own — unrecognized or unreadable input is
// reported through IsCompresso/HeaderOK/Reason, matching
// original_source/src/compresso/backend/inspect.py's contract exactly.
type Result struct {
	Path string

	IsCompresso bool
	HeaderOK    bool
	Reason      string

	Version  uint8
	AlgoID   uint8
	AlgoName string
	Level    codec.Level
	Flags    uint8
	OrigSize uint64

	BackendAvailable bool
	HasStreaming     bool

	CanDecompress          bool
	EstimatedDecompSeconds float64
}

// Inspect reads at most container.HeaderSize bytes from path and derives a
// Result. It never returns an error for a malformed or foreign file
// (spec.md §4.5, §7: "Inspection never raises on a bad file").
func Inspect(path string) (Result, error) {
	res := Result{Path: path}

	f, err := os.Open(path)
	if err != nil {
		res.Reason = "not a file"
		return res, nil
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil || !fi.Mode().IsRegular() {
		res.Reason = "not a file"
		return res, nil
	}

	buf := make([]byte, container.HeaderSize)
	n, _ := io.ReadFull(f, buf) // at most HeaderSize bytes; never touches the payload

	hdr, err := container.ReadHeader(bytes.NewReader(buf[:n]))
	if err != nil {
		res.Reason = headerErrorReason(err)
		res.IsCompresso = errors.Is(err, errs.ErrUnsupportedVersion)
		if res.IsCompresso {
			res.Version = buf[4]
		}
		return res, nil
	}

	res.IsCompresso = true
	res.HeaderOK = true
	res.Version = hdr.Version
	res.AlgoID = hdr.AlgoID
	res.Level = hdr.Level
	res.Flags = hdr.Flags
	res.OrigSize = hdr.OrigSize

	backend, ok := router.Default().ByID(hdr.AlgoID)
	if ok {
		res.AlgoName = backend.Name()
		res.BackendAvailable = backend.Available()
		res.HasStreaming = backend.HasStream()
	}

	res.CanDecompress = res.BackendAvailable
	if !res.CanDecompress {
		res.Reason = "no available backend for this algorithm"
	}

	if res.CanDecompress && res.OrigSize > 0 {
		cache := speedcache.Load()
		mbPerSecond := speedcache.Estimate(cache, res.AlgoName, speedcache.OperationDecompress)
		res.EstimatedDecompSeconds = float64(res.OrigSize) / (mbPerSecond * 1024 * 1024)
	}

	return res, nil
}

func headerErrorReason(err error) string {
	var hdrErr *errs.HeaderError
	if errors.As(err, &hdrErr) {
		return hdrErr.Reason
	}

	return err.Error()
}
