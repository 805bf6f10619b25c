package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/rdawebb/compresso/errs"
)

// ZlibBackend wraps a raw zlib stream (not gzip). Level 0 is a store-only
// stream; Unspecified uses zlib's own default level.
type ZlibBackend struct{}

var _ Backend = ZlibBackend{}

func NewZlibBackend() ZlibBackend { return ZlibBackend{} }

func (ZlibBackend) Name() string    { return "zlib" }
func (ZlibBackend) ID() uint8       { return 1 }
func (ZlibBackend) HasBuffer() bool { return true }
func (ZlibBackend) HasStream() bool { return true }
func (ZlibBackend) Available() bool { return true }

func (b ZlibBackend) Capabilities() Capabilities {
	return Capabilities{Name: b.Name(), ID: b.ID(), HasBuffer: b.HasBuffer(), HasStream: b.HasStream()}
}

func (ZlibBackend) NewEncoder(level Level) (Encoder, error) {
	if err := level.Validate(); err != nil {
		return nil, err
	}

	lvl := zlib.DefaultCompression
	if level != Unspecified {
		lvl = int(level)
	}

	return &zlibEncoder{level: lvl}, nil
}

func (ZlibBackend) NewDecoder() (Decoder, error) {
	return &zlibDecoder{}, nil
}

type zlibEncoder struct {
	level int
	buf   bytes.Buffer
}

func (e *zlibEncoder) Push(data []byte) ([]byte, error) {
	e.buf.Write(data)
	return nil, nil
}

func (e *zlibEncoder) Finish() ([]byte, error) {
	var out bytes.Buffer
	w, err := zlib.NewWriterLevel(&out, e.level)
	if err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}
	if _, err := w.Write(e.buf.Bytes()); err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}

	return out.Bytes(), nil
}

type zlibDecoder struct {
	buf bytes.Buffer
}

func (d *zlibDecoder) Push(data []byte) ([]byte, error) {
	d.buf.Write(data)
	return nil, nil
}

func (d *zlibDecoder) Finish() ([]byte, error) {
	br := bytes.NewReader(d.buf.Bytes())
	r, err := zlib.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}
	if br.Len() != 0 {
		return nil, errs.NewBackendError("zlib", fmt.Sprintf("%d trailing byte(s) after compressed stream", br.Len()), errs.ErrTrailingData)
	}

	return out, nil
}
