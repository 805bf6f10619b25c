package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"

	"github.com/rdawebb/compresso/errs"
)

// Bzip2Backend wraps github.com/dsnet/compress/bzip2, a block-sorting
// (Burrows-Wheeler) compressor. Level maps 1:1 onto blockSize100k (1-9);
// level 0 is treated as 1, the lowest valid block size.
type Bzip2Backend struct{}

var _ Backend = Bzip2Backend{}

func NewBzip2Backend() Bzip2Backend { return Bzip2Backend{} }

func (Bzip2Backend) Name() string    { return "bzip2" }
func (Bzip2Backend) ID() uint8       { return 2 }
func (Bzip2Backend) HasBuffer() bool { return true }
func (Bzip2Backend) HasStream() bool { return true }
func (Bzip2Backend) Available() bool { return true }

func (b Bzip2Backend) Capabilities() Capabilities {
	return Capabilities{Name: b.Name(), ID: b.ID(), HasBuffer: b.HasBuffer(), HasStream: b.HasStream()}
}

func (Bzip2Backend) NewEncoder(level Level) (Encoder, error) {
	if err := level.Validate(); err != nil {
		return nil, err
	}

	lvl := bzip2.DefaultCompression
	switch {
	case level == Unspecified:
		lvl = bzip2.DefaultCompression
	case level == 0:
		lvl = bzip2.BestSpeed
	default:
		lvl = int(level)
	}

	return &bzip2Encoder{level: lvl}, nil
}

func (Bzip2Backend) NewDecoder() (Decoder, error) {
	return &bzip2Decoder{}, nil
}

type bzip2Encoder struct {
	level int
	buf   bytes.Buffer
}

func (e *bzip2Encoder) Push(data []byte) ([]byte, error) {
	e.buf.Write(data)
	return nil, nil
}

func (e *bzip2Encoder) Finish() ([]byte, error) {
	var out bytes.Buffer
	w, err := bzip2.NewWriterLevel(&out, e.level)
	if err != nil {
		return nil, fmt.Errorf("bzip2: %w", err)
	}
	if _, err := w.Write(e.buf.Bytes()); err != nil {
		return nil, fmt.Errorf("bzip2: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("bzip2: %w", err)
	}

	return out.Bytes(), nil
}

type bzip2Decoder struct {
	buf bytes.Buffer
}

func (d *bzip2Decoder) Push(data []byte) ([]byte, error) {
	d.buf.Write(data)
	return nil, nil
}

func (d *bzip2Decoder) Finish() ([]byte, error) {
	br := bytes.NewReader(d.buf.Bytes())
	r, err := bzip2.NewReader(br, nil)
	if err != nil {
		return nil, fmt.Errorf("bzip2: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("bzip2: %w", err)
	}
	if br.Len() != 0 {
		return nil, errs.NewBackendError("bzip2", fmt.Sprintf("%d trailing byte(s) after compressed stream", br.Len()), errs.ErrTrailingData)
	}

	return out, nil
}
