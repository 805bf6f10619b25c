package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/golang/snappy"

	"github.com/rdawebb/compresso/errs"
)

// SnappyBackend wraps the snappy framed stream format
// (github.com/golang/snappy), distinct from the raw snappy block format and
// from S2. Snappy has no notion of compression effort; level is accepted
// for interface uniformity but has no effect beyond range validation.
type SnappyBackend struct{}

var _ Backend = SnappyBackend{}

func NewSnappyBackend() SnappyBackend { return SnappyBackend{} }

func (SnappyBackend) Name() string    { return "snappy" }
func (SnappyBackend) ID() uint8       { return 6 }
func (SnappyBackend) HasBuffer() bool { return true }
func (SnappyBackend) HasStream() bool { return true }
func (SnappyBackend) Available() bool { return true }

func (b SnappyBackend) Capabilities() Capabilities {
	return Capabilities{Name: b.Name(), ID: b.ID(), HasBuffer: b.HasBuffer(), HasStream: b.HasStream()}
}

func (SnappyBackend) NewEncoder(level Level) (Encoder, error) {
	if err := level.Validate(); err != nil {
		return nil, err
	}

	return &snappyEncoder{}, nil
}

func (SnappyBackend) NewDecoder() (Decoder, error) {
	return &snappyDecoder{}, nil
}

type snappyEncoder struct {
	buf bytes.Buffer
}

func (e *snappyEncoder) Push(data []byte) ([]byte, error) {
	e.buf.Write(data)
	return nil, nil
}

func (e *snappyEncoder) Finish() ([]byte, error) {
	var out bytes.Buffer
	w := snappy.NewBufferedWriter(&out)
	if _, err := w.Write(e.buf.Bytes()); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

type snappyDecoder struct {
	buf bytes.Buffer
}

func (d *snappyDecoder) Push(data []byte) ([]byte, error) {
	d.buf.Write(data)
	return nil, nil
}

func (d *snappyDecoder) Finish() ([]byte, error) {
	br := bytes.NewReader(d.buf.Bytes())
	r := snappy.NewReader(br)

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if br.Len() != 0 {
		return nil, errs.NewBackendError("snappy", fmt.Sprintf("%d trailing byte(s) after compressed stream", br.Len()), errs.ErrTrailingData)
	}

	return out, nil
}
