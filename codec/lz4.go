package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/rdawebb/compresso/errs"
)

// Lz4Backend wraps the lz4 *frame* format (github.com/pierrec/lz4/v4's
// Writer/Reader), not the raw block format. Levels 7-9 use the library's
// high-compression mode; levels 0-6 and Unspecified use its fast mode.
type Lz4Backend struct{}

var _ Backend = Lz4Backend{}

func NewLz4Backend() Lz4Backend { return Lz4Backend{} }

func (Lz4Backend) Name() string    { return "lz4" }
func (Lz4Backend) ID() uint8       { return 5 }
func (Lz4Backend) HasBuffer() bool { return true }
func (Lz4Backend) HasStream() bool { return true }
func (Lz4Backend) Available() bool { return true }

func (b Lz4Backend) Capabilities() Capabilities {
	return Capabilities{Name: b.Name(), ID: b.ID(), HasBuffer: b.HasBuffer(), HasStream: b.HasStream()}
}

// lz4LevelOf maps the 0-9 scale onto pierrec/lz4's CompressionLevel
// constants. The library compresses every level other than Fast with its
// high-compression block encoder, so levels 0-6 map to Fast and 7-9 map to
// Level7-Level9.
func lz4LevelOf(level int) lz4.CompressionLevel {
	switch level {
	case 0, 1, 2, 3, 4, 5, 6:
		return lz4.Fast
	case 7:
		return lz4.Level7
	case 8:
		return lz4.Level8
	default:
		return lz4.Level9
	}
}

func (Lz4Backend) NewEncoder(level Level) (Encoder, error) {
	if err := level.Validate(); err != nil {
		return nil, err
	}

	lvl := lz4.Fast
	if level != Unspecified {
		lvl = lz4LevelOf(int(level))
	}

	return &lz4Encoder{level: lvl}, nil
}

func (Lz4Backend) NewDecoder() (Decoder, error) {
	return &lz4Decoder{}, nil
}

type lz4Encoder struct {
	level lz4.CompressionLevel
	buf   bytes.Buffer
}

func (e *lz4Encoder) Push(data []byte) ([]byte, error) {
	e.buf.Write(data)
	return nil, nil
}

func (e *lz4Encoder) Finish() ([]byte, error) {
	var out bytes.Buffer
	w := lz4.NewWriter(&out)
	if err := w.Apply(lz4.CompressionLevelOption(e.level)); err != nil {
		return nil, fmt.Errorf("lz4: %w", err)
	}
	if _, err := w.Write(e.buf.Bytes()); err != nil {
		return nil, fmt.Errorf("lz4: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lz4: %w", err)
	}

	return out.Bytes(), nil
}

type lz4Decoder struct {
	buf bytes.Buffer
}

func (d *lz4Decoder) Push(data []byte) ([]byte, error) {
	d.buf.Write(data)
	return nil, nil
}

func (d *lz4Decoder) Finish() ([]byte, error) {
	br := bytes.NewReader(d.buf.Bytes())
	r := lz4.NewReader(br)

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("lz4: %w", err)
	}
	if br.Len() != 0 {
		return nil, errs.NewBackendError("lz4", fmt.Sprintf("%d trailing byte(s) after compressed stream", br.Len()), errs.ErrTrailingData)
	}

	return out, nil
}
