package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"

	"github.com/rdawebb/compresso/errs"
)

// LzmaBackend wraps github.com/ulikunitz/xz, which writes the xz container
// format (LZMA2 inside an xz frame), not a raw LZMA1 stream. Level maps onto
// the writer's dictionary capacity: the xz format has no single numeric
// "preset" knob in this library, so level is projected onto DictCap with a
// monotone table instead.
type LzmaBackend struct{}

var _ Backend = LzmaBackend{}

func NewLzmaBackend() LzmaBackend { return LzmaBackend{} }

func (LzmaBackend) Name() string    { return "lzma" }
func (LzmaBackend) ID() uint8       { return 3 }
func (LzmaBackend) HasBuffer() bool { return true }
func (LzmaBackend) HasStream() bool { return true }
func (LzmaBackend) Available() bool { return true }

func (b LzmaBackend) Capabilities() Capabilities {
	return Capabilities{Name: b.Name(), ID: b.ID(), HasBuffer: b.HasBuffer(), HasStream: b.HasStream()}
}

// dictCapForLevel projects the 0-9 level scale onto a dictionary capacity in
// bytes. Monotone and documented, per spec.md §3's requirement for native
// level mapping.
var dictCapForLevel = [...]int{
	0: 1 << 20,  // 1 MiB
	1: 1 << 20,  // 1 MiB
	2: 2 << 20,  // 2 MiB
	3: 4 << 20,  // 4 MiB
	4: 8 << 20,  // 8 MiB
	5: 8 << 20,  // 8 MiB
	6: 16 << 20, // 16 MiB
	7: 16 << 20, // 16 MiB
	8: 32 << 20, // 32 MiB
	9: 64 << 20, // 64 MiB
}

const defaultDictCap = 8 << 20 // matches xz's own package default

func (LzmaBackend) NewEncoder(level Level) (Encoder, error) {
	if err := level.Validate(); err != nil {
		return nil, err
	}

	dictCap := defaultDictCap
	if level != Unspecified {
		dictCap = dictCapForLevel[int(level)]
	}

	return &lzmaEncoder{dictCap: dictCap}, nil
}

func (LzmaBackend) NewDecoder() (Decoder, error) {
	return &lzmaDecoder{}, nil
}

type lzmaEncoder struct {
	dictCap int
	buf     bytes.Buffer
}

func (e *lzmaEncoder) Push(data []byte) ([]byte, error) {
	e.buf.Write(data)
	return nil, nil
}

func (e *lzmaEncoder) Finish() ([]byte, error) {
	var out bytes.Buffer
	cfg := xz.WriterConfig{DictCap: e.dictCap}
	w, err := cfg.NewWriter(&out)
	if err != nil {
		return nil, fmt.Errorf("lzma: %w", err)
	}
	if _, err := w.Write(e.buf.Bytes()); err != nil {
		return nil, fmt.Errorf("lzma: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lzma: %w", err)
	}

	return out.Bytes(), nil
}

type lzmaDecoder struct {
	buf bytes.Buffer
}

func (d *lzmaDecoder) Push(data []byte) ([]byte, error) {
	d.buf.Write(data)
	return nil, nil
}

func (d *lzmaDecoder) Finish() ([]byte, error) {
	br := bytes.NewReader(d.buf.Bytes())
	r, err := xz.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("lzma: %w", err)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("lzma: %w", err)
	}
	if br.Len() != 0 {
		return nil, errs.NewBackendError("lzma", fmt.Sprintf("%d trailing byte(s) after compressed stream", br.Len()), errs.ErrTrailingData)
	}

	return out, nil
}
