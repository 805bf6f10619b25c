//go:build cgo

package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/valyala/gozstd"

	"github.com/rdawebb/compresso/errs"
)

func (ZstdBackend) NewEncoder(level Level) (Encoder, error) {
	if err := level.Validate(); err != nil {
		return nil, err
	}

	nativeLevel := 3
	if level != Unspecified && level > 0 {
		nativeLevel = nativeZstdLevel(int(level))
	}

	return &zstdCgoEncoder{level: nativeLevel}, nil
}

func (ZstdBackend) NewDecoder() (Decoder, error) {
	return &zstdCgoDecoder{}, nil
}

type zstdCgoEncoder struct {
	level int
	buf   []byte
}

func (e *zstdCgoEncoder) Push(data []byte) ([]byte, error) {
	e.buf = append(e.buf, data...)
	return nil, nil
}

func (e *zstdCgoEncoder) Finish() ([]byte, error) {
	return gozstd.CompressLevel(nil, e.buf, e.level), nil
}

type zstdCgoDecoder struct {
	buf []byte
}

func (d *zstdCgoDecoder) Push(data []byte) ([]byte, error) {
	d.buf = append(d.buf, data...)
	return nil, nil
}

func (d *zstdCgoDecoder) Finish() ([]byte, error) {
	br := bytes.NewReader(d.buf)
	r := gozstd.NewReader(br)
	defer r.Release()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	if br.Len() != 0 {
		return nil, errs.NewBackendError("zstd", fmt.Sprintf("%d trailing byte(s) after compressed stream", br.Len()), errs.ErrTrailingData)
	}

	return out, nil
}
