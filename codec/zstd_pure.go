//go:build !cgo

package codec

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/rdawebb/compresso/errs"
)

// zstdDecoderPool pools zstd decoders for reuse. The klauspost/compress/zstd
// docs call this out explicitly: the decoder is designed to run without
// allocations after a warmup, so it should be stored and reused rather than
// recreated per call.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		d, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			panic(fmt.Sprintf("codec: failed to create zstd decoder: %v", err))
		}

		return d
	},
}

func (ZstdBackend) NewEncoder(level Level) (Encoder, error) {
	if err := level.Validate(); err != nil {
		return nil, err
	}

	nativeLevel := 3
	if level != Unspecified && level > 0 {
		nativeLevel = nativeZstdLevel(int(level))
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(nativeLevel)))
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}

	return &zstdEncoder{enc: enc}, nil
}

func (ZstdBackend) NewDecoder() (Decoder, error) {
	return &zstdDecoder{}, nil
}

type zstdEncoder struct {
	enc *zstd.Encoder
	buf []byte
}

func (e *zstdEncoder) Push(data []byte) ([]byte, error) {
	e.buf = append(e.buf, data...)
	return nil, nil
}

func (e *zstdEncoder) Finish() ([]byte, error) {
	defer e.enc.Close()
	return e.enc.EncodeAll(e.buf, nil), nil
}

type zstdDecoder struct {
	buf []byte
}

func (d *zstdDecoder) Push(data []byte) ([]byte, error) {
	d.buf = append(d.buf, data...)
	return nil, nil
}

func (d *zstdDecoder) Finish() ([]byte, error) {
	dec, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(dec)

	br := bytes.NewReader(d.buf)
	if err := dec.Reset(br); err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}

	out, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	if br.Len() != 0 {
		return nil, errs.NewBackendError("zstd", fmt.Sprintf("%d trailing byte(s) after compressed stream", br.Len()), errs.ErrTrailingData)
	}

	return out, nil
}
