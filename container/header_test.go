package container

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rdawebb/compresso/codec"
	"github.com/rdawebb/compresso/errs"
	"github.com/stretchr/testify/require"
)

func TestWriteReadHeader_RoundTrip(t *testing.T) {
	cases := []struct {
		name     string
		algoID   uint8
		level    codec.Level
		origSize uint64
	}{
		{"zero_values", 0, codec.Unspecified, 0},
		{"explicit_level", 4, codec.Level(6), 12},
		{"max_size", 6, codec.Level(9), 1<<64 - 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteHeader(&buf, tc.algoID, tc.level, tc.origSize))
			require.Equal(t, HeaderSize, buf.Len())

			hdr, err := ReadHeader(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			require.Equal(t, uint8(Version), hdr.Version)
			require.Equal(t, tc.algoID, hdr.AlgoID)
			require.Equal(t, tc.level, hdr.Level)
			require.Equal(t, tc.origSize, hdr.OrigSize)
			require.Equal(t, uint8(0), hdr.Flags)
		})
	}
}

func TestWriteHeader_ExactByteLayout(t *testing.T) {
	// E1 from spec.md §8: zstd, level unspecified, orig_size 12.
	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, 4, codec.Unspecified, 12))

	want := []byte{
		'C', 'O', 'M', 'P',
		0x01,       // version
		0x04,       // algo id (zstd)
		0xFF,       // level unspecified
		0x00,       // flags
		0x0C, 0, 0, 0, 0, 0, 0, 0, // orig_size = 12, little-endian
	}
	require.Equal(t, want, buf.Bytes())
}

func TestReadHeader_ShortRead(t *testing.T) {
	_, err := ReadHeader(bytes.NewReader([]byte{'C', 'O', 'M'}))
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrFileTooSmall))

	var hdrErr *errs.HeaderError
	require.ErrorAs(t, err, &hdrErr)
}

func TestReadHeader_BadMagic(t *testing.T) {
	buf := make([]byte, HeaderSize)
	copy(buf, "XXXX")

	_, err := ReadHeader(bytes.NewReader(buf))
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrBadMagic))
}

func TestReadHeader_BadVersion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, 4, codec.Unspecified, 0))

	raw := buf.Bytes()
	raw[4] = 2 // corrupt version byte, per spec.md E5

	_, err := ReadHeader(bytes.NewReader(raw))
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrUnsupportedVersion))
	require.Contains(t, err.Error(), "unsupported version 2")
}

func TestReadHeader_UnknownAlgoIDIsNotAnError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, 250, codec.Unspecified, 0))

	hdr, err := ReadHeader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, uint8(250), hdr.AlgoID)
}

func TestReadHeader_LevelSentinel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, 1, codec.Level(0), 0))

	hdr, err := ReadHeader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, codec.Level(0), hdr.Level)
	require.NotEqual(t, codec.Unspecified, hdr.Level)
}
