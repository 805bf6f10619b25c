package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()

	require.Implements(t, (*EndianEngine)(nil), engine)
	require.Equal(t, binary.LittleEndian, engine)

	var testValue uint16 = 0x0102
	bytes := make([]byte, 2)
	engine.PutUint16(bytes, testValue)
	require.Equal(t, byte(0x02), bytes[0], "little endian should put LSB first")
	require.Equal(t, byte(0x01), bytes[1], "little endian should put MSB second")
	require.Equal(t, testValue, engine.Uint16(bytes))
}

func TestGetLittleEndianEngineUint64(t *testing.T) {
	engine := GetLittleEndianEngine()

	var origSize uint64 = 0x0102030405060708
	buf := make([]byte, 8)
	engine.PutUint64(buf, origSize)
	require.Equal(t, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, buf)
	require.Equal(t, origSize, engine.Uint64(buf))
}

func TestGetLittleEndianEngineAppend(t *testing.T) {
	engine := GetLittleEndianEngine()

	buf := engine.AppendUint64(nil, 12)
	require.Equal(t, []byte{0x0c, 0, 0, 0, 0, 0, 0, 0}, buf)
}
