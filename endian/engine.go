// Package endian provides the byte order used to encode the compresso
// container header.
//
// It combines encoding/binary's ByteOrder and AppendByteOrder interfaces into
// a single EndianEngine so the container package can both decode header
// fields in place and append them to a growing buffer without a second
// allocation.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from the standard
// library into one interface. binary.LittleEndian and binary.BigEndian both
// satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the engine used by the container format.
// The on-disk header is little-endian by definition (spec.md §3); this is
// the only engine the core ever constructs.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
