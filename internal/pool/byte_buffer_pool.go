// Package pool provides a pooled byte buffer used by the pipeline package
// to read source-file chunks without an allocation per chunk.
package pool

import "sync"

const (
	// ChunkBufferDefaultSize matches pipeline.ChunkSize, the recommended
	// read size from spec.md §4.4.
	ChunkBufferDefaultSize = 64 * 1024
	// ChunkBufferMaxThreshold discards buffers grown far beyond a single
	// chunk, so one unusually large read doesn't bloat the pool forever.
	ChunkBufferMaxThreshold = 1024 * 1024
)

// ByteBuffer is a reusable, growable byte slice.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given starting capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying slice.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Reset empties the buffer while retaining its backing array.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// SetLength sets the buffer's length to n, panicking if n exceeds capacity.
func (bb *ByteBuffer) SetLength(n int) {
	if n < 0 || n > cap(bb.B) {
		panic("pool: SetLength: invalid length")
	}
	bb.B = bb.B[:n]
}

// Grow ensures the buffer can hold at least requiredBytes more without
// reallocating.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := ChunkBufferDefaultSize
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// ByteBufferPool is a sync.Pool of ByteBuffers, discarding buffers grown
// past maxThreshold so a single oversized chunk doesn't pin memory.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool whose buffers start at defaultSize and
// are discarded, rather than recycled, once they exceed maxThreshold.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool:         sync.Pool{New: func() any { return NewByteBuffer(defaultSize) }},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}
	bb.Reset()
	p.pool.Put(bb)
}

var chunkPool = NewByteBufferPool(ChunkBufferDefaultSize, ChunkBufferMaxThreshold)

// GetChunkBuffer retrieves a ByteBuffer from the default chunk pool.
func GetChunkBuffer() *ByteBuffer { return chunkPool.Get() }

// PutChunkBuffer returns a ByteBuffer to the default chunk pool.
func PutChunkBuffer(bb *ByteBuffer) { chunkPool.Put(bb) }
