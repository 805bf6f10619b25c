package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	capacity := 1024
	bb := NewByteBuffer(capacity)

	require.NotNil(t, bb)
	require.NotNil(t, bb.B)
	assert.Equal(t, 0, len(bb.B), "new buffer should have zero length")
	assert.Equal(t, capacity, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_Bytes(t *testing.T) {
	bb := NewByteBuffer(ChunkBufferDefaultSize)
	bb.B = append(bb.B, []byte("hello")...)

	got := bb.Bytes()

	assert.Equal(t, []byte("hello"), got)
	assert.True(t, &bb.B[0] == &got[0], "Bytes() should return the same underlying slice")
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(ChunkBufferDefaultSize)
	bb.B = append(bb.B, []byte("some data")...)
	originalCap := cap(bb.B)

	bb.Reset()

	assert.Equal(t, 0, len(bb.B), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBuffer_SetLength(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.SetLength(10)
	assert.Equal(t, 10, len(bb.B))
}

func TestByteBuffer_SetLength_PanicsOnOverflow(t *testing.T) {
	bb := NewByteBuffer(4)
	assert.Panics(t, func() { bb.SetLength(5) })
}

func TestByteBuffer_SetLength_PanicsOnNegative(t *testing.T) {
	bb := NewByteBuffer(4)
	assert.Panics(t, func() { bb.SetLength(-1) })
}

func TestByteBuffer_Grow_SufficientCapacity(t *testing.T) {
	bb := NewByteBuffer(ChunkBufferDefaultSize)
	originalCap := cap(bb.B)

	bb.Grow(100)

	assert.Equal(t, originalCap, cap(bb.B), "should not reallocate when capacity is sufficient")
}

func TestByteBuffer_Grow_ForcesReallocation(t *testing.T) {
	bb := NewByteBuffer(64)
	bb.B = append(bb.B, make([]byte, 64)...)

	bb.Grow(1024)

	assert.GreaterOrEqual(t, cap(bb.B), 64+1024, "should have at least requested capacity")
	assert.Equal(t, 64, len(bb.B), "length should not change")
}

func TestByteBuffer_Grow_PreservesData(t *testing.T) {
	bb := NewByteBuffer(16)
	testData := []byte("important data that must be preserved")
	bb.B = append(bb.B, testData...)

	bb.Grow(1024)

	assert.Equal(t, testData, bb.B, "data should be preserved after growth")
}

func TestByteBuffer_Grow_ZeroBytes(t *testing.T) {
	bb := NewByteBuffer(ChunkBufferDefaultSize)
	originalCap := cap(bb.B)

	bb.Grow(0)

	assert.Equal(t, originalCap, cap(bb.B), "Grow(0) should not change capacity")
}

func TestNewByteBufferPool(t *testing.T) {
	pool := NewByteBufferPool(8192, 65536)

	require.NotNil(t, pool)

	bb := pool.Get()
	require.NotNil(t, bb)
	assert.GreaterOrEqual(t, cap(bb.B), 8192, "buffer should have at least default size")

	pool.Put(bb)
}

func TestByteBufferPool_CustomSizes(t *testing.T) {
	tests := []struct {
		name         string
		defaultSize  int
		maxThreshold int
	}{
		{"Small pool", 1024, 4096},
		{"Medium pool", 16384, 131072},
		{"Large pool", 1048576, 8388608},
		{"No threshold", 8192, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewByteBufferPool(tt.defaultSize, tt.maxThreshold)
			bb := pool.Get()
			assert.GreaterOrEqual(t, cap(bb.B), tt.defaultSize)
			pool.Put(bb)
		})
	}
}

func TestByteBufferPool_Put_NilBuffer(t *testing.T) {
	pool := NewByteBufferPool(1024, 4096)
	assert.NotPanics(t, func() {
		pool.Put(nil)
	})
}

func TestByteBufferPool_MaxThreshold_Discard(t *testing.T) {
	pool := NewByteBufferPool(1024, 4096)

	bb := pool.Get()
	bb.Grow(10000)
	assert.Greater(t, cap(bb.B), 4096, "buffer should have grown beyond threshold")

	pool.Put(bb)

	bb2 := pool.Get()
	assert.LessOrEqual(t, cap(bb2.B), 4096*2, "should not reuse buffer larger than threshold")
}

func TestByteBufferPool_MaxThreshold_Zero(t *testing.T) {
	pool := NewByteBufferPool(1024, 0)

	bb := pool.Get()
	bb.Grow(1024 * 1024)
	assert.Greater(t, cap(bb.B), 100000, "buffer should have grown to large size")

	pool.Put(bb)

	bb2 := pool.Get()
	assert.NotNil(t, bb2)
}

func TestByteBufferPool_ResetsOnPut(t *testing.T) {
	pool := NewByteBufferPool(1024, 4096)

	bb := pool.Get()
	bb.B = append(bb.B, []byte("sensitive data")...)
	pool.Put(bb)

	assert.Equal(t, 0, len(bb.B), "Put should reset the buffer before returning it to the pool")
}

func TestByteBufferPool_ConcurrentAccess(t *testing.T) {
	const numGoroutines = 50
	const numIterations = 200

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numIterations; j++ {
				bb := GetChunkBuffer()
				bb.B = append(bb.B, []byte("data")...)
				assert.Equal(t, 4, len(bb.B))
				PutChunkBuffer(bb)
			}
		}()
	}

	wg.Wait()
}

func TestGetPutChunkBuffer_DefaultSize(t *testing.T) {
	bb := GetChunkBuffer()
	require.NotNil(t, bb)
	assert.GreaterOrEqual(t, cap(bb.B), ChunkBufferDefaultSize)
	PutChunkBuffer(bb)
}

func TestGetPutChunkBuffer_Reuse(t *testing.T) {
	bb1 := GetChunkBuffer()
	bb1.B = append(bb1.B, []byte("test data")...)
	PutChunkBuffer(bb1)

	bb2 := GetChunkBuffer()
	assert.Equal(t, 0, len(bb2.B), "buffer from pool should be reset")
	PutChunkBuffer(bb2)
}

func BenchmarkByteBuffer_Grow(b *testing.B) {
	for b.Loop() {
		bb := NewByteBuffer(ChunkBufferDefaultSize)
		bb.Grow(1024 * 1024)
	}
}

func BenchmarkChunkBuffer_GetPut(b *testing.B) {
	for b.Loop() {
		bb := GetChunkBuffer()
		PutChunkBuffer(bb)
	}
}
