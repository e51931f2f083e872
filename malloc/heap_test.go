package malloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// balanceListener tracks the running byte balance and event counts.
type balanceListener struct {
	balance    int64
	allocs     int
	frees      int
	allocBytes uint64
	freeBytes  uint64
}

func (l *balanceListener) OnAlloc(bytes uint64) {
	l.balance += int64(bytes)
	l.allocs++
	l.allocBytes += bytes
}

func (l *balanceListener) OnFree(bytes uint64) {
	l.balance -= int64(bytes)
	l.frees++
	l.freeBytes += bytes
}

func newTrackedHeap(t *testing.T) (*Heap, *balanceListener) {
	t.Helper()
	r := NewRegistry()
	h := NewHeap(nil, r)
	l := &balanceListener{}
	r.Register(l)
	return h, l
}

func TestHeapAllocFree(t *testing.T) {
	h, l := newTrackedHeap(t)

	p := h.Alloc(1024)
	require.NotNil(t, p)
	assert.Equal(t, int64(1024), l.balance)
	assert.Equal(t, 1, l.allocs)

	// The block must be usable for its full requested size.
	buf := unsafe.Slice((*byte)(p), 1024)
	buf[0] = 0xAB
	buf[1023] = 0xCD

	h.Free(p)
	assert.Equal(t, int64(0), l.balance)
	assert.Equal(t, 1, l.frees)
	assert.Equal(t, uint64(1024), l.freeBytes)
}

func TestHeapAllocZeroSize(t *testing.T) {
	h, l := newTrackedHeap(t)

	assert.Nil(t, h.Alloc(0))
	assert.Equal(t, 0, l.allocs)
}

func TestHeapFreeNil(t *testing.T) {
	h, l := newTrackedHeap(t)

	h.Free(nil)
	assert.Equal(t, 0, l.frees)
}

func TestHeapFreeForeign(t *testing.T) {
	r := NewRegistry()
	backend := newArenaBackend()
	h := NewHeap(backend, r)
	l := &balanceListener{}
	r.Register(l)

	// A pointer into the interior of a raw backend block has no managed
	// header before it: it must be forwarded without any notification.
	raw := backend.Alloc(64)
	require.NotNil(t, raw)
	foreign := unsafe.Add(raw, 32)

	h.Free(foreign)
	assert.Equal(t, 0, l.frees)
	assert.Equal(t, int64(0), l.balance)
}

func TestHeapRealloc(t *testing.T) {
	h, l := newTrackedHeap(t)

	p := h.Alloc(64)
	require.NotNil(t, p)
	buf := unsafe.Slice((*byte)(p), 64)
	for i := range buf {
		buf[i] = byte(i)
	}

	q := h.Realloc(p, 256)
	require.NotNil(t, q)

	// Contents survive relocation, and the event stream is a free of
	// the old size followed by an allocation of the new one.
	grown := unsafe.Slice((*byte)(q), 256)
	for i := 0; i < 64; i++ {
		assert.Equal(t, byte(i), grown[i])
	}
	assert.Equal(t, int64(256), l.balance)
	assert.Equal(t, 2, l.allocs)
	assert.Equal(t, 1, l.frees)
	assert.Equal(t, uint64(64), l.freeBytes)

	h.Free(q)
	assert.Equal(t, int64(0), l.balance)
}

func TestHeapReallocNilBehavesAsAlloc(t *testing.T) {
	h, l := newTrackedHeap(t)

	p := h.Realloc(nil, 128)
	require.NotNil(t, p)
	assert.Equal(t, int64(128), l.balance)
	assert.Equal(t, 1, l.allocs)
	h.Free(p)
}

func TestHeapReallocZeroSizeBehavesAsFree(t *testing.T) {
	h, l := newTrackedHeap(t)

	p := h.Alloc(128)
	require.NotNil(t, p)

	assert.Nil(t, h.Realloc(p, 0))
	assert.Equal(t, int64(0), l.balance)
	assert.Equal(t, 1, l.frees)
}

func TestHeapAllocZero(t *testing.T) {
	h, l := newTrackedHeap(t)

	p := h.AllocZero(16, 32)
	require.NotNil(t, p)
	assert.Equal(t, int64(512), l.balance)

	buf := unsafe.Slice((*byte)(p), 512)
	for i, b := range buf {
		require.Zerof(t, b, "byte %d not zeroed", i)
	}
	h.Free(p)
}

func TestHeapAllocZeroOverflow(t *testing.T) {
	h, l := newTrackedHeap(t)

	const half = ^uintptr(0)>>1 + 1
	assert.Nil(t, h.AllocZero(half, 4))
	assert.Nil(t, h.AllocZero(0, 32))
	assert.Nil(t, h.AllocZero(32, 0))
	assert.Equal(t, 0, l.allocs)
}

func TestHeapAllocAligned(t *testing.T) {
	h, l := newTrackedHeap(t)

	for _, align := range []uintptr{16, 64, 256, 4096} {
		p := h.AllocAligned(align, 100)
		require.NotNil(t, p)
		assert.Zerof(t, uintptr(p)%align, "pointer %p not aligned to %d", p, align)
		assert.Equal(t, int64(100), l.balance)

		buf := unsafe.Slice((*byte)(p), 100)
		buf[0] = 1
		buf[99] = 1

		h.Free(p)
		assert.Equal(t, int64(0), l.balance)
	}
}

func TestHeapAllocAlignedInvalid(t *testing.T) {
	h, l := newTrackedHeap(t)

	assert.Nil(t, h.AllocAligned(0, 100))
	assert.Nil(t, h.AllocAligned(3, 100)) // not a power of two
	assert.Nil(t, h.AllocAligned(64, 0))
	assert.Equal(t, 0, l.allocs)
}

// failBackend simulates the real allocator running out of memory.
type failBackend struct{}

func (failBackend) Alloc(size uintptr) unsafe.Pointer { return nil }
func (failBackend) Realloc(ptr unsafe.Pointer, size uintptr) unsafe.Pointer {
	return nil
}
func (failBackend) Free(ptr unsafe.Pointer) {}

func TestHeapBackendFailure(t *testing.T) {
	r := NewRegistry()
	h := NewHeap(failBackend{}, r)
	l := &balanceListener{}
	r.Register(l)

	// A failed allocation did not happen: nil result, no notification.
	assert.Nil(t, h.Alloc(64))
	assert.Nil(t, h.AllocAligned(16, 64))
	assert.Nil(t, h.AllocZero(4, 16))
	assert.Equal(t, 0, l.allocs)
	assert.Equal(t, 0, l.frees)
}
