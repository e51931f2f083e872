package malloc

import "unsafe"

// blockMagic marks a block as managed. A free whose header does not
// carry it belongs to a foreign allocation and is forwarded untouched.
const blockMagic uint64 = 0xFEDCBA9876543210

// blockHeader sits immediately before the user pointer of every
// managed block.
type blockHeader struct {
	magic uint64

	// size is the user-requested size, excluding header and padding.
	size uintptr

	// offset is the distance from the true allocation base to the user
	// pointer. It is headerSize for plain allocations and larger for
	// aligned ones, and is needed to release the true base pointer.
	offset uintptr
}

const headerSize = unsafe.Sizeof(blockHeader{})

// Backend is the raw allocator a Heap builds on. A nil pointer result
// means the allocation failed.
//
// The default backend keeps every block alive in a Go-managed arena.
// Hosts with their own native allocator (cgo, mmap) supply one that
// wraps it.
type Backend interface {
	Alloc(size uintptr) unsafe.Pointer
	Realloc(ptr unsafe.Pointer, size uintptr) unsafe.Pointer
	Free(ptr unsafe.Pointer)
}

// arenaBackend is the default Backend. Blocks live in a map keyed by
// their base pointer so the garbage collector keeps them reachable
// until Free.
type arenaBackend struct {
	blocks map[unsafe.Pointer][]byte
}

func newArenaBackend() *arenaBackend {
	return &arenaBackend{blocks: make(map[unsafe.Pointer][]byte)}
}

func (b *arenaBackend) Alloc(size uintptr) unsafe.Pointer {
	if size == 0 {
		return nil
	}
	buf := make([]byte, size)
	p := unsafe.Pointer(&buf[0])
	b.blocks[p] = buf
	return p
}

func (b *arenaBackend) Realloc(ptr unsafe.Pointer, size uintptr) unsafe.Pointer {
	if ptr == nil {
		return b.Alloc(size)
	}
	old, ok := b.blocks[ptr]
	if !ok {
		return nil
	}
	buf := make([]byte, size)
	copy(buf, old)
	delete(b.blocks, ptr)
	p := unsafe.Pointer(&buf[0])
	b.blocks[p] = buf
	return p
}

func (b *arenaBackend) Free(ptr unsafe.Pointer) {
	delete(b.blocks, ptr)
}

// Heap is the allocator shim. Allocations made through it are
// "managed": each carries a header with a sentinel and the requested
// size, so a later Free or Realloc can recognize the block and report
// its size to the registry. Pointers from other sources are "foreign"
// and pass through to the backend untouched.
//
// No Heap operation ever reports an error; a failed allocation is a
// nil pointer and produces no notification.
type Heap struct {
	backend  Backend
	registry *Registry
}

// NewHeap creates a heap over the given backend, reporting to the
// given registry. A nil backend selects the built-in arena backend; a
// nil registry selects Default.
func NewHeap(backend Backend, registry *Registry) *Heap {
	if backend == nil {
		backend = newArenaBackend()
	}
	if registry == nil {
		registry = Default
	}
	registry.instrumented = true
	return &Heap{backend: backend, registry: registry}
}

func headerOf(user unsafe.Pointer) *blockHeader {
	return (*blockHeader)(unsafe.Add(user, -int(headerSize)))
}

func stamp(user unsafe.Pointer, size, offset uintptr) {
	hdr := headerOf(user)
	hdr.magic = blockMagic
	hdr.size = size
	hdr.offset = offset
}

// Alloc allocates size bytes of managed memory and notifies the
// registry. A zero size or a backend failure yields nil without any
// notification.
func (h *Heap) Alloc(size uintptr) unsafe.Pointer {
	if size == 0 {
		return nil
	}
	raw := h.backend.Alloc(size + headerSize)
	if raw == nil {
		return nil
	}
	user := unsafe.Add(raw, headerSize)
	stamp(user, size, headerSize)
	h.registry.NotifyAlloc(uint64(size))
	return user
}

// Free releases ptr. Managed blocks are reported to the registry with
// their recorded size and released at their true base; foreign
// pointers are forwarded to the backend untouched. Freeing nil is a
// no-op.
func (h *Heap) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	hdr := headerOf(ptr)
	if hdr.magic != blockMagic {
		h.backend.Free(ptr)
		return
	}
	size, offset := hdr.size, hdr.offset
	hdr.magic = 0 // recycled memory must not look managed
	h.registry.NotifyFree(uint64(size))
	h.backend.Free(unsafe.Add(ptr, -int(offset)))
}

// Realloc resizes ptr to size bytes. A zero size behaves as Free, a
// nil ptr as Alloc. Managed blocks are reported as a free of the old
// size followed by an allocation of the new size and keep their header
// across relocation; note that blocks from AllocAligned do not retain
// their alignment guarantee. Foreign pointers are delegated to the
// backend untouched.
func (h *Heap) Realloc(ptr unsafe.Pointer, size uintptr) unsafe.Pointer {
	if size == 0 {
		h.Free(ptr)
		return nil
	}
	if ptr == nil {
		return h.Alloc(size)
	}
	hdr := headerOf(ptr)
	if hdr.magic != blockMagic {
		return h.backend.Realloc(ptr, size)
	}
	oldSize, offset := hdr.size, hdr.offset
	raw := h.backend.Realloc(unsafe.Add(ptr, -int(offset)), size+offset)
	if raw == nil {
		return nil
	}
	user := unsafe.Add(raw, int(offset))
	stamp(user, size, offset)
	h.registry.NotifyFree(uint64(oldSize))
	h.registry.NotifyAlloc(uint64(size))
	return user
}

// AllocZero allocates num*size bytes of zeroed managed memory (calloc
// semantics). Overflow of num*size yields nil.
func (h *Heap) AllocZero(num, size uintptr) unsafe.Pointer {
	total := num * size
	if num != 0 && total/num != size {
		return nil
	}
	if total == 0 {
		return nil
	}
	ptr := h.Alloc(total)
	if ptr == nil {
		return nil
	}
	clear(unsafe.Slice((*byte)(ptr), total))
	return ptr
}

// AllocAligned allocates size bytes whose user pointer is aligned to
// align, which must be a power of two. The header placement offset is
// recorded so Free can release the true allocation.
func (h *Heap) AllocAligned(align, size uintptr) unsafe.Pointer {
	if size == 0 || align == 0 || align&(align-1) != 0 {
		return nil
	}
	raw := h.backend.Alloc(size + headerSize + align)
	if raw == nil {
		return nil
	}
	addr := uintptr(raw) + headerSize
	pad := (align - addr%align) % align
	user := unsafe.Add(raw, int(headerSize+pad))
	stamp(user, size, headerSize+pad)
	h.registry.NotifyAlloc(uint64(size))
	return user
}
