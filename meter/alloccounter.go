package meter

import "github.com/wesleyorama2/stint/malloc"

// AllocMetrics is the snapshot payload of an AllocCounter.
type AllocMetrics struct {
	// Peak is the highest positive byte balance observed.
	Peak uint64 `json:"peak"`

	// Closing is the byte balance at snapshot time. It is negative when
	// more bytes were freed than allocated under tracking.
	Closing int64 `json:"closing"`

	// AllocNum and AllocBytes count tracked allocations.
	AllocNum   uint64 `json:"alloc_num"`
	AllocBytes uint64 `json:"alloc_bytes"`

	// FreeNum and FreeBytes count tracked frees.
	FreeNum   uint64 `json:"free_num"`
	FreeBytes uint64 `json:"free_bytes"`
}

// AllocCounter measures memory allocations and frees reported through
// a malloc.Registry.
//
// While running it is registered as a listener and accumulates a
// signed byte balance, its positive peak, and allocation/free
// counters. Pausing unregisters without resetting, so events during a
// pause are invisible to the counter. The balance legitimately goes
// negative when tracking starts after memory was already allocated.
//
// If no malloc.Heap feeds the registry, every metric stays zero; that
// is a capability gap (see Registry.Instrumented), not an error.
type AllocCounter struct {
	registry *malloc.Registry
	active   bool

	current int64
	peak    uint64

	allocNum   uint64
	allocBytes uint64
	freeNum    uint64
	freeBytes  uint64
}

// NewAllocCounter creates a counter reporting to malloc.Default.
func NewAllocCounter() *AllocCounter {
	return NewAllocCounterIn(malloc.Default)
}

// NewAllocCounterIn creates a counter reporting to the given registry.
// A nil registry selects malloc.Default.
func NewAllocCounterIn(registry *malloc.Registry) *AllocCounter {
	if registry == nil {
		registry = malloc.Default
	}
	return &AllocCounter{registry: registry}
}

// OnAlloc implements malloc.Listener.
func (c *AllocCounter) OnAlloc(bytes uint64) {
	c.current += int64(bytes)
	if c.current > 0 && uint64(c.current) > c.peak {
		c.peak = uint64(c.current)
	}
	c.allocNum++
	c.allocBytes += bytes
}

// OnFree implements malloc.Listener.
func (c *AllocCounter) OnFree(bytes uint64) {
	c.current -= int64(bytes)
	c.freeNum++
	c.freeBytes += bytes
}

func (c *AllocCounter) reset() {
	c.current = 0
	c.peak = 0
	c.allocNum = 0
	c.allocBytes = 0
	c.freeNum = 0
	c.freeBytes = 0
}

// Start resets all accumulators and begins listening.
func (c *AllocCounter) Start() {
	c.reset()
	c.Resume()
}

// Pause stops listening. Accumulators are retained.
func (c *AllocCounter) Pause() {
	if c.active {
		c.registry.Unregister(c)
		c.active = false
	}
}

// Resume begins listening again without resetting.
func (c *AllocCounter) Resume() {
	if !c.active {
		c.registry.Register(c)
		c.active = true
	}
}

// Stop ends allocation tracking. It is equivalent to Pause.
func (c *AllocCounter) Stop() {
	c.Pause()
}

// Count returns the current byte balance. It may be negative if the
// counter has seen frees without the corresponding allocations.
func (c *AllocCounter) Count() int64 { return c.current }

// Peak returns the peak positive byte balance.
func (c *AllocCounter) Peak() uint64 { return c.peak }

// AllocNum returns the number of tracked allocations.
func (c *AllocCounter) AllocNum() uint64 { return c.allocNum }

// AllocBytes returns the number of bytes tracked as allocated.
func (c *AllocCounter) AllocBytes() uint64 { return c.allocBytes }

// FreeNum returns the number of tracked frees.
func (c *AllocCounter) FreeNum() uint64 { return c.freeNum }

// FreeBytes returns the number of bytes tracked as freed.
func (c *AllocCounter) FreeBytes() uint64 { return c.freeBytes }

// Key returns "memory".
func (c *AllocCounter) Key() string { return "memory" }

// Snapshot returns the counter's AllocMetrics.
func (c *AllocCounter) Snapshot() any {
	return AllocMetrics{
		Peak:       c.peak,
		Closing:    c.current,
		AllocNum:   c.allocNum,
		AllocBytes: c.allocBytes,
		FreeNum:    c.freeNum,
		FreeBytes:  c.freeBytes,
	}
}
