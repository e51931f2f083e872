// Package malloc provides allocation interception for metering.
//
// It has two halves: a Registry that broadcasts allocation and free
// events to any number of listeners, and a Heap that layers managed,
// header-stamped blocks over a raw allocator and feeds the registry.
//
// # Basic Usage
//
//	heap := malloc.NewHeap(nil, malloc.Default)
//
//	counter := meter.NewAllocCounter()
//	counter.Start()
//
//	ptr := heap.Alloc(1024)
//	// ... use the memory ...
//	heap.Free(ptr)
//
//	counter.Stop()
//	fmt.Println(counter.Peak()) // 1024
//
// # Injectable Registries
//
// Process-wide tracking goes through the Default registry. Tests (or
// hosts that want isolated tracking domains) construct their own:
//
//	reg := malloc.NewRegistry()
//	heap := malloc.NewHeap(nil, reg)
//
// # Thread Safety
//
// Registration is not safe for concurrent use; the host must serialize
// listener registration across goroutines. Notification dispatch takes
// no lock. This is a deliberate trade-off that keeps the hot
// allocation path free of synchronization overhead.
package malloc
