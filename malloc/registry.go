package malloc

// Listener receives allocation and free notifications while registered
// with a Registry.
type Listener interface {
	// OnAlloc is called when an allocation of the given size is tracked.
	OnAlloc(bytes uint64)

	// OnFree is called when a free of the given size is tracked.
	OnFree(bytes uint64)
}

// Registry maintains the list of listeners that receive allocation
// events and dispatches notifications to them in registration order.
//
// The zero value is ready to use. Most applications share the package
// Default instance; tests construct their own via NewRegistry so state
// never leaks between runs.
//
// Registration is not safe for concurrent use. Dispatch takes no lock:
// registering or unregistering concurrently with dispatch is undefined.
type Registry struct {
	listeners []Listener

	// critical guards the listener list: while a mutation is in
	// progress, notifications are dropped rather than dispatched over a
	// half-updated list. Growing the list may itself allocate, and that
	// allocation must not be counted.
	critical bool

	// instrumented records whether any Heap ever attached to this
	// registry, so callers can tell "nothing allocated" apart from
	// "allocation tracking not wired".
	instrumented bool
}

// Default is the process-wide registry used when no explicit registry
// is given. It has no teardown; listeners must unregister themselves
// before they go away.
var Default = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a listener. Duplicate registrations are not
// detected here; listeners are expected to guard against registering
// themselves twice.
func (r *Registry) Register(l Listener) {
	r.critical = true
	r.listeners = append(r.listeners, l)
	r.critical = false
}

// Unregister removes a listener by identity. Calling it for a listener
// that was never registered is a no-op.
func (r *Registry) Unregister(l Listener) {
	r.critical = true
	for i, reg := range r.listeners {
		if reg == l {
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			break
		}
	}
	r.critical = false
}

// NotifyAlloc dispatches an allocation of the given size to every
// registered listener. Notifications raised while the listener list is
// being mutated are dropped.
func (r *Registry) NotifyAlloc(bytes uint64) {
	if r.critical {
		return
	}
	for _, l := range r.listeners {
		l.OnAlloc(bytes)
	}
}

// NotifyFree dispatches a free of the given size to every registered
// listener. Notifications raised while the listener list is being
// mutated are dropped.
func (r *Registry) NotifyFree(bytes uint64) {
	if r.critical {
		return
	}
	for _, l := range r.listeners {
		l.OnFree(bytes)
	}
}

// Instrumented reports whether an allocation source (a Heap) has ever
// attached to this registry. When false, allocation meters fed by this
// registry will read zero; that is a capability gap, not an error.
func (r *Registry) Instrumented() bool {
	return r.instrumented
}

// Listeners returns the number of currently registered listeners.
func (r *Registry) Listeners() int {
	return len(r.listeners)
}
