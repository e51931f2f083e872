package meter

// Meter is a measuring device with a start/pause/resume/stop lifecycle.
//
// Start resets the meter's accumulators and begins a measurement;
// Pause suspends it without losing what was accumulated; Resume
// continues it; Stop ends it. Pause and Resume may cycle any number of
// times between Start and Stop.
type Meter interface {
	Start()
	Pause()
	Resume()
	Stop()

	// Key identifies the meter's metrics inside a phase document, e.g.
	// "time" or "memory". A meter with an empty key contributes no
	// metrics entry.
	Key() string

	// Snapshot returns the meter's current metric payload. The value
	// must be JSON-marshalable: a number for single-valued meters or a
	// tagged struct for compound ones.
	Snapshot() any
}

var (
	_ Meter = (*Stopwatch)(nil)
	_ Meter = (*AllocCounter)(nil)
	_ Meter = (*LatencySampler)(nil)
	_ Meter = Noop{}
)

// Noop is a meter whose every operation is inert. It stands in for a
// real meter when instrumentation is compiled out.
type Noop struct{}

func (Noop) Start()  {}
func (Noop) Pause()  {}
func (Noop) Resume() {}
func (Noop) Stop()   {}

// Key returns the empty string; a no-op meter never contributes
// metrics to a document.
func (Noop) Key() string { return "" }

// Snapshot returns nil.
func (Noop) Snapshot() any { return nil }
