package phase

import "github.com/wesleyorama2/stint/meter"

// Scope is the common contract of Phase and Noop. Application code
// written against Scope can disable instrumentation by swapping the
// constructor; every call pattern valid on a Phase is valid, and
// inert, on a Noop.
type Scope interface {
	Start()
	Pause()
	Resume()
	Stop()

	// AppendChild finalizes the child's document and stores it.
	AppendChild(child Scope)

	// Data returns a mutable handle to the scope's free-form
	// attachment.
	Data() DataMap

	// GatherData builds the scope's document. It is read-only and may
	// be called repeatedly, e.g. for partial mid-flight reporting.
	GatherData() Document
}

// DataMap is the free-form data attachment of a scope.
type DataMap interface {
	// Put records a named value. The value must be JSON-marshalable.
	Put(key string, value any)

	// Get returns a recorded value and whether it exists.
	Get(key string) (any, bool)

	// Len returns the number of recorded values.
	Len() int
}

// Phase is a named instrumentation scope composing zero or more
// meters. The meter list is fixed at construction; lifecycle calls
// fan out to the meters in declaration order (Start, Resume) or
// reverse declaration order (Pause, Stop).
type Phase struct {
	name     string
	meters   []meter.Meter
	data     dataMap
	children []Document
}

// New creates a phase with the given name and meters. An empty name is
// legal and yields a document with an empty name.
func New(name string, meters ...meter.Meter) *Phase {
	return &Phase{name: name, meters: meters}
}

// NewTimed creates a phase with a single stopwatch.
func NewTimed(name string) *Phase {
	return New(name, meter.NewStopwatch())
}

// NewMemoryTimed creates a phase with an allocation counter and a
// stopwatch. The stopwatch is declared last so its window excludes the
// counter's start/stop cost.
func NewMemoryTimed(name string) *Phase {
	return New(name, meter.NewAllocCounter(), meter.NewStopwatch())
}

// Name returns the phase's name.
func (p *Phase) Name() string { return p.name }

// Start starts the meters in declaration order.
func (p *Phase) Start() {
	for _, m := range p.meters {
		m.Start()
	}
}

// Pause pauses the meters in reverse declaration order.
func (p *Phase) Pause() {
	for i := len(p.meters) - 1; i >= 0; i-- {
		p.meters[i].Pause()
	}
}

// Resume resumes the meters in declaration order.
func (p *Phase) Resume() {
	for _, m := range p.meters {
		m.Resume()
	}
}

// Stop stops the meters in reverse declaration order.
func (p *Phase) Stop() {
	for i := len(p.meters) - 1; i >= 0; i-- {
		p.meters[i].Stop()
	}
}

// AppendChild gathers the child's document and stores it. The child is
// consumed: later changes to it do not affect the stored document.
func (p *Phase) AppendChild(child Scope) {
	p.children = append(p.children, child.GatherData())
}

// Data returns a mutable handle to the phase's free-form attachment.
// Values recorded here appear under "data" in the document.
func (p *Phase) Data() DataMap {
	if p.data == nil {
		p.data = make(dataMap)
	}
	return p.data
}

// GatherData builds the phase's document: name always, children if any
// were appended, metrics if at least one keyed meter is declared, data
// if non-empty. It does not mutate the phase and may be called
// multiple times.
func (p *Phase) GatherData() Document {
	doc := Document{Name: p.name}

	if len(p.children) > 0 {
		doc.Children = append([]Document(nil), p.children...)
	}

	if len(p.meters) > 0 {
		metrics := make(map[string]any, len(p.meters))
		for _, m := range p.meters {
			if key := m.Key(); key != "" {
				metrics[key] = m.Snapshot()
			}
		}
		if len(metrics) > 0 {
			doc.Metrics = metrics
		}
	}

	if len(p.data) > 0 {
		data := make(map[string]any, len(p.data))
		for k, v := range p.data {
			data[k] = v
		}
		doc.Data = data
	}

	return doc
}

// dataMap is the live DataMap backing a Phase.
type dataMap map[string]any

func (d dataMap) Put(key string, value any) { d[key] = value }

func (d dataMap) Get(key string) (any, bool) {
	v, ok := d[key]
	return v, ok
}

func (d dataMap) Len() int { return len(d) }
