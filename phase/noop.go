package phase

var (
	_ Scope = (*Phase)(nil)
	_ Scope = Noop{}
)

// Noop is a Scope whose every operation is inert. It replaces Phase
// when instrumentation is disabled: lifecycle calls do nothing, the
// data handle silently absorbs writes, and GatherData returns a zero
// document.
type Noop struct{}

// NewNoop creates a no-op scope. The arguments mirror New and are
// ignored.
func NewNoop(name string, meters ...any) Noop {
	_ = name
	_ = meters
	return Noop{}
}

func (Noop) Start()  {}
func (Noop) Pause()  {}
func (Noop) Resume() {}
func (Noop) Stop()   {}

// AppendChild discards the child without gathering it.
func (Noop) AppendChild(child Scope) {}

// Data returns a sink that absorbs writes and reports nothing.
func (Noop) Data() DataMap { return noopData{} }

// GatherData returns a zero document.
func (Noop) GatherData() Document { return Document{} }

type noopData struct{}

func (noopData) Put(key string, value any) {}

func (noopData) Get(key string) (any, bool) { return nil, false }

func (noopData) Len() int { return 0 }
