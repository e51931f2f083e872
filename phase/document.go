package phase

// Document is the tree-shaped output of a phase.
//
// Name is always present (empty for anonymous phases). Metrics is
// present only when the phase declares at least one keyed meter, Data
// only when the application attached values, Children only when child
// phases were appended. Children are finalized copies, not live views.
type Document struct {
	Name     string         `json:"name"`
	Metrics  map[string]any `json:"metrics,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
	Children []Document     `json:"children,omitempty"`
}
