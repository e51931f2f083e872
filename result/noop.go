package result

import (
	"io"

	"github.com/wesleyorama2/stint/phase"
)

// NoopResult is an inert drop-in for Result, for builds where
// reporting is disabled.
type NoopResult struct{}

// NewNoop creates a no-op result.
func NewNoop() *NoopResult {
	return &NoopResult{}
}

// Add discards the pair.
func (*NoopResult) Add(key string, value any) {}

// AddDocument discards the document.
func (*NoopResult) AddDocument(doc phase.Document) {}

// Sort does nothing.
func (*NoopResult) Sort() {}

// Line returns the empty string.
func (*NoopResult) Line(prefix string) string { return "" }

// String returns the empty string.
func (*NoopResult) String() string { return "" }

// Fprint writes nothing.
func (*NoopResult) Fprint(w io.Writer) error { return nil }
