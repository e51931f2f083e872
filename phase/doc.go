// Package phase composes meters into named instrumentation scopes and
// assembles their measurements into hierarchical documents.
//
// A Phase owns a fixed, ordered list of meters declared at
// construction. Lifecycle calls fan out to the meters: Start and
// Resume in declaration order, Pause and Stop in reverse. A meter
// declared later therefore starts last and stops first, so declaring a
// stopwatch after an allocation counter gives it the tightest possible
// window around the other meters' own start/stop cost.
//
// # Basic Usage
//
//	p := phase.New("compute", meter.NewAllocCounter(), meter.NewStopwatch())
//	p.Start()
//	// ... work ...
//	p.Pause()
//	// ... excluded region ...
//	p.Resume()
//	// ... more work ...
//	p.Stop()
//	p.Data().Put("sum", sum)
//
//	doc := p.GatherData()
//	out, _ := json.MarshalIndent(doc, "", "  ")
//
// # Hierarchies
//
// Child phases run independently; once finished, their documents are
// absorbed by the parent:
//
//	parent.AppendChild(childA)
//	parent.AppendChild(childB)
//
// # Disabling Instrumentation
//
// Both Phase and Noop satisfy Scope. Code written against Scope can
// swap phase.New for phase.NewNoop and every call becomes inert:
//
//	var p phase.Scope = phase.NewNoop("compute")
package phase
