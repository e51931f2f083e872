// Package meter provides the measuring devices composed into phases.
//
// A Meter is a small state machine: Idle until Start, then Running,
// with any number of Pause/Resume cycles before Stop. Each meter
// exposes a stable key that namespaces its metrics inside a phase
// document, and a snapshot of whatever it measured.
//
// Three concrete meters are provided:
//
//   - Stopwatch measures elapsed wall-clock time ("time").
//   - AllocCounter measures allocation activity reported through a
//     malloc.Registry ("memory").
//   - LatencySampler records caller-supplied durations into an HDR
//     histogram and reports percentiles ("latency").
//
// Noop is an inert drop-in for statically disabling a meter.
//
// # Basic Usage
//
//	sw := meter.NewStopwatch()
//	sw.Start()
//	// ... work ...
//	sw.Pause()
//	// ... excluded from the measurement ...
//	sw.Resume()
//	// ... more work ...
//	sw.Stop()
//	fmt.Printf("%.3fms\n", sw.ElapsedMillis())
//
// Meters are not safe for concurrent use; the host serializes
// lifecycle calls if it measures across goroutines.
package meter
