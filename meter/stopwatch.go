package meter

import "time"

// Stopwatch measures elapsed wall-clock time.
//
// The accumulated duration only advances on Pause or Stop, when the
// current segment (started by Start or Resume) is closed out. Start
// resets the accumulated duration to zero.
//
// Because real time keeps advancing for an enclosing stopwatch no
// matter what a nested one does, nesting needs no propagation.
type Stopwatch struct {
	segmentStart time.Time
	elapsed      time.Duration
}

// NewStopwatch creates a stopwatch. It is not started; call Start.
func NewStopwatch() *Stopwatch {
	return &Stopwatch{}
}

// Start resets the elapsed time to zero and begins a new segment.
func (s *Stopwatch) Start() {
	s.elapsed = 0
	s.Resume()
}

// Pause closes the current segment, adding its length to the elapsed
// time.
func (s *Stopwatch) Pause() {
	s.elapsed += time.Since(s.segmentStart)
}

// Resume begins a new segment without resetting the elapsed time.
func (s *Stopwatch) Resume() {
	s.segmentStart = time.Now()
}

// Stop ends the measurement. It is equivalent to Pause.
func (s *Stopwatch) Stop() {
	s.Pause()
}

// ElapsedNanos returns the measured elapsed time in nanoseconds.
func (s *Stopwatch) ElapsedNanos() int64 {
	return s.elapsed.Nanoseconds()
}

// ElapsedMillis returns the measured elapsed time in fractional
// milliseconds.
func (s *Stopwatch) ElapsedMillis() float64 {
	return float64(s.elapsed) / float64(time.Millisecond)
}

// Key returns "time".
func (s *Stopwatch) Key() string { return "time" }

// Snapshot returns the elapsed time in fractional milliseconds.
func (s *Stopwatch) Snapshot() any {
	return s.ElapsedMillis()
}
