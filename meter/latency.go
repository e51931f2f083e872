package meter

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Histogram bounds: 1 microsecond to 1 hour, 3 significant figures.
const (
	latencyMin     = 1
	latencyMax     = 3600000000
	latencySigFigs = 3
)

// LatencyMetrics is the snapshot payload of a LatencySampler. All
// values are microseconds except Count.
type LatencyMetrics struct {
	Count int64   `json:"count"`
	Min   int64   `json:"min"`
	Max   int64   `json:"max"`
	Mean  float64 `json:"mean"`
	P50   int64   `json:"p50"`
	P90   int64   `json:"p90"`
	P95   int64   `json:"p95"`
	P99   int64   `json:"p99"`
}

// LatencySampler records caller-supplied durations into an HDR
// histogram and reports percentiles.
//
// Unlike the automatic meters, samples are fed explicitly via Record;
// samples arriving while the sampler is paused, stopped or idle are
// dropped. Recording and percentile calculation are O(1) regardless of
// sample count.
type LatencySampler struct {
	hist   *hdrhistogram.Histogram
	active bool
}

// NewLatencySampler creates a sampler covering 1µs to 1h at 3
// significant figures. It is not started; call Start.
func NewLatencySampler() *LatencySampler {
	return &LatencySampler{
		hist: hdrhistogram.New(latencyMin, latencyMax, latencySigFigs),
	}
}

// Record adds one duration sample. Samples outside the histogram range
// are clamped; samples while not running are dropped.
func (l *LatencySampler) Record(d time.Duration) {
	if !l.active {
		return
	}
	us := d.Microseconds()
	if us < latencyMin {
		us = latencyMin
	} else if us > latencyMax {
		us = latencyMax
	}
	_ = l.hist.RecordValue(us)
}

// Start discards all samples and begins accepting new ones.
func (l *LatencySampler) Start() {
	l.hist.Reset()
	l.active = true
}

// Pause stops accepting samples. Recorded samples are retained.
func (l *LatencySampler) Pause() {
	l.active = false
}

// Resume begins accepting samples again.
func (l *LatencySampler) Resume() {
	l.active = true
}

// Stop ends sampling. It is equivalent to Pause.
func (l *LatencySampler) Stop() {
	l.Pause()
}

// Count returns the number of recorded samples.
func (l *LatencySampler) Count() int64 { return l.hist.TotalCount() }

// Key returns "latency".
func (l *LatencySampler) Key() string { return "latency" }

// Snapshot returns the sampler's LatencyMetrics. With no samples
// recorded, every field is zero.
func (l *LatencySampler) Snapshot() any {
	if l.hist.TotalCount() == 0 {
		return LatencyMetrics{}
	}
	return LatencyMetrics{
		Count: l.hist.TotalCount(),
		Min:   l.hist.Min(),
		Max:   l.hist.Max(),
		Mean:  l.hist.Mean(),
		P50:   l.hist.ValueAtQuantile(50),
		P90:   l.hist.ValueAtQuantile(90),
		P95:   l.hist.ValueAtQuantile(95),
		P99:   l.hist.ValueAtQuantile(99),
	}
}
