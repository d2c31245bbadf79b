// Package metrics holds the counters and timings collected while checking
// conformance fixtures. Counter and Gauge are lock-free; Histogram takes a
// mutex per observation.
package metrics

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// Counter only goes up.
type Counter struct {
	name  string
	value atomic.Int64
}

func NewCounter(name string) *Counter { return &Counter{name: name} }

func (c *Counter) Inc() { c.value.Add(1) }

// Add increments the counter by n. Non-positive n is ignored.
func (c *Counter) Add(n int64) {
	if n > 0 {
		c.value.Add(n)
	}
}

func (c *Counter) Value() int64 { return c.value.Load() }
func (c *Counter) Name() string { return c.name }

// Gauge tracks a level, such as the number of checks in flight.
type Gauge struct {
	name  string
	value atomic.Int64
}

func NewGauge(name string) *Gauge { return &Gauge{name: name} }

func (g *Gauge) Set(v int64)  { g.value.Store(v) }
func (g *Gauge) Inc()         { g.value.Add(1) }
func (g *Gauge) Dec()         { g.value.Add(-1) }
func (g *Gauge) Value() int64 { return g.value.Load() }
func (g *Gauge) Name() string { return g.name }

// Histogram summarises observed values by count, sum, min and max.
type Histogram struct {
	name string

	mu    sync.Mutex
	count int64
	sum   float64
	min   float64
	max   float64
}

func NewHistogram(name string) *Histogram {
	return &Histogram{name: name, min: math.MaxFloat64, max: -math.MaxFloat64}
}

func (h *Histogram) Observe(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += v
	h.min = min(h.min, v)
	h.max = max(h.max, v)
}

// ObserveDuration records d in microseconds.
func (h *Histogram) ObserveDuration(d time.Duration) {
	h.Observe(float64(d.Microseconds()))
}

func (h *Histogram) Name() string { return h.name }

// HistogramSummary is a point-in-time view of a Histogram. Min, Max and Mean
// are zero when nothing was observed.
type HistogramSummary struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
	Mean  float64
}

func (h *Histogram) Summary() HistogramSummary {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.count == 0 {
		return HistogramSummary{}
	}
	return HistogramSummary{
		Count: h.count,
		Sum:   h.sum,
		Min:   h.min,
		Max:   h.max,
		Mean:  h.sum / float64(h.count),
	}
}

// Timer records the time since it was started into a histogram.
type Timer struct {
	start time.Time
	hist  *Histogram
}

func NewTimer(h *Histogram) *Timer { return &Timer{start: time.Now(), hist: h} }

// Stop records the elapsed time and returns it. A nil histogram only measures.
func (t *Timer) Stop() time.Duration {
	d := time.Since(t.start)
	if t.hist != nil {
		t.hist.ObserveDuration(d)
	}
	return d
}
