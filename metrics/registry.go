package metrics

import (
	"fmt"
	"io"
	"slices"
	"sync"
)

// Registry hands out named metrics, creating them on first use.
type Registry struct {
	mu         sync.RWMutex
	counters   map[string]*Counter
	gauges     map[string]*Gauge
	histograms map[string]*Histogram
}

func NewRegistry() *Registry {
	return &Registry{
		counters:   make(map[string]*Counter),
		gauges:     make(map[string]*Gauge),
		histograms: make(map[string]*Histogram),
	}
}

// getOrCreate looks name up under the read lock and falls back to creating
// it under the write lock.
func getOrCreate[T any](r *Registry, m map[string]*T, name string, mk func(string) *T) *T {
	r.mu.RLock()
	v, ok := m[name]
	r.mu.RUnlock()
	if ok {
		return v
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok = m[name]; ok {
		return v
	}
	v = mk(name)
	m[name] = v
	return v
}

func (r *Registry) Counter(name string) *Counter {
	return getOrCreate(r, r.counters, name, NewCounter)
}

func (r *Registry) Gauge(name string) *Gauge {
	return getOrCreate(r, r.gauges, name, NewGauge)
}

func (r *Registry) Histogram(name string) *Histogram {
	return getOrCreate(r, r.histograms, name, NewHistogram)
}

// Snapshot copies every value: int64 for counters and gauges,
// HistogramSummary for histograms.
func (r *Registry) Snapshot() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap := make(map[string]any, len(r.counters)+len(r.gauges)+len(r.histograms))
	for name, c := range r.counters {
		snap[name] = c.Value()
	}
	for name, g := range r.gauges {
		snap[name] = g.Value()
	}
	for name, h := range r.histograms {
		snap[name] = h.Summary()
	}
	return snap
}

// WriteTo prints the snapshot one metric per line, sorted by name.
func (r *Registry) WriteTo(w io.Writer) (int64, error) {
	snap := r.Snapshot()
	names := make([]string, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	slices.Sort(names)

	var total int64
	for _, name := range names {
		var (
			n   int
			err error
		)
		switch v := snap[name].(type) {
		case HistogramSummary:
			n, err = fmt.Fprintf(w, "%s count=%d mean=%.0fus min=%.0fus max=%.0fus\n", name, v.Count, v.Mean, v.Min, v.Max)
		default:
			n, err = fmt.Fprintf(w, "%s %v\n", name, v)
		}
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
