package metric

import (
	"sort"
	"sync"

	pkgerr "github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

type entry struct {
	kind     Kind
	counter  ICounter
	gauge    IGauge
	observer IObserver
}

// A Registry owns the named metrics of the process.
//
// Metrics are added at startup only and live for the process lifetime.
// Every update and every Gather go through the prometheus metric types,
// which keep each metric internally consistent (a histogram's buckets,
// sum and count are read as one unit) without locking the whole registry
// while a scrape is rendered.
type Registry struct {
	mu       sync.RWMutex
	metrics  map[string]*entry
	gatherer *prometheus.Registry
}

// NewRegistry creates an empty registry. It has no runtime or process
// collectors, so only the metrics added to it are exported.
func NewRegistry() *Registry {
	return &Registry{
		metrics:  make(map[string]*entry),
		gatherer: prometheus.NewRegistry(),
	}
}

// NewCounter adds a counter
func (r *Registry) NewCounter(name, help string) error {

	c := prometheus.NewCounter(prometheus.CounterOpts{
		Name: name,
		Help: help,
	})

	return r.add(name, c, &entry{kind: KindCounter, counter: c})
}

// NewGauge adds a gauge
func (r *Registry) NewGauge(name, help string) error {

	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	})

	return r.add(name, g, &entry{kind: KindGauge, gauge: g})
}

// NewHistogram adds a histogram with strictly ascending bucket upper bounds.
// The +Inf bucket is implicit.
func (r *Registry) NewHistogram(name, help string, buckets []float64) error {

	if len(buckets) == 0 {
		return pkgerr.Wrapf(ErrInvalidBuckets, "metric %q: no buckets", name)
	}

	for i := 1; i < len(buckets); i++ {
		if buckets[i] <= buckets[i-1] {
			return pkgerr.Wrapf(ErrInvalidBuckets,
				"metric %q: bucket %v is not greater than %v", name, buckets[i], buckets[i-1])
		}
	}

	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    name,
		Help:    help,
		Buckets: append([]float64(nil), buckets...),
	})

	return r.add(name, h, &entry{kind: KindHistogram, observer: h})
}

// NewSummary adds a summary without quantiles: only sum and count are exported.
func (r *Registry) NewSummary(name, help string) error {

	s := prometheus.NewSummary(prometheus.SummaryOpts{
		Name: name,
		Help: help,
	})

	return r.add(name, s, &entry{kind: KindSummary, observer: s})
}

func (r *Registry) add(name string, c prometheus.Collector, e *entry) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.metrics[name]; ok {
		return pkgerr.Wrapf(ErrDuplicateMetric, "metric %q", name)
	}

	if err := r.gatherer.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return pkgerr.Wrapf(ErrDuplicateMetric, "metric %q", name)
		}
		return pkgerr.Wrapf(err, "register metric %q", name)
	}

	r.metrics[name] = e
	return nil
}

// Kind returns the kind of the registered metric
func (r *Registry) Kind(name string) (Kind, bool) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.metrics[name]
	if !ok {
		return 0, false
	}

	return e.kind, true
}

// Names returns the sorted names of all registered metrics
func (r *Registry) Names() []string {

	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Inc increments a counter by 1
func (r *Registry) Inc(name string) error {

	e, err := r.lookup(name, KindCounter)
	if err != nil {
		return err
	}

	e.counter.Inc()
	return nil
}

// Set replaces the value of a gauge
func (r *Registry) Set(name string, val float64) error {

	e, err := r.lookup(name, KindGauge)
	if err != nil {
		return err
	}

	e.gauge.Set(val)
	return nil
}

// Observe adds an observation to a histogram or a summary
func (r *Registry) Observe(name string, val float64) error {

	e, err := r.lookup(name, KindHistogram, KindSummary)
	if err != nil {
		return err
	}

	e.observer.Observe(val)
	return nil
}

// Gather implements prometheus.Gatherer. Every call returns a fresh
// snapshot of all metrics sorted by name.
func (r *Registry) Gather() ([]*dto.MetricFamily, error) {
	return r.gatherer.Gather()
}

func (r *Registry) lookup(name string, kinds ...Kind) (*entry, error) {

	r.mu.RLock()
	e, ok := r.metrics[name]
	r.mu.RUnlock()

	if !ok {
		return nil, pkgerr.Wrapf(ErrUnknownMetric, "metric %q", name)
	}

	for _, k := range kinds {
		if e.kind == k {
			return e, nil
		}
	}

	return nil, pkgerr.Wrapf(ErrWrongKind, "metric %q is a %s", name, e.kind)
}
