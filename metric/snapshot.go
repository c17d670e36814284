package metric

import (
	"math"

	dto "github.com/prometheus/client_model/go"
)

// A Bucket of the histogram snapshot. Count is cumulative.
type Bucket struct {
	UpperBound float64
	Count      uint64
}

// A Sample is an immutable copy of one metric
type Sample struct {
	Name string
	Help string
	Kind Kind

	// Value of a counter or a gauge
	Value float64

	// Sum and Count of a histogram or a summary
	Sum   float64
	Count uint64

	// Buckets of a histogram in ascending order, +Inf included
	Buckets []Bucket
}

// Snapshot returns a copy of all metrics sorted by name
func (r *Registry) Snapshot() ([]Sample, error) {

	families, err := r.Gather()
	if err != nil {
		return nil, err
	}

	retval := make([]Sample, 0, len(families))
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			retval = append(retval, newSample(mf, m))
		}
	}

	return retval, nil
}

// Sample returns a copy of one metric
func (r *Registry) Sample(name string) (Sample, error) {

	if _, err := r.lookup(name, KindCounter, KindGauge, KindHistogram, KindSummary); err != nil {
		return Sample{}, err
	}

	samples, err := r.Snapshot()
	if err != nil {
		return Sample{}, err
	}

	for _, s := range samples {
		if s.Name == name {
			return s, nil
		}
	}

	return Sample{}, ErrUnknownMetric
}

func newSample(mf *dto.MetricFamily, m *dto.Metric) Sample {

	s := Sample{
		Name: mf.GetName(),
		Help: mf.GetHelp(),
	}

	switch mf.GetType() {
	case dto.MetricType_COUNTER:
		s.Kind = KindCounter
		s.Value = m.GetCounter().GetValue()

	case dto.MetricType_GAUGE:
		s.Kind = KindGauge
		s.Value = m.GetGauge().GetValue()

	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		s.Kind = KindHistogram
		s.Sum = h.GetSampleSum()
		s.Count = h.GetSampleCount()

		s.Buckets = make([]Bucket, 0, len(h.GetBucket())+1)
		for _, b := range h.GetBucket() {
			s.Buckets = append(s.Buckets, Bucket{
				UpperBound: b.GetUpperBound(),
				Count:      b.GetCumulativeCount(),
			})
		}
		if n := len(s.Buckets); n == 0 || !math.IsInf(s.Buckets[n-1].UpperBound, 1) {
			s.Buckets = append(s.Buckets, Bucket{UpperBound: math.Inf(1), Count: s.Count})
		}

	case dto.MetricType_SUMMARY:
		sum := m.GetSummary()
		s.Kind = KindSummary
		s.Sum = sum.GetSampleSum()
		s.Count = sum.GetSampleCount()
	}

	return s
}
