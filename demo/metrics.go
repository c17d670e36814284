// Package demo declares the test metrics and the console commands that
// change them.
package demo

import (
	"github.com/dialogs/console-exporter/metric"
)

// Prefix of all demo metric names
const Prefix = "demo_"

const (
	CommandsCount = Prefix + "commands_count"
	Requests      = Prefix + "requests"
	Summary       = Prefix + "summary"
	Counter       = Prefix + "counter"
	Gauge         = Prefix + "gauge"
)

// Buckets of the demo histogram
var Buckets = []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 20, 100}

// RegisterMetrics adds the demo metrics to the registry
func RegisterMetrics(r *metric.Registry) error {

	for _, fn := range []func() error{
		func() error { return r.NewCounter(CommandsCount, "Total cli commands") },
		func() error { return r.NewHistogram(Requests, "Demo histogram", Buckets) },
		func() error { return r.NewSummary(Summary, "Sum of numbers") },
		func() error { return r.NewCounter(Counter, "Demo events counter") },
		func() error { return r.NewGauge(Gauge, "Demo gauge") },
	} {
		if err := fn(); err != nil {
			return err
		}
	}

	return nil
}
