package metric

type IObserver interface {
	// Observe adds a single observation to the histogram or summary.
	Observe(float64)
}

type ICounter interface {
	// Inc increments the counter by 1. non-negative values.
	Inc()

	// Add adds the given value to the counter. It panics if the value is < 0.
	Add(val float64)
}

type IGauge interface {
	// Set sets the gauge to an arbitrary value.
	Set(val float64)
}

// IMutator updates registered metrics by name
type IMutator interface {
	// Inc increments a counter by 1
	Inc(name string) error

	// Set replaces the value of a gauge
	Set(name string, val float64) error

	// Observe adds an observation to a histogram or a summary
	Observe(name string, val float64) error
}
