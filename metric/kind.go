package metric

// Kind of the metric
type Kind int32

const (
	KindCounter Kind = iota + 1
	KindGauge
	KindHistogram
	KindSummary
)

func (k Kind) String() string {

	switch k {
	case KindCounter:
		return "counter"
	case KindGauge:
		return "gauge"
	case KindHistogram:
		return "histogram"
	case KindSummary:
		return "summary"
	}

	return "unknown"
}
