package metric

import "errors"

var (
	ErrUnknownMetric   = errors.New("unknown metric")
	ErrWrongKind       = errors.New("wrong metric kind")
	ErrDuplicateMetric = errors.New("duplicate metric")
	ErrInvalidBuckets  = errors.New("invalid histogram buckets")
)
