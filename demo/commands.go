package demo

import (
	"context"
	"errors"
	"strconv"

	"github.com/dialogs/console-exporter/command"
	"github.com/dialogs/console-exporter/metric"
)

const MsgInvalidNumber = "Invalid number, skipped."

// RegisterCommands declares the metric testing loops
func RegisterCommands(b *command.Builder, m metric.IMutator) *command.Builder {
	return b.
		Add("gauge", "Gauge testing loop.", numberLoop(
			"Gauge loop. Every entered number change current value of gauge metric. Empty string to stop.",
			func(val float64) error { return m.Set(Gauge, val) })).
		Add("histogram", "Histogram testing loop.", numberLoop(
			"Histogram loop. Every entered number produce observation for histogram metric. Empty string to stop.",
			func(val float64) error { return m.Observe(Requests, val) })).
		Add("summary", "Summary testing loop.", numberLoop(
			"Sum observe loop. Every entered number produce observation for summary metric. Empty string to stop.",
			func(val float64) error { return m.Observe(Summary, val) })).
		Add("counter", "Counter testing loop.", counterLoop(m))
}

// numberLoop applies every entered number until an empty line
func numberLoop(intro string, apply func(float64) error) command.Handler {
	return func(ctx context.Context, s command.Session) error {

		s.Println(intro)

		for {
			line, err := s.ReadLine(ctx)
			if err != nil {
				return err
			}

			if line == "" {
				return nil
			}

			// out of range values are kept as ±Inf or 0
			val, err := strconv.ParseFloat(line, 64)
			if err != nil && !errors.Is(err, strconv.ErrRange) {
				s.Println(MsgInvalidNumber)
				continue
			}

			if err := apply(val); err != nil {
				return err
			}
		}
	}
}

// counterLoop increments the counter for every line until "exit" or "stop"
func counterLoop(m metric.IMutator) command.Handler {
	return func(ctx context.Context, s command.Session) error {

		s.Println(`Counter testing loop. Any input until "stop" or "exit" increments counter. Empty strings also increments counter.`)

		for {
			line, err := s.ReadLine(ctx)
			if err != nil {
				return err
			}

			if line == "exit" || line == "stop" {
				return nil
			}

			if err := m.Inc(Counter); err != nil {
				return err
			}
		}
	}
}
