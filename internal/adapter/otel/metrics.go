package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "poforge"

// Metrics holds all POForge metric instruments.
type Metrics struct {
	TasksSubmitted  metric.Int64Counter
	TasksCompleted  metric.Int64Counter
	TasksFailed     metric.Int64Counter
	TasksCanceled   metric.Int64Counter
	DecodeFailures  metric.Int64Counter
	ProcessDuration metric.Float64Histogram
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.TasksSubmitted, err = meter.Int64Counter("poforge.tasks.submitted",
		metric.WithDescription("Number of purchase order submissions received"))
	if err != nil {
		return nil, err
	}

	m.TasksCompleted, err = meter.Int64Counter("poforge.tasks.completed",
		metric.WithDescription("Number of tasks completed without validation errors"))
	if err != nil {
		return nil, err
	}

	m.TasksFailed, err = meter.Int64Counter("poforge.tasks.failed",
		metric.WithDescription("Number of tasks that failed validation"))
	if err != nil {
		return nil, err
	}

	m.TasksCanceled, err = meter.Int64Counter("poforge.tasks.canceled",
		metric.WithDescription("Number of tasks cancelled by callers"))
	if err != nil {
		return nil, err
	}

	m.DecodeFailures, err = meter.Int64Counter("poforge.decode.failures",
		metric.WithDescription("Number of envelopes with no decodable purchase order"))
	if err != nil {
		return nil, err
	}

	m.ProcessDuration, err = meter.Float64Histogram("poforge.process.duration_seconds",
		metric.WithDescription("Purchase order processing duration in seconds"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
