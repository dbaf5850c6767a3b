package engine

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/cartomark/annotate/internal/engine"

type engineMetrics struct {
	opDuration metric.Float64Histogram
}

func newEngineMetrics() *engineMetrics {
	m := otel.Meter(instrumentationName)
	hist, err := m.Float64Histogram(
		"annotate.engine.op.duration",
		metric.WithDescription("Duration of committed edit operations"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return &engineMetrics{}
	}
	return &engineMetrics{opDuration: hist}
}

func (em *engineMetrics) recordOp(op string, d time.Duration) {
	if em == nil || em.opDuration == nil {
		return
	}
	em.opDuration.Record(context.Background(),
		float64(d.Microseconds())/1000.0,
		metric.WithAttributes(attribute.String("operation", op)))
}
