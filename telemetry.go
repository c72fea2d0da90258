package main

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/kyleleelarson/barchart"

var tracer = otel.Tracer(instrumentationName)

// instruments are the chart metrics. Without an SDK installed they are
// no-ops.
type instruments struct {
	updates  metric.Int64Counter
	rejected metric.Int64Counter
	renders  metric.Int64Counter
	bars     metric.Int64Histogram
}

func newInstruments() (*instruments, error) {
	meter := otel.Meter(instrumentationName)

	updates, err := meter.Int64Counter("barchart.updates",
		metric.WithDescription("Datasets applied to a chart"))
	if err != nil {
		return nil, err
	}
	rejected, err := meter.Int64Counter("barchart.updates.rejected",
		metric.WithDescription("Datasets refused by validation"))
	if err != nil {
		return nil, err
	}
	renders, err := meter.Int64Counter("barchart.renders",
		metric.WithDescription("Frames drawn, by surface"))
	if err != nil {
		return nil, err
	}
	bars, err := meter.Int64Histogram("barchart.bars",
		metric.WithDescription("Bars per applied dataset"),
		metric.WithUnit("{bar}"))
	if err != nil {
		return nil, err
	}
	return &instruments{updates: updates, rejected: rejected, renders: renders, bars: bars}, nil
}

func (i *instruments) updated(ctx context.Context, n int) {
	i.updates.Add(ctx, 1)
	i.bars.Record(ctx, int64(n))
}

func (i *instruments) rendered(ctx context.Context, surface string) {
	i.renders.Add(ctx, 1, metric.WithAttributes(attribute.String("surface", surface)))
}
