package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/trace"
)

var state struct {
	tracerProvider *trace.TracerProvider
	meterProvider  *metric.MeterProvider
}

func Setup(ctx context.Context, serviceName string, config config) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*15)
	defer cancel()

	r, err := newResource(serviceName)
	if err != nil {
		return err
	}

	tracerProvider, err := newTraceProvider(ctx, r, config)
	if err != nil {
		return err
	}
	otel.SetTracerProvider(tracerProvider)
	state.tracerProvider = tracerProvider

	meterProvider, err := newMetricProvider(ctx, r, config)
	if err != nil {
		return err
	}
	otel.SetMeterProvider(meterProvider)
	state.meterProvider = meterProvider

	return nil
}

// flushes any pending spans and metrics, Setup must have been
// called beforehand
func Shutdown(ctx context.Context) error {
	var errlist []error
	if state.tracerProvider != nil {
		err := state.tracerProvider.Shutdown(ctx)
		if err != nil {
			errlist = append(errlist, err)
		}
	}
	if state.meterProvider != nil {
		err := state.meterProvider.Shutdown(ctx)
		if err != nil {
			errlist = append(errlist, err)
		}
	}
	return errors.Join(errlist...)
}
