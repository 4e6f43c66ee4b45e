package telemetry

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

type otlpConnConfig struct {
	GrpcEndpoint string            `json:"grpc_endpoint"`
	HttpEndpoint string            `json:"http_endpoint"`
	Headers      map[string]string `json:"headers"`
}

type otlpConfig struct {
	Traces  otlpConnConfig `json:"traces"`
	Metrics otlpConnConfig `json:"metrics"`
}

type config struct {
	Otlp otlpConfig `json:"otlp"`
}

func newResource(serviceName string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
}

func newTraceProvider(ctx context.Context, r *resource.Resource, config config) (*trace.TracerProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*3)
	defer cancel()

	conn := config.Otlp.Traces
	var exporter trace.SpanExporter
	var err error
	if conn.GrpcEndpoint != "" {
		slog.Info(
			"trace exporter initialized",
			"type", "grpc",
			"endpoint", conn.GrpcEndpoint,
			"headers", len(conn.Headers) > 0,
		)
		exporter, err = otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpointURL(conn.GrpcEndpoint),
			otlptracegrpc.WithHeaders(conn.Headers),
		)
	} else {
		slog.Info(
			"trace exporter initialized",
			"type", "http",
			"endpoint", conn.HttpEndpoint,
			"headers", len(conn.Headers) > 0,
		)
		exporter, err = otlptracehttp.New(
			ctx,
			otlptracehttp.WithEndpointURL(conn.HttpEndpoint),
			otlptracehttp.WithHeaders(conn.Headers),
		)
	}
	if err != nil {
		return nil, err
	}

	return trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(r),
	), nil
}

func newMetricProvider(ctx context.Context, r *resource.Resource, config config) (*metric.MeterProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*3)
	defer cancel()

	conn := config.Otlp.Metrics
	var exporter metric.Exporter
	var err error
	if conn.GrpcEndpoint != "" {
		slog.Info(
			"metric exporter initialized",
			"type", "grpc",
			"endpoint", conn.GrpcEndpoint,
			"headers", len(conn.Headers) > 0,
		)
		exporter, err = otlpmetricgrpc.New(
			ctx,
			otlpmetricgrpc.WithEndpointURL(conn.GrpcEndpoint),
			otlpmetricgrpc.WithHeaders(conn.Headers),
		)
	} else {
		slog.Info(
			"metric exporter initialized",
			"type", "http",
			"endpoint", conn.HttpEndpoint,
			"headers", len(conn.Headers) > 0,
		)
		exporter, err = otlpmetrichttp.New(
			ctx,
			otlpmetrichttp.WithEndpointURL(conn.HttpEndpoint),
			otlpmetrichttp.WithHeaders(conn.Headers),
		)
	}
	if err != nil {
		return nil, err
	}

	return metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(exporter, metric.WithInterval(time.Second*5))),
		metric.WithResource(r),
	), nil
}
