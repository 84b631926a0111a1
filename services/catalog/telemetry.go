package main

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// catalogMetrics holds the counters bumped by the use cases
type catalogMetrics struct {
	productsCreated  metric.Int64Counter
	productsDeleted  metric.Int64Counter
	inventoryUpdates metric.Int64Counter
}

func newCatalogMetrics(meter metric.Meter) (*catalogMetrics, error) {
	productsCreated, err := meter.Int64Counter("catalog.products.created",
		metric.WithDescription("Products created, including bulk inserts"))
	if err != nil {
		return nil, fmt.Errorf("failed to create products.created counter: %w", err)
	}

	productsDeleted, err := meter.Int64Counter("catalog.products.deleted",
		metric.WithDescription("Products deleted together with their inventory"))
	if err != nil {
		return nil, fmt.Errorf("failed to create products.deleted counter: %w", err)
	}

	inventoryUpdates, err := meter.Int64Counter("catalog.inventory.updates",
		metric.WithDescription("Inventory quantity writes"))
	if err != nil {
		return nil, fmt.Errorf("failed to create inventory.updates counter: %w", err)
	}

	return &catalogMetrics{
		productsCreated:  productsCreated,
		productsDeleted:  productsDeleted,
		inventoryUpdates: inventoryUpdates,
	}, nil
}

func newResource(ctx context.Context, cfg Config) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion("1.0.0"),
		),
	)
}

func initTracer(cfg Config) (*sdktrace.TracerProvider, error) {
	ctx := context.Background()

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.OTLPEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	otel.SetTracerProvider(tp)

	return tp, nil
}

func initMetrics(cfg Config) (*sdkmetric.MeterProvider, error) {
	ctx := context.Background()

	exporter, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpoint(cfg.OTLPEndpoint),
		otlpmetrichttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	return mp, nil
}
