// Package metrics exposes request instruments through an OpenTelemetry
// meter backed by a Prometheus exporter.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
	export "go.opentelemetry.io/otel/sdk/export/metric"
	"go.opentelemetry.io/otel/sdk/metric/aggregator/histogram"
	controller "go.opentelemetry.io/otel/sdk/metric/controller/basic"
	processor "go.opentelemetry.io/otel/sdk/metric/processor/basic"
	selector "go.opentelemetry.io/otel/sdk/metric/selector/simple"
)

// NewExporter builds the Prometheus exporter and installs its meter
// provider globally. The exporter is also the /metrics handler.
func NewExporter() (*prometheus.Exporter, error) {
	config := prometheus.Config{}
	c := controller.New(
		processor.New(
			selector.NewWithHistogramDistribution(
				histogram.WithExplicitBoundaries(config.DefaultHistogramBoundaries),
			),
			export.CumulativeExportKindSelector(),
			processor.WithMemory(true),
		),
	)

	exporter, err := prometheus.New(config, c)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize prometheus exporter: %w", err)
	}
	global.SetMeterProvider(exporter.MeterProvider())

	return exporter, nil
}

// Recorder counts completed requests and records their latency, labelled
// by method, route pattern and status.
type Recorder struct {
	completed metric.Int64Counter
	latency   metric.Float64ValueRecorder
}

func NewRecorder(meter metric.Meter) (*Recorder, error) {
	completed, err := meter.NewInt64Counter(
		"http.server.completed_count",
		metric.WithDescription("Count of completed requests, by HTTP method, route and response status"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.NewFloat64ValueRecorder(
		"http.server.duration_ms",
		metric.WithDescription("Request latency in milliseconds, by HTTP method, route and response status"),
	)
	if err != nil {
		return nil, err
	}

	return &Recorder{completed: completed, latency: latency}, nil
}

func (rc *Recorder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		labels := []attribute.KeyValue{
			attribute.String("method", r.Method),
			attribute.String("route", route),
			attribute.String("status", strconv.Itoa(status)),
		}
		rc.completed.Add(r.Context(), 1, labels...)
		rc.latency.Record(r.Context(), float64(time.Since(start))/float64(time.Millisecond), labels...)
	})
}
