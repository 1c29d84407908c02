package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
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

type Metrics struct {
	exporter  *prometheus.Exporter
	completed metric.Int64Counter
	duration  metric.Float64ValueRecorder
	toggles   metric.Int64Counter
}

// New wires a pull based Prometheus exporter and registers it as the global
// meter provider.
func New(service string) (*Metrics, error) {
	config := prometheus.Config{
		DefaultHistogramBoundaries: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
	}
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
		return nil, err
	}
	global.SetMeterProvider(exporter.MeterProvider())

	meter := exporter.MeterProvider().Meter(service)
	m := &Metrics{exporter: exporter}
	m.completed = metric.Must(meter).NewInt64Counter(
		"http/server/completed_count",
		metric.WithDescription("Count of completed requests, by route, HTTP method and response status"),
	)
	m.duration = metric.Must(meter).NewFloat64ValueRecorder(
		"http/server/duration_ms",
		metric.WithDescription("Request latency in milliseconds"),
	)
	m.toggles = metric.Must(meter).NewInt64Counter(
		"articles/toggle_count",
		metric.WithDescription("Like and bookmark toggles, by kind and result"),
	)
	return m, nil
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return m.exporter
}

// Middleware records count and latency per matched route.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		labels := []attribute.KeyValue{
			attribute.String("route", fiberutils.CopyString(c.Route().Path)),
			attribute.String("method", fiberutils.CopyString(c.Method())),
			attribute.Int("status", status),
		}
		ctx := c.UserContext()
		m.completed.Add(ctx, 1, labels...)
		m.duration.Record(ctx, float64(time.Since(start).Microseconds())/1000, labels...)
		return err
	}
}

func (m *Metrics) ToggleRecorded(ctx context.Context, kind string, added bool) {
	result := "removed"
	if added {
		result = "added"
	}
	m.toggles.Add(ctx, 1, attribute.String("kind", kind), attribute.String("result", result))
}
