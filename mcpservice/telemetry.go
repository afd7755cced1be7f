package mcpservice

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/ggoodman/mcp-greeter-go/mcpservice"

// TelemetryOption configures the Telemetry middleware.
type TelemetryOption func(*telemetryConfig)

type telemetryConfig struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	serviceName    string
	skipMethods    map[string]bool
}

// WithTracerProvider sets a custom tracer provider. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) TelemetryOption {
	return func(c *telemetryConfig) { c.tracerProvider = tp }
}

// WithMeterProvider sets a custom meter provider. Defaults to the global one.
func WithMeterProvider(mp metric.MeterProvider) TelemetryOption {
	return func(c *telemetryConfig) { c.meterProvider = mp }
}

// WithServiceName sets the service.name attribute on spans and metrics.
func WithServiceName(name string) TelemetryOption {
	return func(c *telemetryConfig) { c.serviceName = name }
}

// WithSkipMethods disables instrumentation for the named methods.
func WithSkipMethods(methods ...string) TelemetryOption {
	return func(c *telemetryConfig) {
		for _, m := range methods {
			c.skipMethods[m] = true
		}
	}
}

// Telemetry returns receiving middleware that opens a server span per request
// and records request counts, errors and latency.
func Telemetry(opts ...TelemetryOption) mcp.Middleware {
	cfg := &telemetryConfig{
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
		serviceName:    "mcp-server",
		skipMethods:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	tracer := cfg.tracerProvider.Tracer(instrumentationName)
	meter := cfg.meterProvider.Meter(instrumentationName)

	requests, _ := meter.Int64Counter("mcp.server.requests",
		metric.WithDescription("Total number of MCP requests"),
		metric.WithUnit("{request}"))
	failures, _ := meter.Int64Counter("mcp.server.errors",
		metric.WithDescription("Total number of failed MCP requests"),
		metric.WithUnit("{error}"))
	latency, _ := meter.Float64Histogram("mcp.server.request.duration",
		metric.WithDescription("Duration of MCP requests"),
		metric.WithUnit("ms"))

	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			if cfg.skipMethods[method] {
				return next(ctx, method, req)
			}

			attrs := []attribute.KeyValue{
				attribute.String("mcp.method", method),
				attribute.String("service.name", cfg.serviceName),
			}
			if tool := toolName(req); tool != "" {
				attrs = append(attrs, attribute.String("mcp.tool", tool))
			}

			ctx, span := tracer.Start(ctx, "mcp."+method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attrs...))
			defer span.End()

			start := time.Now()
			requests.Add(ctx, 1, metric.WithAttributes(attrs...))
			res, err := next(ctx, method, req)
			latency.Record(ctx, float64(time.Since(start).Microseconds())/1000, metric.WithAttributes(attrs...))

			switch {
			case err != nil:
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				failures.Add(ctx, 1, metric.WithAttributes(attrs...))
			case isToolError(res):
				span.SetAttributes(attribute.Bool("mcp.tool.is_error", true))
				span.SetStatus(codes.Error, "tool returned an error result")
				failures.Add(ctx, 1, metric.WithAttributes(attrs...))
			default:
				span.SetStatus(codes.Ok, "")
			}
			return res, err
		}
	}
}
