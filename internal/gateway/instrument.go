package gateway

import (
	"context"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	// gatewayReqs counts model calls by provider and outcome ("ok" or a Kind).
	gatewayReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_gateway_requests_total",
			Help: "Total number of model gateway calls.",
		},
		[]string{"provider", "outcome"},
	)

	gatewayLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_gateway_request_duration_seconds",
			Help:    "Duration of model gateway calls in seconds.",
			Buckets: []float64{.25, .5, 1, 2, 4, 8, 15, 30, 60},
		},
		[]string{"provider"},
	)
)

func init() {
	prometheus.MustRegister(gatewayReqs, gatewayLat)
}

// Instrumented decorates a Generator with Prometheus metrics and a span per
// call. Errors pass through unchanged.
type Instrumented struct {
	Provider string
	Next     Generator
}

// Instrument wraps g. provider is used as the metric label.
func Instrument(provider string, g Generator) *Instrumented {
	return &Instrumented{Provider: provider, Next: g}
}

func (i *Instrumented) Generate(ctx context.Context, prompt string, temperature float64, maxOutputTokens int) (string, error) {
	ctx, span := otel.Tracer("gateway").Start(ctx, "Generate",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("llm.provider", i.Provider),
			attribute.Float64("llm.temperature", temperature),
			attribute.Int("llm.max_tokens", maxOutputTokens),
			attribute.Int("llm.prompt_chars", len(prompt)),
		),
	)
	defer span.End()

	start := time.Now()
	text, err := i.Next.Generate(ctx, prompt, temperature, maxOutputTokens)
	gatewayLat.WithLabelValues(i.Provider).Observe(time.Since(start).Seconds())

	if err != nil {
		kind := KindOf(err)
		if kind == "" {
			kind = KindProvider
		}
		gatewayReqs.WithLabelValues(i.Provider, string(kind)).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, string(kind))
		return "", err
	}
	gatewayReqs.WithLabelValues(i.Provider, "ok").Inc()
	span.SetAttributes(attribute.Int("llm.completion_chars", len(text)))
	return text, nil
}

// Close closes the wrapped backend when it holds resources.
func (i *Instrumented) Close() error {
	if c, ok := i.Next.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
