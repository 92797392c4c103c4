package observability

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// WithTrace adds trace_id and span_id to a logger context when ctx carries a
// valid span.
func WithTrace(ctx context.Context, lc zerolog.Context) zerolog.Context {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return lc
	}
	return lc.
		Str("trace_id", sc.TraceID().String()).
		Str("span_id", sc.SpanID().String())
}
