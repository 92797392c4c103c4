package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestWithTrace(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	l := WithTrace(context.Background(), base.With()).Logger()
	l.Info().Msg("plain")
	var plain map[string]any
	if err := json.Unmarshal(buf.Bytes(), &plain); err != nil {
		t.Fatal(err)
	}
	if _, ok := plain["trace_id"]; ok {
		t.Fatal("trace_id must be absent without a span")
	}

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	buf.Reset()
	l = WithTrace(ctx, base.With()).Logger()
	l.Info().Msg("traced")
	var traced map[string]any
	if err := json.Unmarshal(buf.Bytes(), &traced); err != nil {
		t.Fatal(err)
	}
	if traced["trace_id"] != span.SpanContext().TraceID().String() {
		t.Fatalf("trace_id=%v", traced["trace_id"])
	}
	if traced["span_id"] != span.SpanContext().SpanID().String() {
		t.Fatalf("span_id=%v", traced["span_id"])
	}
}
