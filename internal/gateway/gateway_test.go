package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

type stubGen struct {
	text string
	err  error
}

func (s stubGen) Generate(context.Context, string, float64, int) (string, error) {
	return s.text, s.err
}

func TestError_MessageAndUnwrap(t *testing.T) {
	root := errors.New("connection refused")
	err := fmt.Errorf("wrapped: %w", &Error{Provider: "p", Kind: KindAuth, StatusCode: 401, Err: root})

	if !errors.Is(err, root) {
		t.Fatalf("errors.Is should reach the cause")
	}
	if KindOf(err) != KindAuth {
		t.Fatalf("KindOf = %q", KindOf(err))
	}
	if KindOf(root) != "" {
		t.Fatalf("KindOf(non-gateway) should be empty")
	}
	msg := err.Error()
	for _, want := range []string{"gateway p", "auth", "status 401", "connection refused"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestOffline_AlwaysUnavailable(t *testing.T) {
	_, err := Offline{Reason: "no key"}.Generate(context.Background(), "p", 0.7, 10)
	if KindOf(err) != KindUnavailable {
		t.Fatalf("kind = %q", KindOf(err))
	}
}

func TestNew_ProviderSelection(t *testing.T) {
	ctx := context.Background()

	g, err := New(ctx, Config{Provider: "openrouter", OpenRouterAPIKey: "k"})
	if err != nil || g.Provider != ProviderOpenRouter {
		t.Fatalf("openrouter: %v %+v", err, g)
	}
	if _, ok := g.Next.(*OpenRouter); !ok {
		t.Fatalf("openrouter backend = %T", g.Next)
	}

	g, err = New(ctx, Config{Provider: ""})
	if err != nil || g.Provider != ProviderOffline {
		t.Fatalf("missing key should degrade to offline: %v %+v", err, g)
	}

	g, err = New(ctx, Config{Provider: "GEMINI"})
	if err != nil || g.Provider != ProviderOffline {
		t.Fatalf("gemini without key should degrade to offline: %v %+v", err, g)
	}

	if _, err := New(ctx, Config{Provider: "bard"}); err == nil {
		t.Fatalf("unknown provider should fail")
	}
}

func TestInstrumented_CountsOutcomes(t *testing.T) {
	okBase := testutil.ToFloat64(gatewayReqs.WithLabelValues("stub", "ok"))
	toBase := testutil.ToFloat64(gatewayReqs.WithLabelValues("stub", string(KindTimeout)))
	plainBase := testutil.ToFloat64(gatewayReqs.WithLabelValues("stub", string(KindProvider)))

	ok := Instrument("stub", stubGen{text: "hi"})
	if text, err := ok.Generate(context.Background(), "p", 0.7, 10); err != nil || text != "hi" {
		t.Fatalf("ok call: %q %v", text, err)
	}

	gerr := &Error{Provider: "stub", Kind: KindTimeout}
	bad := Instrument("stub", stubGen{err: gerr})
	if _, err := bad.Generate(context.Background(), "p", 0.7, 10); err != gerr {
		t.Fatalf("error should pass through unchanged, got %v", err)
	}

	plain := Instrument("stub", stubGen{err: errors.New("x")})
	_, _ = plain.Generate(context.Background(), "p", 0.7, 10)

	if got := testutil.ToFloat64(gatewayReqs.WithLabelValues("stub", "ok")); got != okBase+1 {
		t.Fatalf("ok counter = %v; want %v", got, okBase+1)
	}
	if got := testutil.ToFloat64(gatewayReqs.WithLabelValues("stub", string(KindTimeout))); got != toBase+1 {
		t.Fatalf("timeout counter = %v; want %v", got, toBase+1)
	}
	if got := testutil.ToFloat64(gatewayReqs.WithLabelValues("stub", string(KindProvider))); got != plainBase+1 {
		t.Fatalf("untyped errors count as provider, got %v", got)
	}
	if err := ok.Close(); err != nil {
		t.Fatalf("Close on non-closer: %v", err)
	}
}
