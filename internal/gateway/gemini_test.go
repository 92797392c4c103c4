package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestClassifyGemini(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
		code int
	}{
		{"http unauthorized", &googleapi.Error{Code: http.StatusUnauthorized}, KindAuth, 401},
		{"http forbidden", fmt.Errorf("wrapped: %w", &googleapi.Error{Code: http.StatusForbidden}), KindAuth, 403},
		{"http server error", &googleapi.Error{Code: http.StatusInternalServerError}, KindProvider, 500},
		{"grpc unauthenticated", status.Error(codes.Unauthenticated, "bad key"), KindAuth, 0},
		{"grpc deadline", status.Error(codes.DeadlineExceeded, "slow"), KindTimeout, 0},
		{"grpc unavailable", status.Error(codes.Unavailable, "down"), KindNetwork, 0},
		{"grpc invalid argument", status.Error(codes.InvalidArgument, "bad"), KindProvider, 0},
		{"plain", errors.New("boom"), KindProvider, 0},
		{"context deadline", context.DeadlineExceeded, KindTimeout, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := classifyGemini(context.Background(), tc.err)
			var gerr *Error
			if !errors.As(err, &gerr) {
				t.Fatalf("want *Error, got %T", err)
			}
			if gerr.Kind != tc.want || gerr.StatusCode != tc.code || gerr.Provider != ProviderGemini {
				t.Fatalf("got kind=%s code=%d provider=%s", gerr.Kind, gerr.StatusCode, gerr.Provider)
			}
			if !errors.Is(err, tc.err) {
				t.Fatal("cause must be preserved")
			}
		})
	}
}

func TestNewGemini_Defaults(t *testing.T) {
	g, err := NewGemini(context.Background(), "test-key", "", 0)
	if err != nil {
		t.Fatalf("NewGemini: %v", err)
	}
	defer g.Close()
	if g.model != DefaultGeminiModel || g.timeout != DefaultTimeout {
		t.Fatalf("defaults not applied: model=%q timeout=%v", g.model, g.timeout)
	}
}
