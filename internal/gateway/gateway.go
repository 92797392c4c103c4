// Package gateway is the boundary to the hosted language models. Every
// backend exposes the same single call, Generate, and reports failures as
// *Error so callers can switch to their fallback content without inspecting
// provider-specific errors.
//
// Backends are stateless between calls: all conversational context must be
// carried in the prompt. No retries are performed here.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Generator produces completion text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, temperature float64, maxOutputTokens int) (string, error)
}

// Kind classifies why a model call failed.
type Kind string

const (
	KindNetwork     Kind = "network"
	KindAuth        Kind = "auth"
	KindProvider    Kind = "provider"
	KindTimeout     Kind = "timeout"
	KindEmpty       Kind = "empty"
	KindUnavailable Kind = "unavailable"
)

// Error is returned by every Generator in this package.
type Error struct {
	Provider   string
	Kind       Kind
	StatusCode int // upstream HTTP status when known
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "gateway %s: %s", e.Provider, e.Kind)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of a gateway error, or "" if err is not one.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return ""
}

// isTimeout reports whether err was caused by a deadline, either the one on
// ctx or the client's own timeout.
func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

// Provider names accepted by New.
const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
	ProviderOffline    = "offline"
)

// Config selects and parameterizes a backend.
type Config struct {
	Provider string

	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	Model             string

	GeminiAPIKey string
	GeminiModel  string

	Timeout time.Duration
}

// New builds the configured backend wrapped with metrics and tracing.
// A backend whose API key is missing degrades to Offline so the service
// keeps answering from its fallback content.
func New(ctx context.Context, cfg Config) (*Instrumented, error) {
	var (
		g    Generator
		name string
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderOpenRouter:
		name = ProviderOpenRouter
		if cfg.OpenRouterAPIKey == "" {
			g, name = Offline{Reason: "OPENROUTER_API_KEY is not set"}, ProviderOffline
			break
		}
		g = NewOpenRouter(cfg.OpenRouterAPIKey, cfg.OpenRouterBaseURL, cfg.Model, cfg.Timeout)
	case ProviderGemini:
		name = ProviderGemini
		if cfg.GeminiAPIKey == "" {
			g, name = Offline{Reason: "GEMINI_API_KEY is not set"}, ProviderOffline
			break
		}
		gm, err := NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		g = gm
	case ProviderOffline:
		g, name = Offline{Reason: "provider disabled"}, ProviderOffline
	default:
		return nil, fmt.Errorf("gateway: unknown provider %q", cfg.Provider)
	}
	return Instrument(name, g), nil
}
