package gateway

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const DefaultGeminiModel = "gemini-1.5-flash"

// Gemini calls Google's Generative Language API through the official SDK.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGemini opens an SDK client. Close releases it.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &Error{Provider: ProviderGemini, Kind: KindUnavailable, Err: err}
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Gemini{client: client, model: model, timeout: timeout}, nil
}

// Generate maps temperature and the token cap onto the model's
// GenerationConfig and concatenates the text parts of the first candidate.
func (g *Gemini) Generate(ctx context.Context, prompt string, temperature float64, maxOutputTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	m := g.client.GenerativeModel(g.model)
	m.SetTemperature(float32(temperature))
	m.SetMaxOutputTokens(int32(maxOutputTokens))

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyGemini(ctx, err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &Error{Provider: ProviderGemini, Kind: KindEmpty, Err: errors.New("no candidates")}
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", &Error{Provider: ProviderGemini, Kind: KindEmpty, Err: errors.New("no completion text")}
	}
	return b.String(), nil
}

// Close releases the SDK client.
func (g *Gemini) Close() error { return g.client.Close() }

func classifyGemini(ctx context.Context, err error) error {
	e := &Error{Provider: ProviderGemini, Kind: KindProvider, Err: err}
	if isTimeout(ctx, err) {
		e.Kind = KindTimeout
		return e
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		e.StatusCode = gerr.Code
		if gerr.Code == http.StatusUnauthorized || gerr.Code == http.StatusForbidden {
			e.Kind = KindAuth
		}
		return e
	}
	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.Unauthenticated, codes.PermissionDenied:
			e.Kind = KindAuth
		case codes.DeadlineExceeded:
			e.Kind = KindTimeout
		case codes.Unavailable:
			e.Kind = KindNetwork
		}
	}
	return e
}
