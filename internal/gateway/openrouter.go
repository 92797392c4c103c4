package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel             = "anthropic/claude-3.5-sonnet"
	DefaultTimeout           = 60 * time.Second

	// upstream error bodies are kept only up to this size
	maxErrorBody = 512
)

// OpenRouter calls an OpenAI-compatible chat completions endpoint.
type OpenRouter struct {
	APIKey  string
	BaseURL string
	Model   string
	Client  *http.Client
}

// NewOpenRouter returns a client with defaults applied to empty arguments.
func NewOpenRouter(apiKey, baseURL, model string, timeout time.Duration) *OpenRouter {
	if baseURL == "" {
		baseURL = DefaultOpenRouterBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &OpenRouter{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Model:   model,
		Client:  &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate sends prompt as a single user message.
func (o *OpenRouter) Generate(ctx context.Context, prompt string, temperature float64, maxOutputTokens int) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:       o.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxOutputTokens,
	})
	if err != nil {
		return "", o.fail(KindProvider, 0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", o.fail(KindNetwork, 0, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.APIKey)

	resp, err := o.Client.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return "", o.fail(KindTimeout, 0, err)
		}
		return "", o.fail(KindNetwork, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		kind := KindProvider
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			kind = KindAuth
		}
		return "", o.fail(kind, resp.StatusCode, errors.New(strings.TrimSpace(string(excerpt))))
	}

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if isTimeout(ctx, err) {
			return "", o.fail(KindTimeout, resp.StatusCode, err)
		}
		return "", o.fail(KindProvider, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	if out.Error != nil && out.Error.Message != "" {
		return "", o.fail(KindProvider, resp.StatusCode, errors.New(out.Error.Message))
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", o.fail(KindEmpty, resp.StatusCode, errors.New("no completion text"))
	}
	return out.Choices[0].Message.Content, nil
}

func (o *OpenRouter) fail(kind Kind, status int, err error) error {
	return &Error{Provider: ProviderOpenRouter, Kind: kind, StatusCode: status, Err: err}
}
