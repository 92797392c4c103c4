// Package services – SuggestionService
//
// SuggestionService turns a HealthIntake into one to three suggestions. It
// never fails outward: undecodable model text degrades to a single
// "General Health Assessment" built around the raw text, and a failed model
// call degrades to the rule-based keyword families. The two fallbacks are
// distinct and are not interchangeable.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-health-assistant/internal/domain"
)

const (
	analysisTemperature = 0.7
	analysisMaxTokens   = 1000
	maxSuggestions      = 3
)

// Generator is the model gateway contract consumed by the services.
type Generator interface {
	Generate(ctx context.Context, prompt string, temperature float64, maxOutputTokens int) (string, error)
}

// SuggestionService analyzes health intakes.
type SuggestionService struct {
	Gateway Generator
}

// NewSuggestionService constructs a SuggestionService.
func NewSuggestionService(g Generator) *SuggestionService {
	return &SuggestionService{Gateway: g}
}

// Analyze returns 1..3 suggestions for the intake.
func (s *SuggestionService) Analyze(ctx context.Context, in domain.HealthIntake) []domain.Suggestion {
	ctx, span := otel.Tracer("services/SuggestionService").Start(ctx, "Analyze",
		trace.WithAttributes(
			attribute.String("intake.id", in.ID),
			attribute.Int("intake.symptoms", len(in.Symptoms)),
			attribute.String("intake.severity", string(in.Severity)),
		),
	)
	defer span.End()

	text, err := s.Gateway.Generate(ctx, analysisPrompt(in), analysisTemperature, analysisMaxTokens)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("intake_id", in.ID).Msg("analysis gateway call failed; using rule-based suggestions")
		fallbacks.WithLabelValues(fallbackRules).Inc()
		span.SetAttributes(attribute.String("analysis.source", fallbackRules))
		return RuleBasedSuggestions(in)
	}

	out, err := DecodeSuggestions(text)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("intake_id", in.ID).Msg("model reply not decodable; using raw text")
		fallbacks.WithLabelValues(fallbackParse).Inc()
		span.SetAttributes(attribute.String("analysis.source", fallbackParse))
		return []domain.Suggestion{parseFallback(text)}
	}
	span.SetAttributes(attribute.String("analysis.source", "model"))
	return out
}

// wireSuggestion mirrors domain.Suggestion with loose level fields so they
// can be normalized before validation.
type wireSuggestion struct {
	Condition       string   `json:"condition"`
	Likelihood      string   `json:"likelihood"`
	Description     string   `json:"description"`
	Recommendations []string `json:"recommendations"`
	Urgency         string   `json:"urgency"`
}

// DecodeSuggestions parses model text as a JSON array of suggestions or a
// single suggestion object, optionally wrapped in a Markdown code fence.
// Every element must validate; at most the first three are returned.
func DecodeSuggestions(text string) ([]domain.Suggestion, error) {
	body := stripCodeFence(text)

	var wire []wireSuggestion
	switch {
	case strings.HasPrefix(body, "["):
		if err := json.Unmarshal([]byte(body), &wire); err != nil {
			return nil, &DecodeError{Raw: text, Err: err}
		}
	case strings.HasPrefix(body, "{"):
		var one wireSuggestion
		if err := json.Unmarshal([]byte(body), &one); err != nil {
			return nil, &DecodeError{Raw: text, Err: err}
		}
		wire = []wireSuggestion{one}
	default:
		return nil, &DecodeError{Raw: text, Err: errors.New("not a JSON array or object")}
	}
	if len(wire) == 0 {
		return nil, &DecodeError{Raw: text, Err: errors.New("no suggestions")}
	}

	out := make([]domain.Suggestion, 0, len(wire))
	for i, w := range wire {
		likelihood, _ := domain.ParseLevel(w.Likelihood)
		urgency, _ := domain.ParseLevel(w.Urgency)
		sug := domain.Suggestion{
			Condition:       strings.TrimSpace(w.Condition),
			Likelihood:      likelihood,
			Description:     strings.TrimSpace(w.Description),
			Recommendations: w.Recommendations,
			Urgency:         urgency,
		}
		if err := sug.Validate(); err != nil {
			return nil, &DecodeError{Raw: text, Err: fmt.Errorf("suggestion %d: %w", i, err)}
		}
		out = append(out, sug)
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out, nil
}

// stripCodeFence removes a surrounding ``` or ```json fence.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "[{") {
		s = s[nl+1:]
	} else if nl < 0 {
		s = strings.TrimLeftFunc(s, isFenceTag)
	}
	return strings.TrimSpace(s)
}

// isFenceTag matches the characters of a language tag such as "json".
func isFenceTag(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}
