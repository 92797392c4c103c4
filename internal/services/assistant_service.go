// Package services – AssistantService
//
// AssistantService is the chat responder. For each message it appends the
// user turn, prompts the model with the persona and the last ten turns,
// classifies the reply and appends the assistant turn. A failed model call
// yields a fixed warning turn instead; the caller always gets a reply.
//
// Successful exchanges are handed to an optional ExchangeRecorder. Recording
// is fire-and-forget and never changes the reply.
package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-health-assistant/internal/domain"
)

const (
	chatTemperature = 0.8
	chatMaxTokens   = 500

	// ContextWindow is the number of most recent turns sent to the model.
	ContextWindow = 10

	// WelcomeText greets a new session. It is shown to the user but is not
	// part of the transcript.
	WelcomeText = "Hello! I'm your AI Health Assistant powered by advanced AI technology. I'm here to help you understand your symptoms and provide health guidance. Please remember that I'm not a substitute for professional medical advice. How can I help you today?"

	// ClearedText is shown after a transcript is cleared.
	ClearedText = "Chat cleared! How can I help you today?"

	unavailableText = "I apologize, but I'm having trouble connecting to the AI service right now. Please try again in a moment. If you're experiencing a medical emergency, please contact emergency services immediately."
)

// QuickQuestions are starter prompts offered before the first message.
var QuickQuestions = []string{
	"What are the symptoms of flu?",
	"How can I improve my sleep?",
	"What should I do about a persistent cough?",
	"When should I see a doctor?",
	"How to manage stress and anxiety?",
}

// ExchangeRecorder receives completed user/assistant exchanges. Record must
// not block the caller.
type ExchangeRecorder interface {
	Record(ctx context.Context, userMessage, botReply string)
}

// AssistantService answers chat messages within a Session.
type AssistantService struct {
	Gateway  Generator
	Recorder ExchangeRecorder // optional
	Now      func() time.Time
}

// NewAssistantService constructs an AssistantService. rec may be nil.
func NewAssistantService(g Generator, rec ExchangeRecorder) *AssistantService {
	return &AssistantService{Gateway: g, Recorder: rec, Now: time.Now}
}

func (s *AssistantService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Respond appends the user turn and the assistant reply to the session and
// returns the reply. Model failures never surface as errors; they yield the
// warning turn. The presence check is the single exception: a blank message
// returns ErrEmptyMessage and leaves the session untouched.
func (s *AssistantService) Respond(ctx context.Context, sess *Session, message string) (domain.ChatTurn, error) {
	if strings.TrimSpace(message) == "" {
		return domain.ChatTurn{}, ErrEmptyMessage
	}

	ctx, span := otel.Tracer("services/AssistantService").Start(ctx, "Respond",
		trace.WithAttributes(attribute.String("session.id", sess.ID)),
	)
	defer span.End()

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.turns = append(sess.turns, domain.NewUserTurn(message, s.now()))
	prompt := chatPrompt(renderTurns(sess.lastTurns(ContextWindow)), message)

	text, err := s.Gateway.Generate(ctx, prompt, chatTemperature, chatMaxTokens)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("session_id", sess.ID).Msg("chat gateway call failed; replying with fallback")
		fallbacks.WithLabelValues(fallbackChat).Inc()
		reply := domain.NewAITurn(unavailableText, domain.CategoryWarning, s.now())
		sess.turns = append(sess.turns, reply)
		span.SetAttributes(attribute.Bool("chat.fallback", true))
		return reply, nil
	}

	reply := domain.NewAITurn(text, Classify(text), s.now())
	sess.turns = append(sess.turns, reply)
	span.SetAttributes(
		attribute.Bool("chat.fallback", false),
		attribute.String("chat.category", string(reply.Category)),
	)

	if s.Recorder != nil {
		s.Recorder.Record(ctx, message, text)
	}
	return reply, nil
}

// RenderContext returns the "sender: text" lines of the turns that the next
// prompt would carry.
func (s *AssistantService) RenderContext(sess *Session) string {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return renderTurns(sess.lastTurns(ContextWindow))
}

// Clear discards the session transcript. Persisted chat records are not
// affected.
func (s *AssistantService) Clear(sess *Session) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.turns = nil
}

// Welcome returns the greeting turn for a new session.
func (s *AssistantService) Welcome() domain.ChatTurn {
	return domain.NewAITurn(WelcomeText, domain.CategoryText, s.now())
}

// Cleared returns the notice shown after Clear. Like Welcome it is not
// stored in the transcript.
func (s *AssistantService) Cleared() domain.ChatTurn {
	return domain.NewAITurn(ClearedText, domain.CategoryText, s.now())
}
