package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-health-assistant/internal/domain"
	"github.com/tbourn/go-health-assistant/internal/services"
	"github.com/tbourn/go-health-assistant/internal/utils"
)

// Analyzer turns an intake into suggestions. It never fails.
type Analyzer interface {
	Analyze(ctx context.Context, in domain.HealthIntake) []domain.Suggestion
}

// Assistant answers chat messages inside a session.
type Assistant interface {
	Respond(ctx context.Context, sess *services.Session, message string) (domain.ChatTurn, error)
	Clear(sess *services.Session)
	Welcome() domain.ChatTurn
	Cleared() domain.ChatTurn
}

// Sessions creates and looks up chat sessions.
type Sessions interface {
	Create() *services.Session
	Get(id string) (*services.Session, error)
}

// ChatLog persists and lists chat records.
type ChatLog interface {
	Create(ctx context.Context, userMessage, botReply string) (*domain.ChatRecord, error)
	List(ctx context.Context) ([]domain.ChatRecord, error)
	ListPage(ctx context.Context, page, pageSize int) ([]domain.ChatRecord, int64, error)
	Get(ctx context.Context, id string) (*domain.ChatRecord, error)
}

// Handlers groups the HTTP endpoints.
type Handlers struct {
	analyzer  Analyzer
	assistant Assistant
	sessions  Sessions
	chatLog   ChatLog

	// DB backs ETags and idempotency records; both are skipped when nil.
	DB             *gorm.DB
	IdempotencyTTL time.Duration
	Now            func() time.Time
}

// New constructs Handlers. db may be nil.
func New(an Analyzer, as Assistant, ss Sessions, cl ChatLog, db *gorm.DB) *Handlers {
	return &Handlers{
		analyzer:       an,
		assistant:      as,
		sessions:       ss,
		chatLog:        cl,
		DB:             db,
		IdempotencyTTL: 24 * time.Hour,
		Now:            time.Now,
	}
}

func (h *Handlers) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

// clampPagination reads page and page_size, bounded to [1, 100].
func clampPagination(c *gin.Context) (page, pageSize int) {
	return utils.ParsePage(c.Query("page"), c.Query("page_size"))
}
