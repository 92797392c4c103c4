// Package services – ChatLogService
//
// ChatLogService stores completed exchanges as ChatRecords and lists them
// newest first. The store is append-only and independent of any in-memory
// session transcript.
package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-health-assistant/internal/domain"
	"github.com/tbourn/go-health-assistant/internal/repo"
	"github.com/tbourn/go-health-assistant/internal/utils"
)

// ChatLogService persists chat records.
type ChatLogService struct {
	DB  *gorm.DB
	Now func() time.Time
}

// NewChatLogService constructs a ChatLogService.
func NewChatLogService(db *gorm.DB) *ChatLogService {
	return &ChatLogService{DB: db, Now: time.Now}
}

// Create validates and stores one exchange. Blank fields yield
// ErrMissingFields; store failures are wrapped in *StorageError.
func (s *ChatLogService) Create(ctx context.Context, userMessage, botReply string) (*domain.ChatRecord, error) {
	ctx, span := otel.Tracer("services/ChatLogService").Start(ctx, "Create")
	defer span.End()

	if strings.TrimSpace(userMessage) == "" || strings.TrimSpace(botReply) == "" {
		return nil, ErrMissingFields
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	ts := now().UTC()
	rec := &domain.ChatRecord{
		ID:          uuid.NewString(),
		UserMessage: userMessage,
		BotReply:    botReply,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := repo.CreateChatRecord(ctx, s.DB, rec); err != nil {
		span.RecordError(err)
		return nil, &StorageError{Op: "create", Err: err}
	}
	return rec, nil
}

// List returns every record, newest first.
func (s *ChatLogService) List(ctx context.Context) ([]domain.ChatRecord, error) {
	ctx, span := otel.Tracer("services/ChatLogService").Start(ctx, "List")
	defer span.End()

	items, err := repo.ListChatRecords(ctx, s.DB)
	if err != nil {
		span.RecordError(err)
		return nil, &StorageError{Op: "list", Err: err}
	}
	return items, nil
}

// ListPage returns one page of records, newest first, plus the total count.
func (s *ChatLogService) ListPage(ctx context.Context, page, pageSize int) ([]domain.ChatRecord, int64, error) {
	ctx, span := otel.Tracer("services/ChatLogService").Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = utils.DefaultPage
	}
	if pageSize <= 0 {
		pageSize = utils.DefaultPageSize
	}
	total, err := repo.CountChatRecords(ctx, s.DB)
	if err != nil {
		return nil, 0, &StorageError{Op: "count", Err: err}
	}
	if total == 0 {
		return []domain.ChatRecord{}, 0, nil
	}
	items, err := repo.ListChatRecordsPage(ctx, s.DB, utils.Offset(page, pageSize), pageSize)
	if err != nil {
		return nil, 0, &StorageError{Op: "list", Err: err}
	}
	return items, total, nil
}

// Get returns one record by id.
func (s *ChatLogService) Get(ctx context.Context, id string) (*domain.ChatRecord, error) {
	rec, err := repo.GetChatRecord(ctx, s.DB, id)
	if err != nil {
		return nil, &StorageError{Op: "get", Err: err}
	}
	return rec, nil
}
