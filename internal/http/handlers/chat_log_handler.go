package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/tbourn/go-health-assistant/internal/http/middleware"
	"github.com/tbourn/go-health-assistant/internal/repo"
	"github.com/tbourn/go-health-assistant/internal/services"
)

// HeaderIdempotencyReplayed marks a response served from a stored result.
const HeaderIdempotencyReplayed = "Idempotency-Replayed"

// ChatRecordRequest is the body of POST /api/chat.
type ChatRecordRequest struct {
	UserMessage string `json:"userMessage" example:"I have a headache"`
	BotReply    string `json:"botReply" example:"Rest and stay hydrated."`
}

// CreateChatRecord godoc
// @ID          createChatRecord
// @Summary     Store a chat exchange
// @Description Persists one user message with the assistant reply. Supports Idempotency-Key.
// @Tags        ChatLog
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header    string                      false  "Idempotency key"
// @Param       body             body      handlers.ChatRecordRequest  true   "Exchange"
// @Success     201              {object}  domain.ChatRecord
// @Failure     400              {object}  handlers.LegacyErrorResponse  "Both fields are required"
// @Failure     500              {object}  handlers.LegacyErrorResponse
// @Router      /api/chat [post]
func (h *Handlers) CreateChatRecord(c *gin.Context) {
	ctx := c.Request.Context()
	key, hasKey := middleware.GetIdempotencyKey(c)
	clientID := middleware.ClientID(c)
	scope := middleware.IdempotencyScope(c)

	if hasKey && h.DB != nil && middleware.IsReplay(c) {
		if rec, err := repo.GetIdempotency(ctx, h.DB, clientID, scope, key, h.now().UTC()); err == nil {
			if stored, err := h.chatLog.Get(ctx, rec.ResourceID); err == nil {
				c.Header(HeaderIdempotencyReplayed, "true")
				ok(c, rec.Status, stored)
				return
			}
		}
	}

	req, err := bindChatRecord(c)
	if err != nil {
		legacyError(c, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	created, err := h.chatLog.Create(ctx, req.UserMessage, req.BotReply)
	if err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			legacyError(c, http.StatusBadRequest, msgBothFieldsRequired)
			return
		}
		legacyError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if hasKey && h.DB != nil {
		if _, err := repo.CreateIdempotency(ctx, h.DB, clientID, scope, key, created.ID, http.StatusCreated, h.IdempotencyTTL); err != nil && !errors.Is(err, repo.ErrDuplicate) {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("store idempotency key")
		}
	}
	ok(c, http.StatusCreated, created)
}

// ListChatRecords godoc
// @ID          listChatRecords
// @Summary     List stored chat exchanges
// @Description Newest first. Without page/page_size the full list is returned.
// @Description Paged responses carry X-Total-Count. Supports If-None-Match.
// @Tags        ChatLog
// @Produce     json
// @Param       page           query     int     false  "Page number (1-based)"  minimum(1)
// @Param       page_size      query     int     false  "Page size (1..100)"    minimum(1)  maximum(100)
// @Param       If-None-Match  header    string  false  "ETag from a previous response"
// @Success     200            {array}   domain.ChatRecord
// @Success     304            "Not Modified"
// @Failure     500            {object}  handlers.LegacyErrorResponse
// @Router      /api/chat [get]
func (h *Handlers) ListChatRecords(c *gin.Context) {
	ctx := c.Request.Context()
	paged := c.Query("page") != "" || c.Query("page_size") != ""
	page, size := clampPagination(c)

	if h.DB != nil {
		count, maxTS, err := repo.ChatRecordsStats(ctx, h.DB)
		if err != nil {
			legacyError(c, http.StatusInternalServerError, err.Error())
			return
		}
		var maxNano int64
		if maxTS != nil {
			maxNano = maxTS.UnixNano()
		}
		etag := chatRecordsETag(count, maxNano, paged, page, size)
		if match := c.GetHeader("If-None-Match"); match != "" && etagMatches(match, etag) {
			c.Header("ETag", etag)
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
	}

	if !paged {
		items, err := h.chatLog.List(ctx)
		if err != nil {
			legacyError(c, http.StatusInternalServerError, err.Error())
			return
		}
		ok(c, http.StatusOK, items)
		return
	}

	items, total, err := h.chatLog.ListPage(ctx, page, size)
	if err != nil {
		legacyError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	ok(c, http.StatusOK, items)
}

func chatRecordsETag(count, maxNano int64, paged bool, page, size int) string {
	if !paged {
		return fmt.Sprintf(`W/"chat-%d-%d"`, count, maxNano)
	}
	return fmt.Sprintf(`W/"chat-%d-%d-p%d-s%d"`, count, maxNano, page, size)
}

// etagMatches implements the weak comparison of If-None-Match lists.
func etagMatches(header, etag string) bool {
	want := strings.TrimPrefix(etag, "W/")
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "*" || strings.TrimPrefix(part, "W/") == want {
			return true
		}
	}
	return false
}

// bindChatRecord reads the exchange from a JSON body. A missing body or a
// non-JSON content type yields an empty request so the field check answers.
func bindChatRecord(c *gin.Context) (ChatRecordRequest, error) {
	var req ChatRecordRequest
	if c.ContentType() != binding.MIMEJSON {
		return req, nil
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, err
	}
	return req, nil
}
