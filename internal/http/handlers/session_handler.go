package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-health-assistant/internal/domain"
	"github.com/tbourn/go-health-assistant/internal/services"
)

// SessionResponse describes a session and its turns. On creation Turns holds
// only the welcome greeting and after a clear only the cleared notice; neither
// is part of the stored transcript.
type SessionResponse struct {
	ID        string            `json:"id" example:"0b7f3c7e-3a4e-4c53-9f0e-2f6b8d9f1a11"`
	CreatedAt time.Time         `json:"created_at"`
	Turns     []domain.ChatTurn `json:"turns"`
}

// PostMessageRequest carries one user chat message.
type PostMessageRequest struct {
	Message string `json:"message" example:"I've had a sore throat for two days"`
}

// CreateSession godoc
// @ID          createSession
// @Summary     Start a chat session
// @Tags        Sessions
// @Produce     json
// @Success     201  {object}  handlers.SessionResponse
// @Router      /api/v1/sessions [post]
func (h *Handlers) CreateSession(c *gin.Context) {
	s := h.sessions.Create()
	ok(c, http.StatusCreated, SessionResponse{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Turns:     []domain.ChatTurn{h.assistant.Welcome()},
	})
}

// ListSessionMessages godoc
// @ID          listSessionMessages
// @Summary     Get the transcript of a session
// @Description Returns every stored turn, oldest first, for display or export.
// @Tags        Sessions
// @Produce     json
// @Param       id   path      string  true  "Session ID"  format(uuid)
// @Success     200  {object}  handlers.SessionResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Session not found"
// @Router      /api/v1/sessions/{id}/messages [get]
func (h *Handlers) ListSessionMessages(c *gin.Context) {
	s, found := h.session(c)
	if !found {
		return
	}
	ok(c, http.StatusOK, SessionResponse{ID: s.ID, CreatedAt: s.CreatedAt, Turns: s.Transcript()})
}

// PostSessionMessage godoc
// @ID          postSessionMessage
// @Summary     Send a chat message
// @Description Appends the message and the assistant's reply to the transcript and returns the reply.
// @Description If the model is unavailable the reply is a fixed warning.
// @Tags        Sessions
// @Accept      json
// @Produce     json
// @Param       id    path      string                       true  "Session ID"  format(uuid)
// @Param       body  body      handlers.PostMessageRequest  true  "User message"
// @Success     200   {object}  domain.ChatTurn
// @Failure     400   {object}  handlers.ErrorResponse  "Empty message"
// @Failure     404   {object}  handlers.ErrorResponse  "Session not found"
// @Router      /api/v1/sessions/{id}/messages [post]
func (h *Handlers) PostSessionMessage(c *gin.Context) {
	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, msgInvalidJSON)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "message is required")
		return
	}
	s, found := h.session(c)
	if !found {
		return
	}

	turn, err := h.assistant.Respond(c.Request.Context(), s, req.Message)
	if err != nil {
		if errors.Is(err, services.ErrEmptyMessage) {
			fail(c, http.StatusBadRequest, ErrCodeValidation, "message is required")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, turn)
}

// ClearSessionMessages godoc
// @ID          clearSessionMessages
// @Summary     Clear a session transcript
// @Description Empties the transcript and returns the cleared notice. Persisted chat records are not affected.
// @Tags        Sessions
// @Produce     json
// @Param       id   path      string  true  "Session ID"  format(uuid)
// @Success     200  {object}  handlers.SessionResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Session not found"
// @Router      /api/v1/sessions/{id}/messages [delete]
func (h *Handlers) ClearSessionMessages(c *gin.Context) {
	s, found := h.session(c)
	if !found {
		return
	}
	h.assistant.Clear(s)
	ok(c, http.StatusOK, SessionResponse{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Turns:     []domain.ChatTurn{h.assistant.Cleared()},
	})
}

// session resolves :id or writes a 404.
func (h *Handlers) session(c *gin.Context) (*services.Session, bool) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "session not found")
		return nil, false
	}
	return s, true
}
