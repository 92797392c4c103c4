package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-health-assistant/internal/gateway"
	"github.com/tbourn/go-health-assistant/internal/repo"
	"github.com/tbourn/go-health-assistant/internal/services"
)

func init() { gin.SetMode(gin.TestMode) }

// stubGen replies with a fixed text or error.
type stubGen struct {
	text string
	err  error
}

func (g stubGen) Generate(context.Context, string, float64, int) (string, error) {
	return g.text, g.err
}

var errDown = &gateway.Error{Provider: "stub", Kind: gateway.KindUnavailable}

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newTestHandlers wires real services around gen and an in-memory database.
func newTestHandlers(t *testing.T, gen services.Generator) *Handlers {
	t.Helper()
	db := newHandlerDB(t)
	store, err := services.NewSessionStore(10)
	if err != nil {
		t.Fatalf("session store: %v", err)
	}
	return New(
		services.NewSuggestionService(gen),
		services.NewAssistantService(gen, nil),
		store,
		services.NewChatLogService(db),
		db,
	)
}

func doJSON(r http.Handler, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	var rd *bytes.Reader
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func mustContain(t *testing.T, s, sub string) {
	t.Helper()
	if !strings.Contains(s, sub) {
		t.Fatalf("expected %q to contain %q", s, sub)
	}
}
