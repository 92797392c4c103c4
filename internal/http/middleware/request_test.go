package middleware

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func captureLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	log.Logger = zerolog.New(&buf)
	return &buf
}

func lastLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var m map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &m); err != nil {
		t.Fatalf("bad log line %q: %v", lines[len(lines)-1], err)
	}
	return m
}

func TestRequestID_GenerateAndPropagate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/rid", func(c *gin.Context) {
		if GetRequestID(c) == "" {
			t.Fatalf("requestID not set in context")
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rid", nil))
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected generated %s header", requestIDHeader)
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/rid", nil)
	req2.Header.Set("x-request-id", "abc-123")
	r.ServeHTTP(w2, req2)
	if got := w2.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("expected propagated request id, got %q", got)
	}
}

func TestClientID_HeaderThenIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = net.JoinHostPort("203.0.113.9", "12345")

	if got := ClientID(c); got != "ip:203.0.113.9" {
		t.Fatalf("ClientID = %q", got)
	}
	c.Request.Header.Set(HeaderClientID, " browser-1 ")
	if got := ClientID(c); got != "client:browser-1" {
		t.Fatalf("ClientID = %q", got)
	}
	c.Request.Header.Set(HeaderClientID, strings.Repeat("x", maxClientIDLen+1))
	if got := ClientID(c); !strings.HasPrefix(got, "ip:") {
		t.Fatalf("oversized client id should fall back to IP, got %q", got)
	}
}

func TestRecovery_JSON500WithRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_ = captureLogger(t)

	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(requestIDHeader, "rid-9")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["request_id"] != "rid-9" || body["code"] != "internal_error" {
		t.Fatalf("body = %v", body)
	}
}

func TestAccessLog_RedactsAndAttachesLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogger(t)

	r := gin.New()
	r.Use(RequestID(), AccessLog(RedactOptions{MaskHeaders: []string{"X-Secret"}}))
	r.GET("/sessions/:id", func(c *gin.Context) {
		if zerolog.Ctx(c.Request.Context()).GetLevel() == zerolog.Disabled {
			t.Errorf("request context should carry a logger")
		}
		LoggerFrom(c).Info().Msg("inside")
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/sessions/123e4567-e89b-42d3-a456-426614174000?email=ada@example.com&phone=212-555-1212", nil)
	req.Header.Set("Authorization", "Bearer secret")
	req.Header.Set("X-Secret", "s3")
	req.Header.Set(requestIDHeader, "rid-1")
	r.ServeHTTP(w, req)

	out := buf.String()
	for _, leak := range []string{"ada@example.com", "212-555-1212", "Bearer secret", "s3", "123e4567-e89b"} {
		if strings.Contains(out, leak) {
			t.Errorf("log leaked %q:\n%s", leak, out)
		}
	}
	if !strings.Contains(out, `"message":"inside"`) || !strings.Contains(out, `"request_id":"rid-1"`) {
		t.Fatalf("request-scoped log missing:\n%s", out)
	}

	m := lastLogLine(t, buf)
	if m["level"] != "warn" || m["path"] != "/sessions/:id" || m["message"] != "http_request" {
		t.Fatalf("access line = %v", m)
	}
}

func TestLoggerFrom_FallbackWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if LoggerFrom(c) == nil {
		t.Fatalf("expected non-nil fallback logger")
	}
}

func TestRedact(t *testing.T) {
	in := "id=123e4567-e89b-42d3-a456-426614174000 mail=x.y@mail.org tel=+1 212-555-1212"
	got := Redact(in)
	for _, want := range []string{"[REDACTED:id]", "[REDACTED:email]", "[REDACTED:phone]"} {
		if !strings.Contains(got, want) {
			t.Errorf("Redact(%q) = %q; missing %s", in, got, want)
		}
	}
	if Redact("") != "" {
		t.Errorf("empty string should stay empty")
	}
}
