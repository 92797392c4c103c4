package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// AsyncRecorder persists exchanges through a ChatLogService on a background
// goroutine. Failures are logged and otherwise ignored.
type AsyncRecorder struct {
	Log     *ChatLogService
	Timeout time.Duration

	wg sync.WaitGroup
}

// NewAsyncRecorder constructs an AsyncRecorder. Non-positive timeouts
// default to five seconds.
func NewAsyncRecorder(l *ChatLogService, timeout time.Duration) *AsyncRecorder {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AsyncRecorder{Log: l, Timeout: timeout}
}

// Record returns immediately. The write outlives the request context but is
// bounded by Timeout.
func (r *AsyncRecorder) Record(ctx context.Context, userMessage, botReply string) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.Timeout)
		defer cancel()
		if _, err := r.Log.Create(ctx, userMessage, botReply); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("chat exchange not persisted")
		}
	}()
}

// Wait blocks until in-flight writes finish.
func (r *AsyncRecorder) Wait() { r.wg.Wait() }
