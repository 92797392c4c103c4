package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-health-assistant/internal/domain"
	"github.com/tbourn/go-health-assistant/internal/gateway"
)

// fakeGen records every call and replays a scripted reply.
type fakeGen struct {
	mu    sync.Mutex
	text  string
	err   error
	calls []fakeCall
}

type fakeCall struct {
	prompt      string
	temperature float64
	maxTokens   int
}

func (f *fakeGen) Generate(_ context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fakeCall{prompt, temperature, maxTokens})
	return f.text, f.err
}

func (f *fakeGen) last() fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

var errGateway = &gateway.Error{Provider: "fake", Kind: gateway.KindNetwork}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.ChatRecord{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// tick returns a clock advancing one millisecond per call.
func tick(start time.Time) func() time.Time {
	var mu sync.Mutex
	cur := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		cur = cur.Add(time.Millisecond)
		return cur
	}
}

func intake(severity domain.Severity, symptoms ...string) domain.HealthIntake {
	return domain.HealthIntake{
		ID:       "in-1",
		Name:     "Ada",
		Age:      36,
		Gender:   domain.GenderFemale,
		Symptoms: symptoms,
		Severity: severity,
		Duration: "1-3-days",
	}
}
