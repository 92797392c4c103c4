package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/go-health-assistant/internal/domain"
)

func seedRecords(t *testing.T, n int) []domain.ChatRecord {
	t.Helper()
	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	out := make([]domain.ChatRecord, n)
	for i := range out {
		ts := base.Add(time.Duration(i) * time.Minute)
		out[i] = domain.ChatRecord{
			ID:          string(rune('a' + i)),
			UserMessage: "q",
			BotReply:    "a",
			CreatedAt:   ts,
			UpdatedAt:   ts,
		}
	}
	return out
}

func TestChatRecords_CreateListNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &domain.ChatRecord{})

	for _, r := range seedRecords(t, 3) {
		r := r
		if err := CreateChatRecord(ctx, db, &r); err != nil {
			t.Fatalf("create %s: %v", r.ID, err)
		}
	}

	items, err := ListChatRecords(ctx, db)
	if err != nil {
		t.Fatalf("ListChatRecords: %v", err)
	}
	if len(items) != 3 || items[0].ID != "c" || items[2].ID != "a" {
		t.Fatalf("order = %v", ids(items))
	}

	n, err := CountChatRecords(ctx, db)
	if err != nil || n != 3 {
		t.Fatalf("CountChatRecords = %d, %v", n, err)
	}

	page, err := ListChatRecordsPage(ctx, db, 1, 1)
	if err != nil || len(page) != 1 || page[0].ID != "b" {
		t.Fatalf("page = %v, %v", ids(page), err)
	}

	got, err := GetChatRecord(ctx, db, "b")
	if err != nil || got.ID != "b" {
		t.Fatalf("GetChatRecord = %+v, %v", got, err)
	}
	if _, err := GetChatRecord(ctx, db, "zz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing record: want ErrNotFound, got %v", err)
	}
}

func TestChatRecords_TieBreakOnID(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &domain.ChatRecord{})
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, id := range []string{"x1", "x3", "x2"} {
		if err := CreateChatRecord(ctx, db, &domain.ChatRecord{ID: id, UserMessage: "q", BotReply: "a", CreatedAt: ts, UpdatedAt: ts}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	items, err := ListChatRecords(ctx, db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := ids(items); got[0] != "x3" || got[1] != "x2" || got[2] != "x1" {
		t.Fatalf("order = %v", got)
	}
}

func TestChatRecords_NoTable(t *testing.T) {
	db := newTestDB(t)
	if _, err := ListChatRecords(context.Background(), db); err == nil {
		t.Fatalf("expected error without table")
	}
}

func ids(items []domain.ChatRecord) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
