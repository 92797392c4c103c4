package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/go-health-assistant/internal/domain"
)

func TestGetIdempotency_BlankKey_ReturnsNotFound(t *testing.T) {
	db := newTestDB(t, &domain.Idempotency{})
	rec, err := GetIdempotency(context.Background(), db, "c1", "/api/chat", "   ", time.Now().UTC())
	if rec != nil || !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected (nil, ErrNotFound), got (%v, %v)", rec, err)
	}
}

func TestIdempotency_CreateGetExpireAndDuplicate(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t, &domain.Idempotency{})

	rec, err := CreateIdempotency(ctx, db, "c1", "/api/chat", "k1", "r1", 201, time.Hour)
	if err != nil {
		t.Fatalf("CreateIdempotency: %v", err)
	}
	if rec.ID == "" || rec.ResourceID != "r1" || !rec.ExpiresAt.After(rec.CreatedAt) {
		t.Fatalf("unexpected record: %+v", rec)
	}

	got, err := GetIdempotency(ctx, db, "c1", "/api/chat", "k1", time.Now().UTC())
	if err != nil || got.ResourceID != "r1" || got.Status != 201 {
		t.Fatalf("GetIdempotency = %+v, %v", got, err)
	}

	// other client, other scope: not visible
	if _, err := GetIdempotency(ctx, db, "c2", "/api/chat", "k1", time.Now().UTC()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("other client should not see the key: %v", err)
	}
	if _, err := GetIdempotency(ctx, db, "c1", "/api/v1/analyses", "k1", time.Now().UTC()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("other scope should not see the key: %v", err)
	}

	// expired
	if _, err := GetIdempotency(ctx, db, "c1", "/api/chat", "k1", time.Now().UTC().Add(2*time.Hour)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired record should be ErrNotFound, got %v", err)
	}

	if _, err := CreateIdempotency(ctx, db, "c1", "/api/chat", "k1", "r2", 201, time.Hour); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate should map to ErrDuplicate, got %v", err)
	}
}

func TestCreateIdempotency_OtherDBError(t *testing.T) {
	db := newTestDB(t /* no table */)
	_, err := CreateIdempotency(context.Background(), db, "c", "s", "k", "r", 201, time.Minute)
	if err == nil || errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected raw DB error, got %v", err)
	}
}
