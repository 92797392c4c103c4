package domain

import (
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestTableNames(t *testing.T) {
	if (ChatRecord{}).TableName() != "chat_records" {
		t.Fatalf("ChatRecord.TableName() = %q; want %q", (ChatRecord{}).TableName(), "chat_records")
	}
	if (Idempotency{}).TableName() != "idempotency" {
		t.Fatalf("Idempotency.TableName() = %q; want %q", (Idempotency{}).TableName(), "idempotency")
	}
}

func TestMigrations_IndexesAndUniqueKey(t *testing.T) {
	db := newDomainDB(t)

	if err := db.AutoMigrate(&ChatRecord{}, &Idempotency{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()
	if !m.HasIndex(&ChatRecord{}, "idx_chat_records_created") {
		t.Fatalf("expected index idx_chat_records_created on chat_records")
	}
	if !m.HasIndex(&Idempotency{}, "ux_client_scope_key") {
		t.Fatalf("expected unique index ux_client_scope_key on idempotency")
	}

	now := time.Now().UTC()
	rec := &ChatRecord{ID: "r1", UserMessage: "hi", BotReply: "hello", CreatedAt: now}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("insert record: %v", err)
	}

	first := &Idempotency{ID: "i1", ClientID: "c", Scope: "/api/chat", Key: "k", ResourceID: "r1", Status: 201, ExpiresAt: now.Add(time.Hour)}
	if err := db.Create(first).Error; err != nil {
		t.Fatalf("insert idempotency: %v", err)
	}
	dup := &Idempotency{ID: "i2", ClientID: "c", Scope: "/api/chat", Key: "k", ResourceID: "r2", Status: 201, ExpiresAt: now.Add(time.Hour)}
	if err := db.Create(dup).Error; err == nil {
		t.Fatalf("expected unique violation for duplicate (client, scope, key)")
	}
	other := &Idempotency{ID: "i3", ClientID: "c", Scope: "/api/other", Key: "k", ResourceID: "r3", Status: 201, ExpiresAt: now.Add(time.Hour)}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("same key on another scope should be allowed: %v", err)
	}
}
