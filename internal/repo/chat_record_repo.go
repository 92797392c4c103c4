// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for ChatRecord,
// the append-only log of user/assistant exchanges.
//
// All functions are context-aware and accept a *gorm.DB handle. Lists are
// ordered newest first with the id as a tie breaker so pages are stable.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-health-assistant/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = gorm.ErrRecordNotFound

const newestFirst = "created_at DESC, id DESC"

// CreateChatRecord inserts rec as given; callers assign the id and timestamps.
func CreateChatRecord(ctx context.Context, db *gorm.DB, rec *domain.ChatRecord) error {
	return db.WithContext(ctx).Create(rec).Error
}

// ListChatRecords returns every record, newest first.
func ListChatRecords(ctx context.Context, db *gorm.DB) ([]domain.ChatRecord, error) {
	out := make([]domain.ChatRecord, 0)
	err := db.WithContext(ctx).Order(newestFirst).Find(&out).Error
	return out, err
}

// CountChatRecords returns the number of stored records.
func CountChatRecords(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.ChatRecord{}).Count(&n).Error
	return n, err
}

// ListChatRecordsPage returns limit records starting at offset, newest first.
func ListChatRecordsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.ChatRecord, error) {
	out := make([]domain.ChatRecord, 0)
	err := db.WithContext(ctx).
		Order(newestFirst).
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetChatRecord fetches a record by id, or ErrNotFound.
func GetChatRecord(ctx context.Context, db *gorm.DB, id string) (*domain.ChatRecord, error) {
	var rec domain.ChatRecord
	if err := db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}
