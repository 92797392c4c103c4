package domain

import (
	"time"

	"gorm.io/gorm"
)

// ChatRecord is one persisted chat exchange: the message a user sent and the
// reply the assistant gave. Records are append-only and never edited.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - UserMessage: the user's message, required.
//   - BotReply: the assistant's reply, required.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM; CreatedAt drives
//     newest-first listing.
//   - DeletedAt: soft deletion marker.
type ChatRecord struct {
	ID          string         `json:"id"          gorm:"type:char(36);primaryKey"`
	UserMessage string         `json:"userMessage" gorm:"type:text;not null"`
	BotReply    string         `json:"botReply"    gorm:"type:text;not null"`
	CreatedAt   time.Time      `json:"createdAt"   gorm:"index:idx_chat_records_created"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-"           gorm:"index"`
}

// TableName returns the database table name for ChatRecord.
func (ChatRecord) TableName() string { return "chat_records" }
