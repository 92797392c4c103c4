package domain

import (
	"fmt"
	"time"
)

// Sender identifies who authored a chat turn.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Category is the display category of an assistant turn.
type Category string

const (
	CategoryText       Category = "text"
	CategorySuggestion Category = "suggestion"
	CategoryWarning    Category = "warning"
)

// ChatTurn is one message in an assistant conversation. Category is only set
// on turns authored by the assistant.
type ChatTurn struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	Category  Category  `json:"category,omitempty"`
}

// NewUserTurn builds a user-authored turn.
func NewUserTurn(text string, at time.Time) ChatTurn {
	return ChatTurn{
		ID:        TurnID(SenderUser, at),
		Text:      text,
		Sender:    SenderUser,
		Timestamp: at.UTC(),
	}
}

// NewAITurn builds an assistant-authored turn with exactly one category.
func NewAITurn(text string, category Category, at time.Time) ChatTurn {
	return ChatTurn{
		ID:        TurnID(SenderAI, at),
		Text:      text,
		Sender:    SenderAI,
		Timestamp: at.UTC(),
		Category:  category,
	}
}

// TurnID derives a turn id from the sender and creation time, e.g.
// "user-1718000000000000000".
func TurnID(sender Sender, at time.Time) string {
	return fmt.Sprintf("%s-%d", sender, at.UnixNano())
}
