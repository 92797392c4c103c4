// Package services implements the health assistant's application logic: the
// suggestion synthesizer behind intake analysis, the chat responder with its
// per-session transcripts, and the chat log persisted by the compatibility
// endpoint.
//
// This file centralizes service-level errors. Translation into HTTP status
// codes and user-facing messages happens in the handler layer.
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingFields is returned when a chat record lacks its user message
	// or its bot reply. Whitespace-only values count as missing.
	ErrMissingFields = errors.New("both fields are required")

	// ErrEmptyMessage is returned when a chat message is blank.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrSessionNotFound indicates an unknown or evicted session id.
	ErrSessionNotFound = errors.New("session not found")
)

// DecodeError reports model text that could not be turned into suggestions.
// Raw keeps the text verbatim for the parse fallback.
type DecodeError struct {
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode suggestions: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// StorageError wraps a failure of the chat record store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("chat log %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
