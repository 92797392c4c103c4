package handlers

// Error codes of the versioned API. Clients branch on these, not on
// messages.
const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeValidation       = "validation_failed"
	ErrCodeNotFound         = "not_found"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)

// Fixed messages of the /api/chat compatibility body.
const (
	msgBothFieldsRequired = "Both fields are required"
	msgInvalidJSON        = "invalid JSON body"
)
