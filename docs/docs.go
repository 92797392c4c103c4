// Package docs registers the OpenAPI description served under /swagger.
// It is maintained by hand alongside the @ annotations on the handlers and
// describes the default /api/v1 base path.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/chat": {
            "post": {
                "description": "Persists one user message with the assistant reply. Supports Idempotency-Key.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ChatLog"],
                "summary": "Store a chat exchange",
                "operationId": "createChatRecord",
                "parameters": [
                    {"type": "string", "description": "Idempotency key", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Exchange", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ChatRecordRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.ChatRecord"}},
                    "400": {"description": "Both fields are required", "schema": {"$ref": "#/definitions/handlers.LegacyErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.LegacyErrorResponse"}}
                }
            },
            "get": {
                "description": "Newest first. Without page/page_size the full list is returned.\nPaged responses carry X-Total-Count. Supports If-None-Match.",
                "produces": ["application/json"],
                "tags": ["ChatLog"],
                "summary": "List stored chat exchanges",
                "operationId": "listChatRecords",
                "parameters": [
                    {"minimum": 1, "type": "integer", "description": "Page number (1-based)", "name": "page", "in": "query"},
                    {"maximum": 100, "minimum": 1, "type": "integer", "description": "Page size (1..100)", "name": "page_size", "in": "query"},
                    {"type": "string", "description": "ETag from a previous response", "name": "If-None-Match", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.ChatRecord"}}},
                    "304": {"description": "Not Modified"},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.LegacyErrorResponse"}}
                }
            }
        },
        "/api/v1/analyses": {
            "post": {
                "description": "Validates the intake and returns one to three possible explanations.\nWhen the model is unavailable the suggestions come from built-in symptom rules.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Analyses"],
                "summary": "Analyze a health self-report",
                "operationId": "createAnalysis",
                "parameters": [
                    {"description": "Health intake", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.AnalysisRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.AnalysisResponse"}},
                    "400": {"description": "Invalid intake", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/api/v1/intake-options": {
            "get": {
                "description": "Common symptoms, duration buckets and the quick questions offered before the first chat message.",
                "produces": ["application/json"],
                "tags": ["Analyses"],
                "summary": "List intake form choices",
                "operationId": "getIntakeOptions",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.IntakeOptionsResponse"}}
                }
            }
        },
        "/api/v1/sessions": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Start a chat session",
                "operationId": "createSession",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.SessionResponse"}}
                }
            }
        },
        "/api/v1/sessions/{id}/messages": {
            "get": {
                "description": "Returns every stored turn, oldest first, for display or export.",
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Get the transcript of a session",
                "operationId": "listSessionMessages",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.SessionResponse"}},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Appends the message and the assistant's reply to the transcript and returns the reply.\nIf the model is unavailable the reply is a fixed warning.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Send a chat message",
                "operationId": "postSessionMessage",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"description": "User message", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.PostMessageRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ChatTurn"}},
                    "400": {"description": "Empty message", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Empties the transcript and returns the cleared notice. Persisted chat records are not affected.",
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Clear a session transcript",
                "operationId": "clearSessionMessages",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.SessionResponse"}},
                    "404": {"description": "Session not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.ChatRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userMessage": {"type": "string"},
                "botReply": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "domain.ChatTurn": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "text": {"type": "string"},
                "sender": {"type": "string", "enum": ["user", "ai"]},
                "timestamp": {"type": "string"},
                "category": {"type": "string", "enum": ["text", "suggestion", "warning"]}
            }
        },
        "domain.HealthIntake": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "age": {"type": "integer"},
                "gender": {"type": "string", "enum": ["male", "female", "other"]},
                "symptoms": {"type": "array", "items": {"type": "string"}},
                "description": {"type": "string"},
                "severity": {"type": "string", "enum": ["mild", "moderate", "severe"]},
                "duration": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "domain.Suggestion": {
            "type": "object",
            "properties": {
                "condition": {"type": "string"},
                "likelihood": {"type": "string", "enum": ["low", "medium", "high"]},
                "description": {"type": "string"},
                "recommendations": {"type": "array", "items": {"type": "string"}},
                "urgency": {"type": "string", "enum": ["low", "medium", "high"]}
            }
        },
        "handlers.AnalysisRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Ada"},
                "age": {"type": "integer", "example": 36},
                "gender": {"type": "string", "enum": ["male", "female", "other"], "example": "female"},
                "symptoms": {"type": "array", "items": {"type": "string"}, "example": ["Fever", "Headache"]},
                "description": {"type": "string", "example": "Started after a long flight"},
                "severity": {"type": "string", "enum": ["mild", "moderate", "severe"], "example": "moderate"},
                "duration": {"type": "string", "enum": ["less-than-1-day", "1-3-days", "4-7-days", "1-2-weeks", "2-4-weeks", "more-than-1-month"], "example": "1-3-days"}
            }
        },
        "handlers.AnalysisResponse": {
            "type": "object",
            "properties": {
                "intake": {"$ref": "#/definitions/domain.HealthIntake"},
                "suggestions": {"type": "array", "items": {"$ref": "#/definitions/domain.Suggestion"}}
            }
        },
        "handlers.ChatRecordRequest": {
            "type": "object",
            "properties": {
                "userMessage": {"type": "string", "example": "I have a headache"},
                "botReply": {"type": "string", "example": "Rest and stay hydrated."}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string", "example": "123e4567-e89b-12d3-a456-426614174000"},
                "code": {"type": "string", "example": "not_found"},
                "message": {"type": "string", "example": "session not found"}
            }
        },
        "handlers.IntakeOptionsResponse": {
            "type": "object",
            "properties": {
                "symptoms": {"type": "array", "items": {"type": "string"}, "example": ["Fever", "Headache"]},
                "durations": {"type": "array", "items": {"type": "string"}, "example": ["less-than-1-day", "1-3-days"]},
                "genders": {"type": "array", "items": {"type": "string"}, "example": ["male", "female", "other"]},
                "severities": {"type": "array", "items": {"type": "string"}, "example": ["mild", "moderate", "severe"]},
                "quick_questions": {"type": "array", "items": {"type": "string"}, "example": ["When should I see a doctor?"]}
            }
        },
        "handlers.LegacyErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Both fields are required"}
            }
        },
        "handlers.PostMessageRequest": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "I've had a sore throat for two days"}
            }
        },
        "handlers.SessionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "created_at": {"type": "string"},
                "turns": {"type": "array", "items": {"$ref": "#/definitions/domain.ChatTurn"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Health Assistant API",
	Description:      "Symptom analysis and health chat backed by a language model, with rule-based fallbacks.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
