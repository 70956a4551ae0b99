// Package schema holds the request/response contract of the HTTP API and validates
// payloads against it.
package schema

import "time"

// MinTranscriptLength is counted in characters, not bytes.
const MinTranscriptLength = 10

type ChatRequest struct {
	Message        string `json:"message" validate:"required"`
	ConversationID string `json:"conversationId,omitempty"`
	UserID         string `json:"userId,omitempty"`
	Stream         bool   `json:"stream"`
}

type ChatResponse struct {
	Response       string    `json:"response"`
	ConversationID string    `json:"conversationId" validate:"required"`
	MessageID      string    `json:"messageId" validate:"required"`
	Timestamp      time.Time `json:"timestamp" validate:"required"`
}

// AnalyzeRequest is the canonical analyze payload. Clients that still send the text as
// "prompt" are normalized into Transcript by DecodeAnalyzeRequest.
type AnalyzeRequest struct {
	Transcript string `json:"transcript" validate:"required,min=10"`
}

type EventType string

const (
	EventStart EventType = "start"
	EventToken EventType = "token"
	EventEnd   EventType = "end"
	EventError EventType = "error"
)

type StreamEvent struct {
	Type      EventType `json:"type" validate:"oneof=start token end error"`
	Data      string    `json:"data"`
	MessageID string    `json:"messageId,omitempty"`
}

type ApiError struct {
	Error      string    `json:"error"`
	Message    string    `json:"message"`
	StatusCode int       `json:"statusCode"`
	Timestamp  time.Time `json:"timestamp"`
}

type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
