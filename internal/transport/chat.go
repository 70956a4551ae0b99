// Package transport turns gateway results into HTTP responses: a validated ChatResponse for
// synchronous calls, and framed server-sent events for streams.
package transport

import (
	"fmt"
	"time"

	"github.com/suPer8Hu/interview-lens/internal/common"
	"github.com/suPer8Hu/interview-lens/internal/schema"
)

// ChatResponse echoes the caller's conversation id or generates one, and validates the result
// against the response contract before it is written.
func ChatResponse(req schema.ChatRequest, text, messageID string) (schema.ChatResponse, error) {
	convID := req.ConversationID
	if convID == "" {
		id, err := common.NewConversationID()
		if err != nil {
			return schema.ChatResponse{}, fmt.Errorf("conversation id: %w", err)
		}
		convID = id
	}

	resp := schema.ChatResponse{
		Response:       text,
		ConversationID: convID,
		MessageID:      messageID,
		Timestamp:      time.Now().UTC(),
	}
	if err := schema.Struct(resp); err != nil {
		return schema.ChatResponse{}, fmt.Errorf("invalid chat response: %w", err)
	}
	return resp, nil
}
