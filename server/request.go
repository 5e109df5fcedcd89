package server

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"boardsight/llm"
)

// HistoryMessage is one earlier turn of the conversation.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of a chat call over SSE or websocket.
type ChatRequest struct {
	Message string           `json:"message"`
	History []HistoryMessage `json:"history"`
}

// Messages converts the history to model messages.
func (r *ChatRequest) Messages() []llm.Message {
	out := make([]llm.Message, 0, len(r.History))
	for _, h := range r.History {
		out = append(out, llm.NewTextMessage(llm.Role(h.Role), h.Content))
	}
	return out
}

var chatRequestSchema = gojsonschema.NewGoLoader(map[string]any{
	"type":     "object",
	"required": []any{"message"},
	"properties": map[string]any{
		"message": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"history": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"role", "content"},
				"properties": map[string]any{
					"role":    map[string]any{"type": "string", "enum": []any{"user", "assistant"}},
					"content": map[string]any{"type": "string"},
				},
			},
		},
	},
})

// ValidationError lists why a chat request was rejected.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid chat request: %s", strings.Join(e.Reasons, "; "))
}

// ValidateChatRequest checks body against the chat request schema and
// decodes it. Rejections are returned as *ValidationError.
func ValidateChatRequest(body []byte) (*ChatRequest, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &ValidationError{Reasons: []string{fmt.Sprintf("body is not valid JSON: %v", err)}}
	}

	result, err := gojsonschema.Validate(chatRequestSchema, gojsonschema.NewGoLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		reasons := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			reasons[i] = desc.String()
		}
		return nil, &ValidationError{Reasons: reasons}
	}

	var req ChatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, &ValidationError{Reasons: []string{err.Error()}}
	}
	return &req, nil
}
