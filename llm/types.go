package llm

import (
	"context"

	"boardsight/aitools"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
)

// ToolCall is a function invocation requested by the model. Arguments is the
// raw JSON text the model produced and may be malformed.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Message represents a conversation message
type Message struct {
	Role    Role
	Content string

	// ToolCalls is set on assistant messages that requested tools.
	ToolCalls []ToolCall

	// ToolCallID and ToolName identify the call a RoleTool message answers.
	ToolCallID string
	ToolName   string
}

// HasToolCalls returns true if the message requested at least one tool
func (m Message) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}

// NewTextMessage creates a simple text-only message
func NewTextMessage(role Role, text string) Message {
	return Message{Role: role, Content: text}
}

// NewToolResultMessage creates the message answering call.
func NewToolResultMessage(call ToolCall, content string) Message {
	return Message{
		Role:       RoleTool,
		Content:    content,
		ToolCallID: call.ID,
		ToolName:   call.Name,
	}
}

// ToolDeclaration advertises a callable function to the model.
type ToolDeclaration struct {
	Name        string
	Description string
	Parameters  aitools.Schema
}

// DeclareTools builds declarations for tools.
func DeclareTools(tools []aitools.Tool) []ToolDeclaration {
	out := make([]ToolDeclaration, 0, len(tools))
	for _, t := range tools {
		out = append(out, ToolDeclaration{
			Name:        string(t.ToolName()),
			Description: t.ToolDescription(),
			Parameters:  t.ToolPayloadSchema(),
		})
	}
	return out
}

type ChatRequest struct {
	Model       string
	Messages    []Message
	Tools       []ToolDeclaration
	MaxTokens   int
	Temperature float64
}

type ChatResponse struct {
	ID           string
	Content      string
	ToolCalls    []ToolCall
	FinishReason string
	Usage        Usage
}

type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type Provider interface {
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
}
