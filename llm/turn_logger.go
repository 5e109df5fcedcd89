package llm

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"
)

const contentPreviewMaxLen = 200

// TurnLogger writes one JSONL line per completion: the request messages in
// summary form and the model's reply. It is safe for concurrent use.
type TurnLogger struct {
	mu        sync.Mutex
	file      *os.File
	turnCount int
}

// NewTurnLogger creates a turn logger that writes to the given file path.
func NewTurnLogger(filename string) (*TurnLogger, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	return &TurnLogger{file: f}, nil
}

// Close closes the underlying file.
func (tl *TurnLogger) Close() {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	if tl.file != nil {
		tl.file.Close()
		tl.file = nil
	}
}

// Wrap returns a provider that logs every completion made through p.
func (tl *TurnLogger) Wrap(p Provider) Provider {
	return &loggedProvider{Provider: p, turns: tl}
}

// turnSnapshot is the top-level envelope written per turn.
type turnSnapshot struct {
	Turn         int               `json:"turn"`
	Timestamp    string            `json:"timestamp"`
	Model        string            `json:"model"`
	Tools        int               `json:"tools"`
	MessageCount int               `json:"message_count"`
	Messages     []messageSnapshot `json:"messages"`
	Response     *responseSnapshot `json:"response,omitempty"`
	Error        string            `json:"error,omitempty"`
}

// messageSnapshot captures one message's state without the full payload.
type messageSnapshot struct {
	Index          int      `json:"index"`
	Role           string   `json:"role"`
	ContentPreview string   `json:"content_preview,omitempty"`
	ContentLength  int      `json:"content_length"`
	ToolCalls      []string `json:"tool_calls,omitempty"`
	ToolCallID     string   `json:"tool_call_id,omitempty"`
	ToolName       string   `json:"tool_name,omitempty"`
}

type responseSnapshot struct {
	FinishReason   string     `json:"finish_reason"`
	ContentPreview string     `json:"content_preview,omitempty"`
	ToolCalls      []ToolCall `json:"tool_calls,omitempty"`
	Usage          Usage      `json:"usage"`
}

// LogTurn writes one line for a completion and its outcome.
func (tl *TurnLogger) LogTurn(req *ChatRequest, resp *ChatResponse, err error) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	if tl.file == nil {
		return
	}
	tl.turnCount++

	snap := turnSnapshot{
		Turn:         tl.turnCount,
		Timestamp:    time.Now().Format(time.RFC3339Nano),
		Model:        req.Model,
		Tools:        len(req.Tools),
		MessageCount: len(req.Messages),
		Messages:     make([]messageSnapshot, len(req.Messages)),
	}

	for i, msg := range req.Messages {
		ms := messageSnapshot{
			Index:          i,
			Role:           string(msg.Role),
			ContentPreview: preview(msg.Content),
			ContentLength:  len(msg.Content),
			ToolCallID:     msg.ToolCallID,
			ToolName:       msg.ToolName,
		}
		for _, tc := range msg.ToolCalls {
			ms.ToolCalls = append(ms.ToolCalls, tc.Name)
		}
		snap.Messages[i] = ms
	}

	if err != nil {
		snap.Error = err.Error()
	} else if resp != nil {
		snap.Response = &responseSnapshot{
			FinishReason:   resp.FinishReason,
			ContentPreview: preview(resp.Content),
			ToolCalls:      resp.ToolCalls,
			Usage:          resp.Usage,
		}
	}

	data, mErr := json.Marshal(snap)
	if mErr != nil {
		return
	}
	tl.file.WriteString(string(data) + "\n")
}

// preview truncates on a rune boundary so multi-byte text stays valid UTF-8.
func preview(text string) string {
	if len(text) <= contentPreviewMaxLen {
		return text
	}
	r := []rune(text)
	if len(r) <= contentPreviewMaxLen {
		return text
	}
	return string(r[:contentPreviewMaxLen]) + "..."
}

type loggedProvider struct {
	Provider
	turns *TurnLogger
}

func (p *loggedProvider) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	resp, err := p.Provider.Chat(ctx, req)
	p.turns.LogTurn(req, resp, err)
	return resp, err
}

func (p *loggedProvider) Close() error {
	if c, ok := p.Provider.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
