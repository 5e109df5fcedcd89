package llm

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"boardsight/aitools"
)

type GeminiProvider struct {
	client *genai.Client
}

func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiProvider{client: client}, nil
}

func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

func (p *GeminiProvider) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	model := p.client.GenerativeModel(req.Model)

	// Set system instructions
	systemContent := extractSystemPrompts(req.Messages)
	if systemContent != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(systemContent))
	}

	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if req.Temperature > 0 {
		model.SetTemperature(float32(req.Temperature))
	}

	if len(req.Tools) > 0 {
		model.Tools = geminiTools(req.Tools)
		model.ToolConfig = &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode: genai.FunctionCallingAuto,
			},
		}
	}

	// Start chat and set history
	history, pending := splitPending(req.Messages)
	chat := model.StartChat()
	chat.History = history

	resp, err := chat.SendMessage(ctx, pending...)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 {
		return nil, errors.New("gemini returned no candidates")
	}

	out := &ChatResponse{
		ID:           uuid.New().String(),
		FinishReason: resp.Candidates[0].FinishReason.String(),
	}
	if cand := resp.Candidates[0]; cand.Content != nil {
		out.Content, out.ToolCalls = readParts(cand.Content.Parts)
	}
	if resp.UsageMetadata != nil {
		out.Usage = Usage{
			InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		}
	}
	return out, nil
}

func extractSystemPrompts(messages []Message) string {
	var system string
	for _, m := range messages {
		if m.Role == RoleSystem {
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
		}
	}
	return system
}

// splitPending separates the chat history from the parts sent as the new
// turn: either the last user message or the trailing run of tool results.
func splitPending(messages []Message) ([]*genai.Content, []genai.Part) {
	var turns []Message
	for _, m := range messages {
		if m.Role != RoleSystem {
			turns = append(turns, m)
		}
	}

	cut := len(turns)
	for cut > 0 && turns[cut-1].Role == RoleTool {
		cut--
	}
	if cut == len(turns) && cut > 0 && turns[cut-1].Role == RoleUser {
		cut--
	}

	pending := []genai.Part{}
	for _, m := range turns[cut:] {
		pending = append(pending, messageParts(m)...)
	}
	if len(pending) == 0 {
		pending = append(pending, genai.Text(""))
	}
	return convertHistory(turns[:cut]), pending
}

func convertHistory(messages []Message) []*genai.Content {
	var history []*genai.Content

	for _, m := range messages {
		var role string
		switch m.Role {
		case RoleUser, RoleTool:
			role = "user"
		case RoleAssistant:
			role = "model"
		default:
			continue
		}

		// Function responses answering one model turn share a content.
		if m.Role == RoleTool && len(history) > 0 {
			last := history[len(history)-1]
			if _, ok := last.Parts[0].(genai.FunctionResponse); ok {
				last.Parts = append(last.Parts, messageParts(m)...)
				continue
			}
		}

		history = append(history, &genai.Content{
			Role:  role,
			Parts: messageParts(m),
		})
	}

	return history
}

// messageParts converts a Message to Gemini parts
func messageParts(m Message) []genai.Part {
	switch m.Role {
	case RoleTool:
		return []genai.Part{genai.FunctionResponse{
			Name:     m.ToolName,
			Response: responseObject(m.Content),
		}}
	case RoleAssistant:
		var parts []genai.Part
		if m.Content != "" {
			parts = append(parts, genai.Text(m.Content))
		}
		for _, tc := range m.ToolCalls {
			parts = append(parts, genai.FunctionCall{Name: tc.Name, Args: toolInput(tc.Arguments)})
		}
		if len(parts) == 0 {
			parts = append(parts, genai.Text(""))
		}
		return parts
	default:
		return []genai.Part{genai.Text(m.Content)}
	}
}

// responseObject wraps tool output that is not a JSON object.
func responseObject(content string) map[string]any {
	obj := map[string]any{}
	if err := json.Unmarshal([]byte(content), &obj); err != nil || obj == nil {
		return map[string]any{"result": content}
	}
	return obj
}

// readParts collects text and function calls. Gemini does not assign call
// IDs, so one is generated per call.
func readParts(parts []genai.Part) (string, []ToolCall) {
	var content string
	var calls []ToolCall
	for _, part := range parts {
		switch v := part.(type) {
		case genai.Text:
			content += string(v)
		case genai.FunctionCall:
			args, err := json.Marshal(v.Args)
			if err != nil || v.Args == nil {
				args = []byte("{}")
			}
			calls = append(calls, ToolCall{
				ID:        uuid.New().String(),
				Name:      v.Name,
				Arguments: string(args),
			})
		}
	}
	return content, calls
}

func geminiTools(tools []ToolDeclaration) []*genai.Tool {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  geminiSchema(t.Parameters),
		})
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

func geminiSchema(s aitools.Schema) *genai.Schema {
	props := make(map[string]*genai.Schema, len(s.Properties))
	for name, p := range s.Properties {
		props[name] = geminiProperty(p)
	}
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: props,
		Required:   s.Required,
	}
}

func geminiProperty(p aitools.Property) *genai.Schema {
	out := &genai.Schema{
		Type:        geminiType(p.Type),
		Description: p.Description,
		Enum:        p.Enum,
	}
	if p.Items != nil {
		out.Items = geminiProperty(*p.Items)
	}
	return out
}

func geminiType(t aitools.PropertyType) genai.Type {
	switch t {
	case aitools.TypeNumber:
		return genai.TypeNumber
	case aitools.TypeInteger:
		return genai.TypeInteger
	case aitools.TypeBoolean:
		return genai.TypeBoolean
	case aitools.TypeArray:
		return genai.TypeArray
	case aitools.TypeObject:
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}
