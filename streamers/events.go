package streamers

import (
	"bytes"
	"encoding/json"
)

// EventType discriminates the events of a chat stream.
type EventType string

const (
	EventToolCall   EventType = "tool_call"
	EventToolResult EventType = "tool_result"
	EventMessage    EventType = "message"
	EventError      EventType = "error"
	EventDone       EventType = "done"
)

// Event is one frame of a chat stream. Only the fields belonging to Type are
// serialized.
type Event struct {
	Type        EventType
	Name        string
	Args        map[string]any
	ItemCount   int
	DataQuality any
	Content     string
	Message     string
}

func ToolCallEvent(name string, args map[string]any) Event {
	if args == nil {
		args = map[string]any{}
	}
	return Event{Type: EventToolCall, Name: name, Args: args}
}

func ToolResultEvent(name string, itemCount int, dataQuality any) Event {
	if dataQuality == nil {
		dataQuality = map[string]any{}
	}
	return Event{Type: EventToolResult, Name: name, ItemCount: itemCount, DataQuality: dataQuality}
}

func MessageEvent(content string) Event {
	return Event{Type: EventMessage, Content: content}
}

func ErrorEvent(message string) Event {
	return Event{Type: EventError, Message: message}
}

func DoneEvent() Event {
	return Event{Type: EventDone}
}

// Terminal reports whether e ends the meaningful part of a turn.
func (e Event) Terminal() bool {
	return e.Type == EventMessage || e.Type == EventError
}

func (e Event) MarshalJSON() ([]byte, error) {
	switch e.Type {
	case EventToolCall:
		return encode(struct {
			Type EventType      `json:"type"`
			Name string         `json:"name"`
			Args map[string]any `json:"args"`
		}{e.Type, e.Name, e.Args})
	case EventToolResult:
		return encode(struct {
			Type        EventType `json:"type"`
			Name        string    `json:"name"`
			ItemCount   int       `json:"item_count"`
			DataQuality any       `json:"data_quality"`
		}{e.Type, e.Name, e.ItemCount, e.DataQuality})
	case EventMessage:
		return encode(struct {
			Type    EventType `json:"type"`
			Content string    `json:"content"`
		}{e.Type, e.Content})
	case EventError:
		return encode(struct {
			Type    EventType `json:"type"`
			Message string    `json:"message"`
		}{e.Type, e.Message})
	default:
		return encode(struct {
			Type EventType `json:"type"`
		}{e.Type})
	}
}

// encode marshals v leaving <, > and & unescaped. An outer encoder cannot
// undo escaping applied here.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON decodes any event shape produced by MarshalJSON.
func (e *Event) UnmarshalJSON(data []byte) error {
	var wire struct {
		Type        EventType      `json:"type"`
		Name        string         `json:"name"`
		Args        map[string]any `json:"args"`
		ItemCount   int            `json:"item_count"`
		DataQuality any            `json:"data_quality"`
		Content     string         `json:"content"`
		Message     string         `json:"message"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*e = Event{
		Type:        wire.Type,
		Name:        wire.Name,
		Args:        wire.Args,
		ItemCount:   wire.ItemCount,
		DataQuality: wire.DataQuality,
		Content:     wire.Content,
		Message:     wire.Message,
	}
	return nil
}
