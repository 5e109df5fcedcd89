package streamers

// ChatHandler receives the progress of one agent turn. The agent calls it
// sequentially from a single goroutine.
type ChatHandler interface {
	// CallingTool is called before the agent invokes a tool
	CallingTool(toolName string, args map[string]any)

	// ToolResult is called when a tool returns successfully
	ToolResult(toolName string, itemCount int, dataQuality any)

	// Answer is called with the model's final answer
	Answer(content string)

	// Error is called for tool failures and terminal failures
	Error(message string)
}

// Sink delivers events to a client: an SSE response, a websocket, a terminal.
type Sink interface {
	Send(Event) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event) error

func (f SinkFunc) Send(e Event) error {
	return f(e)
}
