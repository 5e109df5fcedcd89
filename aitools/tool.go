package aitools

import (
	"context"
	"fmt"

	"boardsight/summary"
)

// ToolName identifies one of the board tools the model may call.
type ToolName string

const (
	QueryDealsBoard      ToolName = "query_deals_board"
	QueryWorkOrdersBoard ToolName = "query_work_orders_board"
	CrossBoardAnalysis   ToolName = "cross_board_analysis"
)

// UnknownToolError is returned when the model asks for a tool that does not
// exist.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %q", e.Name)
}

// ParseToolName resolves a model-supplied name to a ToolName.
func ParseToolName(name string) (ToolName, error) {
	switch t := ToolName(name); t {
	case QueryDealsBoard, QueryWorkOrdersBoard, CrossBoardAnalysis:
		return t, nil
	default:
		return "", &UnknownToolError{Name: name}
	}
}

// Tool defines the interface for AI agent tools
type Tool interface {
	// ToolName returns the name of the tool
	ToolName() ToolName

	// ToolDescription returns a description of what the tool does
	ToolDescription() string

	// ToolPayloadSchema returns the JSON schema for the tool's input parameters
	ToolPayloadSchema() Schema

	// Call fetches live board data and summarises it according to args
	Call(ctx context.Context, args map[string]any) (summary.Result, error)
}
