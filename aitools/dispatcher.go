package aitools

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"boardsight/board"
	"boardsight/metrics"
	"boardsight/summary"
)

// Dispatcher routes model tool calls to the board tools. It holds no
// per-call state and is safe for concurrent use.
type Dispatcher struct {
	tools  map[ToolName]Tool
	order  []ToolName
	logger hclog.Logger
}

// NewDispatcher creates a dispatcher whose tools read boards through fetcher.
func NewDispatcher(fetcher board.Fetcher, ids BoardIDs, logger hclog.Logger) *Dispatcher {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	b := &boards{fetcher: fetcher, ids: ids}
	tools := []Tool{
		&DealsTool{boards: b},
		&WorkOrdersTool{boards: b},
		&CrossBoardTool{boards: b},
	}

	d := &Dispatcher{
		tools:  make(map[ToolName]Tool, len(tools)),
		logger: logger.Named("tools"),
	}
	for _, t := range tools {
		d.tools[t.ToolName()] = t
		d.order = append(d.order, t.ToolName())
	}
	return d
}

// Tools returns the tools in declaration order.
func (d *Dispatcher) Tools() []Tool {
	out := make([]Tool, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.tools[name])
	}
	return out
}

// Execute runs the named tool. Unknown names yield an *UnknownToolError
// without touching the boards.
func (d *Dispatcher) Execute(ctx context.Context, name string, args map[string]any) (summary.Result, error) {
	toolName, err := ParseToolName(name)
	if err != nil {
		metrics.ToolCalls.WithLabelValues("unknown", metrics.OutcomeError).Inc()
		d.logger.Warn("model requested unknown tool", "tool", name)
		return nil, err
	}
	if args == nil {
		args = map[string]any{}
	}

	start := time.Now()
	result, err := d.tools[toolName].Call(ctx, args)
	metrics.ToolDuration.WithLabelValues(string(toolName)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ToolCalls.WithLabelValues(string(toolName), metrics.OutcomeError).Inc()
		d.logger.Error("tool failed", "tool", toolName, "error", err)
		return nil, fmt.Errorf("%s: %w", toolName, err)
	}

	metrics.ToolCalls.WithLabelValues(string(toolName), metrics.OutcomeSuccess).Inc()
	d.logger.Debug("tool completed", "tool", toolName, "items", result.ItemCount(), "duration", time.Since(start))
	return result, nil
}
