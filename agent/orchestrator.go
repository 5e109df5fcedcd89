package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"boardsight/agent/internal/prompts"
	"boardsight/aitools"
	"boardsight/llm"
	"boardsight/metrics"
	"boardsight/streamers"
	"boardsight/summary"
)

// Defaults for Options fields left at zero.
const (
	DefaultMaxIterations = 8
	DefaultMaxTokens     = 4096
)

// NoAnswerMessage is the message reported when the iteration cap is reached.
const NoAnswerMessage = "Agent reached maximum iterations without a final answer."

// ToolExecutor is the tool surface the orchestrator drives.
type ToolExecutor interface {
	Tools() []aitools.Tool
	Execute(ctx context.Context, name string, args map[string]any) (summary.Result, error)
}

// Options tunes an Orchestrator.
type Options struct {
	Model            string
	MaxIterations    int
	MaxTokens        int
	ContextItemLimit int
	Logger           hclog.Logger
}

// Orchestrator runs the bounded tool-calling loop for one question at a time.
// It keeps no per-request state, so one value serves concurrent requests.
type Orchestrator struct {
	provider     llm.Provider
	tools        ToolExecutor
	declarations []llm.ToolDeclaration
	interceptor  *aitools.ResultInterceptor
	systemPrompt string
	opts         Options
	logger       hclog.Logger
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(provider llm.Provider, tools ToolExecutor, opts Options) *Orchestrator {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Orchestrator{
		provider:     provider,
		tools:        tools,
		declarations: llm.DeclareTools(tools.Tools()),
		interceptor:  aitools.NewResultInterceptor(opts.ContextItemLimit),
		systemPrompt: prompts.GetAnalystPrompt(tools.Tools()),
		opts:         opts,
		logger:       logger.Named("orchestrator"),
	}
}

// Run answers query, reporting progress to handler. Every path ends with
// exactly one Answer or a terminal Error call; tool failures are reported
// with Error and the loop continues.
func (o *Orchestrator) Run(ctx context.Context, query string, history []llm.Message, handler streamers.ChatHandler) {
	messages := o.buildContext(query, history)
	o.logger.Info("chat request", "query", truncate(query, 80), "history_turns", len(history))

	for iteration := 1; iteration <= o.opts.MaxIterations; iteration++ {
		o.logger.Debug("requesting completion", "iteration", iteration, "messages", len(messages))

		resp, err := o.provider.Chat(ctx, &llm.ChatRequest{
			Model:     o.opts.Model,
			Messages:  messages,
			Tools:     o.declarations,
			MaxTokens: o.opts.MaxTokens,
		})
		if err != nil {
			o.logger.Error("model call failed", "iteration", iteration, "error", err)
			handler.Error(fmt.Sprintf("LLM error: %v", err))
			return
		}

		if len(resp.ToolCalls) == 0 {
			metrics.AgentIterations.Observe(float64(iteration))
			o.logger.Info("answer ready", "iteration", iteration)
			handler.Answer(resp.Content)
			return
		}

		messages = append(messages, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		// Calls run one at a time, in the order the model emitted them.
		for _, call := range resp.ToolCalls {
			messages = append(messages, o.runTool(ctx, call, handler))
		}
	}

	metrics.AgentIterations.Observe(float64(o.opts.MaxIterations))
	o.logger.Warn("iteration cap reached", "max_iterations", o.opts.MaxIterations)
	handler.Error(NoAnswerMessage)
}

// runTool executes one call and returns the tool message for the context.
func (o *Orchestrator) runTool(ctx context.Context, call llm.ToolCall, handler streamers.ChatHandler) llm.Message {
	args := parseArguments(call.Arguments)
	o.logger.Info("tool call", "tool", call.Name, "args", args)
	handler.CallingTool(call.Name, args)

	result, err := o.tools.Execute(ctx, call.Name, args)
	if err != nil {
		handler.Error(fmt.Sprintf("Tool error (%s): %v", call.Name, err))
		return llm.NewToolResultMessage(call, aitools.ErrorContent(err))
	}

	handler.ToolResult(call.Name, result.ItemCount(), result.DataQuality())
	return llm.NewToolResultMessage(call, o.interceptor.Intercept(result))
}

func (o *Orchestrator) buildContext(query string, history []llm.Message) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.NewTextMessage(llm.RoleSystem, o.systemPrompt))
	for _, m := range history {
		if m.Role == llm.RoleUser || m.Role == llm.RoleAssistant {
			messages = append(messages, llm.NewTextMessage(m.Role, m.Content))
		}
	}
	return append(messages, llm.NewTextMessage(llm.RoleUser, query))
}

// parseArguments decodes a model's argument payload. Anything that is not a
// JSON object becomes an empty argument set.
func parseArguments(raw string) map[string]any {
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return map[string]any{}
	}
	args, ok := decoded.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return args
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
