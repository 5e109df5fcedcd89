package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"boardsight/aitools"
	"boardsight/board"
	"boardsight/config"
	"boardsight/llm"
	"boardsight/streamers"
)

// Agent is a fully wired BI analyst ready to answer questions
type Agent struct {
	ModelName    string
	ProviderName string

	orchestrator *Orchestrator
	provider     *llm.Instrumented
	turnLog      *llm.TurnLogger
}

// Option customizes New.
type Option func(*setup)

type setup struct {
	turnLogPath string
}

// WithTurnLog records every model turn as JSONL at path.
func WithTurnLog(path string) Option {
	return func(s *setup) {
		s.turnLogPath = path
	}
}

// New creates an agent from config
func New(ctx context.Context, cfg *config.Config, logger hclog.Logger, opts ...Option) (*Agent, error) {
	var st setup
	for _, opt := range opts {
		opt(&st)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	modelConfig, err := cfg.ResolveModel()
	if err != nil {
		return nil, fmt.Errorf("resolving model: %w", err)
	}

	if modelConfig.APIKey == "" {
		return nil, fmt.Errorf("API key not set for model '%s'", modelConfig.Name)
	}

	provider, err := createProvider(ctx, modelConfig)
	if err != nil {
		return nil, fmt.Errorf("creating provider: %w", err)
	}

	var turnLog *llm.TurnLogger
	if st.turnLogPath != "" {
		turnLog, err = llm.NewTurnLogger(st.turnLogPath)
		if err != nil {
			return nil, fmt.Errorf("opening turn log: %w", err)
		}
		provider = turnLog.Wrap(provider)
	}

	monday := board.NewMondayClient(board.MondayOptions{
		URL:        cfg.Monday.URL,
		Token:      cfg.Monday.APIToken,
		APIVersion: cfg.Monday.APIVersion,
		ItemLimit:  cfg.Monday.ItemLimit,
		Timeout:    time.Duration(cfg.Monday.TimeoutSeconds) * time.Second,
	}, logger)

	dispatcher := aitools.NewDispatcher(monday, aitools.BoardIDs{
		Deals:      cfg.Monday.DealsBoardID,
		WorkOrders: cfg.Monday.WorkOrdersBoardID,
	}, logger)

	a := Assemble(string(modelConfig.Provider), provider, dispatcher, Options{
		Model:            modelConfig.Model,
		MaxIterations:    cfg.Agent.MaxIterations,
		MaxTokens:        cfg.Agent.MaxTokens,
		ContextItemLimit: cfg.Agent.ContextItemLimit,
		Logger:           logger,
	})
	a.turnLog = turnLog
	return a, nil
}

// Assemble builds an agent from an existing provider and tool set.
func Assemble(providerName string, provider llm.Provider, tools ToolExecutor, opts Options) *Agent {
	instrumented := llm.Instrument(providerName, provider)
	return &Agent{
		ModelName:    opts.Model,
		ProviderName: providerName,
		provider:     instrumented,
		orchestrator: NewOrchestrator(instrumented, tools, opts),
	}
}

// Stream answers query and delivers the events to sink, ending with done.
// The returned error is the first delivery failure, if any.
func (a *Agent) Stream(ctx context.Context, query string, history []llm.Message, sink streamers.Sink) error {
	return streamers.Stream(ctx, sink, func(ctx context.Context, h streamers.ChatHandler) {
		a.orchestrator.Run(ctx, query, history, h)
	})
}

// Close releases provider resources
func (a *Agent) Close() {
	if a.provider != nil {
		_ = a.provider.Close()
	}
	if a.turnLog != nil {
		a.turnLog.Close()
	}
}

func createProvider(ctx context.Context, modelConfig *config.Model) (llm.Provider, error) {
	switch modelConfig.Provider {
	case config.ProviderOpenAI:
		return llm.NewOpenAIProvider(modelConfig.APIKey, modelConfig.BaseURL), nil
	case config.ProviderGroq:
		baseURL := modelConfig.BaseURL
		if baseURL == "" {
			baseURL = llm.GroqBaseURL
		}
		return llm.NewOpenAIProvider(modelConfig.APIKey, baseURL), nil
	case config.ProviderAnthropic:
		return llm.NewAnthropicProvider(modelConfig.APIKey, modelConfig.BaseURL), nil
	case config.ProviderGemini:
		return llm.NewGeminiProvider(ctx, modelConfig.APIKey)
	default:
		return nil, fmt.Errorf("unknown provider: %s", modelConfig.Provider)
	}
}
