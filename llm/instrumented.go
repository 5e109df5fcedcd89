package llm

import (
	"context"

	"boardsight/metrics"
)

// Instrumented counts completions per provider on the LLM request metric.
type Instrumented struct {
	Provider
	name string
}

// Instrument wraps p, labelling its requests with name.
func Instrument(name string, p Provider) *Instrumented {
	return &Instrumented{Provider: p, name: name}
}

func (i *Instrumented) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	resp, err := i.Provider.Chat(ctx, req)
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
	}
	metrics.LLMRequests.WithLabelValues(i.name, outcome).Inc()
	return resp, err
}

// Close releases the wrapped provider if it holds resources.
func (i *Instrumented) Close() error {
	if c, ok := i.Provider.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
