// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	ToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boardsight_tool_calls_total",
			Help: "Total number of tool calls dispatched for the model",
		},
		[]string{"tool", "outcome"},
	)

	ToolDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "boardsight_tool_duration_seconds",
			Help:    "Duration of tool calls including board fetches",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tool"},
	)

	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boardsight_llm_requests_total",
			Help: "Total number of model completions requested",
		},
		[]string{"provider", "outcome"},
	)

	AgentIterations = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "boardsight_agent_iterations",
			Help:    "Model turns used per answered question",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		},
	)

	ChatStreams = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boardsight_chat_streams_total",
			Help: "Total number of chat event streams served",
		},
		[]string{"transport", "outcome"},
	)
)
