// Package streamers carries agent progress to clients as a stream of events
// that always ends with exactly one done event.
package streamers

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// Stream calls run with a handler that forwards every call to sink as an
// event. Once run returns, or panics, a single done event is sent. A panic is
// reported as an error event first.
//
// Sink failures are logged and do not stop the stream; the first one is
// returned.
func Stream(ctx context.Context, sink Sink, run func(context.Context, ChatHandler)) (err error) {
	s := &sinkHandler{sink: sink, logger: hclog.FromContext(ctx).Named("stream")}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("agent panicked", "panic", r)
			s.send(ErrorEvent(fmt.Sprint(r)))
		}
		s.send(DoneEvent())
		err = s.err
	}()

	run(ctx, s)
	return nil
}

type sinkHandler struct {
	sink   Sink
	logger hclog.Logger
	err    error
}

func (s *sinkHandler) send(e Event) {
	if err := s.sink.Send(e); err != nil {
		s.logger.Warn("failed to deliver event", "type", e.Type, "error", err)
		if s.err == nil {
			s.err = err
		}
	}
}

func (s *sinkHandler) CallingTool(toolName string, args map[string]any) {
	s.send(ToolCallEvent(toolName, args))
}

func (s *sinkHandler) ToolResult(toolName string, itemCount int, dataQuality any) {
	s.send(ToolResultEvent(toolName, itemCount, dataQuality))
}

func (s *sinkHandler) Answer(content string) {
	s.send(MessageEvent(content))
}

func (s *sinkHandler) Error(message string) {
	s.send(ErrorEvent(message))
}
