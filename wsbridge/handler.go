// Package wsbridge serves the chat event stream over a websocket. Each text
// message received is one chat request; the events answering it are sent
// back as JSON text messages, ending with done.
package wsbridge

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"

	"boardsight/metrics"
	"boardsight/server"
	"boardsight/streamers"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20
	queueSize      = 16
)

type Options struct {
	// AllowedOrigins limits browser origins; "*" or empty allows any.
	AllowedOrigins []string
	Logger         hclog.Logger
}

// Handler upgrades requests and answers chat requests one at a time per
// connection.
type Handler struct {
	agent    server.Streamer
	upgrader websocket.Upgrader
	logger   hclog.Logger
}

func NewHandler(agent server.Streamer, opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Handler{
		agent: agent,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(opts.AllowedOrigins),
		},
		logger: logger.Named("wsbridge"),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.logger.Warn("upgrade failed", "error", err)
		return
	}
	defer ws.Close()

	logger := h.logger.With("conn_id", uuid.New().String())
	logger.Info("client connected", "remote", r.RemoteAddr)

	ctx, cancel := context.WithCancel(hclog.WithContext(context.Background(), logger))
	defer cancel()

	requests := make(chan []byte, queueSize)
	go h.readPump(ws, requests, cancel, logger)
	go h.pingLoop(ctx, ws)

	sink := &wsSink{ws: ws}
	for body := range requests {
		if ctx.Err() != nil {
			// The client is gone; requests still queued have nobody to answer.
			break
		}
		h.answer(ctx, sink, body, logger)
	}
	logger.Info("client disconnected")
}

// readPump queues inbound messages until the connection fails, then cancels
// any answer in progress.
func (h *Handler) readPump(ws *websocket.Conn, requests chan<- []byte, cancel context.CancelFunc, logger hclog.Logger) {
	defer close(requests)
	defer cancel()

	ws.SetReadLimit(maxMessageSize)
	ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("read failed", "error", err)
			}
			return
		}
		ws.SetReadDeadline(time.Now().Add(pongWait))
		requests <- msg
	}
}

func (h *Handler) pingLoop(ctx context.Context, ws *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (h *Handler) answer(ctx context.Context, sink *wsSink, body []byte, logger hclog.Logger) {
	req, err := server.ValidateChatRequest(body)
	if err != nil {
		logger.Info("rejected chat request", "error", err)
		_ = sink.Send(streamers.ErrorEvent(err.Error()))
		_ = sink.Send(streamers.DoneEvent())
		metrics.ChatStreams.WithLabelValues("websocket", metrics.OutcomeError).Inc()
		return
	}

	logger.Info("chat request", "history_turns", len(req.History))
	outcome := metrics.OutcomeSuccess
	if err := h.agent.Stream(ctx, req.Message, req.Messages(), sink); err != nil {
		outcome = metrics.OutcomeError
		logger.Warn("chat stream interrupted", "error", err)
	}
	metrics.ChatStreams.WithLabelValues("websocket", outcome).Inc()
}

// wsSink writes events as JSON text messages. Only the connection's answer
// loop writes data frames.
type wsSink struct {
	ws *websocket.Conn
}

func (s *wsSink) Send(e streamers.Event) error {
	s.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return s.ws.WriteJSON(e)
}

func originChecker(allowed []string) func(r *http.Request) bool {
	for _, o := range allowed {
		if o == "*" {
			allowed = nil
			break
		}
	}
	return func(r *http.Request) bool {
		if len(allowed) == 0 {
			return true
		}
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}
}
