// Package server exposes the agent over HTTP: a server-sent event chat
// endpoint, an optional websocket endpoint, health and metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"boardsight/llm"
	"boardsight/metrics"
	"boardsight/streamers"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// Streamer answers one question as an event stream. *agent.Agent satisfies it.
type Streamer interface {
	Stream(ctx context.Context, query string, history []llm.Message, sink streamers.Sink) error
}

// Options configures a Server.
type Options struct {
	Listen         string
	AllowedOrigins []string
	// WebSocket, when set, is mounted at /api/chat/ws.
	WebSocket http.Handler
	Logger    hclog.Logger
}

type Server struct {
	agent  Streamer
	opts   Options
	logger hclog.Logger
}

func New(agent Streamer, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	return &Server{agent: agent, opts: opts, logger: logger.Named("server")}
}

// Routes returns the router serving every endpoint.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", s.handleChat)
		if s.opts.WebSocket != nil {
			r.Method(http.MethodGet, "/chat/ws", s.opts.WebSocket)
		}
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Listen,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", s.opts.Listen)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	logger := hclog.FromContext(r.Context())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]any{"detail": []string{err.Error()}})
		return
	}
	req, err := ValidateChatRequest(body)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			logger.Info("rejected chat request", "reasons", verr.Reasons)
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": verr.Reasons})
			return
		}
		logger.Error("validate chat request", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"detail": []string{err.Error()}})
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"detail": []string{"streaming unsupported"}})
		return
	}

	writeSSEHeaders(w)
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	logger.Info("chat request", "query", truncate(req.Message, 80), "history_turns", len(req.History))
	err = s.agent.Stream(r.Context(), req.Message, req.Messages(), &sseSink{w: w, flusher: flusher})
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
		logger.Warn("chat stream interrupted", "error", err)
	}
	metrics.ChatStreams.WithLabelValues("sse", outcome).Inc()
}

// requestLogger attaches a request-scoped logger to the context and logs
// each request when it completes.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := s.logger.With(
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
		)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(hclog.WithContext(r.Context(), logger)))
		logger.Debug("request served", "status", ww.Status(), "duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
