package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"boardsight/streamers"
)

// sseSink writes each event as one `data: <json>` frame and flushes it.
type sseSink struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func (s *sseSink) Send(e streamers.Event) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("encode %s event: %w", e.Type, err)
	}

	frame := append([]byte("data: "), bytes.TrimRight(buf.Bytes(), "\n")...)
	frame = append(frame, '\n', '\n')
	if _, err := s.w.Write(frame); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

func writeSSEHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("X-Accel-Buffering", "no")
	h.Set("Connection", "keep-alive")
}
