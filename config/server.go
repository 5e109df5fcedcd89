package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Server configures the HTTP surface
type Server struct {
	Listen         string   `hcl:"listen,optional"`
	AllowedOrigins []string `hcl:"allowed_origins,optional"`
}

func (s *Server) Defaults() {
	if s.Listen == "" {
		s.Listen = ":8000"
	}
	if s.AllowedOrigins == nil {
		s.AllowedOrigins = []string{"*"}
	}
}

func (s *Server) Validate() error {
	if s.Listen == "" {
		return fmt.Errorf("server: listen is required")
	}
	return nil
}

// Logging configures the process logger
type Logging struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

func (l *Logging) Defaults() {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func (l *Logging) Validate() error {
	if hclog.LevelFromString(l.Level) == hclog.NoLevel {
		return fmt.Errorf("logging: unknown level '%s'", l.Level)
	}
	switch strings.ToLower(l.Format) {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("logging: format must be 'text' or 'json', got '%s'", l.Format)
	}
}

// NewLogger builds the root logger described by l
func (l *Logging) NewLogger(name string, out io.Writer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(l.Level),
		Output:     out,
		JSONFormat: strings.EqualFold(l.Format, "json"),
	})
}
