package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"boardsight/streamers"
)

// ChatHandler renders a chat stream in the terminal. It is a streamers.Sink.
type ChatHandler struct {
	reader   *bufio.Reader
	out      io.Writer
	spinner  *spinner
	renderer *glamour.TermRenderer
}

// NewChatHandler creates a new CLI chat handler on stdin and stdout
func NewChatHandler() *ChatHandler {
	return newChatHandler(os.Stdin, os.Stdout)
}

func newChatHandler(in io.Reader, out io.Writer) *ChatHandler {
	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	return &ChatHandler{
		reader:   bufio.NewReader(in),
		out:      out,
		spinner:  newSpinner(out),
		renderer: renderer,
	}
}

func (s *ChatHandler) Welcome(modelName string) {
	fmt.Fprintf(s.out, "%s%sBoardsight BI analyst%s (model: %s)\n", ColorBold, ColorOrange, ColorReset, modelName)
	fmt.Fprintf(s.out, "%sAsk about deals and work orders. Type 'exit' or 'quit' to end the conversation.%s\n", ColorGray, ColorReset)
	fmt.Fprintln(s.out)
}

func (s *ChatHandler) AwaitClientAnswer() (string, error) {
	// Show input prompt
	fmt.Fprintf(s.out, "%s>  %s", ColorGray, ColorReset)
	input, err := s.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	input = strings.TrimSpace(input)
	if input != "" {
		// Move cursor up, clear line, then reprint the question in light brown
		fmt.Fprint(s.out, "\033[1A\033[K")
		fmt.Fprintf(s.out, "%s>  %s%s\n\n", ColorGray, ColorLightBrown, input+ColorReset)
	}
	return input, nil
}

func (s *ChatHandler) Goodbye() {
	fmt.Fprintf(s.out, "%sGoodbye!%s\n", ColorGray, ColorReset)
}

func (s *ChatHandler) Thinking() {
	s.spinner.Start("Thinking...")
}

// Send renders one event of the stream.
func (s *ChatHandler) Send(e streamers.Event) error {
	switch e.Type {
	case streamers.EventToolCall:
		s.spinner.Stop()
		args, _ := json.Marshal(e.Args)
		s.spinner.Start(fmt.Sprintf("Calling %s%s%s %s%s%s...", ColorBold, e.Name, ColorReset, ColorGray, args, ColorReset))
	case streamers.EventToolResult:
		s.spinner.Stop()
		fmt.Fprintf(s.out, "%s✓%s %s%s%s returned %d items\n\n", ColorGray, ColorReset, ColorBold, e.Name, ColorReset, e.ItemCount)
		s.spinner.Start("Thinking...")
	case streamers.EventMessage:
		s.spinner.Stop()
		s.renderAnswer(e.Content)
	case streamers.EventError:
		s.spinner.Stop()
		fmt.Fprintf(s.out, "%s✗ %s%s\n\n", ColorRed, e.Message, ColorReset)
	case streamers.EventDone:
		s.spinner.Stop()
	}
	return nil
}

func (s *ChatHandler) renderAnswer(content string) {
	if content == "" {
		return
	}

	// Render markdown
	rendered := content
	if s.renderer != nil {
		if out, err := s.renderer.Render(content); err == nil {
			rendered = out
		}
	}

	// Glamour adds leading/trailing newlines - trim them
	rendered = strings.TrimSpace(rendered)
	fmt.Fprintf(s.out, "%s•%s %s\n\n", ColorGray, ColorReset, rendered)
}
