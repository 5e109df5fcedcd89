package prompts

import (
	_ "embed"
	"fmt"
	"strings"

	"boardsight/aitools"
)

//go:embed analyst.md
var analystPromptTemplate string

// GetAnalystPrompt returns the analyst system prompt with tools injected
func GetAnalystPrompt(tools []aitools.Tool) string {
	return strings.Replace(analystPromptTemplate, "{{TOOLS}}", formatTools(tools), 1)
}

func formatTools(tools []aitools.Tool) string {
	var sb strings.Builder
	for _, t := range tools {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", t.ToolName(), t.ToolDescription()))
	}
	return strings.TrimRight(sb.String(), "\n")
}
