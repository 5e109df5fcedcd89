package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"boardsight/agent"
	"boardsight/llm"
	"boardsight/streamers"
	"boardsight/streamers/cli"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the analyst",
	Long:  `Start an interactive chat session. Earlier turns are kept for follow-up questions until you exit.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := loadConfig()
		ctx := context.Background()

		a, err := agent.New(ctx, cfg, logger, agentOptions()...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()

		handler := cli.NewChatHandler()
		handler.Welcome(a.ModelName)

		var history []llm.Message
		for {
			input, err := handler.AwaitClientAnswer()
			if err != nil {
				if err != io.EOF {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				}
				handler.Goodbye()
				return
			}

			if input == "" {
				continue
			}
			if input == "exit" || input == "quit" {
				handler.Goodbye()
				return
			}

			// Only answered turns enter the history.
			var answer string
			sink := streamers.SinkFunc(func(e streamers.Event) error {
				if e.Type == streamers.EventMessage {
					answer = e.Content
				}
				return handler.Send(e)
			})

			handler.Thinking()
			_ = a.Stream(ctx, input, history, sink)
			if answer != "" {
				history = append(history,
					llm.NewTextMessage(llm.RoleUser, input),
					llm.NewTextMessage(llm.RoleAssistant, answer),
				)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
