package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Long = fmt.Sprintf(`Boardsight %s

Ask business questions about the monday.com Deals and Work Orders boards.
The analyst fetches live board data, cleans it and answers with figures.

Get started:
  boardsight vars set groq_api_key <key>   Store a credential
  boardsight verify                        Validate your configuration
  boardsight ask "How is Mining doing?"    Ask one question
  boardsight chat                          Start an interactive session
  boardsight serve                         Serve the chat API`, Version)
}
