package cmd

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"boardsight/agent"
	"boardsight/config"
)

var configPath string
var debugMode bool

var rootCmd = &cobra.Command{
	Use:   "boardsight",
	Short: "Business intelligence agent over monday.com boards",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is fine; the environment may already be set.
		_ = godotenv.Load()
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads --config, or the built-in configuration when it is not
// given, and builds the process logger from it.
func loadConfig() (*config.Config, hclog.Logger) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg, cfg.Logging.NewLogger("boardsight", os.Stderr)
}

// agentOptions translates the global flags into agent options.
func agentOptions() []agent.Option {
	var opts []agent.Option
	if debugMode {
		opts = append(opts, agent.WithTurnLog("debug.jsonl"))
	}
	return opts
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "Log every model turn to debug.jsonl")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file or directory (default: built-in config)")
}
