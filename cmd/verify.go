package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"boardsight/config"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [path]",
	Short: "Verify that the configuration is valid",
	Long:  `Verify parses and validates the HCL configuration files. Path can be a file or directory; without one the built-in configuration is checked.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := configPath
		if len(args) == 1 {
			path = args[0]
		}

		var cfg *config.Config
		var err error
		if path == "" {
			cfg, err = config.LoadOrDefault("")
		} else {
			cfg, err = config.LoadAndValidate(path)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Configuration is valid!\n")
		fmt.Printf("Found %d model(s)\n", len(cfg.Models))
		for _, m := range cfg.Models {
			marker := ""
			if m.Name == cfg.Agent.Model {
				marker = " [agent]"
			}
			fmt.Printf("  - %s (provider: %s, model: %s)%s\n", m.Name, m.Provider, m.Model, marker)
		}
		fmt.Printf("Found %d variable(s)\n", len(cfg.Variables))
		for _, v := range cfg.Variables {
			resolved, _ := config.ResolveVariableValue(&v)
			if v.Secret {
				if resolved != "" {
					fmt.Printf("  - %s (secret, set)\n", v.Name)
				} else {
					fmt.Printf("  - %s (secret, not set)\n", v.Name)
				}
			} else {
				fmt.Printf("  - %s = %q\n", v.Name, resolved)
			}
		}
		fmt.Printf("Agent: max_iterations=%d context_item_limit=%d max_tokens=%d\n",
			cfg.Agent.MaxIterations, cfg.Agent.ContextItemLimit, cfg.Agent.MaxTokens)
		fmt.Printf("Boards: deals=%q work_orders=%q\n", cfg.Monday.DealsBoardID, cfg.Monday.WorkOrdersBoardID)
		fmt.Printf("Server: listen=%s allowed_origins=%v\n", cfg.Server.Listen, cfg.Server.AllowedOrigins)

		if warnings := cfg.Warnings(); len(warnings) > 0 {
			fmt.Printf("\nWarnings:\n")
			for _, w := range warnings {
				fmt.Printf("  - %s is not set\n", w)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
