package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"boardsight/agent"
	"boardsight/server"
	"boardsight/wsbridge"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chat API over HTTP",
	Long: `Start the HTTP server. POST /api/chat streams server-sent events,
GET /api/chat/ws carries the same events over a websocket, and /healthz and
/metrics report health and Prometheus metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := loadConfig()
		if serveListen != "" {
			cfg.Server.Listen = serveListen
		}

		if missing := cfg.Warnings(); len(missing) > 0 {
			logger.Warn("Missing environment variables: " + strings.Join(missing, ", "))
		} else {
			model, _ := cfg.ResolveModel()
			logger.Info(fmt.Sprintf("Startup OK | model=%s | deals_board=%s | wo_board=%s",
				model.Model, cfg.Monday.DealsBoardID, cfg.Monday.WorkOrdersBoardID))
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := agent.New(ctx, cfg, logger, agentOptions()...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()

		srv := server.New(a, server.Options{
			Listen:         cfg.Server.Listen,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			WebSocket: wsbridge.NewHandler(a, wsbridge.Options{
				AllowedOrigins: cfg.Server.AllowedOrigins,
				Logger:         logger,
			}),
			Logger: logger,
		})

		if err := srv.ListenAndServe(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Info("Shutdown complete")
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "Address to listen on (overrides server.listen)")
}
