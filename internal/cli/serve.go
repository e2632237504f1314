package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/emotion-reflect/internal/classifier"
	"github.com/vijay-prabhu/emotion-reflect/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the emotion HTTP API.

Routes:
  GET  /                          service banner
  POST /api/v1/emotion/analyze    classify a text
  GET  /api/v1/emotion/stats      running statistics
  GET  /api/v1/emotion/health     health, version and uptime
  GET  /api/v1/emotion/emotions   supported emotion labels

Examples:
  emotion serve
  emotion serve --port 9000
  PORT=9000 DEBUG=true emotion serve`,
	RunE: runServe,
}

var (
	serveHost string
	servePort int
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen host (overrides config)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Listen port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	if serveHost != "" {
		a.cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		a.cfg.Server.Port = servePort
	}
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	srv := server.New(a.analyzer, server.Options{
		Version:        version,
		Environment:    a.cfg.Server.Environment,
		AllowedOrigins: a.cfg.Server.AllowedOrigins,
		Rules:          a.cfg.ValidationRules(),
		ReadTimeout:    a.cfg.Server.ReadTimeout(),
		WriteTimeout:   a.cfg.Server.WriteTimeout(),
		Logger:         a.logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if c, ok := a.model.(*classifier.Client); ok {
		if err := c.EnsureRunning(ctx); err != nil {
			a.logger.Warn("real-model requests will fail", "error", err)
		}
	}

	a.logger.Info("starting emotion API",
		"version", version,
		"model_available", a.analyzer.HasModel(),
		"simulate_delay", a.cfg.Analyzer.SimulateDelay)

	return srv.Run(ctx, a.cfg.Addr())
}
