package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/CosmoTheDev/eventsync/internal/config"
	"github.com/CosmoTheDev/eventsync/internal/gateway"
	"github.com/spf13/cobra"
)

var (
	serveAddr   string
	serveDryRun bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Receive GitHub webhooks over HTTP and forward them to Lark",
	Long: `Starts an HTTP server that accepts GitHub webhook deliveries and
handles them exactly like 'eventsync notify' does inside GitHub Actions.

Point a repository or organisation webhook at http://<host>/webhook with
content type application/json, and set gateway.webhook_secret to the same
secret so deliveries are signature checked.

Routes:
  POST /webhook    GitHub webhook deliveries
  GET  /healthz    liveness check
  GET  /metrics    Prometheus metrics`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default :8080, overrides config)")
	serveCmd.Flags().BoolVar(&serveDryRun, "dry-run", false, "Print cards to stdout instead of posting them")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		fmt.Println("\nShutting down gracefully...")
		cancel()
	}()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if serveAddr != "" {
		cfg.Gateway.Addr = serveAddr
	}

	platform, err := newPlatform(cfg, gateway.LogReporter{}, serveDryRun)
	if err != nil {
		return err
	}
	return gateway.New(cfg.Gateway, platform).Start(ctx)
}
