// Command grafana-loki-mcp runs an MCP server exposing Loki log queries
// through a Grafana instance's datasource proxy API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/tumf/grafana-loki-mcp/internal/grafana"
	"github.com/tumf/grafana-loki-mcp/internal/prompts"
	"github.com/tumf/grafana-loki-mcp/internal/resources"
	"github.com/tumf/grafana-loki-mcp/internal/tools"
)

const (
	serverName = "Grafana-Loki Query Server"
	version    = "1.0.0"
)

var (
	grafanaURL    string
	apiKey        string
	transportType string
	sseAddr       string
)

var rootCmd = &cobra.Command{
	Use:   "grafana-loki-mcp",
	Short: "MCP server for querying Loki logs through Grafana",
	Long: `An MCP server that exposes Loki log queries, label discovery, and
datasource lookups through a Grafana instance's datasource proxy API.

Supports two transport modes:
  - stdio: standard input/output (default, for subprocess-based MCP clients)
  - sse:   HTTP server with Server-Sent Events`,
	Version:       version,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVarP(&grafanaURL, "url", "u", os.Getenv("GRAFANA_URL"), "Grafana base URL (env: GRAFANA_URL)")
	rootCmd.Flags().StringVarP(&apiKey, "api-key", "k", os.Getenv("GRAFANA_API_KEY"), "Grafana API key (env: GRAFANA_API_KEY)")
	rootCmd.Flags().StringVarP(&transportType, "transport", "t", "stdio", "Transport protocol: stdio or sse")
	rootCmd.Flags().StringVar(&sseAddr, "sse-addr", ":52229", "Listen address for the SSE transport")
}

func run(cmd *cobra.Command, args []string) error {
	// Log to stderr: stdout carries the JSON-RPC framing in stdio mode.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if grafanaURL == "" {
		return errors.New("Grafana URL is required: set the GRAFANA_URL environment variable or use the -u/--url flag")
	}
	if apiKey == "" {
		return errors.New("Grafana API key is required: set the GRAFANA_API_KEY environment variable or use the -k/--api-key flag")
	}

	client := grafana.NewClient(grafanaURL, apiKey)

	s := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
	)

	tools.RegisterMCPTools(s, client)
	resources.RegisterMCPResources(s, client)
	prompts.RegisterMCPPrompts(s)

	switch transportType {
	case "stdio":
		logger.Info("starting MCP server", "transport", "stdio", "grafana_url", grafanaURL)
		return server.ServeStdio(s)
	case "sse":
		logger.Info("starting MCP server", "transport", "sse", "addr", sseAddr, "grafana_url", grafanaURL)
		return serveSSE(s, logger)
	default:
		return fmt.Errorf("unknown transport %q (expected stdio or sse)", transportType)
	}
}

// serveSSE runs the SSE transport until the process receives SIGINT or
// SIGTERM, then shuts it down gracefully.
func serveSSE(s *server.MCPServer, logger *slog.Logger) error {
	sseServer := server.NewSSEServer(s)

	errCh := make(chan error, 1)
	go func() {
		if err := sseServer.Start(sseAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return sseServer.Shutdown(shutdownCtx)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
