package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/fx"

	plugins "github.com/orgair/orgair-mcp/internal/server-plugin/application"
	"github.com/orgair/orgair-mcp/pkg/config"
)

// StreamableHTTPPath is where the streamable HTTP transport is mounted.
const StreamableHTTPPath = "/mcp"

// NewTransportHandler builds the HTTP handler for the sse and http transports,
// wrapped in the configured CORS policy.
func NewTransportHandler(cfg *config.ServerConfig, mcpServer *server.MCPServer) (http.Handler, error) {
	var handler http.Handler
	switch cfg.Transport.Type {
	case "sse":
		handler = server.NewSSEServer(mcpServer)
	case "http":
		mux := http.NewServeMux()
		mux.Handle(StreamableHTTPPath, server.NewStreamableHTTPServer(mcpServer))
		handler = mux
	default:
		return nil, fmt.Errorf("transport %s is not served over HTTP", cfg.Transport.Type)
	}
	return CORSMiddleware(&cfg.CORS)(handler), nil
}

// registerServerHooks uses fx.Hook to manage the server's lifecycle.
func registerServerHooks(lc fx.Lifecycle, cfg *config.ServerConfig, mcpServer *server.MCPServer, adapter *MCPAdapter, registry *plugins.ServerPluginRegistry, logger *slog.Logger) {
	var httpServer *http.Server
	stdioCtx, cancelStdio := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := registry.Validate(ctx); err != nil {
				return fmt.Errorf("invalid server plugin set: %w", err)
			}

			logger.Info("Registering all server plugins...")
			if err := adapter.RegisterAllServerPlugins(ctx); err != nil {
				return fmt.Errorf("failed to register server plugins: %w", err)
			}
			logger.Info("All plugins registered.")

			switch cfg.Transport.Type {
			case "sse", "http":
				handler, err := NewTransportHandler(cfg, mcpServer)
				if err != nil {
					return err
				}
				addr := fmt.Sprintf("%s:%d", cfg.Transport.Host, cfg.Transport.Port)
				httpServer = &http.Server{Addr: addr, Handler: handler}
				logger.Info("Starting MCP server over HTTP",
					"transport", cfg.Transport.Type,
					"address", addr,
					"cors", cfg.CORS.Enabled)
				go func() {
					if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error("HTTP server failed", "error", err)
					}
				}()
			case "stdio":
				logger.Info("Starting MCP server with 'stdio' transport.")
				stdio := server.NewStdioServer(mcpServer)
				go func() {
					if err := stdio.Listen(stdioCtx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
						logger.Error("Stdio server failed", "error", err)
					}
				}()
			default:
				return fmt.Errorf("unknown transport type: %s", cfg.Transport.Type)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancelStdio()
			if httpServer != nil {
				logger.Info("Shutting down HTTP server gracefully...")
				shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
				defer cancel()
				return httpServer.Shutdown(shutdownCtx)
			}
			logger.Info("Stdio server shutdown.")
			return nil
		},
	})
}
