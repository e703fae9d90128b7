package server

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/fx"

	plugins "github.com/orgair/orgair-mcp/internal/server-plugin/application"
)

const ServerName = "Org-AI-R MCP Server"

// Version is reported to MCP clients; cmd/server overrides it at startup.
var Version = "dev"

// NewMCPServerInstance creates a new MCP server instance.
func NewMCPServerInstance(logger *slog.Logger) *server.MCPServer {
	logger.Debug("Creating MCP server instance", "version", Version)
	return server.NewMCPServer(
		ServerName,
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
	)
}

var Module = fx.Module("server",
	fx.Provide(
		NewMCPServerInstance,
		plugins.NewServerPluginRegistry,
		func(registry *plugins.ServerPluginRegistry) ServerPluginProvider { return registry },
		NewMCPAdapter,
	),
	fx.Invoke(registerServerHooks),
)
