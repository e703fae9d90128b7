package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	serverDomain "github.com/orgair/orgair-mcp/internal/server-plugin/domain"
	"github.com/orgair/orgair-mcp/internal/server-plugins/core/application"
)

const (
	URIServerInfo = "orgair://server/info"
	URIServerLogs = "orgair://server/logs"
)

// CoreServerPlugin provides server introspection and diagnostics
type CoreServerPlugin struct {
	coreService *application.CoreService
	logger      *slog.Logger
}

func NewCoreServerPlugin(coreService *application.CoreService, logger *slog.Logger) *CoreServerPlugin {
	return &CoreServerPlugin{
		coreService: coreService,
		logger:      logger,
	}
}

// ServerPlugin interface implementation
func (p *CoreServerPlugin) ID() string {
	return "core"
}

func (p *CoreServerPlugin) Name() string {
	return "Core Functionality"
}

func (p *CoreServerPlugin) Description() string {
	return "Server information and recent sanitized log lines"
}

func (p *CoreServerPlugin) Version() string {
	return "0.1.0"
}

// ResourceProvider implementation
func (p *CoreServerPlugin) GetResources(ctx context.Context) ([]serverDomain.Resource, error) {
	return []serverDomain.Resource{
		{
			URI:         URIServerInfo,
			Name:        "Server Information",
			Description: "Server version, transport and every published operation, resource and prompt",
			MIMEType:    "application/json",
			Handler:     p.handleServerInfoResource,
		},
		{
			URI:         URIServerLogs,
			Name:        "Server Logs",
			Description: "Most recent server log lines with credentials redacted",
			MIMEType:    "application/json",
			Handler:     p.handleServerLogsResource,
		},
	}, nil
}

func (p *CoreServerPlugin) handleServerInfoResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonContents(req.Params.URI, p.coreService.GetServerInfo(ctx))
}

func (p *CoreServerPlugin) handleServerLogsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonContents(req.Params.URI, p.coreService.RecentLogs(application.DefaultLogLines))
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s: %w", uri, err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
