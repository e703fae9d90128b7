package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/orgair/orgair-mcp/internal/server-plugin/domain"
)

// ServerPluginProvider is the read side of the plugin registry.
type ServerPluginProvider interface {
	GetResourceProviders() []domain.ResourceProvider
	GetResourceTemplateProviders() []domain.ResourceTemplateProvider
	GetToolProviders() []domain.ToolProvider
	GetPromptProviders() []domain.PromptProvider
}

// MCPAdapter publishes every plugin capability on the mcp-go server.
type MCPAdapter struct {
	provider  ServerPluginProvider
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

func NewMCPAdapter(provider ServerPluginProvider, mcpServer *server.MCPServer, logger *slog.Logger) *MCPAdapter {
	return &MCPAdapter{
		provider:  provider,
		mcpServer: mcpServer,
		logger:    logger.With("component", "mcp_adapter"),
	}
}

// registration publishes one capability kind and reports how many entries it added.
type registration struct {
	kind     string
	register func(ctx context.Context) (int, error)
}

// RegisterAllServerPlugins publishes resources, resource templates, tools and
// prompts, stopping at the first plugin that fails to list its capabilities.
func (a *MCPAdapter) RegisterAllServerPlugins(ctx context.Context) error {
	steps := []registration{
		{kind: "resources", register: a.registerResources},
		{kind: "resource templates", register: a.registerResourceTemplates},
		{kind: "tools", register: a.registerTools},
		{kind: "prompts", register: a.registerPrompts},
	}

	counts := make([]any, 0, 2*len(steps))
	for _, step := range steps {
		n, err := step.register(ctx)
		if err != nil {
			return fmt.Errorf("failed to register %s: %w", step.kind, err)
		}
		counts = append(counts, step.kind, n)
	}

	a.logger.Info("Server plugin capabilities published", counts...)
	return nil
}

func (a *MCPAdapter) registerResources(ctx context.Context) (int, error) {
	total := 0
	for _, p := range a.provider.GetResourceProviders() {
		resources, err := p.GetResources(ctx)
		if err != nil {
			return total, fmt.Errorf("plugin %s: %w", p.ID(), err)
		}
		for _, r := range resources {
			a.mcpServer.AddResource(mcp.NewResource(r.URI, r.Name,
				mcp.WithResourceDescription(r.Description),
				mcp.WithMIMEType(r.MIMEType),
			), r.Handler)
			a.logger.Debug("Resource published", "plugin", p.ID(), "uri", r.URI)
			total++
		}
	}
	return total, nil
}

func (a *MCPAdapter) registerResourceTemplates(ctx context.Context) (int, error) {
	total := 0
	for _, p := range a.provider.GetResourceTemplateProviders() {
		templates, err := p.GetResourceTemplates(ctx)
		if err != nil {
			return total, fmt.Errorf("plugin %s: %w", p.ID(), err)
		}
		for _, t := range templates {
			a.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(t.URITemplate, t.Name,
				mcp.WithTemplateDescription(t.Description),
				mcp.WithTemplateMIMEType(t.MIMEType),
			), t.Handler)
			a.logger.Debug("Resource template published", "plugin", p.ID(), "uri_template", t.URITemplate)
			total++
		}
	}
	return total, nil
}

func (a *MCPAdapter) registerTools(ctx context.Context) (int, error) {
	total := 0
	for _, p := range a.provider.GetToolProviders() {
		tools, err := p.GetTools(ctx)
		if err != nil {
			return total, fmt.Errorf("plugin %s: %w", p.ID(), err)
		}
		for _, t := range tools {
			a.mcpServer.AddTool(t.Builder(), t.Handler)
			a.logger.Debug("Tool published", "plugin", p.ID(), "tool", t.Name)
			total++
		}
	}
	return total, nil
}

func (a *MCPAdapter) registerPrompts(ctx context.Context) (int, error) {
	total := 0
	for _, p := range a.provider.GetPromptProviders() {
		prompts, err := p.GetPrompts(ctx)
		if err != nil {
			return total, fmt.Errorf("plugin %s: %w", p.ID(), err)
		}
		for _, pr := range prompts {
			a.mcpServer.AddPrompt(pr.Builder(), pr.Handler)
			a.logger.Debug("Prompt published", "plugin", p.ID(), "prompt", pr.Name)
			total++
		}
	}
	return total, nil
}
