package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	serverDomain "github.com/orgair/orgair-mcp/internal/server-plugin/domain"
	"github.com/orgair/orgair-mcp/internal/server-plugins/catalog/domain"
)

// CatalogServerPlugin publishes the resource catalog over MCP
type CatalogServerPlugin struct {
	reader *domain.Reader
	logger *slog.Logger
}

func NewCatalogServerPlugin(reader *domain.Reader, logger *slog.Logger) *CatalogServerPlugin {
	return &CatalogServerPlugin{
		reader: reader,
		logger: logger,
	}
}

func (p *CatalogServerPlugin) ID() string   { return "catalog" }
func (p *CatalogServerPlugin) Name() string { return "Org-AI-R Resources" }

func (p *CatalogServerPlugin) Description() string {
	return "Companies, sectors, model parameters and URI-addressed company, fund and metric data"
}

func (p *CatalogServerPlugin) Version() string { return "0.1.0" }

// ResourceProvider implementation
func (p *CatalogServerPlugin) GetResources(ctx context.Context) ([]serverDomain.Resource, error) {
	entries := p.reader.Catalog().Resources()
	resources := make([]serverDomain.Resource, 0, len(entries))
	for _, entry := range entries {
		resources = append(resources, serverDomain.Resource{
			URI:         entry.URI,
			Name:        entry.Name,
			Description: entry.Description,
			MIMEType:    entry.MIMEType,
			Handler:     p.handleRead,
		})
	}
	return resources, nil
}

// ResourceTemplateProvider implementation
func (p *CatalogServerPlugin) GetResourceTemplates(ctx context.Context) ([]serverDomain.ResourceTemplate, error) {
	tmpls := p.reader.Catalog().Templates()
	out := make([]serverDomain.ResourceTemplate, 0, len(tmpls))
	for _, t := range tmpls {
		out = append(out, serverDomain.ResourceTemplate{
			URITemplate: t.Pattern,
			Name:        t.Name,
			Description: t.Description,
			MIMEType:    t.MIMEType,
			Handler:     p.handleRead,
		})
	}
	return out, nil
}

func (p *CatalogServerPlugin) handleRead(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	payload, err := p.reader.Read(ctx, req.Params.URI)
	if err != nil {
		return nil, err
	}

	jsonData, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize resource %s: %w", req.Params.URI, err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
