package capabilities

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/orgair/orgair-mcp/internal/server"
	serverDomain "github.com/orgair/orgair-mcp/internal/server-plugin/domain"
	"github.com/orgair/orgair-mcp/internal/server-plugins/capabilities/application"
	"github.com/orgair/orgair-mcp/internal/server-plugins/capabilities/domain"
)

// CapabilitiesServerPlugin exposes every registered operation as an MCP tool
type CapabilitiesServerPlugin struct {
	dispatcher *domain.Dispatcher
	logger     *slog.Logger
}

func NewCapabilitiesServerPlugin(dispatcher *domain.Dispatcher, logger *slog.Logger) *CapabilitiesServerPlugin {
	return &CapabilitiesServerPlugin{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (p *CapabilitiesServerPlugin) ID() string   { return "capabilities" }
func (p *CapabilitiesServerPlugin) Name() string { return "Org-AI-R Capabilities" }

func (p *CapabilitiesServerPlugin) Description() string {
	return "Scoring, evidence retrieval, EBITDA projection, what-if modelling and fund portfolio operations"
}

func (p *CapabilitiesServerPlugin) Version() string { return "0.1.0" }

// ToolProvider implementation
func (p *CapabilitiesServerPlugin) GetTools(ctx context.Context) ([]serverDomain.Tool, error) {
	specs := p.dispatcher.Operations()
	tools := make([]serverDomain.Tool, 0, len(specs))
	for _, spec := range specs {
		tools = append(tools, serverDomain.Tool{
			Name:        spec.Name,
			Description: spec.Description,
			Builder: func() mcp.Tool {
				return mcp.NewToolWithRawSchema(spec.Name, spec.Description, spec.InputSchema())
			},
			Handler: p.handlerFor(spec.Name),
		})
	}
	p.logger.Debug("Capabilities plugin: Generated tools", "count", len(tools))
	return tools, nil
}

func (p *CapabilitiesServerPlugin) handlerFor(name string) serverDomain.ToolHandler {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		env := p.dispatcher.Invoke(ctx, name, req.GetArguments())
		if !env.OK {
			return mcpserver.Error(string(env.ErrorKind), env.Message, hintFor(name), env.Fields), nil
		}
		return mcpserver.OK(fmt.Sprintf("%s completed", name), env.Payload, followUps(name, env.Payload)...), nil
	}
}

func hintFor(name string) string {
	return fmt.Sprintf("Check the input schema of %s; every offending field is listed in fields", name)
}

// followUps chains results into the next natural call of the value creation flow.
func followUps(name string, payload any) []mcpserver.ToolLink {
	switch result := payload.(type) {
	case application.ScoreResult:
		return []mcpserver.ToolLink{
			{
				Rel:  "project",
				Tool: application.OpProjectEBITDAImpact,
				Params: map[string]any{
					"company_id":  result.CompanyID,
					"entry_score": result.FinalScore,
					"h_r_score":   result.Components.HRScore,
				},
			},
			{
				Rel:    "evidence",
				Tool:   application.OpGetEvidence,
				Params: map[string]any{"company_id": result.CompanyID, "dimension": application.AllDimensions},
			},
		}
	case application.WhatIfResult:
		return []mcpserver.ToolLink{
			{
				Rel:    "project",
				Tool:   application.OpProjectEBITDAImpact,
				Params: map[string]any{"company_id": result.CompanyID},
			},
		}
	}
	return nil
}
