package playbooks

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	serverDomain "github.com/orgair/orgair-mcp/internal/server-plugin/domain"
	"github.com/orgair/orgair-mcp/internal/server-plugins/playbooks/domain"
)

// PlaybooksServerPlugin publishes the instruction templates as MCP prompts
type PlaybooksServerPlugin struct {
	engine *domain.Engine
	logger *slog.Logger
}

func NewPlaybooksServerPlugin(engine *domain.Engine, logger *slog.Logger) *PlaybooksServerPlugin {
	return &PlaybooksServerPlugin{
		engine: engine,
		logger: logger,
	}
}

func (p *PlaybooksServerPlugin) ID() string   { return "playbooks" }
func (p *PlaybooksServerPlugin) Name() string { return "Org-AI-R Playbooks" }

func (p *PlaybooksServerPlugin) Description() string {
	return "Multi-step instruction scripts for due diligence, value creation and competitive analysis"
}

func (p *PlaybooksServerPlugin) Version() string { return "0.1.0" }

// PromptProvider implementation
func (p *PlaybooksServerPlugin) GetPrompts(ctx context.Context) ([]serverDomain.Prompt, error) {
	specs := p.engine.List()
	prompts := make([]serverDomain.Prompt, 0, len(specs))
	for _, spec := range specs {
		prompts = append(prompts, serverDomain.Prompt{
			Name:        spec.Name,
			Description: spec.Description,
			Builder:     func() mcp.Prompt { return buildPrompt(spec) },
			Handler:     p.handlePrompt,
		})
	}
	return prompts, nil
}

func buildPrompt(spec domain.PromptSpec) mcp.Prompt {
	opts := []mcp.PromptOption{mcp.WithPromptDescription(spec.Description)}
	for _, arg := range spec.Arguments {
		argOpts := []mcp.ArgumentOption{mcp.ArgumentDescription(arg.Description)}
		if arg.Required {
			argOpts = append(argOpts, mcp.RequiredArgument())
		}
		opts = append(opts, mcp.WithArgument(arg.Name, argOpts...))
	}
	return mcp.NewPrompt(spec.Name, opts...)
}

func (p *PlaybooksServerPlugin) handlePrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	text, err := p.engine.Render(ctx, req.Params.Name, req.Params.Arguments)
	if err != nil {
		return nil, err
	}

	spec, _ := p.engine.Lookup(req.Params.Name)
	return &mcp.GetPromptResult{
		Description: spec.Description,
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.TextContent{Type: "text", Text: text},
			},
		},
	}, nil
}
