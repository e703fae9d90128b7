package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"

	mcpserver "github.com/orgair/orgair-mcp/internal/server"
	serverDomain "github.com/orgair/orgair-mcp/internal/server-plugin/domain"
	"github.com/orgair/orgair-mcp/internal/server-plugins/workflow/application"
	"github.com/orgair/orgair-mcp/internal/server-plugins/workflow/domain"
	"github.com/orgair/orgair-mcp/internal/shared"
	"github.com/orgair/orgair-mcp/pkg/config"
)

const ToolRunValueCreation = "run_value_creation_workflow"

// WorkflowServerPlugin exposes the value creation orchestrator as a tool
type WorkflowServerPlugin struct {
	orchestrator *application.Orchestrator
	defaults     config.WorkflowConfig
	logger       *slog.Logger
}

func NewWorkflowServerPlugin(orchestrator *application.Orchestrator, defaults config.WorkflowConfig, logger *slog.Logger) *WorkflowServerPlugin {
	return &WorkflowServerPlugin{
		orchestrator: orchestrator,
		defaults:     defaults,
		logger:       logger,
	}
}

func (p *WorkflowServerPlugin) ID() string   { return "workflow" }
func (p *WorkflowServerPlugin) Name() string { return "Org-AI-R Value Creation Workflow" }

func (p *WorkflowServerPlugin) Description() string {
	return "Runs the plan, score, evidence, what-if and EBITDA steps in sequence and summarizes them"
}

func (p *WorkflowServerPlugin) Version() string { return "0.1.0" }

// ToolProvider implementation
func (p *WorkflowServerPlugin) GetTools(ctx context.Context) ([]serverDomain.Tool, error) {
	return []serverDomain.Tool{
		{
			Name:        ToolRunValueCreation,
			Description: "Run the end-to-end AI value creation workflow for a company",
			Builder:     p.buildRunTool,
			Handler:     p.handleRun,
		},
	}, nil
}

func (p *WorkflowServerPlugin) buildRunTool() mcp.Tool {
	return mcp.NewTool(
		ToolRunValueCreation,
		mcp.WithDescription("Render the value creation plan, then score, gather evidence, model a what-if scenario and project EBITDA impact"),
		mcp.WithString("company_id",
			mcp.DefaultString(p.defaults.CompanyID),
			mcp.Description("Company to plan for"),
		),
		mcp.WithNumber("target_score",
			mcp.DefaultNumber(p.defaults.TargetScore),
			mcp.Min(0),
			mcp.Max(100),
			mcp.Description("Target Org-AI-R score"),
		),
		mcp.WithNumber("timeline_months",
			mcp.DefaultNumber(float64(p.defaults.TimelineMonths)),
			mcp.Min(1),
			mcp.Description("Implementation timeline in months"),
		),
	)
}

// RequestFrom fills a workflow request from tool arguments, falling back to
// the configured defaults for absent or blank values.
func RequestFrom(args map[string]any, defaults config.WorkflowConfig) (domain.Request, error) {
	req := domain.Request{
		CompanyID:      defaults.CompanyID,
		TargetScore:    defaults.TargetScore,
		TimelineMonths: defaults.TimelineMonths,
	}
	var invalid []string
	if v, ok := args["company_id"]; ok && v != nil {
		if s := cast.ToString(v); s != "" {
			req.CompanyID = s
		}
	}
	if v, ok := args["target_score"]; ok && v != nil {
		f, err := cast.ToFloat64E(v)
		if err != nil {
			invalid = append(invalid, "target_score")
		}
		req.TargetScore = f
	}
	if v, ok := args["timeline_months"]; ok && v != nil {
		n, err := cast.ToIntE(v)
		if err != nil || n <= 0 {
			invalid = append(invalid, "timeline_months")
		}
		req.TimelineMonths = n
	}
	if len(invalid) > 0 {
		return domain.Request{}, shared.NewFieldError(shared.KindInvalidArgument, invalid, nil)
	}
	return req, nil
}

func (p *WorkflowServerPlugin) handleRun(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	request, err := RequestFrom(req.GetArguments(), p.defaults)
	if err != nil {
		return toolError(err), nil
	}

	result, err := p.orchestrator.Run(ctx, request)
	if err != nil {
		return toolError(err), nil
	}
	return mcpserver.OK(fmt.Sprintf("Value creation workflow completed for %s", result.CompanyID), result), nil
}

func toolError(err error) *mcp.CallToolResult {
	kind, ok := shared.KindOf(err)
	if !ok {
		return mcpserver.Error("WorkflowFailed", err.Error(), "", nil)
	}
	var fields []string
	if typed, ok := err.(*shared.Error); ok {
		fields = typed.Fields
	}
	return mcpserver.Error(string(kind), err.Error(), "The workflow stops at the first failing step", fields)
}
