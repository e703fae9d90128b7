package workflow

import (
	"log/slog"

	serverDomain "github.com/orgair/orgair-mcp/internal/server-plugin/domain"
	capdomain "github.com/orgair/orgair-mcp/internal/server-plugins/capabilities/domain"
	playbooksdomain "github.com/orgair/orgair-mcp/internal/server-plugins/playbooks/domain"
	"github.com/orgair/orgair-mcp/internal/server-plugins/workflow/application"
	"go.uber.org/fx"
)

// NewOrchestrator binds the orchestrator to the in-process dispatcher and
// template engine.
func NewOrchestrator(dispatcher *capdomain.Dispatcher, engine *playbooksdomain.Engine, logger *slog.Logger) *application.Orchestrator {
	return application.NewOrchestrator(application.NewDispatcherInvoker(dispatcher), engine, logger)
}

// WorkflowModule provides the orchestrator and its tool plugin. It expects
// the capabilities and playbooks modules in the same graph.
var WorkflowModule = fx.Module("workflow",
	fx.Provide(
		NewOrchestrator,
		NewWorkflowServerPlugin,
		fx.Annotate(
			func(p *WorkflowServerPlugin) serverDomain.ServerPlugin { return p },
			fx.ResultTags(`group:"server_plugins"`),
		),
	),
)
