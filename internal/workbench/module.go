package workbench

import (
	"go.uber.org/fx"

	"github.com/orgair/orgair-mcp/internal/server-plugins/workflow/application"
)

var Module = fx.Module("workbench",
	fx.Provide(
		func(o *application.Orchestrator) Runner { return o },
		New,
	),
)
