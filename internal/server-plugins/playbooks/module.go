package playbooks

import (
	serverDomain "github.com/orgair/orgair-mcp/internal/server-plugin/domain"
	"github.com/orgair/orgair-mcp/internal/server-plugins/playbooks/application"
	"go.uber.org/fx"
)

// PlaybooksModule provides the template engine and the prompts plugin
var PlaybooksModule = fx.Module("playbooks",
	fx.Provide(
		application.NewEngine,
		NewPlaybooksServerPlugin,
		fx.Annotate(
			func(p *PlaybooksServerPlugin) serverDomain.ServerPlugin { return p },
			fx.ResultTags(`group:"server_plugins"`),
		),
	),
)
