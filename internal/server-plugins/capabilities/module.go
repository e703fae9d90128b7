package capabilities

import (
	serverDomain "github.com/orgair/orgair-mcp/internal/server-plugin/domain"
	"github.com/orgair/orgair-mcp/internal/server-plugins/capabilities/application"
	"go.uber.org/fx"
)

// CapabilitiesModule provides the operation dispatcher and the tools plugin
var CapabilitiesModule = fx.Module("capabilities",
	fx.Provide(
		application.NewDispatcher,
		NewCapabilitiesServerPlugin,
		fx.Annotate(
			func(p *CapabilitiesServerPlugin) serverDomain.ServerPlugin { return p },
			fx.ResultTags(`group:"server_plugins"`),
		),
	),
)
