package core

import (
	serverDomain "github.com/orgair/orgair-mcp/internal/server-plugin/domain"
	"github.com/orgair/orgair-mcp/internal/server-plugins/core/application"
	"github.com/orgair/orgair-mcp/internal/server-plugins/core/domain"
	"github.com/orgair/orgair-mcp/pkg/logger"
	"go.uber.org/fx"
)

// CoreModule provides dependency injection for the core plugin
var CoreModule = fx.Module("core",
	fx.Provide(
		func(buffer *logger.RingBuffer) domain.LogSource { return buffer },
		application.NewCoreService,
		NewCoreServerPlugin,
		fx.Annotate(
			func(p *CoreServerPlugin) serverDomain.ServerPlugin { return p },
			fx.ResultTags(`group:"server_plugins"`),
		),
	),
)
