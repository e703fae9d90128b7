package catalog

import (
	serverDomain "github.com/orgair/orgair-mcp/internal/server-plugin/domain"
	"github.com/orgair/orgair-mcp/internal/server-plugins/catalog/application"
	"github.com/orgair/orgair-mcp/internal/server-plugins/catalog/domain"
	"go.uber.org/fx"
)

// CatalogModule provides the resource catalog, its reader and the resources plugin
var CatalogModule = fx.Module("catalog",
	fx.Provide(
		application.NewCatalog,
		domain.NewReader,
		NewCatalogServerPlugin,
		fx.Annotate(
			func(p *CatalogServerPlugin) serverDomain.ServerPlugin { return p },
			fx.ResultTags(`group:"server_plugins"`),
		),
	),
)
