package fxapp

import (
	"log"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/orgair/orgair-mcp/internal/server"
	"github.com/orgair/orgair-mcp/internal/server-plugins/capabilities"
	"github.com/orgair/orgair-mcp/internal/server-plugins/catalog"
	"github.com/orgair/orgair-mcp/internal/server-plugins/core"
	"github.com/orgair/orgair-mcp/internal/server-plugins/onboarding"
	"github.com/orgair/orgair-mcp/internal/server-plugins/playbooks"
	"github.com/orgair/orgair-mcp/internal/server-plugins/workflow"
	"github.com/orgair/orgair-mcp/internal/shared/metrics"
	"github.com/orgair/orgair-mcp/internal/workbench"
	"github.com/orgair/orgair-mcp/pkg/config"
	"github.com/orgair/orgair-mcp/pkg/logger"
)

// New builds the MCP server application from the loaded configuration.
func New() *fx.App {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	return NewServer(cfg)
}

func NewServer(cfg *config.ServerConfig) *fx.App {
	return fx.New(ServerOptions(cfg))
}

// ServerOptions is the full graph: transports, every plugin and its hooks.
func ServerOptions(cfg *config.ServerConfig) fx.Option {
	return fx.Options(
		fxLogger(cfg),
		infrastructure(cfg),
		server.Module,
		domainModules(),
		core.CoreModule,
		onboarding.OnboardingModule,
	)
}

// NewConsole builds the in-process core without any MCP transport and
// populates targets, typically a *workbench.Workbench.
func NewConsole(cfg *config.ServerConfig, targets ...any) *fx.App {
	return fx.New(ConsoleOptions(cfg, targets...))
}

func ConsoleOptions(cfg *config.ServerConfig, targets ...any) fx.Option {
	return fx.Options(
		fxLogger(cfg),
		infrastructure(cfg),
		domainModules(),
		workbench.Module,
		fx.Populate(targets...),
	)
}

func infrastructure(cfg *config.ServerConfig) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		config.Module,
		logger.Module,
		metrics.Module,
	)
}

func domainModules() fx.Option {
	return fx.Options(
		capabilities.CapabilitiesModule,
		catalog.CatalogModule,
		playbooks.PlaybooksModule,
		workflow.WorkflowModule,
	)
}

// Default to a verbose logger for debug level
func fxLogger(cfg *config.ServerConfig) fx.Option {
	if cfg.LogLevel != "debug" {
		return fx.NopLogger
	}
	return fx.WithLogger(
		func() fxevent.Logger {
			return &fxevent.ConsoleLogger{W: log.Writer()}
		},
	)
}
