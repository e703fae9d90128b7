package application

import (
	"context"
	"log/slog"

	mcpserver "github.com/orgair/orgair-mcp/internal/server"
	capabilities "github.com/orgair/orgair-mcp/internal/server-plugins/capabilities/application"
	capdomain "github.com/orgair/orgair-mcp/internal/server-plugins/capabilities/domain"
	catdomain "github.com/orgair/orgair-mcp/internal/server-plugins/catalog/domain"
	"github.com/orgair/orgair-mcp/internal/server-plugins/core/domain"
	playbooksdomain "github.com/orgair/orgair-mcp/internal/server-plugins/playbooks/domain"
	"github.com/orgair/orgair-mcp/pkg/config"
)

// DefaultLogLines is how many lines the logs resource returns.
const DefaultLogLines = 100

// CoreService reports what the server publishes and what it logged recently
type CoreService struct {
	dispatcher *capdomain.Dispatcher
	reader     *catdomain.Reader
	engine     *playbooksdomain.Engine
	logs       domain.LogSource
	transport  config.TransportConfig
	logger     *slog.Logger
}

func NewCoreService(
	dispatcher *capdomain.Dispatcher,
	reader *catdomain.Reader,
	engine *playbooksdomain.Engine,
	logs domain.LogSource,
	transport config.TransportConfig,
	logger *slog.Logger,
) *CoreService {
	return &CoreService{
		dispatcher: dispatcher,
		reader:     reader,
		engine:     engine,
		logs:       logs,
		transport:  transport,
		logger:     logger,
	}
}

func (s *CoreService) GetServerInfo(ctx context.Context) *domain.ServerInfo {
	s.logger.Debug("Getting server information")

	info := &domain.ServerInfo{
		Name:              mcpserver.ServerName,
		Version:           mcpserver.Version,
		Transport:         s.transport.Type,
		ParameterVersion:  capabilities.ParameterVersion,
		Operations:        []string{},
		Resources:         []string{},
		ResourceTemplates: []string{},
		Prompts:           []string{},
	}
	for _, op := range s.dispatcher.Operations() {
		info.Operations = append(info.Operations, op.Name)
	}
	for _, entry := range s.reader.Catalog().Resources() {
		info.Resources = append(info.Resources, entry.URI)
	}
	for _, tmpl := range s.reader.Catalog().Templates() {
		info.ResourceTemplates = append(info.ResourceTemplates, tmpl.Pattern)
	}
	for _, prompt := range s.engine.List() {
		info.Prompts = append(info.Prompts, prompt.Name)
	}
	return info
}

// RecentLogs returns up to n sanitized lines, oldest first.
func (s *CoreService) RecentLogs(n int) *domain.LogSnapshot {
	lines := mcpserver.SanitizeLogLines(s.logs.Last(n))
	return &domain.LogSnapshot{
		Lines:    lines,
		Count:    len(lines),
		Capacity: s.logs.Capacity(),
	}
}
