package plugins

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/orgair/orgair-mcp/internal/server-plugin/domain"
	"go.uber.org/fx"
)

// ServerPluginRegistry holds the server plugins known at startup, ordered by ID.
type ServerPluginRegistry struct {
	plugins []domain.ServerPlugin
	index   map[string]domain.ServerPlugin
	mu      sync.RWMutex
}

type ServerPluginRegistryParams struct {
	fx.In
	Logger        *slog.Logger
	ServerPlugins []domain.ServerPlugin `group:"server_plugins"`
}

// NewServerPluginRegistry registers every grouped plugin, failing on duplicate IDs.
func NewServerPluginRegistry(params ServerPluginRegistryParams) (*ServerPluginRegistry, error) {
	r := NewEmptyServerPluginRegistry()
	for _, plugin := range params.ServerPlugins {
		if err := r.Register(plugin); err != nil {
			return nil, err
		}
		params.Logger.Debug("ServerPlugin registered with registry",
			"plugin", plugin.ID(),
			"name", plugin.Name(),
			"version", plugin.Version())
	}
	return r, nil
}

func NewEmptyServerPluginRegistry() *ServerPluginRegistry {
	return &ServerPluginRegistry{index: make(map[string]domain.ServerPlugin)}
}

// Register adds a server plugin
func (r *ServerPluginRegistry) Register(plugin domain.ServerPlugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if plugin.ID() == "" {
		return fmt.Errorf("server plugin %q has an empty ID", plugin.Name())
	}
	if _, exists := r.index[plugin.ID()]; exists {
		return fmt.Errorf("server plugin %s already registered", plugin.ID())
	}
	r.index[plugin.ID()] = plugin
	r.plugins = append(r.plugins, plugin)
	sort.SliceStable(r.plugins, func(i, j int) bool { return r.plugins[i].ID() < r.plugins[j].ID() })
	return nil
}

// GetServerPlugins returns every registered plugin ordered by ID
func (r *ServerPluginRegistry) GetServerPlugins() []domain.ServerPlugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.ServerPlugin(nil), r.plugins...)
}

func (r *ServerPluginRegistry) Get(id string) (domain.ServerPlugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plugin, ok := r.index[id]
	return plugin, ok
}

// GetResourceProviders returns all plugins that provide resources
func (r *ServerPluginRegistry) GetResourceProviders() []domain.ResourceProvider {
	return providersOf[domain.ResourceProvider](r)
}

// GetResourceTemplateProviders returns all plugins that provide resource templates
func (r *ServerPluginRegistry) GetResourceTemplateProviders() []domain.ResourceTemplateProvider {
	return providersOf[domain.ResourceTemplateProvider](r)
}

// GetToolProviders returns all plugins that provide tools
func (r *ServerPluginRegistry) GetToolProviders() []domain.ToolProvider {
	return providersOf[domain.ToolProvider](r)
}

// GetPromptProviders returns all plugins that provide prompts
func (r *ServerPluginRegistry) GetPromptProviders() []domain.PromptProvider {
	return providersOf[domain.PromptProvider](r)
}

func providersOf[P any](r *ServerPluginRegistry) []P {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var providers []P
	for _, plugin := range r.plugins {
		if provider, ok := plugin.(P); ok {
			providers = append(providers, provider)
		}
	}
	return providers
}

// Validate checks that no two plugins publish the same tool name, resource
// URI, template pattern or prompt name.
func (r *ServerPluginRegistry) Validate(ctx context.Context) error {
	owners := map[string]string{}
	claim := func(kind, name, plugin string) error {
		key := kind + ":" + name
		if owner, taken := owners[key]; taken {
			return fmt.Errorf("%s %q published by both %s and %s", kind, name, owner, plugin)
		}
		owners[key] = plugin
		return nil
	}

	for _, p := range r.GetResourceProviders() {
		resources, err := p.GetResources(ctx)
		if err != nil {
			return fmt.Errorf("plugin %s resources: %w", p.ID(), err)
		}
		for _, res := range resources {
			if err := claim("resource", res.URI, p.ID()); err != nil {
				return err
			}
		}
	}
	for _, p := range r.GetResourceTemplateProviders() {
		templates, err := p.GetResourceTemplates(ctx)
		if err != nil {
			return fmt.Errorf("plugin %s resource templates: %w", p.ID(), err)
		}
		for _, tmpl := range templates {
			if err := claim("resource template", tmpl.URITemplate, p.ID()); err != nil {
				return err
			}
		}
	}
	for _, p := range r.GetToolProviders() {
		tools, err := p.GetTools(ctx)
		if err != nil {
			return fmt.Errorf("plugin %s tools: %w", p.ID(), err)
		}
		for _, tool := range tools {
			if err := claim("tool", tool.Name, p.ID()); err != nil {
				return err
			}
		}
	}
	for _, p := range r.GetPromptProviders() {
		prompts, err := p.GetPrompts(ctx)
		if err != nil {
			return fmt.Errorf("plugin %s prompts: %w", p.ID(), err)
		}
		for _, prompt := range prompts {
			if err := claim("prompt", prompt.Name, p.ID()); err != nil {
				return err
			}
		}
	}
	return nil
}
