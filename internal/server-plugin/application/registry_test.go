//go:build !integration

package plugins_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	plugins "github.com/orgair/orgair-mcp/internal/server-plugin/application"
	"github.com/orgair/orgair-mcp/internal/server-plugin/domain"
)

// createTestLogger creates a quiet logger for testing that discards output
func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// MockServerPlugin publishes a configurable set of tools and resources
type MockServerPlugin struct {
	id        string
	tools     []string
	resources []string
}

func NewMockServerPlugin(id string) *MockServerPlugin {
	return &MockServerPlugin{id: id}
}

func (m *MockServerPlugin) ID() string          { return m.id }
func (m *MockServerPlugin) Name() string        { return "Mock " + m.id }
func (m *MockServerPlugin) Description() string { return "Mock plugin for testing" }
func (m *MockServerPlugin) Version() string     { return "1.0.0" }

func (m *MockServerPlugin) GetTools(ctx context.Context) ([]domain.Tool, error) {
	tools := make([]domain.Tool, 0, len(m.tools))
	for _, name := range m.tools {
		tools = append(tools, domain.Tool{
			Name:    name,
			Builder: func() mcp.Tool { return mcp.NewTool(name) },
		})
	}
	return tools, nil
}

func (m *MockServerPlugin) GetResources(ctx context.Context) ([]domain.Resource, error) {
	resources := make([]domain.Resource, 0, len(m.resources))
	for _, uri := range m.resources {
		resources = append(resources, domain.Resource{URI: uri, Name: uri})
	}
	return resources, nil
}

// PromptOnlyPlugin only implements the prompt provider
type PromptOnlyPlugin struct{ id string }

func (p *PromptOnlyPlugin) ID() string          { return p.id }
func (p *PromptOnlyPlugin) Name() string        { return p.id }
func (p *PromptOnlyPlugin) Description() string { return "" }
func (p *PromptOnlyPlugin) Version() string     { return "1.0.0" }

func (p *PromptOnlyPlugin) GetPrompts(ctx context.Context) ([]domain.Prompt, error) {
	return []domain.Prompt{{Name: "only"}}, nil
}

var _ = Describe("ServerPluginRegistry", func() {
	newRegistry := func(ps ...domain.ServerPlugin) (*plugins.ServerPluginRegistry, error) {
		return plugins.NewServerPluginRegistry(plugins.ServerPluginRegistryParams{
			Logger:        createTestLogger(),
			ServerPlugins: ps,
		})
	}

	It("orders plugins by ID regardless of registration order", func() {
		registry, err := newRegistry(NewMockServerPlugin("workflow"), NewMockServerPlugin("catalog"), &PromptOnlyPlugin{id: "playbooks"})
		Expect(err).NotTo(HaveOccurred())

		ids := []string{}
		for _, p := range registry.GetServerPlugins() {
			ids = append(ids, p.ID())
		}
		Expect(ids).To(Equal([]string{"catalog", "playbooks", "workflow"}))

		_, ok := registry.Get("playbooks")
		Expect(ok).To(BeTrue())
		_, ok = registry.Get("missing")
		Expect(ok).To(BeFalse())
	})

	It("rejects duplicate plugin IDs", func() {
		_, err := newRegistry(NewMockServerPlugin("catalog"), NewMockServerPlugin("catalog"))
		Expect(err).To(MatchError(ContainSubstring("already registered")))
	})

	It("rejects an empty plugin ID", func() {
		registry := plugins.NewEmptyServerPluginRegistry()
		Expect(registry.Register(NewMockServerPlugin(""))).NotTo(Succeed())
	})

	It("groups plugins by the providers they implement", func() {
		registry, err := newRegistry(NewMockServerPlugin("a"), &PromptOnlyPlugin{id: "b"})
		Expect(err).NotTo(HaveOccurred())

		Expect(registry.GetToolProviders()).To(HaveLen(1))
		Expect(registry.GetResourceProviders()).To(HaveLen(1))
		Expect(registry.GetResourceTemplateProviders()).To(BeEmpty())
		Expect(registry.GetPromptProviders()).To(HaveLen(1))
		Expect(registry.GetPromptProviders()[0].ID()).To(Equal("b"))
	})

	Describe("Validate", func() {
		It("accepts distinct capability names", func() {
			first := NewMockServerPlugin("a")
			first.tools = []string{"calculate_score"}
			second := NewMockServerPlugin("b")
			second.tools = []string{"run_value_creation_workflow"}

			registry, err := newRegistry(first, second)
			Expect(err).NotTo(HaveOccurred())
			Expect(registry.Validate(context.Background())).To(Succeed())
		})

		It("reports a tool published twice", func() {
			first := NewMockServerPlugin("a")
			first.tools = []string{"calculate_score"}
			second := NewMockServerPlugin("b")
			second.tools = []string{"calculate_score"}

			registry, err := newRegistry(first, second)
			Expect(err).NotTo(HaveOccurred())
			Expect(registry.Validate(context.Background())).To(MatchError(ContainSubstring(`tool "calculate_score" published by both a and b`)))
		})

		It("reports a resource URI published twice", func() {
			first := NewMockServerPlugin("a")
			first.resources = []string{"orgair://companies"}
			second := NewMockServerPlugin("b")
			second.resources = []string{"orgair://companies"}

			registry, err := newRegistry(first, second)
			Expect(err).NotTo(HaveOccurred())
			Expect(registry.Validate(context.Background())).To(HaveOccurred())
		})
	})
})
