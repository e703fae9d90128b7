//go:build !integration

package server_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/orgair/orgair-mcp/internal/server"
	plugins "github.com/orgair/orgair-mcp/internal/server-plugin/application"
	"github.com/orgair/orgair-mcp/internal/server-plugin/domain"
)

// fixturePlugin publishes one capability of each kind
type fixturePlugin struct{}

func (fixturePlugin) ID() string          { return "fixture" }
func (fixturePlugin) Name() string        { return "Fixture" }
func (fixturePlugin) Description() string { return "" }
func (fixturePlugin) Version() string     { return "0.0.1" }

func (fixturePlugin) GetTools(ctx context.Context) ([]domain.Tool, error) {
	return []domain.Tool{{
		Name:    "echo_score",
		Builder: func() mcp.Tool { return mcp.NewTool("echo_score", mcp.WithString("company_id", mcp.Required())) },
		Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return server.OK("echoed", req.GetArguments()), nil
		},
	}}, nil
}

func (fixturePlugin) GetResources(ctx context.Context) ([]domain.Resource, error) {
	return []domain.Resource{{URI: "orgair://fixture", Name: "Fixture", MIMEType: "application/json"}}, nil
}

func (fixturePlugin) GetResourceTemplates(ctx context.Context) ([]domain.ResourceTemplate, error) {
	return []domain.ResourceTemplate{{URITemplate: "orgair://fixture/{id}", Name: "Fixture by id", MIMEType: "application/json"}}, nil
}

func (fixturePlugin) GetPrompts(ctx context.Context) ([]domain.Prompt, error) {
	return []domain.Prompt{{Name: "fixture_prompt", Builder: func() mcp.Prompt { return mcp.NewPrompt("fixture_prompt") }}}, nil
}

var _ = Describe("MCPAdapter", func() {
	var (
		ctx       context.Context
		mcpServer interface {
			HandleMessage(ctx context.Context, message json.RawMessage) mcp.JSONRPCMessage
		}
	)

	BeforeEach(func() {
		ctx = context.Background()
		quiet := slog.New(slog.DiscardHandler)

		registry, err := plugins.NewServerPluginRegistry(plugins.ServerPluginRegistryParams{
			Logger:        quiet,
			ServerPlugins: []domain.ServerPlugin{fixturePlugin{}},
		})
		Expect(err).NotTo(HaveOccurred())

		instance := server.NewMCPServerInstance(quiet)
		Expect(server.NewMCPAdapter(registry, instance, quiet).RegisterAllServerPlugins(ctx)).To(Succeed())
		mcpServer = instance
	})

	list := func(method string) string {
		msg := fmt.Sprintf(`{"jsonrpc":"2.0","id":1,"method":%q}`, method)
		resp := mcpServer.HandleMessage(ctx, json.RawMessage(msg))
		data, err := json.Marshal(resp)
		Expect(err).NotTo(HaveOccurred())
		return string(data)
	}

	It("registers tools", func() {
		Expect(list("tools/list")).To(ContainSubstring(`"echo_score"`))
	})

	It("registers static resources", func() {
		Expect(list("resources/list")).To(ContainSubstring(`"orgair://fixture"`))
	})

	It("registers resource templates", func() {
		Expect(list("resources/templates/list")).To(ContainSubstring(`orgair://fixture/{id}`))
	})

	It("registers prompts", func() {
		Expect(list("prompts/list")).To(ContainSubstring(`"fixture_prompt"`))
	})
})
