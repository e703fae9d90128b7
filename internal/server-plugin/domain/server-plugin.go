package domain

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerPlugin is the unit of registration with the MCP server.
// A plugin exposes capabilities by also implementing one or more providers.
type ServerPlugin interface {
	ID() string
	Name() string
	Description() string
	Version() string
}

// ResourceProvider defines plugins that can provide static resources
type ResourceProvider interface {
	ServerPlugin
	GetResources(ctx context.Context) ([]Resource, error)
}

// ResourceTemplateProvider defines plugins that can provide parametrised resources
type ResourceTemplateProvider interface {
	ServerPlugin
	GetResourceTemplates(ctx context.Context) ([]ResourceTemplate, error)
}

// ToolProvider defines plugins that can provide tools
type ToolProvider interface {
	ServerPlugin
	GetTools(ctx context.Context) ([]Tool, error)
}

// PromptProvider defines plugins that can provide prompts
type PromptProvider interface {
	ServerPlugin
	GetPrompts(ctx context.Context) ([]Prompt, error)
}

// Resource represents a plugin resource capability
type Resource struct {
	URI         string
	Name        string
	Description string
	MIMEType    string
	Handler     ResourceHandler
}

// ResourceTemplate represents a URI template capability (RFC 6570 level 1)
type ResourceTemplate struct {
	URITemplate string
	Name        string
	Description string
	MIMEType    string
	Handler     ResourceTemplateHandler
}

// Tool represents a plugin tool capability
type Tool struct {
	Name        string
	Description string
	Builder     func() mcp.Tool
	Handler     ToolHandler
}

// Prompt represents a plugin prompt capability
type Prompt struct {
	Name        string
	Description string
	Builder     func() mcp.Prompt
	Handler     PromptHandler
}

// Handlers are the mcp-go handler signatures, so plugins register without wrapping.
type ResourceHandler = server.ResourceHandlerFunc
type ResourceTemplateHandler = server.ResourceTemplateHandlerFunc
type ToolHandler = server.ToolHandlerFunc
type PromptHandler = server.PromptHandlerFunc
