package onboarding

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	mcpserver "github.com/orgair/orgair-mcp/internal/server"
	serverDomain "github.com/orgair/orgair-mcp/internal/server-plugin/domain"
	onbDomain "github.com/orgair/orgair-mcp/internal/server-plugins/onboarding/domain"
)

const (
	URIQuickstart   = "orgair://onboarding/quickstart"
	URICapabilities = "orgair://onboarding/capabilities"
	URIIntentMap    = "orgair://onboarding/intent-map"
)

// OnboardingServerPlugin provides discovery and onboarding resources
type OnboardingServerPlugin struct {
	provider mcpserver.ServerPluginProvider
}

func NewOnboardingServerPlugin() *OnboardingServerPlugin {
	return &OnboardingServerPlugin{}
}

// SetProvider allows late injection to avoid Fx cycles
func (p *OnboardingServerPlugin) SetProvider(provider mcpserver.ServerPluginProvider) {
	p.provider = provider
}

// ServerPlugin interface
func (p *OnboardingServerPlugin) ID() string   { return "onboarding" }
func (p *OnboardingServerPlugin) Name() string { return "Onboarding & Discovery" }
func (p *OnboardingServerPlugin) Description() string {
	return "LLM onboarding resources and capability discovery"
}
func (p *OnboardingServerPlugin) Version() string { return "0.1.0" }

// ResourceProvider implementation
func (p *OnboardingServerPlugin) GetResources(ctx context.Context) ([]serverDomain.Resource, error) {
	return []serverDomain.Resource{
		{
			URI:         URIQuickstart,
			Name:        "Quickstart",
			Description: "Start here: overview of operations, resources and instruction templates",
			MIMEType:    "text/markdown",
			Handler:     p.handleQuickstartResource,
		},
		{
			URI:         URICapabilities,
			Name:        "Capabilities Index",
			Description: "Index of tools, resources and prompts with examples",
			MIMEType:    "application/json",
			Handler:     p.handleCapabilitiesIndexResource,
		},
		{
			URI:         URIIntentMap,
			Name:        "Intent Map",
			Description: "Mapping of analyst intents and synonyms to tools",
			MIMEType:    "application/json",
			Handler:     p.handleIntentMapResource,
		},
	}, nil
}

const quickstart = "# Quickstart\n\n" +
	"This MCP server scores organizational AI readiness (Org-AI-R) and models its financial impact.\n\n" +
	"## Operations\n" +
	"- Score a company: `calculate_score`\n" +
	"- Retrieve supporting evidence: `get_evidence`\n" +
	"- Project EBITDA impact: `project_ebitda_impact`\n" +
	"- Model a what-if scenario: `analyze_whatif`\n" +
	"- Fund metrics: `get_fund_portfolio`\n" +
	"- End-to-end plan: `run_value_creation_workflow`\n\n" +
	"## Core flow\n" +
	"1) `calculate_score` → `{ company_id: \"ACME-001\", sector_id: \"technology\", dimension_scores: [70,65,75,68,72,60,70] }`\n" +
	"2) `get_evidence` → `{ company_id: \"ACME-001\", dimension: \"data_infrastructure\", limit: 3 }`\n" +
	"3) `project_ebitda_impact` → `{ company_id: \"ACME-001\", entry_score: <final_score>, target_score: 80, h_r_score: <components.h_r_score> }`\n\n" +
	"Every failure names the offending fields in `fields`; fix them all and retry.\n\n" +
	"## Resources\n" +
	"- Reference data: `orgair://companies`, `orgair://sectors`, `orgair://parameters/v2.0`\n" +
	"- By URI: `orgair://company/{company_id}/score`, `orgair://fund/{fund_id}/companies`, `orgair://metric/{metric_name}/history`\n" +
	"- Everything published: `" + URICapabilities + "`\n\n" +
	"## Prompts\n" +
	"- `due_diligence_assessment`, `value_creation_plan`, `competitive_analysis`\n\n" +
	"## Troubleshooting\n" +
	"- Unknown sector → use an id from `orgair://sectors`\n" +
	"- Recent server activity → `orgair://server/logs`\n"

// Handlers
func (p *OnboardingServerPlugin) handleQuickstartResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{mcp.TextResourceContents{URI: req.Params.URI, MIMEType: "text/markdown", Text: quickstart}}, nil
}

// toolExamples holds a ready-to-send call for the tools that benefit from one.
var toolExamples = map[string]map[string]any{
	"calculate_score": {
		"company_id":       "ACME-001",
		"sector_id":        "technology",
		"dimension_scores": []float64{70, 65, 75, 68, 72, 60, 70},
	},
	"analyze_whatif": {
		"company_id":        "ACME-001",
		"scenario_name":     "Targeted_AI_Investment",
		"dimension_changes": map[string]float64{"data_infrastructure": 10, "talent": 5},
		"investment_usd":    2000000,
	},
	"run_value_creation_workflow": {
		"company_id":      "ACME-001",
		"target_score":    80,
		"timeline_months": 18,
	},
}

// BuildCapabilityIndex lists every capability published by the registered plugins.
func (p *OnboardingServerPlugin) BuildCapabilityIndex(ctx context.Context) (onbDomain.CapabilityIndex, error) {
	index := onbDomain.NewCapabilityIndex()
	if p.provider == nil {
		return index, fmt.Errorf("onboarding plugin used before its provider was set")
	}

	for _, tp := range p.provider.GetToolProviders() {
		ts, err := tp.GetTools(ctx)
		if err != nil {
			return index, fmt.Errorf("plugin %s tools: %w", tp.ID(), err)
		}
		for _, t := range ts {
			tool := onbDomain.CapabilityTool{Plugin: tp.ID(), Name: t.Name, Description: t.Description}
			if params, ok := toolExamples[t.Name]; ok {
				tool.Examples = []onbDomain.CapabilityToolExample{{Tool: t.Name, Params: params}}
			}
			index.Tools = append(index.Tools, tool)
		}
	}

	for _, rp := range p.provider.GetResourceProviders() {
		rs, err := rp.GetResources(ctx)
		if err != nil {
			return index, fmt.Errorf("plugin %s resources: %w", rp.ID(), err)
		}
		for _, r := range rs {
			index.Resources = append(index.Resources, onbDomain.CapabilityResource{URI: r.URI, Name: r.Name, Description: r.Description, MIMEType: r.MIMEType})
		}
	}

	for _, tp := range p.provider.GetResourceTemplateProviders() {
		ts, err := tp.GetResourceTemplates(ctx)
		if err != nil {
			return index, fmt.Errorf("plugin %s resource templates: %w", tp.ID(), err)
		}
		for _, t := range ts {
			index.Resources = append(index.Resources, onbDomain.CapabilityResource{URI: t.URITemplate, Name: t.Name, Description: t.Description, MIMEType: t.MIMEType, Template: true})
		}
	}

	for _, pp := range p.provider.GetPromptProviders() {
		ps, err := pp.GetPrompts(ctx)
		if err != nil {
			return index, fmt.Errorf("plugin %s prompts: %w", pp.ID(), err)
		}
		for _, pr := range ps {
			index.Prompts = append(index.Prompts, onbDomain.PromptMeta{Plugin: pp.ID(), Name: pr.Name, Description: pr.Description})
		}
	}
	return index, nil
}

func (p *OnboardingServerPlugin) handleCapabilitiesIndexResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	index, err := p.BuildCapabilityIndex(ctx)
	if err != nil {
		return nil, err
	}
	b, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal capabilities index: %w", err)
	}
	return []mcp.ResourceContents{mcp.TextResourceContents{URI: req.Params.URI, MIMEType: "application/json", Text: string(b)}}, nil
}

// IntentMap maps analyst goals to the tool that serves them.
func IntentMap() onbDomain.IntentMap {
	return onbDomain.IntentMap{
		"score":     {Synonyms: []string{"rate", "assess", "readiness", "benchmark"}, Tool: "calculate_score", Params: []string{"company_id", "sector_id", "dimension_scores", "talent_concentration"}},
		"evidence":  {Synonyms: []string{"sources", "proof", "documents", "justify"}, Tool: "get_evidence", Params: []string{"company_id", "dimension", "query", "limit"}},
		"project":   {Synonyms: []string{"ebitda", "upside", "value", "returns"}, Tool: "project_ebitda_impact", Params: []string{"company_id", "entry_score", "target_score", "h_r_score", "holding_period_years"}},
		"simulate":  {Synonyms: []string{"what if", "scenario", "invest", "improve"}, Tool: "analyze_whatif", Params: []string{"company_id", "scenario_name", "dimension_changes", "investment_usd"}},
		"portfolio": {Synonyms: []string{"fund", "holdings", "aggregate"}, Tool: "get_fund_portfolio", Params: []string{"fund_id", "include_companies"}},
		"plan":      {Synonyms: []string{"roadmap", "value creation", "end to end"}, Tool: "run_value_creation_workflow", Params: []string{"company_id", "target_score", "timeline_months"}},
	}
}

func (p *OnboardingServerPlugin) handleIntentMapResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonData, err := json.MarshalIndent(IntentMap(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal intent map: %w", err)
	}
	return []mcp.ResourceContents{mcp.TextResourceContents{URI: req.Params.URI, MIMEType: "application/json", Text: string(jsonData)}}, nil
}
