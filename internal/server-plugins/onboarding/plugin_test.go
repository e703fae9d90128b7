//go:build !integration

package onboarding_test

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	plugins "github.com/orgair/orgair-mcp/internal/server-plugin/application"
	"github.com/orgair/orgair-mcp/internal/server-plugin/domain"
	"github.com/orgair/orgair-mcp/internal/server-plugins/capabilities"
	capapp "github.com/orgair/orgair-mcp/internal/server-plugins/capabilities/application"
	"github.com/orgair/orgair-mcp/internal/server-plugins/catalog"
	catapp "github.com/orgair/orgair-mcp/internal/server-plugins/catalog/application"
	catdomain "github.com/orgair/orgair-mcp/internal/server-plugins/catalog/domain"
	"github.com/orgair/orgair-mcp/internal/server-plugins/onboarding"
	"github.com/orgair/orgair-mcp/internal/server-plugins/playbooks"
	playapp "github.com/orgair/orgair-mcp/internal/server-plugins/playbooks/application"
	"github.com/orgair/orgair-mcp/internal/shared/metrics"
)

var _ = Describe("OnboardingServerPlugin", func() {
	var (
		ctx    context.Context
		plugin *onboarding.OnboardingServerPlugin
	)

	BeforeEach(func() {
		ctx = context.Background()
		quiet := slog.New(slog.DiscardHandler)
		collector := metrics.NewNoOpCollector()

		dispatcher, err := capapp.NewDispatcher(quiet, collector)
		Expect(err).NotTo(HaveOccurred())
		cat, err := catapp.NewCatalog()
		Expect(err).NotTo(HaveOccurred())
		engine, err := playapp.NewEngine(quiet, collector)
		Expect(err).NotTo(HaveOccurred())

		plugin = onboarding.NewOnboardingServerPlugin()
		registry, err := plugins.NewServerPluginRegistry(plugins.ServerPluginRegistryParams{
			Logger: quiet,
			ServerPlugins: []domain.ServerPlugin{
				capabilities.NewCapabilitiesServerPlugin(dispatcher, quiet),
				catalog.NewCatalogServerPlugin(catdomain.NewReader(cat, quiet, collector), quiet),
				playbooks.NewPlaybooksServerPlugin(engine, quiet),
				plugin,
			},
		})
		Expect(err).NotTo(HaveOccurred())
		plugin.SetProvider(registry)
	})

	readText := func(uri string) string {
		resources, err := plugin.GetResources(ctx)
		Expect(err).NotTo(HaveOccurred())
		for _, r := range resources {
			if r.URI == uri {
				req := mcp.ReadResourceRequest{}
				req.Params.URI = uri
				contents, err := r.Handler(ctx, req)
				Expect(err).NotTo(HaveOccurred())
				Expect(contents).To(HaveLen(1))
				text, ok := contents[0].(mcp.TextResourceContents)
				Expect(ok).To(BeTrue())
				return text.Text
			}
		}
		Fail("resource not published: " + uri)
		return ""
	}

	It("fails to build the index before the provider is set", func() {
		_, err := onboarding.NewOnboardingServerPlugin().BuildCapabilityIndex(ctx)
		Expect(err).To(HaveOccurred())
	})

	It("indexes tools, resources, templates and prompts of every plugin", func() {
		index, err := plugin.BuildCapabilityIndex(ctx)
		Expect(err).NotTo(HaveOccurred())

		tools := map[string]string{}
		for _, t := range index.Tools {
			tools[t.Name] = t.Plugin
		}
		Expect(tools).To(HaveKeyWithValue("calculate_score", "capabilities"))
		Expect(tools).To(HaveKeyWithValue("get_fund_portfolio", "capabilities"))

		templates := []string{}
		statics := []string{}
		for _, r := range index.Resources {
			if r.Template {
				templates = append(templates, r.URI)
			} else {
				statics = append(statics, r.URI)
			}
		}
		Expect(statics).To(ContainElements("orgair://companies", onboarding.URIQuickstart, onboarding.URICapabilities))
		Expect(templates).To(ContainElement("orgair://company/{company_id}/score"))

		Expect(index.Prompts).To(HaveLen(3))
	})

	It("attaches a ready-to-send example to calculate_score", func() {
		index, err := plugin.BuildCapabilityIndex(ctx)
		Expect(err).NotTo(HaveOccurred())
		for _, t := range index.Tools {
			if t.Name == "calculate_score" {
				Expect(t.Examples).To(HaveLen(1))
				Expect(t.Examples[0].Params).To(HaveKeyWithValue("sector_id", "technology"))
				return
			}
		}
		Fail("calculate_score missing from the index")
	})

	It("serves the quickstart as markdown naming every operation", func() {
		text := readText(onboarding.URIQuickstart)
		for _, name := range []string{
			"calculate_score", "get_evidence", "project_ebitda_impact", "analyze_whatif",
			"get_fund_portfolio", "run_value_creation_workflow", "value_creation_plan",
		} {
			Expect(text).To(ContainSubstring(name))
		}
	})

	It("serves the capabilities index as JSON", func() {
		Expect(readText(onboarding.URICapabilities)).To(ContainSubstring(`"tools"`))
	})

	It("maps every intent to a published tool", func() {
		for intent, entry := range onboarding.IntentMap() {
			Expect(entry.Tool).NotTo(BeEmpty(), intent)
			Expect(entry.Params).NotTo(BeEmpty(), intent)
		}
		Expect(readText(onboarding.URIIntentMap)).To(ContainSubstring("project_ebitda_impact"))
	})
})
