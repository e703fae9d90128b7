//go:build !integration

package core_test

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/orgair/orgair-mcp/internal/server-plugins/capabilities/application"
	catalog "github.com/orgair/orgair-mcp/internal/server-plugins/catalog/application"
	catdomain "github.com/orgair/orgair-mcp/internal/server-plugins/catalog/domain"
	"github.com/orgair/orgair-mcp/internal/server-plugins/core"
	coreapp "github.com/orgair/orgair-mcp/internal/server-plugins/core/application"
	"github.com/orgair/orgair-mcp/internal/server-plugins/core/domain"
	playbooks "github.com/orgair/orgair-mcp/internal/server-plugins/playbooks/application"
	"github.com/orgair/orgair-mcp/internal/shared/metrics"
	"github.com/orgair/orgair-mcp/pkg/config"
	"github.com/orgair/orgair-mcp/pkg/logger"
)

var _ = Describe("CoreServerPlugin", func() {
	var (
		ctx    context.Context
		buffer *logger.RingBuffer
		plugin *core.CoreServerPlugin
	)

	BeforeEach(func() {
		ctx = context.Background()
		quiet := slog.New(slog.DiscardHandler)
		collector := metrics.NewNoOpCollector()

		dispatcher, err := application.NewDispatcher(quiet, collector)
		Expect(err).NotTo(HaveOccurred())
		cat, err := catalog.NewCatalog()
		Expect(err).NotTo(HaveOccurred())
		engine, err := playbooks.NewEngine(quiet, collector)
		Expect(err).NotTo(HaveOccurred())

		buffer = logger.NewRingBuffer(3)
		service := coreapp.NewCoreService(
			dispatcher,
			catdomain.NewReader(cat, quiet, collector),
			engine,
			buffer,
			config.TransportConfig{Type: "sse"},
			quiet,
		)
		plugin = core.NewCoreServerPlugin(service, quiet)
	})

	read := func(uri string, out any) {
		resources, err := plugin.GetResources(ctx)
		Expect(err).NotTo(HaveOccurred())
		for _, r := range resources {
			if r.URI != uri {
				continue
			}
			req := mcp.ReadResourceRequest{}
			req.Params.URI = uri
			contents, err := r.Handler(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			Expect(contents).To(HaveLen(1))
			text, ok := contents[0].(mcp.TextResourceContents)
			Expect(ok).To(BeTrue())
			Expect(text.MIMEType).To(Equal("application/json"))
			Expect(json.Unmarshal([]byte(text.Text), out)).To(Succeed())
			return
		}
		Fail("resource not published: " + uri)
	}

	It("publishes the info and logs resources", func() {
		resources, err := plugin.GetResources(ctx)
		Expect(err).NotTo(HaveOccurred())
		uris := []string{}
		for _, r := range resources {
			uris = append(uris, r.URI)
		}
		Expect(uris).To(ConsistOf(core.URIServerInfo, core.URIServerLogs))
	})

	It("describes everything the server publishes", func() {
		var info domain.ServerInfo
		read(core.URIServerInfo, &info)

		Expect(info.Transport).To(Equal("sse"))
		Expect(info.ParameterVersion).To(Equal(application.ParameterVersion))
		Expect(info.Operations).To(Equal([]string{
			"calculate_score", "get_evidence", "project_ebitda_impact", "analyze_whatif", "get_fund_portfolio",
		}))
		Expect(info.Resources).To(ContainElement("orgair://companies"))
		Expect(info.ResourceTemplates).To(ContainElement("orgair://company/{company_id}/score"))
		Expect(info.Prompts).To(ConsistOf("due_diligence_assessment", "value_creation_plan", "competitive_analysis"))
	})

	It("returns only the newest lines with credentials redacted", func() {
		buffer.Append("first line")
		buffer.Append("connecting with password=hunter2")
		buffer.Append("third line")
		buffer.Append("fourth line")

		var snapshot domain.LogSnapshot
		read(core.URIServerLogs, &snapshot)

		Expect(snapshot.Capacity).To(Equal(3))
		Expect(snapshot.Count).To(Equal(3))
		Expect(snapshot.Lines[0]).NotTo(ContainSubstring("hunter2"))
		Expect(snapshot.Lines[1:]).To(Equal([]string{"third line", "fourth line"}))
	})
})
