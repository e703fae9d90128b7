//go:build !integration

package catalog_test

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/orgair/orgair-mcp/internal/server-plugins/catalog"
	"github.com/orgair/orgair-mcp/internal/server-plugins/catalog/application"
	"github.com/orgair/orgair-mcp/internal/server-plugins/catalog/domain"
	"github.com/orgair/orgair-mcp/internal/shared"
	"github.com/orgair/orgair-mcp/internal/shared/metrics"
)

var _ = Describe("CatalogServerPlugin", func() {
	var (
		ctx    context.Context
		plugin *catalog.CatalogServerPlugin
	)

	BeforeEach(func() {
		ctx = context.Background()
		quiet := slog.New(slog.DiscardHandler)
		cat, err := application.NewCatalog()
		Expect(err).NotTo(HaveOccurred())
		plugin = catalog.NewCatalogServerPlugin(domain.NewReader(cat, quiet, metrics.NewNoOpCollector()), quiet)
	})

	readRequest := func(uri string) mcp.ReadResourceRequest {
		req := mcp.ReadResourceRequest{}
		req.Params.URI = uri
		return req
	}

	It("serves template matches as JSON under the requested URI", func() {
		templates, err := plugin.GetResourceTemplates(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(templates).NotTo(BeEmpty())

		contents, err := templates[0].Handler(ctx, readRequest("orgair://company/ACME-001/score"))
		Expect(err).NotTo(HaveOccurred())
		Expect(contents).To(HaveLen(1))
		text, ok := contents[0].(mcp.TextResourceContents)
		Expect(ok).To(BeTrue())
		Expect(text.URI).To(Equal("orgair://company/ACME-001/score"))
		Expect(text.MIMEType).To(Equal("application/json"))
		Expect(text.Text).To(ContainSubstring(`"company_id": "ACME-001"`))
	})

	It("publishes every static resource with a JSON MIME type", func() {
		resources, err := plugin.GetResources(ctx)
		Expect(err).NotTo(HaveOccurred())
		for _, r := range resources {
			Expect(r.MIMEType).To(Equal("application/json"), r.URI)
		}
	})

	It("surfaces unknown URIs as ResourceNotFound", func() {
		resources, err := plugin.GetResources(ctx)
		Expect(err).NotTo(HaveOccurred())
		_, err = resources[0].Handler(ctx, readRequest("orgair://unknown"))
		Expect(errors.Is(err, shared.ErrResourceNotFound)).To(BeTrue())
	})
})
