//go:build !integration

package domain_test

import (
	"context"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/orgair/orgair-mcp/internal/server-plugins/catalog/domain"
	"github.com/orgair/orgair-mcp/internal/shared"
)

func echoParams(params map[string]string) (any, error) {
	return params, nil
}

var _ = Describe("ResourceTemplate", func() {
	DescribeTable("rejects malformed patterns",
		func(pattern string) {
			_, err := domain.NewResourceTemplate(pattern, "t", "", echoParams)
			Expect(err).To(HaveOccurred())
		},
		Entry("no placeholder", "orgair://companies"),
		Entry("unbalanced brace", "orgair://company/{company_id"),
		Entry("partial segment", "orgair://company/id-{company_id}"),
		Entry("duplicate placeholder", "orgair://pair/{id}/{id}"),
		Entry("reserved expansion", "orgair://company/{+company_id}"),
		Entry("no scheme", "company/{company_id}"),
	)

	It("exposes its placeholder names", func() {
		tmpl, err := domain.NewResourceTemplate("orgair://fund/{fund_id}/company/{company_id}", "t", "", echoParams)
		Expect(err).NotTo(HaveOccurred())
		Expect(tmpl.Params).To(Equal([]string{"fund_id", "company_id"}))
	})

	DescribeTable("matches segment by segment",
		func(uri string, expected map[string]string) {
			tmpl, err := domain.NewResourceTemplate("orgair://company/{company_id}/score", "t", "", echoParams)
			Expect(err).NotTo(HaveOccurred())

			params, ok := tmpl.Match(uri)
			if expected == nil {
				Expect(ok).To(BeFalse())
				return
			}
			Expect(ok).To(BeTrue())
			Expect(params).To(Equal(expected))
		},
		Entry("exact shape", "orgair://company/ACME-001/score", map[string]string{"company_id": "ACME-001"}),
		Entry("wrong trailing segment", "orgair://company/ACME-001/bogus", nil),
		Entry("missing trailing segment", "orgair://company/ACME-001", nil),
		Entry("extra segment", "orgair://company/ACME-001/score/extra", nil),
		Entry("empty capture", "orgair://company//score", nil),
		Entry("trailing slash", "orgair://company/ACME-001/score/", nil),
		Entry("other scheme", "https://company/ACME-001/score", nil),
		Entry("wrong literal", "orgair://fund/ACME-001/score", nil),
	)

	It("expands back to a concrete URI", func() {
		tmpl, err := domain.NewResourceTemplate("orgair://metric/{metric_name}/history", "t", "", echoParams)
		Expect(err).NotTo(HaveOccurred())
		uri, err := tmpl.Expand(map[string]string{"metric_name": "ebitda_growth"})
		Expect(err).NotTo(HaveOccurred())
		Expect(uri).To(Equal("orgair://metric/ebitda_growth/history"))
	})
})

var _ = Describe("Reader", func() {
	var (
		ctx     context.Context
		catalog *domain.Catalog
		reader  *domain.Reader
	)

	mustTemplate := func(pattern, name string) domain.ResourceTemplate {
		tmpl, err := domain.NewResourceTemplate(pattern, name, "", func(params map[string]string) (any, error) {
			return map[string]any{"template": name, "params": params}, nil
		})
		Expect(err).NotTo(HaveOccurred())
		return tmpl
	}

	BeforeEach(func() {
		ctx = context.Background()
		catalog = domain.NewCatalog()

		entry, err := domain.NewResourceEntry("orgair://company/special", "special", "", func(map[string]string) (any, error) {
			return "static", nil
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(catalog.AddResource(entry)).To(Succeed())
		Expect(catalog.AddTemplate(mustTemplate("orgair://company/{company_id}", "first"))).To(Succeed())
		Expect(catalog.AddTemplate(mustTemplate("orgair://{kind}/special", "second"))).To(Succeed())

		reader = domain.NewReader(catalog, slog.New(slog.DiscardHandler), nil)
	})

	It("prefers exact static matches over templates", func() {
		payload, err := reader.Read(ctx, "orgair://company/special")
		Expect(err).NotTo(HaveOccurred())
		Expect(payload).To(Equal("static"))
	})

	It("uses registration order between overlapping templates", func() {
		payload, err := reader.Read(ctx, "orgair://company/ACME-001")
		Expect(err).NotTo(HaveOccurred())
		Expect(payload).To(HaveKeyWithValue("template", "first"))

		payload, err = reader.Read(ctx, "orgair://fund/special")
		Expect(err).NotTo(HaveOccurred())
		Expect(payload).To(HaveKeyWithValue("template", "second"))
	})

	It("fails with ResourceNotFound when nothing matches", func() {
		_, err := reader.Read(ctx, "orgair://nothing/here/at/all")
		Expect(shared.IsKind(err, shared.KindResourceNotFound)).To(BeTrue())
		Expect(err).To(MatchError(shared.ErrResourceNotFound))
	})

	It("rejects duplicate registrations", func() {
		Expect(catalog.AddTemplate(mustTemplate("orgair://company/{company_id}", "third"))).NotTo(Succeed())
		Expect(catalog.AddTemplate(mustTemplate("orgair://other/{id}", "first"))).NotTo(Succeed())

		entry, err := domain.NewResourceEntry("orgair://company/special", "again", "", echoParams)
		Expect(err).NotTo(HaveOccurred())
		Expect(catalog.AddResource(entry)).NotTo(Succeed())
	})

	It("refuses placeholders in static entries", func() {
		_, err := domain.NewResourceEntry("orgair://company/{id}", "bad", "", echoParams)
		Expect(err).To(HaveOccurred())
	})
})
