//go:build !integration

package application_test

import (
	"context"
	"encoding/json"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/orgair/orgair-mcp/internal/server-plugins/catalog/application"
	"github.com/orgair/orgair-mcp/internal/server-plugins/catalog/domain"
	"github.com/orgair/orgair-mcp/internal/shared"
)

var _ = Describe("Resource catalog", func() {
	var (
		ctx    context.Context
		reader *domain.Reader
	)

	BeforeEach(func() {
		ctx = context.Background()
		catalog, err := application.NewCatalog()
		Expect(err).NotTo(HaveOccurred())
		reader = domain.NewReader(catalog, slog.New(slog.DiscardHandler), nil)
	})

	readJSON := func(uri string) map[string]any {
		payload, err := reader.Read(ctx, uri)
		Expect(err).NotTo(HaveOccurred())
		data, err := json.Marshal(payload)
		Expect(err).NotTo(HaveOccurred())
		out := map[string]any{}
		Expect(json.Unmarshal(data, &out)).To(Succeed())
		return out
	}

	It("lists the static resources", func() {
		uris := []string{}
		for _, entry := range reader.Catalog().Resources() {
			uris = append(uris, entry.URI)
		}
		Expect(uris).To(Equal([]string{"orgair://companies", "orgair://sectors", "orgair://parameters/v2.0"}))
	})

	It("lists the resource templates", func() {
		patterns := []string{}
		for _, tmpl := range reader.Catalog().Templates() {
			patterns = append(patterns, tmpl.Pattern)
		}
		Expect(patterns).To(ContainElements(
			"orgair://company/{company_id}/score",
			"orgair://fund/{fund_id}/companies",
			"orgair://metric/{metric_name}/history",
		))
		Expect(patterns).To(HaveLen(6))
	})

	It("echoes the company id into the score payload", func() {
		payload := readJSON("orgair://company/ACME-001/score")
		Expect(payload).To(HaveKeyWithValue("company_id", "ACME-001"))
		Expect(payload).To(HaveKeyWithValue("sector", "technology"))
	})

	DescribeTable("fails with ResourceNotFound",
		func(uri string) {
			_, err := reader.Read(ctx, uri)
			Expect(shared.IsKind(err, shared.KindResourceNotFound)).To(BeTrue())
		},
		Entry("wrong trailing segment", "orgair://company/ACME-001/bogus"),
		Entry("unknown collection", "orgair://portfolios"),
		Entry("empty company id", "orgair://company//score"),
		Entry("old parameter version", "orgair://parameters/v1.0"),
		Entry("metric without history", "orgair://metric/ebitda_growth"),
	)

	It("serves sector baselines", func() {
		payload := readJSON("orgair://sectors")
		Expect(payload["sectors"]).To(HaveLen(6))
	})

	It("serves the model parameters", func() {
		payload := readJSON("orgair://parameters/v2.0")
		Expect(payload).To(HaveKeyWithValue("version", "v2.0"))
		Expect(payload["parameters"]).To(HaveKeyWithValue("alpha", 0.6))
	})

	It("synthesizes fund holdings", func() {
		payload := readJSON("orgair://fund/PE-FUND-001/companies")
		Expect(payload).To(HaveKeyWithValue("fund_id", "PE-FUND-001"))
		Expect(payload["companies"]).To(ContainElement("CompanyA-from-PE-FUND-001"))
	})

	It("synthesizes metric history", func() {
		payload := readJSON("orgair://metric/ebitda_growth/history")
		Expect(payload).To(HaveKeyWithValue("metric", "ebitda_growth"))
		Expect(payload["history"]).To(HaveLen(2))
	})

	It("resolves the company and fund detail templates", func() {
		Expect(readJSON("orgair://company/GLOBAL-INC")).To(HaveKeyWithValue("name", "Global Innovations Inc."))
		Expect(readJSON("orgair://company/UNKNOWN")).To(HaveKeyWithValue("registered", false))
		Expect(readJSON("orgair://fund/PE-FUND-001")).To(HaveKeyWithValue("fund_name", "Capital Partners PE-FUND-001"))
	})

	It("summarizes company evidence from the evidence pool", func() {
		payload := readJSON("orgair://company/ACME-001/evidence")
		Expect(payload).To(HaveKeyWithValue("evidence_count", 7.0))
		Expect(payload["sample_evidence"]).To(Equal([]any{"doc_1", "doc_5"}))
	})
})
