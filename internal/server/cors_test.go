//go:build !integration

package server_test

import (
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/orgair/orgair-mcp/internal/server"
	"github.com/orgair/orgair-mcp/pkg/config"
)

var _ = Describe("CORSMiddleware", func() {
	var reached bool

	serve := func(cfg *config.CORSConfig, method, origin string) *httptest.ResponseRecorder {
		reached = false
		handler := server.CORSMiddleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			w.WriteHeader(http.StatusOK)
		}))
		req := httptest.NewRequest(method, "/mcp", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	enabled := func(origins ...string) *config.CORSConfig {
		return &config.CORSConfig{
			Enabled:        true,
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "POST"},
			AllowedHeaders: []string{"Content-Type", "Mcp-Session-Id"},
			MaxAge:         300,
		}
	}

	It("adds nothing when disabled", func() {
		rec := serve(&config.CORSConfig{Enabled: false}, http.MethodOptions, "https://example.com")
		Expect(reached).To(BeTrue())
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})

	It("allows every origin when none are listed", func() {
		rec := serve(enabled(), http.MethodGet, "https://example.com")
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
		Expect(rec.Header().Get("Access-Control-Allow-Methods")).To(Equal("GET, POST"))
		Expect(rec.Header().Get("Access-Control-Allow-Headers")).To(Equal("Content-Type, Mcp-Session-Id"))
		Expect(rec.Header().Get("Access-Control-Max-Age")).To(Equal("300"))
		Expect(reached).To(BeTrue())
	})

	It("answers preflight requests without reaching the handler", func() {
		rec := serve(enabled(), http.MethodOptions, "https://example.com")
		Expect(rec.Code).To(Equal(http.StatusNoContent))
		Expect(reached).To(BeFalse())
	})

	DescribeTable("origin matching",
		func(allowed []string, origin string, want bool) {
			rec := serve(enabled(allowed...), http.MethodGet, origin)
			if want {
				Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal(origin))
				Expect(rec.Header().Values("Vary")).To(ContainElement("Origin"))
			} else {
				Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
			}
		},
		Entry("exact match", []string{"https://app.example.com"}, "https://app.example.com", true),
		Entry("different scheme", []string{"https://app.example.com"}, "http://app.example.com", false),
		Entry("subdomain wildcard", []string{"*.example.com"}, "https://app.example.com", true),
		Entry("nested subdomain", []string{"*.example.com"}, "https://a.b.example.com", true),
		Entry("lookalike domain", []string{"*.example.com"}, "https://badexample.com", false),
		Entry("apex is not a subdomain", []string{"*.example.com"}, "https://example.com", false),
		Entry("missing origin header", []string{"https://app.example.com"}, "", false),
	)

	It("treats a star entry as allow all", func() {
		rec := serve(enabled("https://a.test", "*"), http.MethodGet, "https://other.test")
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
	})
})
