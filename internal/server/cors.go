package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/orgair/orgair-mcp/pkg/config"
)

// originPolicy is the compiled form of CORSConfig.AllowedOrigins. An empty
// list or a "*" entry allows every origin; "*.example.com" allows any
// subdomain of example.com but neither example.com itself nor lookalikes.
type originPolicy struct {
	wildcard bool
	exact    map[string]struct{}
	suffixes []string
}

func newOriginPolicy(allowed []string) originPolicy {
	p := originPolicy{wildcard: len(allowed) == 0, exact: make(map[string]struct{}, len(allowed))}
	for _, origin := range allowed {
		switch {
		case origin == "*":
			p.wildcard = true
		case strings.HasPrefix(origin, "*."):
			p.suffixes = append(p.suffixes, origin[1:])
		default:
			p.exact[origin] = struct{}{}
		}
	}
	return p
}

func (p originPolicy) allows(origin string) bool {
	if origin == "" {
		return false
	}
	if _, ok := p.exact[origin]; ok {
		return true
	}
	for _, suffix := range p.suffixes {
		if strings.HasSuffix(origin, suffix) {
			return true
		}
	}
	return false
}

// CORSMiddleware answers preflight requests and decorates responses for the
// HTTP transports. It is a pass-through when CORS is disabled.
func CORSMiddleware(cfg *config.CORSConfig) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler { return next }
	}

	policy := newOriginPolicy(cfg.AllowedOrigins)
	static := map[string]string{}
	if len(cfg.AllowedMethods) > 0 {
		static["Access-Control-Allow-Methods"] = strings.Join(cfg.AllowedMethods, ", ")
	}
	if len(cfg.AllowedHeaders) > 0 {
		static["Access-Control-Allow-Headers"] = strings.Join(cfg.AllowedHeaders, ", ")
	}
	if cfg.MaxAge > 0 {
		static["Access-Control-Max-Age"] = strconv.Itoa(cfg.MaxAge)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if policy.wildcard {
				h.Set("Access-Control-Allow-Origin", "*")
			} else if origin := r.Header.Get("Origin"); policy.allows(origin) {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}
			for k, v := range static {
				h.Set(k, v)
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
