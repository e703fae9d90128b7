package domain

import (
	"context"
	"log/slog"
	"time"

	"github.com/orgair/orgair-mcp/internal/shared"
	"github.com/orgair/orgair-mcp/internal/shared/metrics"
)

// Reader resolves concrete URIs against a catalog.
type Reader struct {
	catalog   *Catalog
	logger    *slog.Logger
	collector metrics.Collector
}

func NewReader(catalog *Catalog, logger *slog.Logger, collector metrics.Collector) *Reader {
	if collector == nil {
		collector = metrics.NewNoOpCollector()
	}
	return &Reader{
		catalog:   catalog,
		logger:    logger.With("component", "resource_reader"),
		collector: collector,
	}
}

func (r *Reader) Catalog() *Catalog {
	return r.catalog
}

// Read returns the payload of uri. Static entries are tried first, then
// templates in registration order; the first match wins.
func (r *Reader) Read(ctx context.Context, uri string) (any, error) {
	start := time.Now()
	payload, err := r.read(uri)
	r.collector.RecordResourceRead(ctx, uri, time.Since(start), err == nil)
	if err != nil {
		r.logger.Debug("Resource read failed", "uri", uri, "error", err)
	}
	return payload, err
}

func (r *Reader) read(uri string) (any, error) {
	for _, entry := range r.catalog.entries {
		if entry.URI == uri {
			return entry.build(nil)
		}
	}
	for _, tmpl := range r.catalog.templates {
		if params, ok := tmpl.Match(uri); ok {
			return tmpl.build(params)
		}
	}
	return nil, shared.NewError(shared.KindResourceNotFound, "no resource matches %q", uri)
}
