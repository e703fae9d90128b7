package metrics

import (
	"context"
	"log/slog"
	"time"
)

type Collector interface {
	RecordOperation(ctx context.Context, operation string, duration time.Duration, success bool)
	RecordResourceRead(ctx context.Context, uri string, duration time.Duration, success bool)
	RecordPromptRender(ctx context.Context, prompt string, duration time.Duration, success bool)
	Close() error
}

type NoOpCollector struct{}

func NewNoOpCollector() *NoOpCollector {
	return &NoOpCollector{}
}

func (c *NoOpCollector) RecordOperation(ctx context.Context, operation string, duration time.Duration, success bool) {
}

func (c *NoOpCollector) RecordResourceRead(ctx context.Context, uri string, duration time.Duration, success bool) {
}

func (c *NoOpCollector) RecordPromptRender(ctx context.Context, prompt string, duration time.Duration, success bool) {
}

func (c *NoOpCollector) Close() error {
	return nil
}

// LogCollector emits one debug record per observation.
type LogCollector struct {
	logger *slog.Logger
}

func NewLogCollector(logger *slog.Logger) *LogCollector {
	return &LogCollector{logger: logger.With("component", "metrics")}
}

func (c *LogCollector) RecordOperation(ctx context.Context, operation string, duration time.Duration, success bool) {
	c.logger.DebugContext(ctx, "operation invoked",
		"operation", operation,
		"duration", duration,
		"success", success)
}

func (c *LogCollector) RecordResourceRead(ctx context.Context, uri string, duration time.Duration, success bool) {
	c.logger.DebugContext(ctx, "resource read",
		"uri", uri,
		"duration", duration,
		"success", success)
}

func (c *LogCollector) RecordPromptRender(ctx context.Context, prompt string, duration time.Duration, success bool) {
	c.logger.DebugContext(ctx, "prompt rendered",
		"prompt", prompt,
		"duration", duration,
		"success", success)
}

func (c *LogCollector) Close() error {
	return nil
}
