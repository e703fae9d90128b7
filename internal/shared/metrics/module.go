package metrics

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
)

var Module = fx.Module("metrics",
	fx.Provide(
		func(logger *slog.Logger) Collector { return NewLogCollector(logger) },
	),
	fx.Invoke(func(lc fx.Lifecycle, c Collector) {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error { return c.Close() },
		})
	}),
)
