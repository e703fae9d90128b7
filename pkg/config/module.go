package config

import "go.uber.org/fx"

// Module exposes narrower views of the supplied ServerConfig.
var Module = fx.Module("config",
	fx.Provide(func(cfg *ServerConfig) TransportConfig { return cfg.Transport }),
	fx.Provide(func(cfg *ServerConfig) WorkflowConfig { return cfg.Workflow }),
)
