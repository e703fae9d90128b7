package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "ORGAIR_MCP"

var envKeyReplacer = strings.NewReplacer(".", "_")

type TransportConfig struct {
	Type string `mapstructure:"type"` // "stdio", "sse" or "http"
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type CORSConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
	MaxAge         int      `mapstructure:"max_age"`
}

// WorkflowConfig seeds the value creation workflow when a caller omits inputs.
type WorkflowConfig struct {
	CompanyID      string  `mapstructure:"company_id"`
	TargetScore    float64 `mapstructure:"target_score"`
	TimelineMonths int     `mapstructure:"timeline_months"`
}

type ServerConfig struct {
	Transport      TransportConfig `mapstructure:"transport"`
	LogLevel       string          `mapstructure:"log_level"`
	LogFormat      string          `mapstructure:"log_format"`
	LogBufferLines int             `mapstructure:"log_buffer_lines"`
	Timeout        time.Duration   `mapstructure:"timeout"`
	CORS           CORSConfig      `mapstructure:"cors"`
	Workflow       WorkflowConfig  `mapstructure:"workflow"`
}

func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Transport: TransportConfig{
			Type: "stdio",
			Host: "localhost",
			Port: 8080,
		},
		LogLevel:       "info",
		LogFormat:      "json",
		LogBufferLines: 1000,
		Timeout:        30 * time.Second,
		CORS: CORSConfig{
			Enabled:        false,
			AllowedOrigins: []string{},
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization", "Mcp-Session-Id"},
			MaxAge:         300,
		},
		Workflow: WorkflowConfig{
			CompanyID:      "ACME-001",
			TargetScore:    80,
			TimelineMonths: 18,
		},
	}
}

// LoadConfig reads config.yaml (if any) and ORGAIR_MCP_* variables on top of
// the defaults, then validates the result.
func LoadConfig() (*ServerConfig, error) {
	return Load(viper.New())
}

func Load(v *viper.Viper) (*ServerConfig, error) {
	config := DefaultConfig()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/orgair-mcp/")
	v.AddConfigPath("$HOME/.orgair-mcp/")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	// Server configuration defaults
	v.SetDefault("transport.type", config.Transport.Type)
	v.SetDefault("transport.host", config.Transport.Host)
	v.SetDefault("transport.port", config.Transport.Port)
	v.SetDefault("log_level", config.LogLevel)
	v.SetDefault("log_format", config.LogFormat)
	v.SetDefault("log_buffer_lines", config.LogBufferLines)
	v.SetDefault("timeout", config.Timeout)

	// CORS defaults
	v.SetDefault("cors.enabled", config.CORS.Enabled)
	v.SetDefault("cors.allowed_origins", config.CORS.AllowedOrigins)
	v.SetDefault("cors.allowed_methods", config.CORS.AllowedMethods)
	v.SetDefault("cors.allowed_headers", config.CORS.AllowedHeaders)
	v.SetDefault("cors.max_age", config.CORS.MaxAge)

	// Workflow defaults
	v.SetDefault("workflow.company_id", config.Workflow.CompanyID)
	v.SetDefault("workflow.target_score", config.Workflow.TargetScore)
	v.SetDefault("workflow.timeline_months", config.Workflow.TimelineMonths)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read configuration file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func validateConfig(config *ServerConfig) error {
	validTransports := map[string]bool{
		"stdio": true, "sse": true, "http": true,
	}
	if !validTransports[config.Transport.Type] {
		return fmt.Errorf("invalid transport type: %s", config.Transport.Type)
	}

	if config.Transport.Type != "stdio" && (config.Transport.Port <= 0 || config.Transport.Port > 65535) {
		return fmt.Errorf("the port must be between 1 and 65535")
	}

	if config.Timeout <= 0 {
		return fmt.Errorf("the timeout must be positive")
	}

	if config.LogBufferLines <= 0 {
		return fmt.Errorf("the log buffer must hold at least one line")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[config.LogLevel] {
		return fmt.Errorf("invalid log level: %s", config.LogLevel)
	}

	validLogFormats := map[string]bool{
		"json": true, "text": true,
	}
	if !validLogFormats[config.LogFormat] {
		return fmt.Errorf("invalid log format: %s", config.LogFormat)
	}

	if config.Workflow.CompanyID == "" {
		return fmt.Errorf("the workflow company cannot be empty")
	}

	if config.Workflow.TargetScore < 0 || config.Workflow.TargetScore > 100 {
		return fmt.Errorf("the workflow target score must be between 0 and 100")
	}

	if config.Workflow.TimelineMonths <= 0 {
		return fmt.Errorf("the workflow timeline must be positive")
	}

	return nil
}
