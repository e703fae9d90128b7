package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	mcpserver "github.com/orgair/orgair-mcp/internal/server"
	"github.com/orgair/orgair-mcp/internal/workbench"
	"github.com/orgair/orgair-mcp/pkg/config"
	"github.com/orgair/orgair-mcp/pkg/fxapp"
)

type CommandConfig struct {
	Version   string
	BuildTime string
}

// options carries the viper instance the persistent flags are bound to.
type options struct {
	viper      *viper.Viper
	configFile string
}

func CreateRootCommand(cmdConfig *CommandConfig) *cobra.Command {
	opts := &options{viper: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "orgair",
		Short: "Org-AI-R - organizational AI readiness scoring and value creation",
		Long: `orgair drives the Org-AI-R operations, resources, instruction templates and
the value creation workflow in-process, or serves them to MCP clients.`,
		SilenceUsage: true,
	}

	addPersistentFlags(rootCmd, opts)
	if err := bindFlags(rootCmd, opts.viper); err != nil {
		log.Fatalf("Failed to bind flags to configuration: %v", err)
	}

	rootCmd.AddCommand(
		createVersionCommand(cmdConfig),
		createServeCommand(cmdConfig, opts),
		createListCommand(opts),
		createInvokeCommand(opts),
		createReadCommand(opts),
		createRenderCommand(opts),
		createWorkflowCommand(opts),
		createConsoleCommand(opts),
	)
	return rootCmd
}

func Execute(ctx context.Context, rootCmd *cobra.Command) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("Failed to execute the command: %v", err)
	}
}

func createVersionCommand(cmdConfig *CommandConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", mcpserver.ServerName)
			fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\n", cmdConfig.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Build time: %s\n", cmdConfig.BuildTime)
		},
	}
}

func createServeCommand(cmdConfig *CommandConfig, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the capabilities to MCP clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			mcpserver.Version = cmdConfig.Version
			app := fxapp.NewServer(cfg)
			if err := app.Err(); err != nil {
				return fmt.Errorf("failed to initialize the server: %w", err)
			}
			app.Run()
			return nil
		},
	}
}

func (o *options) load() (*config.ServerConfig, error) {
	if o.configFile != "" {
		o.viper.SetConfigFile(o.configFile)
	}
	cfg, err := config.Load(o.viper)
	if err != nil {
		return nil, fmt.Errorf("failed to load the configuration: %w", err)
	}
	return cfg, nil
}

// withWorkbench starts the in-process core, runs fn and stops the core.
func (o *options) withWorkbench(cmd *cobra.Command, fn func(ctx context.Context, wb *workbench.Workbench, cfg *config.ServerConfig) error) error {
	cfg, err := o.load()
	if err != nil {
		return err
	}

	var wb *workbench.Workbench
	app := fxapp.NewConsole(cfg, &wb)
	if err := app.Err(); err != nil {
		return fmt.Errorf("failed to initialize the core: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start the core: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer cancel()
		_ = app.Stop(stopCtx)
	}()

	return fn(ctx, wb, cfg)
}

func addPersistentFlags(rootCmd *cobra.Command, opts *options) {
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "path to the configuration file")
	rootCmd.PersistentFlags().String("transport", "stdio", "MCP transport (stdio, sse, http)")
	rootCmd.PersistentFlags().String("host", "localhost", "host of the server")
	rootCmd.PersistentFlags().Int("port", 8080, "port of the server")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "json", "log format (json, text)")
}

// bindFlags binds the command line flags to the configuration viper
// Returns an error if the binding fails for any of the flags
func bindFlags(rootCmd *cobra.Command, v *viper.Viper) error {
	flagBindings := []struct {
		key  string
		flag string
	}{
		{"transport.type", "transport"},
		{"transport.host", "host"},
		{"transport.port", "port"},
		{"log_level", "log-level"},
		{"log_format", "log-format"},
	}

	for _, binding := range flagBindings {
		if err := v.BindPFlag(binding.key, rootCmd.PersistentFlags().Lookup(binding.flag)); err != nil {
			return fmt.Errorf("failed to bind flag '%s': %w", binding.flag, err)
		}
	}

	return nil
}
