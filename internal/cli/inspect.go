package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/orgair/orgair-mcp/internal/server-plugins/workflow"
	"github.com/orgair/orgair-mcp/internal/workbench"
	"github.com/orgair/orgair-mcp/pkg/config"
)

func createListCommand(opts *options) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List operations, resources, templates and prompts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench, cfg *config.ServerConfig) error {
				rows := [][]string{}
				for _, e := range wb.Entries() {
					if kind == "" || e.Kind == kind {
						rows = append(rows, []string{e.Kind, e.Name, e.Description})
					}
				}
				table := tablewriter.NewWriter(cmd.OutOrStdout())
				table.Header("KIND", "NAME", "DESCRIPTION")
				if err := table.Bulk(rows); err != nil {
					return err
				}
				return table.Render()
			})
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "only list one kind (operation, resource, template, prompt)")
	return cmd
}

func createInvokeCommand(opts *options) *cobra.Command {
	var assignments []string
	var rawJSON string
	cmd := &cobra.Command{
		Use:   "invoke OPERATION",
		Short: "Invoke an operation and print its result envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := map[string]any{}
			if rawJSON != "" {
				if err := json.Unmarshal([]byte(rawJSON), &input); err != nil {
					return fmt.Errorf("invalid --json arguments: %w", err)
				}
			}
			extra, err := parseAssignments(assignments)
			if err != nil {
				return err
			}
			for k, v := range extra {
				input[k] = v
			}

			return opts.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench, cfg *config.ServerConfig) error {
				s, err := wb.SelectOperation(wb.NewSession(), args[0])
				if err != nil {
					return err
				}
				for k, v := range input {
					if s, err = wb.SetOperationInput(s, k, v); err != nil {
						return err
					}
				}
				_, env := wb.InvokeSelected(ctx, s)
				if err := writeJSON(cmd.OutOrStdout(), env); err != nil {
					return err
				}
				return env.Err()
			})
		},
	}
	cmd.Flags().StringArrayVarP(&assignments, "arg", "a", nil, "argument as field=value (repeatable)")
	cmd.Flags().StringVar(&rawJSON, "json", "", "arguments as a JSON object")
	return cmd
}

func createReadCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "read URI",
		Short: "Read a resource by URI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench, cfg *config.ServerConfig) error {
				s, err := wb.ReadResource(ctx, wb.NewSession(), args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), s.ResourceOutput)
			})
		},
	}
}

func createRenderCommand(opts *options) *cobra.Command {
	var assignments []string
	cmd := &cobra.Command{
		Use:   "render PROMPT",
		Short: "Render an instruction template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := parseAssignments(assignments)
			if err != nil {
				return err
			}
			return opts.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench, cfg *config.ServerConfig) error {
				s, err := wb.SelectPrompt(wb.NewSession(), args[0])
				if err != nil {
					return err
				}
				for k, v := range input {
					if s, err = wb.SetPromptInput(s, k, fmt.Sprint(v)); err != nil {
						return err
					}
				}
				if s, err = wb.RenderSelected(ctx, s); err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), s.PromptOutput)
				return err
			})
		},
	}
	cmd.Flags().StringArrayVarP(&assignments, "arg", "a", nil, "argument as field=value (repeatable)")
	return cmd
}

func createWorkflowCommand(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "workflow",
		Short: "Run the value creation workflow",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench, cfg *config.ServerConfig) error {
				raw := map[string]any{}
				for _, name := range []string{"company", "target", "timeline"} {
					if cmd.Flags().Changed(name) {
						v, _ := cmd.Flags().GetString(name)
						raw[workflowFlagFields[name]] = v
					}
				}
				req, err := workflow.RequestFrom(raw, cfg.Workflow)
				if err != nil {
					return err
				}
				s, runErr := wb.RunWorkflow(ctx, wb.NewSession(), req)
				if asJSON && s.WorkflowResult != nil {
					if err := writeJSON(cmd.OutOrStdout(), s.WorkflowResult); err != nil {
						return err
					}
				} else {
					for _, line := range s.WorkflowLog {
						fmt.Fprintln(cmd.OutOrStdout(), line)
					}
				}
				return runErr
			})
		},
	}
	cmd.Flags().String("company", "", "company identifier (defaults to the configured workflow company)")
	cmd.Flags().String("target", "", "target Org-AI-R score")
	cmd.Flags().String("timeline", "", "timeline in months")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the structured result")
	return cmd
}

var workflowFlagFields = map[string]string{
	"company":  "company_id",
	"target":   "target_score",
	"timeline": "timeline_months",
}
