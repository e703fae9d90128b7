package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/orgair/orgair-mcp/internal/server-plugins/workflow"
	"github.com/orgair/orgair-mcp/internal/workbench"
	"github.com/orgair/orgair-mcp/pkg/config"
)

const consoleHelp = `Commands:
  page <name>          switch page (introduction, operations, resources, prompts, workflow)
  op <name>            select an operation
  set <field>=<value>  buffer an argument of the selected operation (empty value removes it)
  invoke               invoke the selected operation
  prompt <name>        select an instruction template
  arg <field>=<value>  buffer an argument of the selected template
  render               render the selected template
  read <uri>           read a resource
  workflow [company [target [timeline]]]
                       run the value creation workflow
  list                 list everything that can be invoked, read or rendered
  show                 print the session state
  help                 print this help
  quit                 leave the console
`

// Console interprets one command line at a time against a workbench session.
type Console struct {
	wb       *workbench.Workbench
	defaults config.WorkflowConfig
	out      io.Writer
}

func NewConsole(wb *workbench.Workbench, defaults config.WorkflowConfig, out io.Writer) *Console {
	return &Console{wb: wb, defaults: defaults, out: out}
}

func (c *Console) NewSession() workbench.Session {
	return c.wb.NewSession()
}

// Run reads commands from in until quit or end of input. Command errors are
// printed and do not end the session.
func (c *Console) Run(ctx context.Context, in io.Reader) (workbench.Session, error) {
	s := c.NewSession()
	scanner := bufio.NewScanner(in)
	fmt.Fprint(c.out, "orgair> ")
	for scanner.Scan() {
		next, quit, err := c.Execute(ctx, s, scanner.Text())
		s = next
		if err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
		if quit {
			return s, nil
		}
		if err := ctx.Err(); err != nil {
			return s, err
		}
		fmt.Fprint(c.out, "orgair> ")
	}
	return s, scanner.Err()
}

// Execute applies a single command line and returns the updated session.
func (c *Console) Execute(ctx context.Context, s workbench.Session, line string) (workbench.Session, bool, error) {
	command, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch command {
	case "":
		return s, false, nil
	case "quit", "exit":
		return s, true, nil
	case "help":
		fmt.Fprint(c.out, consoleHelp)
		return s, false, nil
	case "page":
		next, err := c.wb.Navigate(s, workbench.Page(rest))
		return next, false, err
	case "op":
		next, err := c.wb.SelectOperation(s, rest)
		return next, false, err
	case "set":
		field, value, err := parseAssignment(rest)
		if err != nil {
			return s, false, err
		}
		if value == "" {
			value = nil
		}
		next, err := c.wb.SetOperationInput(s, field, value)
		return next, false, err
	case "invoke":
		next, env := c.wb.InvokeSelected(ctx, s)
		return next, false, writeJSON(c.out, env)
	case "prompt":
		next, err := c.wb.SelectPrompt(s, rest)
		return next, false, err
	case "arg":
		field, value, err := parseAssignment(rest)
		if err != nil {
			return s, false, err
		}
		next, err := c.wb.SetPromptInput(s, field, fmt.Sprint(value))
		return next, false, err
	case "render":
		next, err := c.wb.RenderSelected(ctx, s)
		if err != nil {
			return next, false, err
		}
		fmt.Fprintln(c.out, next.PromptOutput)
		return next, false, nil
	case "read":
		next, err := c.wb.ReadResource(ctx, s, rest)
		if err != nil {
			return next, false, err
		}
		return next, false, writeJSON(c.out, next.ResourceOutput)
	case "workflow":
		return c.workflow(ctx, s, strings.Fields(rest))
	case "list":
		for _, e := range c.wb.Entries() {
			fmt.Fprintf(c.out, "%-9s %s\n", e.Kind, e.Name)
		}
		return s, false, nil
	case "show":
		return s, false, writeJSON(c.out, s)
	}
	return s, false, fmt.Errorf("unknown command %q, try help", command)
}

func (c *Console) workflow(ctx context.Context, s workbench.Session, fields []string) (workbench.Session, bool, error) {
	raw := map[string]any{}
	for i, name := range []string{"company_id", "target_score", "timeline_months"} {
		if i < len(fields) {
			raw[name] = fields[i]
		}
	}
	req, err := workflow.RequestFrom(raw, c.defaults)
	if err != nil {
		return s, false, err
	}
	next, err := c.wb.RunWorkflow(ctx, s, req)
	for _, line := range next.WorkflowLog {
		fmt.Fprintln(c.out, line)
	}
	return next, false, err
}

func createConsoleCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Explore operations, resources, templates and the workflow interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withWorkbench(cmd, func(ctx context.Context, wb *workbench.Workbench, cfg *config.ServerConfig) error {
				fmt.Fprint(cmd.OutOrStdout(), consoleHelp)
				_, err := NewConsole(wb, cfg.Workflow, cmd.OutOrStdout()).Run(ctx, cmd.InOrStdin())
				return err
			})
		},
	}
}
