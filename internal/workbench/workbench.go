package workbench

import (
	"context"
	"fmt"
	"log/slog"

	capdomain "github.com/orgair/orgair-mcp/internal/server-plugins/capabilities/domain"
	catdomain "github.com/orgair/orgair-mcp/internal/server-plugins/catalog/domain"
	playbooksdomain "github.com/orgair/orgair-mcp/internal/server-plugins/playbooks/domain"
	workflowdomain "github.com/orgair/orgair-mcp/internal/server-plugins/workflow/domain"
	"github.com/orgair/orgair-mcp/internal/shared"
)

// Runner executes the value creation workflow.
type Runner interface {
	Run(ctx context.Context, req workflowdomain.Request) (*workflowdomain.Result, error)
}

// Workbench drives operations, resources, prompts and the workflow on behalf
// of an interactive session. It holds no session state itself.
type Workbench struct {
	dispatcher *capdomain.Dispatcher
	reader     *catdomain.Reader
	engine     *playbooksdomain.Engine
	runner     Runner
	logger     *slog.Logger
}

func New(dispatcher *capdomain.Dispatcher, reader *catdomain.Reader, engine *playbooksdomain.Engine, runner Runner, logger *slog.Logger) *Workbench {
	return &Workbench{
		dispatcher: dispatcher,
		reader:     reader,
		engine:     engine,
		runner:     runner,
		logger:     logger.With("component", "workbench"),
	}
}

// NewSession starts on the introduction page with the first operation and
// prompt selected and their buffers seeded with declared defaults.
func (w *Workbench) NewSession() Session {
	s := Session{
		Page:            PageIntroduction,
		OperationInputs: map[string]map[string]any{},
		PromptInputs:    map[string]map[string]string{},
		WorkflowLog:     []string{},
	}
	if ops := w.dispatcher.Operations(); len(ops) > 0 {
		s, _ = w.SelectOperation(s, ops[0].Name)
	}
	if prompts := w.engine.List(); len(prompts) > 0 {
		s, _ = w.SelectPrompt(s, prompts[0].Name)
	}
	return s
}

func (w *Workbench) Navigate(s Session, page Page) (Session, error) {
	for _, p := range Pages() {
		if p == page {
			out := s.clone()
			out.Page = page
			return out, nil
		}
	}
	return s, fmt.Errorf("unknown page %q", page)
}

// SelectOperation makes name the current operation. Switching to another
// operation clears the last output; buffered inputs are kept per operation.
func (w *Workbench) SelectOperation(s Session, name string) (Session, error) {
	spec, ok := w.dispatcher.Lookup(name)
	if !ok {
		return s, shared.NewError(shared.KindUnknownOperation, "unknown operation %q", name)
	}
	out := s.clone()
	if out.SelectedOperation != name {
		out.OperationOutput = nil
	}
	out.SelectedOperation = name
	if _, seeded := out.OperationInputs[name]; !seeded {
		buf := map[string]any{}
		for _, p := range spec.Schema {
			if p.Default != nil {
				buf[p.Name] = p.Default
			}
		}
		out.OperationInputs[name] = buf
	}
	return out, nil
}

// SetOperationInput buffers one argument of the selected operation.
// A nil value removes the argument.
func (w *Workbench) SetOperationInput(s Session, field string, value any) (Session, error) {
	if s.SelectedOperation == "" {
		return s, fmt.Errorf("no operation selected")
	}
	out := s.clone()
	buf := out.OperationInputs[out.SelectedOperation]
	if buf == nil {
		buf = map[string]any{}
		out.OperationInputs[out.SelectedOperation] = buf
	}
	if value == nil {
		delete(buf, field)
	} else {
		buf[field] = value
	}
	return out, nil
}

// InvokeSelected runs the selected operation with its buffered inputs and
// stores the envelope as the last output.
func (w *Workbench) InvokeSelected(ctx context.Context, s Session) (Session, capdomain.ResultEnvelope) {
	if s.SelectedOperation == "" {
		env := capdomain.Failure(shared.NewError(shared.KindUnknownOperation, "no operation selected"))
		return s, env
	}
	env := w.dispatcher.Invoke(ctx, s.SelectedOperation, s.OperationInput(s.SelectedOperation))
	out := s.clone()
	out.OperationOutput = &env
	return out, env
}

// SelectPrompt makes name the current prompt, clearing the last rendering
// when the selection changes.
func (w *Workbench) SelectPrompt(s Session, name string) (Session, error) {
	if _, ok := w.engine.Lookup(name); !ok {
		return s, shared.NewError(shared.KindUnknownTemplate, "unknown prompt %q", name)
	}
	out := s.clone()
	if out.SelectedPrompt != name {
		out.PromptOutput = ""
	}
	out.SelectedPrompt = name
	if _, seeded := out.PromptInputs[name]; !seeded {
		out.PromptInputs[name] = map[string]string{}
	}
	return out, nil
}

func (w *Workbench) SetPromptInput(s Session, field, value string) (Session, error) {
	if s.SelectedPrompt == "" {
		return s, fmt.Errorf("no prompt selected")
	}
	out := s.clone()
	if out.PromptInputs[out.SelectedPrompt] == nil {
		out.PromptInputs[out.SelectedPrompt] = map[string]string{}
	}
	out.PromptInputs[out.SelectedPrompt][field] = value
	return out, nil
}

// RenderSelected renders the selected prompt. On failure the previous
// rendering is kept.
func (w *Workbench) RenderSelected(ctx context.Context, s Session) (Session, error) {
	if s.SelectedPrompt == "" {
		return s, fmt.Errorf("no prompt selected")
	}
	text, err := w.engine.Render(ctx, s.SelectedPrompt, s.PromptInput(s.SelectedPrompt))
	if err != nil {
		return s, err
	}
	out := s.clone()
	out.PromptOutput = text
	return out, nil
}

// ReadResource selects uri and stores what it resolves to.
func (w *Workbench) ReadResource(ctx context.Context, s Session, uri string) (Session, error) {
	out := s.clone()
	out.ResourceURI = uri
	out.ResourceOutput = nil
	payload, err := w.reader.Read(ctx, uri)
	if err != nil {
		return out, err
	}
	out.ResourceOutput = payload
	return out, nil
}

// RunWorkflow replaces the previous workflow results with a new run. A failed
// run keeps the narratives of the steps that completed.
func (w *Workbench) RunWorkflow(ctx context.Context, s Session, req workflowdomain.Request) (Session, error) {
	out := s.clone()
	out.WorkflowResult = nil
	out.WorkflowLog = []string{fmt.Sprintf("Running the value creation workflow for %s", req.CompanyID)}

	result, err := w.runner.Run(ctx, req)
	if result != nil {
		for _, step := range result.Steps {
			out.WorkflowLog = append(out.WorkflowLog, step.Narrative)
		}
	}
	if err != nil {
		w.logger.Warn("Workflow run failed", "company_id", req.CompanyID, "error", err)
		out.WorkflowLog = append(out.WorkflowLog, "Workflow aborted: "+err.Error())
		return out, err
	}
	out.WorkflowResult = result
	return out, nil
}

// Entry is one row of the capability listing.
type Entry struct {
	Kind        string
	Name        string
	Description string
}

const (
	EntryOperation = "operation"
	EntryResource  = "resource"
	EntryTemplate  = "template"
	EntryPrompt    = "prompt"
)

// Entries lists what the session can act on, operations first.
func (w *Workbench) Entries() []Entry {
	var out []Entry
	for _, op := range w.dispatcher.Operations() {
		out = append(out, Entry{Kind: EntryOperation, Name: op.Name, Description: op.Description})
	}
	for _, r := range w.reader.Catalog().Resources() {
		out = append(out, Entry{Kind: EntryResource, Name: r.URI, Description: r.Description})
	}
	for _, t := range w.reader.Catalog().Templates() {
		out = append(out, Entry{Kind: EntryTemplate, Name: t.Pattern, Description: t.Description})
	}
	for _, p := range w.engine.List() {
		out = append(out, Entry{Kind: EntryPrompt, Name: p.Name, Description: p.Description})
	}
	return out
}
