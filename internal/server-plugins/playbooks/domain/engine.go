package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"

	"github.com/orgair/orgair-mcp/internal/shared"
	"github.com/orgair/orgair-mcp/internal/shared/metrics"
)

// Placeholder fills optional arguments the caller did not supply.
const Placeholder = "N/A"

type ArgumentSpec struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// PromptSpec is a named instruction script with declared arguments.
// Body is a text/template over the argument map. Prepare, when set, may
// normalize supplied values before the required check runs.
type PromptSpec struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Arguments   []ArgumentSpec `json:"arguments"`

	Body    string                                         `json:"-"`
	Prepare func(args map[string]string) map[string]string `json:"-"`
}

type compiled struct {
	spec PromptSpec
	tmpl *template.Template
}

// Engine renders registered prompt specs.
type Engine struct {
	prompts   []compiled
	index     map[string]int
	logger    *slog.Logger
	collector metrics.Collector
}

// NewEngine parses every body up front and rejects duplicate prompt or
// argument names.
func NewEngine(specs []PromptSpec, logger *slog.Logger, collector metrics.Collector) (*Engine, error) {
	if collector == nil {
		collector = metrics.NewNoOpCollector()
	}
	e := &Engine{
		index:     make(map[string]int, len(specs)),
		logger:    logger.With("component", "prompt_engine"),
		collector: collector,
	}
	for _, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("prompt name cannot be empty")
		}
		if _, dup := e.index[spec.Name]; dup {
			return nil, fmt.Errorf("duplicate prompt %s", spec.Name)
		}
		seen := map[string]bool{}
		for _, arg := range spec.Arguments {
			if arg.Name == "" || seen[arg.Name] {
				return nil, fmt.Errorf("prompt %s: invalid or duplicate argument %q", spec.Name, arg.Name)
			}
			seen[arg.Name] = true
		}
		tmpl, err := template.New(spec.Name).
			Funcs(sprig.TxtFuncMap()).
			Option("missingkey=error").
			Parse(spec.Body)
		if err != nil {
			return nil, fmt.Errorf("prompt %s: %w", spec.Name, err)
		}
		e.index[spec.Name] = len(e.prompts)
		e.prompts = append(e.prompts, compiled{spec: spec, tmpl: tmpl})
	}
	return e, nil
}

// List returns the prompt specs in registration order.
func (e *Engine) List() []PromptSpec {
	out := make([]PromptSpec, len(e.prompts))
	for i, c := range e.prompts {
		out[i] = c.spec
	}
	return out
}

func (e *Engine) Lookup(name string) (PromptSpec, bool) {
	i, ok := e.index[name]
	if !ok {
		return PromptSpec{}, false
	}
	return e.prompts[i].spec, true
}

// Render validates args against the named prompt and interpolates them.
// Every missing required argument is reported at once; optional ones
// default to Placeholder. Undeclared arguments are ignored.
func (e *Engine) Render(ctx context.Context, name string, args map[string]string) (string, error) {
	start := time.Now()
	text, err := e.render(name, args)
	e.collector.RecordPromptRender(ctx, name, time.Since(start), err == nil)
	if err != nil {
		e.logger.Debug("Prompt render failed", "prompt", name, "error", err)
	}
	return text, err
}

func (e *Engine) render(name string, args map[string]string) (string, error) {
	i, ok := e.index[name]
	if !ok {
		return "", shared.NewError(shared.KindUnknownTemplate, "no template named %q", name)
	}
	c := e.prompts[i]

	supplied := make(map[string]string, len(args))
	for k, v := range args {
		supplied[k] = strings.TrimSpace(v)
	}
	if c.spec.Prepare != nil {
		supplied = c.spec.Prepare(supplied)
	}

	values := make(map[string]string, len(c.spec.Arguments))
	var missing []string
	for _, arg := range c.spec.Arguments {
		v := supplied[arg.Name]
		switch {
		case v != "":
			values[arg.Name] = v
		case arg.Required:
			missing = append(missing, arg.Name)
		default:
			values[arg.Name] = Placeholder
		}
	}
	if len(missing) > 0 {
		return "", shared.NewFieldError(shared.KindMissingRequiredArgument, missing, nil)
	}

	var b strings.Builder
	if err := c.tmpl.Execute(&b, values); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return b.String(), nil
}
