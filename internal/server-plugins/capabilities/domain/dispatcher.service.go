package domain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/orgair/orgair-mcp/internal/shared"
	"github.com/orgair/orgair-mcp/internal/shared/metrics"
)

// Handler computes the payload of one operation from validated arguments.
type Handler func(ctx context.Context, args Arguments) (any, error)

// Dispatcher validates raw inputs against the registry and routes them to handlers.
type Dispatcher struct {
	registry  *Registry
	handlers  map[string]Handler
	logger    *slog.Logger
	collector metrics.Collector
}

// NewDispatcher fails unless every spec has exactly one handler and every
// handler has a spec.
func NewDispatcher(registry *Registry, handlers map[string]Handler, logger *slog.Logger, collector metrics.Collector) (*Dispatcher, error) {
	for _, spec := range registry.List() {
		if handlers[spec.Name] == nil {
			return nil, fmt.Errorf("operation %s has no handler", spec.Name)
		}
	}
	for name := range handlers {
		if _, ok := registry.Lookup(name); !ok {
			return nil, fmt.Errorf("handler %s has no operation spec", name)
		}
	}
	if collector == nil {
		collector = metrics.NewNoOpCollector()
	}
	return &Dispatcher{
		registry:  registry,
		handlers:  handlers,
		logger:    logger.With("component", "dispatcher"),
		collector: collector,
	}, nil
}

// Operations lists the registered specs in registration order.
func (d *Dispatcher) Operations() []OperationSpec {
	return d.registry.List()
}

func (d *Dispatcher) Lookup(name string) (OperationSpec, bool) {
	return d.registry.Lookup(name)
}

// Invoke validates raw against the named operation and runs its handler.
// It never panics on bad input and never returns a Go error: every outcome
// is an envelope.
func (d *Dispatcher) Invoke(ctx context.Context, name string, raw map[string]any) ResultEnvelope {
	start := time.Now()
	env := d.invoke(ctx, name, raw)
	d.collector.RecordOperation(ctx, name, time.Since(start), env.OK)
	if !env.OK {
		d.logger.Debug("Operation rejected",
			"operation", name,
			"error_kind", env.ErrorKind,
			"fields", env.Fields)
	}
	return env
}

func (d *Dispatcher) invoke(ctx context.Context, name string, raw map[string]any) ResultEnvelope {
	spec, ok := d.registry.Lookup(name)
	if !ok {
		return Failure(shared.NewError(shared.KindUnknownOperation, "no operation named %q", name))
	}

	args, err := Bind(spec, raw)
	if err != nil {
		return Failure(err)
	}

	payload, err := d.handlers[name](ctx, args)
	if err != nil {
		return Failure(err)
	}
	return Success(payload)
}

// Bind validates raw against spec in one pass, collecting every offending
// field. Missing required fields take precedence in the reported kind.
func Bind(spec OperationSpec, raw map[string]any) (Arguments, error) {
	args := make(Arguments, len(spec.Schema))
	var missing, invalid, details []string

	for _, p := range spec.Schema {
		value, present := raw[p.Name]
		if !present || IsBlank(value) {
			switch {
			case p.Required:
				missing = append(missing, p.Name)
			case p.Default != nil:
				coerced, err := p.Coerce(p.Default)
				if err != nil {
					invalid = append(invalid, p.Name)
					details = append(details, fmt.Sprintf("%s: %v", p.Name, err))
					continue
				}
				args[p.Name] = coerced
			}
			continue
		}
		coerced, err := p.Coerce(value)
		if err != nil {
			invalid = append(invalid, p.Name)
			details = append(details, fmt.Sprintf("%s: %v", p.Name, err))
			continue
		}
		args[p.Name] = coerced
	}

	if len(missing) > 0 {
		return nil, shared.NewFieldError(shared.KindMissingRequiredField, append(missing, invalid...), details)
	}
	if len(invalid) > 0 {
		return nil, shared.NewFieldError(shared.KindInvalidArgument, invalid, details)
	}
	return args, nil
}
