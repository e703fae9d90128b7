package domain

import (
	"encoding/json"
	"fmt"
)

// OperationSpec is the immutable declaration of a callable operation.
type OperationSpec struct {
	Name        string
	Description string
	Schema      []ParameterSpec
}

// Parameter looks up a declared parameter by name.
func (s OperationSpec) Parameter(name string) (ParameterSpec, bool) {
	for _, p := range s.Schema {
		if p.Name == name {
			return p, true
		}
	}
	return ParameterSpec{}, false
}

// Validate checks the operation name and every parameter, including name uniqueness.
func (s OperationSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("operation name cannot be empty")
	}
	seen := make(map[string]struct{}, len(s.Schema))
	for _, p := range s.Schema {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("operation %s: %w", s.Name, err)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("operation %s: duplicate parameter %s", s.Name, p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}

// InputSchema renders the operation's parameters as a JSON Schema object.
func (s OperationSpec) InputSchema() json.RawMessage {
	properties := make(map[string]any, len(s.Schema))
	required := []string{}
	for _, p := range s.Schema {
		properties[p.Name] = p.JSONSchema()
		if p.Required {
			required = append(required, p.Name)
		}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
	data, err := json.Marshal(schema)
	if err != nil {
		// Only plain maps, strings and numbers reach here.
		panic(fmt.Sprintf("operation %s: schema not serializable: %v", s.Name, err))
	}
	return data
}

// Registry is the ordered, validated set of operation specs.
type Registry struct {
	specs []OperationSpec
	index map[string]int
}

// NewRegistry validates every spec and rejects duplicate operation names.
func NewRegistry(specs ...OperationSpec) (*Registry, error) {
	r := &Registry{
		specs: make([]OperationSpec, 0, len(specs)),
		index: make(map[string]int, len(specs)),
	}
	for _, s := range specs {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.index[s.Name]; dup {
			return nil, fmt.Errorf("duplicate operation %s", s.Name)
		}
		r.index[s.Name] = len(r.specs)
		r.specs = append(r.specs, s)
	}
	return r, nil
}

func (r *Registry) Lookup(name string) (OperationSpec, bool) {
	i, ok := r.index[name]
	if !ok {
		return OperationSpec{}, false
	}
	return r.specs[i], true
}

// List returns the specs in registration order.
func (r *Registry) List() []OperationSpec {
	return append([]OperationSpec(nil), r.specs...)
}
