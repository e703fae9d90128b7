package domain

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// Kind is the declared type of an operation parameter.
type Kind string

const (
	KindString      Kind = "string"
	KindNumber      Kind = "number"
	KindInteger     Kind = "integer"
	KindBoolean     Kind = "boolean"
	KindNumberArray Kind = "array-of-number"
	KindNumberMap   Kind = "map-string-to-number"
)

var errNotNumeric = errors.New("not a number")

// ParameterSpec describes one field of an operation's input schema.
// Minimum and Maximum also bound every element of array and map kinds.
type ParameterSpec struct {
	Name        string
	Kind        Kind
	Description string
	Required    bool
	Default     any
	Enum        []string
	Minimum     *float64
	Maximum     *float64
}

// Bound returns a pointer suitable for Minimum/Maximum.
func Bound(v float64) *float64 {
	return &v
}

// Validate checks the declaration invariants of the parameter.
func (p ParameterSpec) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("parameter name cannot be empty")
	}
	switch p.Kind {
	case KindString, KindNumber, KindInteger, KindBoolean, KindNumberArray, KindNumberMap:
	default:
		return fmt.Errorf("parameter %s: unknown kind %q", p.Name, p.Kind)
	}
	if p.Required && p.Default != nil {
		return fmt.Errorf("parameter %s: required parameters cannot declare a default", p.Name)
	}
	if len(p.Enum) > 0 && p.Kind != KindString {
		return fmt.Errorf("parameter %s: enum is only allowed on string parameters", p.Name)
	}
	if p.Minimum != nil && p.Maximum != nil && *p.Minimum > *p.Maximum {
		return fmt.Errorf("parameter %s: minimum exceeds maximum", p.Name)
	}
	if p.Default != nil {
		if _, err := p.Coerce(p.Default); err != nil {
			return fmt.Errorf("parameter %s: default does not match kind: %w", p.Name, err)
		}
	}
	return nil
}

// IsBlank reports whether a supplied value counts as absent.
func IsBlank(raw any) bool {
	if raw == nil {
		return true
	}
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// Coerce converts raw to the Go type of the parameter's kind:
// string, float64, int, bool, []float64 or map[string]float64.
func (p ParameterSpec) Coerce(raw any) (any, error) {
	switch p.Kind {
	case KindString:
		return p.coerceString(raw)
	case KindNumber:
		f, err := toNumber(raw)
		if err != nil {
			return nil, err
		}
		return f, p.checkBounds(f)
	case KindInteger:
		f, err := toNumber(raw)
		if err != nil {
			return nil, err
		}
		if f != math.Trunc(f) {
			return nil, fmt.Errorf("%v is not an integer", raw)
		}
		return int(f), p.checkBounds(f)
	case KindBoolean:
		if _, isFloat := raw.(float64); isFloat {
			return nil, fmt.Errorf("%v is not a boolean", raw)
		}
		b, err := cast.ToBoolE(raw)
		if err != nil {
			return nil, fmt.Errorf("%v is not a boolean", raw)
		}
		return b, nil
	case KindNumberArray:
		return p.coerceArray(raw)
	case KindNumberMap:
		return p.coerceMap(raw)
	}
	return nil, fmt.Errorf("unsupported kind %q", p.Kind)
}

func (p ParameterSpec) coerceString(raw any) (string, error) {
	switch raw.(type) {
	case map[string]any, []any:
		return "", fmt.Errorf("expected a string")
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return "", fmt.Errorf("expected a string")
	}
	s = strings.TrimSpace(s)
	if len(p.Enum) > 0 && !slices.Contains(p.Enum, s) {
		return "", fmt.Errorf("%q is not one of [%s]", s, strings.Join(p.Enum, ", "))
	}
	return s, nil
}

func (p ParameterSpec) coerceArray(raw any) ([]float64, error) {
	v := reflect.ValueOf(raw)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected an array of numbers")
	}
	out := make([]float64, v.Len())
	for i := range out {
		f, err := toNumber(v.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		if err := p.checkBounds(f); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

func (p ParameterSpec) coerceMap(raw any) (map[string]float64, error) {
	v := reflect.ValueOf(raw)
	if v.Kind() != reflect.Map || v.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("expected an object of numbers")
	}
	keys := make([]string, 0, v.Len())
	values := make(map[string]any, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		k := iter.Key().String()
		keys = append(keys, k)
		values[k] = iter.Value().Interface()
	}
	sort.Strings(keys)

	out := make(map[string]float64, len(keys))
	for _, k := range keys {
		f, err := toNumber(values[k])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		if err := p.checkBounds(f); err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		out[k] = f
	}
	return out, nil
}

func (p ParameterSpec) checkBounds(f float64) error {
	if p.Minimum != nil && f < *p.Minimum {
		return fmt.Errorf("%v is below the minimum %v", f, *p.Minimum)
	}
	if p.Maximum != nil && f > *p.Maximum {
		return fmt.Errorf("%v is above the maximum %v", f, *p.Maximum)
	}
	return nil
}

func toNumber(raw any) (float64, error) {
	switch v := raw.(type) {
	case nil, bool:
		return 0, errNotNumeric
	case string:
		raw = strings.TrimSpace(v)
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, fmt.Errorf("%v: %w", raw, errNotNumeric)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%v: %w", raw, errNotNumeric)
	}
	return f, nil
}

// JSONSchema renders the parameter as a JSON Schema property.
func (p ParameterSpec) JSONSchema() map[string]any {
	prop := map[string]any{}
	if p.Description != "" {
		prop["description"] = p.Description
	}
	bounds := func(target map[string]any) {
		if p.Minimum != nil {
			target["minimum"] = *p.Minimum
		}
		if p.Maximum != nil {
			target["maximum"] = *p.Maximum
		}
	}
	switch p.Kind {
	case KindString:
		prop["type"] = "string"
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
	case KindNumber, KindInteger:
		prop["type"] = string(p.Kind)
		bounds(prop)
	case KindBoolean:
		prop["type"] = "boolean"
	case KindNumberArray:
		items := map[string]any{"type": "number"}
		bounds(items)
		prop["type"] = "array"
		prop["items"] = items
	case KindNumberMap:
		values := map[string]any{"type": "number"}
		bounds(values)
		prop["type"] = "object"
		prop["additionalProperties"] = values
	}
	if p.Default != nil {
		prop["default"] = p.Default
	}
	return prop
}
