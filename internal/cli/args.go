package cli

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseAssignment splits "field=value". Values that look like JSON arrays or
// objects are decoded so list and map parameters can be typed inline; every
// other value stays a string and is coerced by the dispatcher.
func parseAssignment(raw string) (string, any, error) {
	field, value, ok := strings.Cut(raw, "=")
	field = strings.TrimSpace(field)
	if !ok || field == "" {
		return "", nil, fmt.Errorf("expected field=value, got %q", raw)
	}
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "[") || strings.HasPrefix(value, "{") {
		var decoded any
		if err := json.Unmarshal([]byte(value), &decoded); err != nil {
			return "", nil, fmt.Errorf("field %s: invalid JSON value: %w", field, err)
		}
		return field, decoded, nil
	}
	return field, value, nil
}

func parseAssignments(raw []string) (map[string]any, error) {
	out := make(map[string]any, len(raw))
	for _, r := range raw {
		field, value, err := parseAssignment(r)
		if err != nil {
			return nil, err
		}
		out[field] = value
	}
	return out, nil
}

func writeJSON(w interface{ Write([]byte) (int, error) }, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
