package domain

import (
	"fmt"
	"strings"

	"github.com/yosida95/uritemplate/v3"
)

// Payload builds the JSON value of a resource from its extracted parameters.
type Payload func(params map[string]string) (any, error)

// ResourceEntry is a static, parameterless resource.
type ResourceEntry struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MIMEType    string `json:"mime_type"`

	build Payload
}

// ResourceTemplate is a URI pattern whose placeholders each fill one whole
// path segment.
type ResourceTemplate struct {
	Pattern     string   `json:"uri_template"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MIMEType    string   `json:"mime_type"`
	Params      []string `json:"parameters"`

	segments []segment
	build    Payload
}

type segment struct {
	literal string
	param   string
}

// NewResourceEntry declares a static resource.
func NewResourceEntry(uri, name, description string, build Payload) (ResourceEntry, error) {
	if uri == "" {
		return ResourceEntry{}, fmt.Errorf("resource uri cannot be empty")
	}
	if strings.ContainsAny(uri, "{}") {
		return ResourceEntry{}, fmt.Errorf("static resource %s cannot contain placeholders", uri)
	}
	if build == nil {
		return ResourceEntry{}, fmt.Errorf("resource %s has no payload builder", uri)
	}
	return ResourceEntry{
		URI:         uri,
		Name:        name,
		Description: description,
		MIMEType:    "application/json",
		build:       build,
	}, nil
}

// NewResourceTemplate parses pattern as a URI template and checks that
// placeholders are named, unique and each occupy an entire segment.
func NewResourceTemplate(pattern, name, description string, build Payload) (ResourceTemplate, error) {
	tmpl, err := uritemplate.New(pattern)
	if err != nil {
		return ResourceTemplate{}, fmt.Errorf("invalid resource template %s: %w", pattern, err)
	}
	if build == nil {
		return ResourceTemplate{}, fmt.Errorf("resource template %s has no payload builder", pattern)
	}

	declared := tmpl.Varnames()
	if len(declared) == 0 {
		return ResourceTemplate{}, fmt.Errorf("resource template %s has no placeholders", pattern)
	}

	scheme, path, ok := splitScheme(pattern)
	if !ok {
		return ResourceTemplate{}, fmt.Errorf("resource template %s has no scheme", pattern)
	}

	segs := []segment{{literal: scheme}}
	seen := map[string]bool{}
	var params []string
	for _, part := range strings.Split(path, "/") {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			param := strings.TrimSuffix(strings.TrimPrefix(part, "{"), "}")
			if param == "" || strings.ContainsAny(param, "{}+#./;?&,*:") {
				return ResourceTemplate{}, fmt.Errorf("resource template %s: unsupported placeholder %q", pattern, part)
			}
			if seen[param] {
				return ResourceTemplate{}, fmt.Errorf("resource template %s: duplicate placeholder %s", pattern, param)
			}
			seen[param] = true
			params = append(params, param)
			segs = append(segs, segment{param: param})
			continue
		}
		if strings.ContainsAny(part, "{}") {
			return ResourceTemplate{}, fmt.Errorf("resource template %s: placeholder must fill a whole segment in %q", pattern, part)
		}
		segs = append(segs, segment{literal: part})
	}
	if len(params) != len(declared) {
		return ResourceTemplate{}, fmt.Errorf("resource template %s: placeholders do not match template variables", pattern)
	}

	return ResourceTemplate{
		Pattern:     pattern,
		Name:        name,
		Description: description,
		MIMEType:    "application/json",
		Params:      params,
		segments:    segs,
		build:       build,
	}, nil
}

// Match compares uri segment by segment. Literal segments must be equal,
// placeholder segments capture any non-empty value.
func (t ResourceTemplate) Match(uri string) (map[string]string, bool) {
	scheme, path, ok := splitScheme(uri)
	if !ok || scheme != t.segments[0].literal {
		return nil, false
	}
	parts := strings.Split(path, "/")
	if len(parts) != len(t.segments)-1 {
		return nil, false
	}

	params := make(map[string]string, len(t.Params))
	for i, part := range parts {
		seg := t.segments[i+1]
		if seg.param == "" {
			if part != seg.literal {
				return nil, false
			}
			continue
		}
		if part == "" {
			return nil, false
		}
		params[seg.param] = part
	}
	return params, true
}

// Expand fills the template with params, as a client would.
func (t ResourceTemplate) Expand(params map[string]string) (string, error) {
	tmpl, err := uritemplate.New(t.Pattern)
	if err != nil {
		return "", err
	}
	values := uritemplate.Values{}
	for k, v := range params {
		values.Set(k, uritemplate.String(v))
	}
	return tmpl.Expand(values)
}

func splitScheme(uri string) (scheme, path string, ok bool) {
	i := strings.Index(uri, "://")
	if i <= 0 {
		return "", "", false
	}
	return uri[:i+3], uri[i+3:], true
}

// Catalog is the ordered set of static entries and templates.
type Catalog struct {
	entries   []ResourceEntry
	templates []ResourceTemplate
	names     map[string]bool
}

func NewCatalog() *Catalog {
	return &Catalog{names: map[string]bool{}}
}

// AddResource registers a static entry; URIs must be unique.
func (c *Catalog) AddResource(entry ResourceEntry) error {
	for _, e := range c.entries {
		if e.URI == entry.URI {
			return fmt.Errorf("duplicate resource %s", entry.URI)
		}
	}
	c.entries = append(c.entries, entry)
	return nil
}

// AddTemplate registers a template; patterns and names must be unique.
func (c *Catalog) AddTemplate(tmpl ResourceTemplate) error {
	for _, t := range c.templates {
		if t.Pattern == tmpl.Pattern {
			return fmt.Errorf("duplicate resource template %s", tmpl.Pattern)
		}
	}
	if c.names[tmpl.Name] {
		return fmt.Errorf("duplicate resource template name %s", tmpl.Name)
	}
	c.names[tmpl.Name] = true
	c.templates = append(c.templates, tmpl)
	return nil
}

func (c *Catalog) Resources() []ResourceEntry {
	return append([]ResourceEntry(nil), c.entries...)
}

func (c *Catalog) Templates() []ResourceTemplate {
	return append([]ResourceTemplate(nil), c.templates...)
}
