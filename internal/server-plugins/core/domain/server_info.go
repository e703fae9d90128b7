package domain

// LogSource exposes the newest buffered log lines.
type LogSource interface {
	Last(n int) []string
	Capacity() int
}

type ServerInfo struct {
	Name              string   `json:"name"`
	Version           string   `json:"version"`
	Transport         string   `json:"transport"`
	ParameterVersion  string   `json:"parameter_version"`
	Operations        []string `json:"operations"`
	Resources         []string `json:"resources"`
	ResourceTemplates []string `json:"resource_templates"`
	Prompts           []string `json:"prompts"`
}

type LogSnapshot struct {
	Lines    []string `json:"lines"`
	Count    int      `json:"count"`
	Capacity int      `json:"capacity"`
}
