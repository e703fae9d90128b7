package domain

type PromptMeta struct {
	Plugin      string `json:"plugin"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type IntentEntry struct {
	Synonyms []string `json:"synonyms"`
	Tool     string   `json:"tool"`
	Params   []string `json:"params"`
}

type IntentMap map[string]IntentEntry

type CapabilityToolExample struct {
	Tool   string         `json:"tool"`
	Params map[string]any `json:"params,omitempty"`
}

type CapabilityTool struct {
	Plugin      string                  `json:"plugin"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Examples    []CapabilityToolExample `json:"examples,omitempty"`
}

type CapabilityResource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MIMEType    string `json:"mimeType"`
	Template    bool   `json:"template,omitempty"`
}

type CapabilityIndex struct {
	Tools     []CapabilityTool     `json:"tools"`
	Resources []CapabilityResource `json:"resources"`
	Prompts   []PromptMeta         `json:"prompts"`
}

func NewCapabilityIndex() CapabilityIndex {
	return CapabilityIndex{
		Tools:     make([]CapabilityTool, 0),
		Resources: make([]CapabilityResource, 0),
		Prompts:   make([]PromptMeta, 0),
	}
}
