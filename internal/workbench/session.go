package workbench

import (
	"maps"

	capdomain "github.com/orgair/orgair-mcp/internal/server-plugins/capabilities/domain"
	workflowdomain "github.com/orgair/orgair-mcp/internal/server-plugins/workflow/domain"
)

type Page string

const (
	PageIntroduction Page = "introduction"
	PageOperations   Page = "operations"
	PageResources    Page = "resources"
	PagePrompts      Page = "prompts"
	PageWorkflow     Page = "workflow"
)

func Pages() []Page {
	return []Page{PageIntroduction, PageOperations, PageResources, PagePrompts, PageWorkflow}
}

// Session is the state of one interactive workbench. Workbench methods take a
// Session by value and return the updated copy; the argument is never mutated.
type Session struct {
	Page Page `json:"page"`

	SelectedOperation string                    `json:"selected_operation"`
	OperationInputs   map[string]map[string]any `json:"operation_inputs"`
	OperationOutput   *capdomain.ResultEnvelope `json:"operation_output,omitempty"`

	SelectedPrompt string                       `json:"selected_prompt"`
	PromptInputs   map[string]map[string]string `json:"prompt_inputs"`
	PromptOutput   string                       `json:"prompt_output,omitempty"`

	ResourceURI    string `json:"resource_uri"`
	ResourceOutput any    `json:"resource_output,omitempty"`

	WorkflowResult *workflowdomain.Result `json:"workflow_result,omitempty"`
	WorkflowLog    []string               `json:"workflow_log"`
}

// OperationInput returns the buffered arguments of an operation.
func (s Session) OperationInput(name string) map[string]any {
	return maps.Clone(s.OperationInputs[name])
}

// PromptInput returns the buffered arguments of a prompt.
func (s Session) PromptInput(name string) map[string]string {
	return maps.Clone(s.PromptInputs[name])
}

func (s Session) clone() Session {
	out := s
	out.OperationInputs = make(map[string]map[string]any, len(s.OperationInputs))
	for name, buf := range s.OperationInputs {
		out.OperationInputs[name] = maps.Clone(buf)
	}
	out.PromptInputs = make(map[string]map[string]string, len(s.PromptInputs))
	for name, buf := range s.PromptInputs {
		out.PromptInputs[name] = maps.Clone(buf)
	}
	out.WorkflowLog = append([]string(nil), s.WorkflowLog...)
	return out
}
