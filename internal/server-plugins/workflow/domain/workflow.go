package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type StepKind string

const (
	StepPrompt    StepKind = "prompt"
	StepOperation StepKind = "operation"
	StepSummary   StepKind = "summary"
)

// OperationInvoker runs a named operation and returns its payload, or the
// originating error when the call is rejected.
type OperationInvoker interface {
	Invoke(ctx context.Context, name string, args map[string]any) (any, error)
}

type PromptRenderer interface {
	Render(ctx context.Context, name string, args map[string]string) (string, error)
}

// Request holds the caller-facing inputs of a value creation run.
type Request struct {
	CompanyID      string  `json:"company_id"`
	TargetScore    float64 `json:"target_score"`
	TimelineMonths int     `json:"timeline_months"`
}

// StepResult is one entry of the narrated run, in execution order.
type StepResult struct {
	Index     int      `json:"index"`
	Kind      StepKind `json:"kind"`
	Target    string   `json:"target"`
	Narrative string   `json:"narrative"`
	Output    any      `json:"output,omitempty"`
}

type Result struct {
	CompanyID          string          `json:"company_id"`
	CurrentScore       float64         `json:"current_score"`
	HRScore            float64         `json:"h_r_score"`
	OrgAIRChange       float64         `json:"org_air_change"`
	ProjectedImpactUSD float64         `json:"projected_impact_usd"`
	BaseEBITDAImpact   decimal.Decimal `json:"base_ebitda_impact_pct"`
	Steps              []StepResult    `json:"steps"`
	Summary            string          `json:"summary"`
}

// Append records a step and numbers it from one.
func (r *Result) Append(kind StepKind, target, narrative string, output any) {
	r.Steps = append(r.Steps, StepResult{
		Index:     len(r.Steps) + 1,
		Kind:      kind,
		Target:    target,
		Narrative: narrative,
		Output:    output,
	})
}
