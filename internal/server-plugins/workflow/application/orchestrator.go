package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	capabilities "github.com/orgair/orgair-mcp/internal/server-plugins/capabilities/application"
	capdomain "github.com/orgair/orgair-mcp/internal/server-plugins/capabilities/domain"
	playbooks "github.com/orgair/orgair-mcp/internal/server-plugins/playbooks/application"
	"github.com/orgair/orgair-mcp/internal/server-plugins/workflow/domain"
)

// Fixed inputs of the value creation run.
const (
	workflowSector        = "technology"
	workflowTalent        = 0.2
	evidenceDimension     = "data_infrastructure"
	scenarioName          = "Targeted_AI_Investment"
	scenarioInvestmentUSD = 2000000
	holdingPeriodYears    = 3
	evidenceExcerptRunes  = 200
)

var hundred = decimal.NewFromInt(100)

func workflowDimensionScores() []float64 {
	return []float64{70, 65, 75, 68, 72, 60, 70}
}

func scenarioChanges() map[string]float64 {
	return map[string]float64{"data_infrastructure": 10, "talent": 5}
}

// DispatcherInvoker adapts the operation dispatcher to the envelope-free
// invoker contract, surfacing rejected envelopes as their typed error.
type DispatcherInvoker struct {
	dispatcher *capdomain.Dispatcher
}

func NewDispatcherInvoker(dispatcher *capdomain.Dispatcher) *DispatcherInvoker {
	return &DispatcherInvoker{dispatcher: dispatcher}
}

func (i *DispatcherInvoker) Invoke(ctx context.Context, name string, args map[string]any) (any, error) {
	env := i.dispatcher.Invoke(ctx, name, args)
	if err := env.Err(); err != nil {
		return nil, err
	}
	return env.Payload, nil
}

// Orchestrator runs the value creation sequence: plan prompt, score,
// evidence, what-if and EBITDA projection, in that order.
type Orchestrator struct {
	operations domain.OperationInvoker
	prompts    domain.PromptRenderer
	logger     *slog.Logger
}

func NewOrchestrator(operations domain.OperationInvoker, prompts domain.PromptRenderer, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		operations: operations,
		prompts:    prompts,
		logger:     logger.With("component", "workflow"),
	}
}

// Run executes every step serially. The first failure aborts the run and is
// returned as is, together with the steps completed so far.
func (o *Orchestrator) Run(ctx context.Context, req domain.Request) (*domain.Result, error) {
	o.logger.Info("Starting workflow execution",
		"company_id", req.CompanyID,
		"target_score", req.TargetScore,
		"timeline_months", req.TimelineMonths)

	result := &domain.Result{CompanyID: req.CompanyID}
	if err := o.run(ctx, req, result); err != nil {
		o.logger.Error("Workflow step failed",
			"company_id", req.CompanyID,
			"completed_steps", len(result.Steps),
			"error", err)
		return result, err
	}

	o.logger.Info("Workflow execution completed successfully",
		"company_id", req.CompanyID,
		"steps_executed", len(result.Steps))
	return result, nil
}

func (o *Orchestrator) run(ctx context.Context, req domain.Request, result *domain.Result) error {
	target := strconv.FormatFloat(req.TargetScore, 'f', -1, 64)
	timeline := strconv.Itoa(req.TimelineMonths)

	plan, err := o.prompts.Render(ctx, playbooks.PromptValueCreationPlan, map[string]string{
		"company_id":      req.CompanyID,
		"target_score":    target,
		"timeline_months": timeline,
	})
	if err != nil {
		return err
	}
	result.Append(domain.StepPrompt, playbooks.PromptValueCreationPlan,
		fmt.Sprintf("Retrieved the value creation plan instructions for %s.", req.CompanyID), plan)

	score, err := invoke[capabilities.ScoreResult](ctx, o.operations, capabilities.OpCalculateScore, map[string]any{
		"company_id":           req.CompanyID,
		"sector_id":            workflowSector,
		"dimension_scores":     workflowDimensionScores(),
		"talent_concentration": workflowTalent,
	})
	if err != nil {
		return err
	}
	result.CurrentScore = score.FinalScore
	result.HRScore = score.Components.HRScore
	result.Append(domain.StepOperation, capabilities.OpCalculateScore,
		fmt.Sprintf("Current Org-AI-R score for %s: %.2f", req.CompanyID, score.FinalScore), score)

	evidence, err := invoke[capabilities.EvidenceResult](ctx, o.operations, capabilities.OpGetEvidence, map[string]any{
		"company_id": req.CompanyID,
		"dimension":  evidenceDimension,
		"limit":      1,
	})
	if err != nil {
		return err
	}
	sample := "No evidence found."
	if len(evidence.EvidenceItems) > 0 {
		sample = evidence.EvidenceItems[0].Content
	}
	result.Append(domain.StepOperation, capabilities.OpGetEvidence,
		fmt.Sprintf("Sample %s evidence: %s", evidenceDimension, sample), evidence)

	whatif, err := invoke[capabilities.WhatIfResult](ctx, o.operations, capabilities.OpAnalyzeWhatIf, map[string]any{
		"company_id":        req.CompanyID,
		"scenario_name":     scenarioName,
		"dimension_changes": scenarioChanges(),
		"investment_usd":    scenarioInvestmentUSD,
	})
	if err != nil {
		return err
	}
	result.OrgAIRChange = whatif.OrgAIRChange
	result.ProjectedImpactUSD = whatif.ProjectedImpactUSD
	result.Append(domain.StepOperation, capabilities.OpAnalyzeWhatIf,
		fmt.Sprintf("Projected Org-AI-R change %.2f, financial impact %s", whatif.OrgAIRChange, usd(whatif.ProjectedImpactUSD)), whatif)

	projection, err := invoke[capabilities.EBITDAProjection](ctx, o.operations, capabilities.OpProjectEBITDAImpact, map[string]any{
		"company_id":           req.CompanyID,
		"entry_score":          score.FinalScore,
		"target_score":         req.TargetScore,
		"h_r_score":            score.Components.HRScore,
		"holding_period_years": holdingPeriodYears,
	})
	if err != nil {
		return err
	}
	result.BaseEBITDAImpact = projection.Scenarios.Base.EBITDAImpactPct
	result.Append(domain.StepOperation, capabilities.OpProjectEBITDAImpact,
		fmt.Sprintf("Projected base EBITDA impact: %s%%", percent(result)), projection)

	result.Summary = summarize(req, target, timeline, sample, result)
	result.Append(domain.StepSummary, "", result.Summary, nil)
	return nil
}

// invoke calls the named operation and decodes its payload into T. Payloads
// that are not already a T take a JSON round trip.
func invoke[T any](ctx context.Context, ops domain.OperationInvoker, name string, args map[string]any) (T, error) {
	var out T
	payload, err := ops.Invoke(ctx, name, args)
	if err != nil {
		return out, err
	}
	if typed, ok := payload.(T); ok {
		return typed, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf("encode %s payload: %w", name, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode %s payload: %w", name, err)
	}
	return out, nil
}

func percent(result *domain.Result) string {
	return result.BaseEBITDAImpact.Mul(hundred).StringFixed(2)
}

func usd(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func excerpt(s string) string {
	runes := []rune(s)
	if len(runes) <= evidenceExcerptRunes {
		return s
	}
	return string(runes[:evidenceExcerptRunes]) + "..."
}

func summarize(req domain.Request, target, timeline, sample string, result *domain.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "AI value creation plan summary for %s\n", req.CompanyID)
	fmt.Fprintf(&b, "Target: improve the Org-AI-R score to %s within %s months.\n\n", target, timeline)
	fmt.Fprintf(&b, "1. Current Org-AI-R score: %.2f\n", result.CurrentScore)
	fmt.Fprintf(&b, "2. Key improvement areas: data infrastructure, talent. Example evidence: %q\n", excerpt(sample))
	fmt.Fprintf(&b, "3. Modeled scenario %s: expected Org-AI-R change +%.2f, estimated financial impact %s, confidence medium\n",
		scenarioName, result.OrgAIRChange, usd(result.ProjectedImpactUSD))
	fmt.Fprintf(&b, "4. Projected EBITDA impact (base scenario): +%s%% over %d years\n", percent(result), holdingPeriodYears)
	fmt.Fprintf(&b, "5. Estimated investment: %s\n", usd(scenarioInvestmentUSD))
	return b.String()
}
