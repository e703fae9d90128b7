package application

import (
	"log/slog"
	"strings"

	"github.com/orgair/orgair-mcp/internal/server-plugins/playbooks/domain"
	"github.com/orgair/orgair-mcp/internal/shared/metrics"
)

const (
	PromptDueDiligence        = "due_diligence_assessment"
	PromptValueCreationPlan   = "value_creation_plan"
	PromptCompetitiveAnalysis = "competitive_analysis"
)

const dueDiligenceBody = `Conduct a {{ .assessment_depth }} AI-readiness due diligence assessment for company {{ .company_id }}.

Please:
1. Retrieve the current Org-AI-R score using the ` + "`calculate_score`" + ` operation.
2. Gather evidence for each of the seven dimensions using the ` + "`get_evidence`" + ` operation.
3. Analyze strengths and gaps across dimensions based on the retrieved scores and evidence.
4. Compare {{ .company_id }}'s Org-AI-R profile to sector benchmarks from the ` + "`orgair://sectors`" + ` resource.
5. Identify key risks and opportunities related to AI adoption and maturity.
6. Provide a strategic recommendation with a confidence level (high, medium or low).

Structure your response as a formal due diligence memo stating the current Org-AI-R score, supporting evidence, comparative analysis, risks and opportunities, and a concise recommendation.`

const valueCreationPlanBody = `Create an AI value creation plan for company {{ .company_id }}.
Target: improve the Org-AI-R score to {{ .target_score }} within {{ .timeline_months }} months.

Please:
1. Get the current Org-AI-R score using ` + "`calculate_score`" + `.
2. Identify the highest-impact improvement areas from low dimension scores or evidence gaps (` + "`get_evidence`" + `).
3. Use ` + "`analyze_whatif`" + ` to model targeted interventions and their impact on the score and financial metrics.
4. Project the EBITDA impact of reaching {{ .target_score }} using ` + "`project_ebitda_impact`" + `.
5. Lay out a phased roadmap over {{ .timeline_months }} months with key initiatives, costs and timelines.
6. Estimate investment requirements and projected ROI.

Deliver an executive-ready plan summarizing the current state, proposed initiatives and projected financial benefits.`

const competitiveAnalysisBody = `Conduct a competitive AI-readiness analysis for: {{ .company_ids | splitList "," | join ", " }}.
Focus dimensions: {{ .focus_dimensions }}

Please:
1. For each company, calculate its Org-AI-R score using the ` + "`calculate_score`" + ` operation.
2. Compare dimension-level performance across all specified companies, using sector baselines from ` + "`orgair://sectors`" + `.
3. Identify relative strengths and weaknesses for each company compared to its peers.
4. Highlight best practices observed among the leading companies in the peer group.
5. Provide strategic recommendations for competitive positioning based on AI readiness.

Present a comparative table followed by a narrative summary with key findings and actionable insights.`

// normalizeList turns a comma-separated value into "a,b,c" with blanks removed.
func normalizeList(value string) string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return strings.Join(items, ",")
}

// PromptSpecs declares the instruction templates in registration order.
func PromptSpecs() []domain.PromptSpec {
	return []domain.PromptSpec{
		{
			Name:        PromptDueDiligence,
			Description: "Comprehensive AI-readiness due diligence assessment for a company.",
			Arguments: []domain.ArgumentSpec{
				{Name: "company_id", Description: "Company to assess", Required: true},
				{Name: "assessment_depth", Description: "screening, limited, or full"},
			},
			Body: dueDiligenceBody,
		},
		{
			Name:        PromptValueCreationPlan,
			Description: "Generate an AI value creation plan for a portfolio company.",
			Arguments: []domain.ArgumentSpec{
				{Name: "company_id", Description: "Target company", Required: true},
				{Name: "target_score", Description: "Target Org-AI-R score to achieve", Required: true},
				{Name: "timeline_months", Description: "Implementation timeline in months", Required: true},
			},
			Body: valueCreationPlanBody,
		},
		{
			Name:        PromptCompetitiveAnalysis,
			Description: "Compare AI-readiness across peer companies.",
			Arguments: []domain.ArgumentSpec{
				{Name: "company_ids", Description: "Comma-separated company IDs for comparison", Required: true},
				{Name: "focus_dimensions", Description: "Specific dimensions to compare (comma-separated)"},
			},
			Body: competitiveAnalysisBody,
			Prepare: func(args map[string]string) map[string]string {
				args["company_ids"] = normalizeList(args["company_ids"])
				return args
			},
		},
	}
}

func NewEngine(logger *slog.Logger, collector metrics.Collector) (*domain.Engine, error) {
	return domain.NewEngine(PromptSpecs(), logger, collector)
}
