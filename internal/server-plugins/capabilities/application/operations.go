package application

import (
	"context"
	"log/slog"

	"github.com/orgair/orgair-mcp/internal/server-plugins/capabilities/domain"
	"github.com/orgair/orgair-mcp/internal/shared/metrics"
)

const (
	OpCalculateScore      = "calculate_score"
	OpGetEvidence         = "get_evidence"
	OpProjectEBITDAImpact = "project_ebitda_impact"
	OpAnalyzeWhatIf       = "analyze_whatif"
	OpGetFundPortfolio    = "get_fund_portfolio"
)

func dimensionFilters() []string {
	return append(append([]string(nil), Dimensions...), AllDimensions)
}

// OperationSpecs declares the five operations in registration order.
func OperationSpecs() []domain.OperationSpec {
	return []domain.OperationSpec{
		{
			Name:        OpCalculateScore,
			Description: "Calculate the composite Org-AI-R score for a company from its dimension scores, sector and talent concentration.",
			Schema: []domain.ParameterSpec{
				{Name: "company_id", Kind: domain.KindString, Required: true, Description: "Unique company identifier"},
				{Name: "sector_id", Kind: domain.KindString, Required: true, Enum: SectorIDs(), Description: "Industry sector"},
				{
					Name:        "dimension_scores",
					Kind:        domain.KindNumberArray,
					Required:    true,
					Minimum:     domain.Bound(0),
					Maximum:     domain.Bound(100),
					Description: "Dimension scores: data infrastructure, governance, technology stack, talent, leadership, use cases, culture",
				},
				{
					Name:        "talent_concentration",
					Kind:        domain.KindNumber,
					Default:     0.2,
					Minimum:     domain.Bound(0),
					Maximum:     domain.Bound(1),
					Description: "Talent concentration ratio (0-1)",
				},
			},
		},
		{
			Name:        OpGetEvidence,
			Description: "Retrieve ranked evidence snippets supporting a company's dimension score.",
			Schema: []domain.ParameterSpec{
				{Name: "company_id", Kind: domain.KindString, Required: true, Description: "Company identifier"},
				{Name: "dimension", Kind: domain.KindString, Required: true, Enum: dimensionFilters(), Description: "Dimension to search, or 'all'"},
				{Name: "query", Kind: domain.KindString, Description: "Optional text that evidence content must contain"},
				{Name: "limit", Kind: domain.KindInteger, Default: 1, Minimum: domain.Bound(1), Maximum: domain.Bound(50), Description: "Maximum number of items"},
			},
		},
		{
			Name:        OpProjectEBITDAImpact,
			Description: "Project EBITDA impact scenarios from an Org-AI-R score improvement.",
			Schema: []domain.ParameterSpec{
				{Name: "company_id", Kind: domain.KindString, Required: true, Description: "Unique company identifier"},
				{Name: "entry_score", Kind: domain.KindNumber, Required: true, Minimum: domain.Bound(0), Maximum: domain.Bound(100), Description: "Current Org-AI-R score"},
				{Name: "target_score", Kind: domain.KindNumber, Required: true, Minimum: domain.Bound(0), Maximum: domain.Bound(100), Description: "Target Org-AI-R score after improvements"},
				{Name: "h_r_score", Kind: domain.KindNumber, Required: true, Minimum: domain.Bound(0), Maximum: domain.Bound(100), Description: "Systematic opportunity score (H^R component)"},
				{Name: "holding_period_years", Kind: domain.KindInteger, Default: 3, Minimum: domain.Bound(1), Maximum: domain.Bound(10), Description: "Holding period in years"},
			},
		},
		{
			Name:        OpAnalyzeWhatIf,
			Description: "Model the Org-AI-R and financial impact of hypothetical dimension improvements.",
			Schema: []domain.ParameterSpec{
				{Name: "company_id", Kind: domain.KindString, Required: true, Description: "Unique company identifier"},
				{Name: "scenario_name", Kind: domain.KindString, Required: true, Description: "Name for the what-if scenario"},
				{Name: "dimension_changes", Kind: domain.KindNumberMap, Required: true, Description: "Dimension name to expected score change"},
				{Name: "investment_usd", Kind: domain.KindNumber, Default: 0, Minimum: domain.Bound(0), Description: "Planned investment amount in USD"},
			},
		},
		{
			Name:        OpGetFundPortfolio,
			Description: "Get aggregate Org-AI-R metrics for an investment fund.",
			Schema: []domain.ParameterSpec{
				{Name: "fund_id", Kind: domain.KindString, Required: true, Description: "Unique fund identifier"},
				{Name: "include_companies", Kind: domain.KindBoolean, Default: false, Description: "Include the fund's company list"},
			},
		},
	}
}

// Handlers binds each operation name to its computation.
func Handlers() map[string]domain.Handler {
	return map[string]domain.Handler{
		OpCalculateScore: func(_ context.Context, args domain.Arguments) (any, error) {
			return CalculateScore(ScoreInput{
				CompanyID:           args.String("company_id"),
				SectorID:            args.String("sector_id"),
				DimensionScores:     args.Floats("dimension_scores"),
				TalentConcentration: args.Float("talent_concentration"),
			}), nil
		},
		OpGetEvidence: func(_ context.Context, args domain.Arguments) (any, error) {
			return RetrieveEvidence(EvidenceQuery{
				CompanyID: args.String("company_id"),
				Dimension: args.String("dimension"),
				Query:     args.String("query"),
				Limit:     args.Int("limit"),
			}), nil
		},
		OpProjectEBITDAImpact: func(_ context.Context, args domain.Arguments) (any, error) {
			return ProjectEBITDA(EBITDAInput{
				CompanyID:          args.String("company_id"),
				EntryScore:         args.Float("entry_score"),
				TargetScore:        args.Float("target_score"),
				HRScore:            args.Float("h_r_score"),
				HoldingPeriodYears: args.Int("holding_period_years"),
			}), nil
		},
		OpAnalyzeWhatIf: func(_ context.Context, args domain.Arguments) (any, error) {
			return AnalyzeWhatIf(WhatIfInput{
				CompanyID:        args.String("company_id"),
				ScenarioName:     args.String("scenario_name"),
				DimensionChanges: args.FloatMap("dimension_changes"),
				InvestmentUSD:    args.Float("investment_usd"),
			}), nil
		},
		OpGetFundPortfolio: func(_ context.Context, args domain.Arguments) (any, error) {
			return FundPortfolio(args.String("fund_id"), args.Bool("include_companies")), nil
		},
	}
}

// NewDispatcher builds the validated registry and binds the handlers,
// failing on any mismatch between the two.
func NewDispatcher(logger *slog.Logger, collector metrics.Collector) (*domain.Dispatcher, error) {
	registry, err := domain.NewRegistry(OperationSpecs()...)
	if err != nil {
		return nil, err
	}
	return domain.NewDispatcher(registry, Handlers(), logger, collector)
}
