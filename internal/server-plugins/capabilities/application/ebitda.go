package application

import (
	"github.com/shopspring/decimal"
)

var (
	gamma0          = decimal.RequireFromString("0.0025")
	gamma1          = decimal.RequireFromString("0.05")
	gamma2          = decimal.RequireFromString("0.025")
	gamma3          = decimal.RequireFromString("0.01")
	gammaThreshold  = decimal.NewFromInt(25)
	hundred         = decimal.NewFromInt(100)
	conservativeCut = decimal.RequireFromString("0.7")
	optimisticLift  = decimal.RequireFromString("1.3")
)

const ebitdaDisclaimer = "Projections are estimates. Actual results may vary."

type EBITDAInput struct {
	CompanyID          string
	EntryScore         float64
	TargetScore        float64
	HRScore            float64
	HoldingPeriodYears int
}

type Scenario struct {
	EBITDAImpactPct decimal.Decimal `json:"ebitda_impact_pct"`
	Description     string          `json:"description"`
}

type Scenarios struct {
	Conservative Scenario `json:"conservative"`
	Base         Scenario `json:"base"`
	Optimistic   Scenario `json:"optimistic"`
}

type EBITDAProjection struct {
	CompanyID          string          `json:"company_id"`
	EntryScore         decimal.Decimal `json:"entry_score"`
	TargetScore        decimal.Decimal `json:"target_score"`
	HRScore            decimal.Decimal `json:"h_r_score"`
	DeltaAIR           decimal.Decimal `json:"delta_air"`
	HoldingPeriodYears int             `json:"holding_period_years"`
	Scenarios          Scenarios       `json:"scenarios"`
	ParameterVersion   string          `json:"parameter_version"`
	Disclaimer         string          `json:"disclaimer"`
}

// BaseImpact is the v2.0 linear model over the score delta:
// γ0 + γ1·Δ + γ2·Δ·H/100, plus γ3 once Δ exceeds the threshold.
func BaseImpact(delta, hr decimal.Decimal) decimal.Decimal {
	impact := gamma0.
		Add(gamma1.Mul(delta)).
		Add(gamma2.Mul(delta).Mul(hr).Div(hundred))
	if delta.GreaterThan(gammaThreshold) {
		impact = impact.Add(gamma3)
	}
	return impact
}

// ProjectEBITDA returns conservative, base and optimistic projections.
// All arithmetic is carried in exact decimals.
func ProjectEBITDA(in EBITDAInput) EBITDAProjection {
	entry := decimal.NewFromFloat(in.EntryScore)
	target := decimal.NewFromFloat(in.TargetScore)
	hr := decimal.NewFromFloat(in.HRScore)
	delta := target.Sub(entry)
	base := BaseImpact(delta, hr)

	return EBITDAProjection{
		CompanyID:          in.CompanyID,
		EntryScore:         entry,
		TargetScore:        target,
		HRScore:            hr,
		DeltaAIR:           delta,
		HoldingPeriodYears: in.HoldingPeriodYears,
		Scenarios: Scenarios{
			Conservative: Scenario{
				EBITDAImpactPct: base.Mul(conservativeCut),
				Description:     "30% haircut on base case, accounting for higher risk",
			},
			Base: Scenario{
				EBITDAImpactPct: base,
				Description:     "Expected outcome based on " + ParameterVersion + " parameters",
			},
			Optimistic: Scenario{
				EBITDAImpactPct: base.Mul(optimisticLift),
				Description:     "30% uplift on base case, assuming optimal conditions",
			},
		},
		ParameterVersion: ParameterVersion,
		Disclaimer:       ebitdaDisclaimer,
	}
}
