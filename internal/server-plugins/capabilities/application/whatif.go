package application

import (
	"sort"
)

const (
	whatIfScoreFactor    = 0.6
	assumedReturnRate    = 0.18
	whatIfConfidence     = "medium"
	whatIfRecommendation = "Further analysis recommended to validate projected impact and associated risks."
)

type WhatIfInput struct {
	CompanyID        string
	ScenarioName     string
	DimensionChanges map[string]float64
	InvestmentUSD    float64
}

type WhatIfResult struct {
	CompanyID          string             `json:"company_id"`
	ScenarioName       string             `json:"scenario_name"`
	DimensionChanges   map[string]float64 `json:"dimension_changes"`
	OrgAIRChange       float64            `json:"org_air_change"`
	ProjectedImpactUSD float64            `json:"projected_impact_usd"`
	Confidence         string             `json:"confidence"`
	Recommendation     string             `json:"recommendation"`
}

// AnalyzeWhatIf scales the mean dimension delta into a score change and the
// investment into a projected dollar impact.
func AnalyzeWhatIf(in WhatIfInput) WhatIfResult {
	keys := make([]string, 0, len(in.DimensionChanges))
	for k := range in.DimensionChanges {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	changes := make(map[string]float64, len(keys))
	var change float64
	if len(keys) > 0 {
		var sum float64
		for _, k := range keys {
			sum += in.DimensionChanges[k]
			changes[k] = in.DimensionChanges[k]
		}
		change = sum * whatIfScoreFactor / float64(len(keys))
	}

	return WhatIfResult{
		CompanyID:          in.CompanyID,
		ScenarioName:       in.ScenarioName,
		DimensionChanges:   changes,
		OrgAIRChange:       change,
		ProjectedImpactUSD: in.InvestmentUSD * assumedReturnRate,
		Confidence:         whatIfConfidence,
		Recommendation:     whatIfRecommendation,
	}
}
