package application

import "fmt"

type PortfolioMetrics struct {
	AvgOrgAIR         float64 `json:"avg_org_air"`
	MinOrgAIR         float64 `json:"min_org_air"`
	MaxOrgAIR         float64 `json:"max_org_air"`
	ConcentrationRisk string  `json:"concentration_risk"`
}

type Portfolio struct {
	FundID       string           `json:"fund_id"`
	FundAIRScore float64          `json:"fund_air_score"`
	CompanyCount int              `json:"company_count"`
	Metrics      PortfolioMetrics `json:"metrics"`
	Companies    []string         `json:"companies,omitempty"`
}

// FundPortfolio echoes fundID into fixed aggregate metrics.
func FundPortfolio(fundID string, includeCompanies bool) Portfolio {
	p := Portfolio{
		FundID:       fundID,
		FundAIRScore: 68.5,
		CompanyCount: 12,
		Metrics: PortfolioMetrics{
			AvgOrgAIR:         67.3,
			MinOrgAIR:         45.2,
			MaxOrgAIR:         82.1,
			ConcentrationRisk: "medium",
		},
	}
	if includeCompanies {
		p.Companies = FundCompanies(fundID)
	}
	return p
}

// FundCompanies lists the mock holdings of a fund.
func FundCompanies(fundID string) []string {
	return []string{
		fmt.Sprintf("CompanyA-from-%s", fundID),
		fmt.Sprintf("CompanyB-from-%s", fundID),
		fmt.Sprintf("CompanyC-from-%s", fundID),
	}
}
