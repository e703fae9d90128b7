package application

import (
	"fmt"

	capabilities "github.com/orgair/orgair-mcp/internal/server-plugins/capabilities/application"
	"github.com/orgair/orgair-mcp/internal/server-plugins/catalog/domain"
)

const (
	URICompanies  = "orgair://companies"
	URISectors    = "orgair://sectors"
	URIParameters = "orgair://parameters/" + capabilities.ParameterVersion
)

// mockCompanyScore is the published score for companies without a live assessment.
const mockCompanyScore = 72.5

type CompanyScore struct {
	CompanyID        string  `json:"company_id"`
	OrgAIRScore      float64 `json:"org_air_score"`
	Sector           string  `json:"sector,omitempty"`
	ParameterVersion string  `json:"parameter_version"`
}

type CompanyDetails struct {
	CompanyID  string `json:"company_id"`
	Name       string `json:"name"`
	Sector     string `json:"sector"`
	Registered bool   `json:"registered"`
}

type CompanyEvidence struct {
	CompanyID      string   `json:"company_id"`
	EvidenceCount  int      `json:"evidence_count"`
	SampleEvidence []string `json:"sample_evidence"`
}

type FundDetails struct {
	FundID       string  `json:"fund_id"`
	FundName     string  `json:"fund_name"`
	FundAIRScore float64 `json:"fund_air_score"`
	CompanyCount int     `json:"company_count"`
}

type FundHoldings struct {
	FundID    string   `json:"fund_id"`
	Companies []string `json:"companies"`
}

type MetricPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type MetricHistory struct {
	Metric  string        `json:"metric"`
	History []MetricPoint `json:"history"`
}

type staticDef struct {
	uri, name, description string
	build                  domain.Payload
}

type templateDef struct {
	pattern, name, description string
	build                      domain.Payload
}

func staticResources() []staticDef {
	return []staticDef{
		{
			uri:         URICompanies,
			name:        "Companies",
			description: "List of all registered companies with basic details.",
			build: func(map[string]string) (any, error) {
				return map[string]any{"companies": capabilities.Companies()}, nil
			},
		},
		{
			uri:         URISectors,
			name:        "Sectors",
			description: "Definitions and H^R baselines for each industry sector.",
			build: func(map[string]string) (any, error) {
				return map[string]any{"sectors": capabilities.Sectors()}, nil
			},
		},
		{
			uri:         URIParameters,
			name:        "Model Parameters " + capabilities.ParameterVersion,
			description: "Scoring and EBITDA projection parameters used by the operations.",
			build: func(map[string]string) (any, error) {
				return map[string]any{
					"version":    capabilities.ParameterVersion,
					"parameters": capabilities.Parameters(),
				}, nil
			},
		},
	}
}

// templates are disjoint by literal prefix and suffix; order only matters as
// a deterministic tie-break.
func templates() []templateDef {
	return []templateDef{
		{
			pattern:     "orgair://company/{company_id}/score",
			name:        "Company Score",
			description: "Current Org-AI-R score for a company.",
			build: func(p map[string]string) (any, error) {
				score := CompanyScore{
					CompanyID:        p["company_id"],
					OrgAIRScore:      mockCompanyScore,
					ParameterVersion: capabilities.ParameterVersion,
				}
				if c, ok := capabilities.FindCompany(p["company_id"]); ok {
					score.Sector = c.Sector
				}
				return score, nil
			},
		},
		{
			pattern:     "orgair://fund/{fund_id}/companies",
			name:        "Fund Companies",
			description: "List of companies associated with a particular investment fund.",
			build: func(p map[string]string) (any, error) {
				return FundHoldings{FundID: p["fund_id"], Companies: capabilities.FundCompanies(p["fund_id"])}, nil
			},
		},
		{
			pattern:     "orgair://metric/{metric_name}/history",
			name:        "Metric History",
			description: "Historical data series for a given financial or operational metric.",
			build: func(p map[string]string) (any, error) {
				return MetricHistory{
					Metric: p["metric_name"],
					History: []MetricPoint{
						{Date: "2023-01-01", Value: 100},
						{Date: "2023-04-01", Value: 105},
					},
				}, nil
			},
		},
		{
			pattern:     "orgair://company/{company_id}",
			name:        "Company Details",
			description: "Profile of a single company.",
			build: func(p map[string]string) (any, error) {
				id := p["company_id"]
				if c, ok := capabilities.FindCompany(id); ok {
					return CompanyDetails{CompanyID: id, Name: c.Name, Sector: c.Sector, Registered: true}, nil
				}
				return CompanyDetails{CompanyID: id, Name: fmt.Sprintf("Company %s (Details Mock)", id), Sector: "technology"}, nil
			},
		},
		{
			pattern:     "orgair://company/{company_id}/evidence",
			name:        "Company Evidence Summary",
			description: "Evidence count and the highest-ranked evidence documents for a company.",
			build: func(p map[string]string) (any, error) {
				result := capabilities.RetrieveEvidence(capabilities.EvidenceQuery{
					CompanyID: p["company_id"],
					Dimension: capabilities.AllDimensions,
					Limit:     len(capabilities.EvidencePool()),
				})
				sample := []string{}
				for i, item := range result.EvidenceItems {
					if i == 2 {
						break
					}
					sample = append(sample, item.DocID)
				}
				return CompanyEvidence{CompanyID: p["company_id"], EvidenceCount: result.EvidenceCount, SampleEvidence: sample}, nil
			},
		},
		{
			pattern:     "orgair://fund/{fund_id}",
			name:        "Fund Details",
			description: "Summary of an investment fund.",
			build: func(p map[string]string) (any, error) {
				portfolio := capabilities.FundPortfolio(p["fund_id"], false)
				return FundDetails{
					FundID:       portfolio.FundID,
					FundName:     "Capital Partners " + portfolio.FundID,
					FundAIRScore: portfolio.FundAIRScore,
					CompanyCount: portfolio.CompanyCount,
				}, nil
			},
		},
	}
}

// NewCatalog registers the static resources and templates in order.
func NewCatalog() (*domain.Catalog, error) {
	catalog := domain.NewCatalog()
	for _, def := range staticResources() {
		entry, err := domain.NewResourceEntry(def.uri, def.name, def.description, def.build)
		if err != nil {
			return nil, err
		}
		if err := catalog.AddResource(entry); err != nil {
			return nil, err
		}
	}
	for _, def := range templates() {
		tmpl, err := domain.NewResourceTemplate(def.pattern, def.name, def.description, def.build)
		if err != nil {
			return nil, err
		}
		if err := catalog.AddTemplate(tmpl); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}
