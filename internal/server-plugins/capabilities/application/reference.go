package application

// ParameterVersion tags every payload derived from the model parameters below.
const ParameterVersion = "v2.0"

// DefaultBaseline applies to sectors absent from the table.
const DefaultBaseline = 75.0

type Sector struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	HRBaseline float64 `json:"h_r_baseline"`
}

type Company struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
}

var sectors = []Sector{
	{ID: "technology", Name: "Technology", HRBaseline: 85},
	{ID: "healthcare", Name: "Healthcare", HRBaseline: 78},
	{ID: "financial_services", Name: "Financial Services", HRBaseline: 82},
	{ID: "manufacturing", Name: "Manufacturing", HRBaseline: 72},
	{ID: "retail", Name: "Retail/Consumer", HRBaseline: 75},
	{ID: "energy", Name: "Energy/Utilities", HRBaseline: 68},
}

var companies = []Company{
	{ID: "ACME-001", Name: "ACME Corp", Sector: "technology"},
	{ID: "GLOBAL-INC", Name: "Global Innovations Inc.", Sector: "manufacturing"},
	{ID: "HEALTH-SYS", Name: "Health Systems LLC", Sector: "healthcare"},
}

// Dimensions are the seven assessment axes, in scoring order.
var Dimensions = []string{
	"data_infrastructure",
	"ai_governance",
	"technology_stack",
	"talent",
	"leadership",
	"use_case_portfolio",
	"culture",
}

func Sectors() []Sector {
	return append([]Sector(nil), sectors...)
}

func SectorIDs() []string {
	ids := make([]string, len(sectors))
	for i, s := range sectors {
		ids[i] = s.ID
	}
	return ids
}

// Baseline returns the systematic-opportunity baseline of a sector.
func Baseline(sectorID string) float64 {
	for _, s := range sectors {
		if s.ID == sectorID {
			return s.HRBaseline
		}
	}
	return DefaultBaseline
}

func Companies() []Company {
	return append([]Company(nil), companies...)
}

// FindCompany looks up a registered company by ID.
func FindCompany(id string) (Company, bool) {
	for _, c := range companies {
		if c.ID == id {
			return c, true
		}
	}
	return Company{}, false
}

type EBITDAParameters struct {
	Gamma0    float64 `json:"gamma_0"`
	Gamma1    float64 `json:"gamma_1"`
	Gamma2    float64 `json:"gamma_2"`
	Gamma3    float64 `json:"gamma_3"`
	Threshold float64 `json:"threshold"`
}

type ModelParameters struct {
	Alpha  float64          `json:"alpha"`
	Beta   float64          `json:"beta"`
	Lambda float64          `json:"lambda"`
	Delta  float64          `json:"delta"`
	EBITDA EBITDAParameters `json:"ebitda"`
}

// Parameters returns the published v2.0 model parameters.
func Parameters() ModelParameters {
	return ModelParameters{
		Alpha:  0.60,
		Beta:   0.12,
		Lambda: 0.25,
		Delta:  0.15,
		EBITDA: EBITDAParameters{
			Gamma0:    0.0025,
			Gamma1:    0.05,
			Gamma2:    0.025,
			Gamma3:    0.01,
			Threshold: 25,
		},
	}
}
