package application

import (
	"sort"
	"strings"
)

const (
	AllDimensions      = "all"
	maxEvidenceContent = 500
)

type EvidenceMetadata struct {
	CompanyID string `json:"company_id"`
	Dimension string `json:"dimension"`
	Source    string `json:"source"`
}

type EvidenceItem struct {
	DocID           string           `json:"doc_id"`
	Content         string           `json:"content"`
	Score           float64          `json:"score"`
	RetrievalMethod string           `json:"retrieval_method"`
	Metadata        EvidenceMetadata `json:"metadata"`
}

type EvidenceQuery struct {
	CompanyID string
	Dimension string
	Query     string
	Limit     int
}

type EvidenceResult struct {
	CompanyID     string         `json:"company_id"`
	Dimension     string         `json:"dimension"`
	Query         string         `json:"query,omitempty"`
	EvidenceCount int            `json:"evidence_count"`
	EvidenceItems []EvidenceItem `json:"evidence_items"`
}

var evidencePool = []EvidenceItem{
	{
		DocID:           "doc_1",
		Content:         "Company X has invested heavily in cloud infrastructure, with specific mention of AWS Lambda and Azure Functions for scalable AI model deployment. Their data lake utilizes Snowflake.",
		Score:           0.95,
		RetrievalMethod: "semantic",
		Metadata:        EvidenceMetadata{CompanyID: "ACME-001", Dimension: "data_infrastructure", Source: "Q3 2023 Earnings Call Transcript"},
	},
	{
		DocID:           "doc_2",
		Content:         "Recent job postings for 'AI Governance Lead' and 'Ethical AI Specialist' indicate a strong focus on responsible AI practices. They've also published an internal AI ethics guideline.",
		Score:           0.92,
		RetrievalMethod: "keyword",
		Metadata:        EvidenceMetadata{CompanyID: "ACME-001", Dimension: "ai_governance", Source: "Company Careers Page"},
	},
	{
		DocID:           "doc_3",
		Content:         "Competitor Y recently launched an AI-powered customer service bot, reducing call center volume by 30%. Their technology stack appears to be largely open-source, including TensorFlow and PyTorch.",
		Score:           0.88,
		RetrievalMethod: "semantic",
		Metadata:        EvidenceMetadata{CompanyID: "GLOBAL-INC", Dimension: "technology_stack", Source: "Industry Report 2024"},
	},
	{
		DocID:           "doc_4",
		Content:         "Internal HR data shows a 15% increase in AI/ML certifications among the engineering team over the last year. They run an internal AI academy.",
		Score:           0.91,
		RetrievalMethod: "semantic",
		Metadata:        EvidenceMetadata{CompanyID: "ACME-001", Dimension: "talent", Source: "Internal HR Report"},
	},
	{
		DocID:           "doc_5",
		Content:         "The CEO's recent keynote emphasized 'AI-first' strategy and substantial investment in R&D, forming a dedicated AI steering committee.",
		Score:           0.93,
		RetrievalMethod: "semantic",
		Metadata:        EvidenceMetadata{CompanyID: "ACME-001", Dimension: "leadership", Source: "CEO Keynote Transcript"},
	},
	{
		DocID:           "doc_6",
		Content:         "They are actively piloting AI solutions for predictive maintenance and supply chain optimization, with early success reported in cost reduction.",
		Score:           0.90,
		RetrievalMethod: "keyword",
		Metadata:        EvidenceMetadata{CompanyID: "ACME-001", Dimension: "use_case_portfolio", Source: "Pilot Project Update"},
	},
	{
		DocID:           "doc_7",
		Content:         "An internal survey indicates high employee engagement with AI initiatives and a strong willingness to adapt to new AI tools.",
		Score:           0.89,
		RetrievalMethod: "semantic",
		Metadata:        EvidenceMetadata{CompanyID: "ACME-001", Dimension: "culture", Source: "Employee Engagement Survey"},
	},
	{
		DocID:           "doc_8",
		Content:         "Engineering leadership reports that two thirds of data scientists sit in a single central team, with product squads relying on it for model delivery.",
		Score:           0.91,
		RetrievalMethod: "keyword",
		Metadata:        EvidenceMetadata{CompanyID: "ACME-001", Dimension: "talent", Source: "Org Design Review"},
	},
	{
		DocID:           "doc_9",
		Content:         "A clinical AI oversight board reviews every model before deployment and maintains a register of approved algorithms with their validation evidence.",
		Score:           0.87,
		RetrievalMethod: "semantic",
		Metadata:        EvidenceMetadata{CompanyID: "HEALTH-SYS", Dimension: "ai_governance", Source: "Board Governance Charter"},
	},
}

// EvidencePool returns a copy of the in-memory evidence pool in insertion order.
func EvidencePool() []EvidenceItem {
	return append([]EvidenceItem(nil), evidencePool...)
}

// RetrieveEvidence filters the pool by company, dimension and optional content
// query, ranks by score descending with ties kept in pool order, and caps the
// result at q.Limit.
func RetrieveEvidence(q EvidenceQuery) EvidenceResult {
	needle := strings.ToLower(strings.TrimSpace(q.Query))
	matched := make([]EvidenceItem, 0, len(evidencePool))
	for _, item := range evidencePool {
		if item.Metadata.CompanyID != q.CompanyID {
			continue
		}
		if q.Dimension != AllDimensions && item.Metadata.Dimension != q.Dimension {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(item.Content), needle) {
			continue
		}
		matched = append(matched, item)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Score > matched[j].Score
	})

	if q.Limit >= 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	for i := range matched {
		matched[i].Content = truncate(matched[i].Content, maxEvidenceContent)
	}

	return EvidenceResult{
		CompanyID:     q.CompanyID,
		Dimension:     q.Dimension,
		Query:         q.Query,
		EvidenceCount: len(matched),
		EvidenceItems: matched,
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
