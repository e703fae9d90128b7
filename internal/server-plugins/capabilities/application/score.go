package application

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	opportunityUplift = 0.1
	synergyWeight     = 0.5
	blendDivisor      = 2.5
	intervalBase      = 5.0
	intervalSpread    = 5.0
	semDivisor        = 3.92
)

var scoreNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("orgair://scores"))

type ScoreInput struct {
	CompanyID           string
	SectorID            string
	DimensionScores     []float64
	TalentConcentration float64
}

type ScoreComponents struct {
	VRScore      float64 `json:"v_r_score"`
	HRScore      float64 `json:"h_r_score"`
	SynergyScore float64 `json:"synergy_score"`
}

type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	SEM   float64 `json:"sem"`
}

type AuditTrail struct {
	WeightedMean  float64 `json:"weighted_mean"`
	CV            float64 `json:"cv"`
	TalentRiskAdj float64 `json:"talent_risk_adj"`
}

type ScoreResult struct {
	ScoreID            string             `json:"score_id"`
	CompanyID          string             `json:"company_id"`
	SectorID           string             `json:"sector_id"`
	FinalScore         float64            `json:"final_score"`
	Components         ScoreComponents    `json:"components"`
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
	AuditTrail         AuditTrail         `json:"audit_trail"`
	ParameterVersion   string             `json:"parameter_version"`
}

// CalculateScore computes the composite Org-AI-R score.
//
// The readiness average is discounted by half the talent concentration, the
// sector baseline is uplifted by 10%, and the two are blended with their
// scaled product. The confidence band is 5 points wide at full concentration
// and 10 points at none.
func CalculateScore(in ScoreInput) ScoreResult {
	avg := mean(in.DimensionScores)
	tc := in.TalentConcentration

	vr := avg * (1 - tc/2)
	hr := Baseline(in.SectorID) * (1 + opportunityUplift)
	synergy := vr * hr / 100 * synergyWeight
	final := clamp((vr+hr+synergy)/blendDivisor, 0, 100)

	halfWidth := intervalBase + (1-tc)*intervalSpread
	lower := clamp(final-halfWidth, 0, 100)
	upper := clamp(final+halfWidth, 0, 100)

	return ScoreResult{
		ScoreID:    scoreID(in),
		CompanyID:  in.CompanyID,
		SectorID:   in.SectorID,
		FinalScore: final,
		Components: ScoreComponents{
			VRScore:      vr,
			HRScore:      hr,
			SynergyScore: synergy,
		},
		ConfidenceInterval: ConfidenceInterval{
			Lower: lower,
			Upper: upper,
			SEM:   (upper - lower) / semDivisor,
		},
		AuditTrail: AuditTrail{
			WeightedMean:  avg,
			CV:            tc * 10,
			TalentRiskAdj: tc * 15,
		},
		ParameterVersion: ParameterVersion,
	}
}

// scoreID is a name-based UUID over the canonical inputs, so identical
// requests always yield the same identifier.
func scoreID(in ScoreInput) string {
	parts := make([]string, 0, len(in.DimensionScores)+3)
	parts = append(parts, in.CompanyID, in.SectorID, formatFloat(in.TalentConcentration))
	for _, s := range in.DimensionScores {
		parts = append(parts, formatFloat(s))
	}
	return uuid.NewSHA1(scoreNamespace, []byte(strings.Join(parts, "|"))).String()
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
