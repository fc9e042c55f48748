package risk

import (
	"math"
	"strings"

	"jobshield-backend/internal/catalog"
	"jobshield-backend/internal/classifier"
	"jobshield-backend/internal/company"
	"jobshield-backend/internal/recruiter"
	"jobshield-backend/internal/rules"
	"jobshield-backend/internal/salary"
	"jobshield-backend/internal/spamlines"
)

// Tier discretizes a risk score.
type Tier string

const (
	TierLow      Tier = "LOW"
	TierModerate Tier = "MODERATE"
	TierHigh     Tier = "HIGH"
	TierCritical Tier = "CRITICAL"
)

// ComponentScores are the five 0-100 sub-scores fused into the risk
// score. Missing evidence is already mapped to a neutral default, so
// every field is always populated.
type ComponentScores struct {
	MLProbability float64 `json:"ml_probability"`
	RuleScore     float64 `json:"rule_score"`
	CompanyRisk   float64 `json:"company_risk"`
	SalaryAnomaly float64 `json:"salary_anomaly"`
	RecruiterRisk float64 `json:"recruiter_risk"`
}

// Explanation is one itemized piece of evidence behind the verdict.
type Explanation struct {
	Factor   string `json:"factor"`
	Detail   string `json:"detail"`
	Severity string `json:"severity"`
}

// Result is the fused, immutable verdict for one analysis.
type Result struct {
	RiskScore       float64               `json:"risk_score"`
	RiskTier        Tier                  `json:"risk_tier"`
	Recommendation  string                `json:"recommendation"`
	ComponentScores ComponentScores       `json:"component_scores"`
	MLResult        classifier.Prediction `json:"ml_result"`
	TriggeredRules  []rules.TriggeredRule `json:"triggered_rules"`
	Explanations    []Explanation         `json:"explanations"`
	Company         company.Verification  `json:"company_verification"`
	Salary          *salary.Analysis      `json:"salary_analysis,omitempty"`
	Recruiter       recruiter.Score       `json:"recruiter_score"`
	SpamLines       []spamlines.Line      `json:"spam_lines"`
}

// Input carries the independently computed component outputs into the
// aggregation barrier. CompanyNameGiven distinguishes "no name supplied"
// from "name supplied but not found".
type Input struct {
	ML               classifier.Prediction
	Triggered        []rules.TriggeredRule
	Company          company.Verification
	CompanyNameGiven bool
	Salary           *salary.Analysis
	Recruiter        recruiter.Score
	SpamLines        []spamlines.Line
}

// Aggregator fuses component outputs into one auditable verdict. It is
// a pure function of its input and configuration: identical inputs
// always produce identical results.
type Aggregator struct {
	weights    catalog.Weights
	thresholds catalog.Thresholds
	defaults   catalog.Defaults
}

// NewAggregator builds an aggregator over the catalog's fusion
// configuration.
func NewAggregator(cat *catalog.Catalog) *Aggregator {
	return &Aggregator{
		weights:    cat.Weights,
		thresholds: cat.Thresholds,
		defaults:   cat.Defaults,
	}
}

// Aggregate derives the component scores, fuses them with the
// configured weights, assigns a tier, and builds the explanation list.
func (a *Aggregator) Aggregate(in Input) Result {
	scores := a.deriveScores(in)
	riskScore := a.fuse(scores)
	tier := a.TierFor(riskScore)

	result := Result{
		RiskScore:       riskScore,
		RiskTier:        tier,
		Recommendation:  a.recommend(tier, in.Triggered),
		ComponentScores: scores,
		MLResult:        in.ML,
		TriggeredRules:  in.Triggered,
		Explanations:    a.explain(scores, in),
		Company:         in.Company,
		Salary:          in.Salary,
		Recruiter:       in.Recruiter,
		SpamLines:       in.SpamLines,
	}
	if result.TriggeredRules == nil {
		result.TriggeredRules = []rules.TriggeredRule{}
	}
	if result.SpamLines == nil {
		result.SpamLines = []spamlines.Line{}
	}
	return result
}

func (a *Aggregator) deriveScores(in Input) ComponentScores {
	companyRisk := a.defaults.CompanyNoName
	if in.CompanyNameGiven {
		if in.Company.Found {
			companyRisk = clamp(100 - in.Company.Confidence)
		} else {
			companyRisk = a.defaults.CompanyNotFound
		}
	}

	salaryAnomaly := a.defaults.SalaryAbsent
	if in.Salary != nil {
		salaryAnomaly = clamp(in.Salary.AnomalyScore)
	}

	return ComponentScores{
		MLProbability: clamp(in.ML.Probability),
		RuleScore:     clamp(rules.Score(in.Triggered)),
		CompanyRisk:   companyRisk,
		SalaryAnomaly: salaryAnomaly,
		RecruiterRisk: clamp(100 - in.Recruiter.TrustScore),
	}
}

func (a *Aggregator) fuse(s ComponentScores) float64 {
	weighted := s.MLProbability*a.weights.MLProbability +
		s.RuleScore*a.weights.RuleScore +
		s.CompanyRisk*a.weights.CompanyRisk +
		s.SalaryAnomaly*a.weights.SalaryAnomaly +
		s.RecruiterRisk*a.weights.RecruiterRisk
	return round1(clamp(weighted))
}

// TierFor maps a 0-100 score onto its tier band. Boundaries are
// inclusive-lower/exclusive-upper.
func (a *Aggregator) TierFor(score float64) Tier {
	switch {
	case score < a.thresholds.Moderate:
		return TierLow
	case score < a.thresholds.High:
		return TierModerate
	case score < a.thresholds.Critical:
		return TierHigh
	default:
		return TierCritical
	}
}

var recommendations = map[Tier]string{
	TierLow:      "SAFE TO PROCEED - Standard verification recommended.",
	TierModerate: "PROCEED WITH CAUTION - Verify company and recruiter independently.",
	TierHigh:     "AVOID - Strong indicators of fraud. Do not proceed.",
	TierCritical: "IGNORE - Report immediately to authorities. Do not engage.",
}

func (a *Aggregator) recommend(tier Tier, triggered []rules.TriggeredRule) string {
	text := recommendations[tier]
	if category := rules.TopCategory(triggered); category != "" && tier != TierLow {
		text += " Primary concern: " + strings.ReplaceAll(category, "_", " ") + "."
	}
	return text
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
