package risk

import (
	"fmt"
	"strings"
)

// explain emits one entry per component whose derived score exceeds the
// notable threshold. Severity reuses the tier banding applied to that
// single component's score, so a component reads on the same scale as
// the overall verdict.
func (a *Aggregator) explain(scores ComponentScores, in Input) []Explanation {
	notable := a.thresholds.Notable
	out := make([]Explanation, 0, 5)

	if scores.MLProbability > notable {
		out = append(out, Explanation{
			Factor:   "ML Model Detection",
			Detail:   fmt.Sprintf("model %s scored %.1f%% fraud probability (%s confidence)", in.ML.Model, in.ML.Probability, strings.ToLower(string(in.ML.Confidence))),
			Severity: a.severityFor(scores.MLProbability),
		})
	}
	if scores.RuleScore > notable {
		out = append(out, Explanation{
			Factor:   "Fraud Pattern Match",
			Detail:   fmt.Sprintf("%d known scam patterns matched (rule score %.0f)", len(in.Triggered), scores.RuleScore),
			Severity: a.severityFor(scores.RuleScore),
		})
	}
	if scores.CompanyRisk > notable {
		detail := "company could not be verified against any registry"
		if in.CompanyNameGiven && !in.Company.Found && in.Company.Message != "" {
			detail = in.Company.Message
		} else if in.Company.Found {
			detail = fmt.Sprintf("registry match confidence is low (%.0f%%)", in.Company.Confidence)
		}
		out = append(out, Explanation{
			Factor:   "Company Verification",
			Detail:   detail,
			Severity: a.severityFor(scores.CompanyRisk),
		})
	}
	if scores.SalaryAnomaly > notable {
		detail := "offered salary deviates sharply from the market benchmark"
		if in.Salary != nil && in.Salary.Message != "" {
			detail = in.Salary.Message
		}
		out = append(out, Explanation{
			Factor:   "Salary Anomaly",
			Detail:   detail,
			Severity: a.severityFor(scores.SalaryAnomaly),
		})
	}
	if scores.RecruiterRisk > notable {
		out = append(out, Explanation{
			Factor:   "Recruiter Credibility",
			Detail:   fmt.Sprintf("recruiter trust is %s (%.0f/100)", strings.ToLower(string(in.Recruiter.TrustLevel)), in.Recruiter.TrustScore),
			Severity: a.severityFor(scores.RecruiterRisk),
		})
	}
	return out
}

func (a *Aggregator) severityFor(componentScore float64) string {
	return strings.ToLower(string(a.TierFor(componentScore)))
}
