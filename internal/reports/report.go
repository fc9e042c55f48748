package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobshield-backend/internal/risk"
	"jobshield-backend/internal/shared/storage/object"
)

const maxJobTextExcerpt = 2000

// Generator renders forensic reports and persists them through the
// object store under the reports/ prefix.
type Generator struct {
	Store object.ObjectStore
	Now   func() time.Time
}

// NewGenerator constructs a Generator. Now is overridable for tests.
func NewGenerator(store object.ObjectStore) *Generator {
	return &Generator{Store: store, Now: time.Now}
}

// Generate renders the forensic report for a completed analysis and
// saves it. It returns the opaque filename handle clients use to
// download the report.
func (g *Generator) Generate(ctx context.Context, analysisID string, result risk.Result, jobText string) (string, error) {
	filename := fmt.Sprintf("fraud_analysis_%s.txt", analysisID)
	body := g.render(analysisID, result, jobText)

	key := StorageKey(filename)
	if _, err := g.Store.Save(ctx, key, "text/plain; charset=utf-8", strings.NewReader(body)); err != nil {
		return "", fmt.Errorf("save report %s: %w", key, err)
	}
	return filename, nil
}

// StorageKey maps a report filename handle to its object store key.
func StorageKey(filename string) string {
	return "reports/" + filename
}

func (g *Generator) render(analysisID string, result risk.Result, jobText string) string {
	now := g.Now
	if now == nil {
		now = time.Now
	}

	var b strings.Builder
	writeHeading(&b, "JobShield - Fraud Analysis Report")
	fmt.Fprintf(&b, "Report Generated: %s\n", now().UTC().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Analysis ID:      %s\n\n", analysisID)

	writeHeading(&b, "Risk Assessment Summary")
	fmt.Fprintf(&b, "Risk Score: %.1f%% - %s\n\n", result.RiskScore, result.RiskTier)

	writeHeading(&b, "Recommendation")
	b.WriteString(result.Recommendation)
	b.WriteString("\n\n")

	writeHeading(&b, "Risk Component Breakdown")
	fmt.Fprintf(&b, "ML Probability:  %.1f%%\n", result.ComponentScores.MLProbability)
	fmt.Fprintf(&b, "Rule Score:      %.1f%%\n", result.ComponentScores.RuleScore)
	fmt.Fprintf(&b, "Company Risk:    %.1f%%\n", result.ComponentScores.CompanyRisk)
	fmt.Fprintf(&b, "Salary Anomaly:  %.1f%%\n", result.ComponentScores.SalaryAnomaly)
	fmt.Fprintf(&b, "Recruiter Risk:  %.1f%%\n\n", result.ComponentScores.RecruiterRisk)

	if len(result.Explanations) > 0 {
		writeHeading(&b, "Evidence & Risk Factors")
		for _, exp := range result.Explanations {
			fmt.Fprintf(&b, "* %s (%s): %s\n", exp.Factor, exp.Severity, exp.Detail)
		}
		b.WriteString("\n")
	}

	if len(result.TriggeredRules) > 0 {
		writeHeading(&b, "Fraud Pattern Matches")
		for _, rule := range result.TriggeredRules {
			fmt.Fprintf(&b, "* %s: %q (severity: %s)\n", titleCategory(rule.Category), rule.Pattern, rule.Severity)
		}
		b.WriteString("\n")
	}

	writeHeading(&b, "Original Job Posting Content")
	b.WriteString(excerpt(jobText, maxJobTextExcerpt))
	b.WriteString("\n")

	return b.String()
}

func writeHeading(b *strings.Builder, title string) {
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", len(title)))
	b.WriteString("\n")
}

func titleCategory(category string) string {
	words := strings.Split(strings.ReplaceAll(category, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func excerpt(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
