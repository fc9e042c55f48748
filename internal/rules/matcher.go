package rules

import (
	"regexp"
	"strings"

	"jobshield-backend/internal/catalog"
)

// TriggeredRule is a fired fraud pattern. Pattern carries the matched
// substring in its original casing.
type TriggeredRule struct {
	Category string           `json:"category"`
	Pattern  string           `json:"pattern"`
	Severity catalog.Severity `json:"severity"`
}

type compiledRule struct {
	rule catalog.Rule
	re   *regexp.Regexp // nil for literal rules
}

// Matcher scans text against the catalog's fraud rules. Construct once
// and share; it is read-only after NewMatcher.
type Matcher struct {
	rules []compiledRule
}

// NewMatcher precompiles the catalog rules. Rules that fail to compile
// are skipped; Catalog.Validate catches them at load time.
func NewMatcher(cat *catalog.Catalog) *Matcher {
	compiled := make([]compiledRule, 0, len(cat.Rules))
	for _, r := range cat.Rules {
		cr := compiledRule{rule: r}
		if r.Regex {
			re, err := regexp.Compile("(?i)" + r.Pattern)
			if err != nil {
				continue
			}
			cr.re = re
		}
		compiled = append(compiled, cr)
	}
	return &Matcher{rules: compiled}
}

// Match returns one TriggeredRule per catalog rule found in text.
// A rule fires at most once regardless of repeat occurrences; rules of
// different categories all fire independently. Empty text yields an
// empty result.
func (m *Matcher) Match(text string) []TriggeredRule {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	folded := strings.ToLower(text)
	// Case folding can change byte offsets for non-ASCII input; fall back
	// to the folded text for slicing when lengths diverge.
	source := text
	if len(folded) != len(text) {
		source = folded
	}
	out := make([]TriggeredRule, 0, 4)
	for _, cr := range m.rules {
		var start, end int
		if cr.re != nil {
			loc := cr.re.FindStringIndex(source)
			if loc == nil {
				continue
			}
			start, end = loc[0], loc[1]
		} else {
			idx := strings.Index(folded, cr.rule.Pattern)
			if idx < 0 {
				continue
			}
			start, end = idx, idx+len(cr.rule.Pattern)
		}
		out = append(out, TriggeredRule{
			Category: cr.rule.Category,
			Pattern:  source[start:end],
			Severity: cr.rule.Severity,
		})
	}
	return out
}

// Score sums the severity points of triggered rules, saturating at 100.
func Score(triggered []TriggeredRule) float64 {
	total := 0
	for _, r := range triggered {
		total += r.Severity.Points()
	}
	if total > 100 {
		total = 100
	}
	return float64(total)
}

// TopCategory returns the category of the highest-severity triggered
// rule, or "" when none fired. Ties keep the earliest rule.
func TopCategory(triggered []TriggeredRule) string {
	best := ""
	bestPoints := 0
	for _, r := range triggered {
		if p := r.Severity.Points(); p > bestPoints {
			bestPoints = p
			best = r.Category
		}
	}
	return best
}
