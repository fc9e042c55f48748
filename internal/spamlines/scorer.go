package spamlines

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"jobshield-backend/internal/catalog"
	"jobshield-backend/internal/rules"
)

const (
	// Lines scoring at or below the floor are dropped from the report.
	scoreFloor = 10
	// Only the worst offenders are reported.
	maxReported = 10

	capsWeight     = 10
	urgencyWeight  = 8
	currencyWeight = 12
	phoneWeight    = 15
)

// Line is a single line of the input flagged for scam-indicator density.
type Line struct {
	Line     string   `json:"line"`
	Score    float64  `json:"score"`
	Patterns []string `json:"patterns"`
}

var (
	currencyRe = regexp.MustCompile(`(?i)(?:rs\.?|inr|₹|\$|usd)\s*[\d,]+|\d+\s*(?:lpa|lakh|k\b)`)
	deadlineRe = regexp.MustCompile(`(?i)(?:within|before|in)\s+\d+\s+(?:hours?|days?|minutes?)|today|tonight|right now`)
	phoneRe    = regexp.MustCompile(`(?:\+?\d[\d\s\-()]{7,}\d)`)
)

var urgencyKeywords = []string{"urgent", "immediately", "asap", "hurry", "last chance", "now or never"}

// Scorer flags individual lines with high localized scam-indicator
// density, reusing the shared fraud-rule catalog for pattern hits.
type Scorer struct {
	matcher *rules.Matcher
}

// NewScorer builds a line scorer over the shared catalog.
func NewScorer(cat *catalog.Catalog) *Scorer {
	return &Scorer{matcher: rules.NewMatcher(cat)}
}

// ScoreLines scores every non-empty line independently and returns the
// top offenders in descending score order. Ties keep original line
// order.
func (s *Scorer) ScoreLines(text string) []Line {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var flagged []Line
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		score, patterns := s.scoreLine(line)
		if score <= scoreFloor {
			continue
		}
		flagged = append(flagged, Line{Line: line, Score: score, Patterns: patterns})
	}
	sort.SliceStable(flagged, func(i, j int) bool {
		return flagged[i].Score > flagged[j].Score
	})
	if len(flagged) > maxReported {
		flagged = flagged[:maxReported]
	}
	return flagged
}

func (s *Scorer) scoreLine(line string) (float64, []string) {
	score := 0.0
	patterns := make([]string, 0, 4)

	for _, r := range s.matcher.Match(line) {
		score += float64(r.Severity.Points())
		patterns = append(patterns, r.Category+":"+strings.ToLower(r.Pattern))
	}

	lower := strings.ToLower(line)

	if capsRatio(line) > 0.5 && letterCount(line) >= 8 {
		score += capsWeight
		patterns = append(patterns, "heuristic:all_caps")
	}

	urgencyHits := 0
	for _, kw := range urgencyKeywords {
		if strings.Contains(lower, kw) {
			urgencyHits++
		}
	}
	if urgencyHits >= 2 {
		score += urgencyWeight
		patterns = append(patterns, "heuristic:urgency_density")
	}

	if currencyRe.MatchString(line) && deadlineRe.MatchString(lower) {
		score += currencyWeight
		patterns = append(patterns, "heuristic:currency_deadline")
	}

	if phoneRe.MatchString(line) && (strings.Contains(lower, "only") || strings.Contains(lower, "urgent")) {
		score += phoneWeight
		patterns = append(patterns, "heuristic:phone_pressure")
	}

	return score, patterns
}

func capsRatio(line string) float64 {
	letters, upper := 0, 0
	for _, r := range line {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(upper) / float64(letters)
}

func letterCount(line string) int {
	n := 0
	for _, r := range line {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}
