package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Severity labels a fraud rule's weight class.
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// Points returns the rule-score contribution for a severity.
func (s Severity) Points() int {
	switch s {
	case SeverityHigh:
		return 30
	case SeverityMedium:
		return 15
	default:
		return 5
	}
}

// Rule is a single fraud pattern. Pattern is a lowercase literal unless
// Regex is set, in which case it is compiled case-insensitively.
type Rule struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Pattern  string   `json:"pattern"`
	Regex    bool     `json:"regex,omitempty"`
	Severity Severity `json:"severity"`
}

// Benchmark is the expected annual salary band for a job level, in
// thousands of currency units.
type Benchmark struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// Weights control the risk fusion. They must sum to 1.0.
type Weights struct {
	MLProbability float64 `json:"ml_probability"`
	RuleScore     float64 `json:"rule_score"`
	CompanyRisk   float64 `json:"company_risk"`
	SalaryAnomaly float64 `json:"salary_anomaly"`
	RecruiterRisk float64 `json:"recruiter_risk"`
}

// Thresholds hold the tier boundaries and notable-component cutoff.
// Boundaries are inclusive-lower/exclusive-upper.
type Thresholds struct {
	Moderate float64 `json:"moderate"`
	High     float64 `json:"high"`
	Critical float64 `json:"critical"`
	Notable  float64 `json:"notable"`
}

// Defaults are the neutral component scores substituted when evidence
// is absent.
type Defaults struct {
	CompanyNotFound float64 `json:"company_not_found"`
	CompanyNoName   float64 `json:"company_no_name"`
	SalaryAbsent    float64 `json:"salary_absent"`
}

// Catalog is the immutable configuration shared by every scoring
// component. Load it once at startup and pass it by reference; it is
// safe for unsynchronized concurrent reads.
type Catalog struct {
	Version    string               `json:"version"`
	Rules      []Rule               `json:"rules"`
	Benchmarks map[string]Benchmark `json:"benchmarks"`
	Weights    Weights              `json:"weights"`
	Thresholds Thresholds           `json:"thresholds"`
	Defaults   Defaults             `json:"defaults"`
}

// Load reads a catalog from a JSON file, falling back to the built-in
// defaults for any section the file omits. An empty path returns the
// defaults unchanged.
func Load(path string) (*Catalog, error) {
	cat := Default()
	if strings.TrimSpace(path) == "" {
		return cat, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	var overlay Catalog
	if err := json.Unmarshal(raw, &overlay); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	merge(cat, &overlay)
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

// Validate checks invariants the scoring components rely on.
func (c *Catalog) Validate() error {
	sum := c.Weights.MLProbability + c.Weights.RuleScore + c.Weights.CompanyRisk +
		c.Weights.SalaryAnomaly + c.Weights.RecruiterRisk
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("weights must sum to 1.0, got %.3f", sum)
	}
	if !(c.Thresholds.Moderate < c.Thresholds.High && c.Thresholds.High < c.Thresholds.Critical) {
		return fmt.Errorf("tier thresholds must be strictly increasing")
	}
	seen := make(map[string]bool, len(c.Rules))
	for i, r := range c.Rules {
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("rules[%d]: name is required", i)
		}
		if seen[r.Name] {
			return fmt.Errorf("rules[%d]: duplicate name %q", i, r.Name)
		}
		seen[r.Name] = true
		if strings.TrimSpace(r.Pattern) == "" {
			return fmt.Errorf("rules[%d] %s: pattern is required", i, r.Name)
		}
		if r.Regex {
			if _, err := regexp.Compile("(?i)" + r.Pattern); err != nil {
				return fmt.Errorf("rules[%d] %s: %w", i, r.Name, err)
			}
		}
		switch r.Severity {
		case SeverityLow, SeverityMedium, SeverityHigh:
		default:
			return fmt.Errorf("rules[%d] %s: unknown severity %q", i, r.Name, r.Severity)
		}
	}
	for level, b := range c.Benchmarks {
		if b.Low <= 0 || b.High <= b.Low {
			return fmt.Errorf("benchmark %s: invalid range %d-%d", level, b.Low, b.High)
		}
	}
	return nil
}

func merge(base, overlay *Catalog) {
	if overlay.Version != "" {
		base.Version = overlay.Version
	}
	if len(overlay.Rules) > 0 {
		base.Rules = overlay.Rules
	}
	if len(overlay.Benchmarks) > 0 {
		base.Benchmarks = overlay.Benchmarks
	}
	if overlay.Weights != (Weights{}) {
		base.Weights = overlay.Weights
	}
	if overlay.Thresholds != (Thresholds{}) {
		base.Thresholds = overlay.Thresholds
	}
	if overlay.Defaults != (Defaults{}) {
		base.Defaults = overlay.Defaults
	}
}
