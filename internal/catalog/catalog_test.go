package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default catalog invalid: %v", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cat, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cat.Rules) == 0 {
		t.Fatal("expected built-in rules")
	}
	if cat.Weights.MLProbability != 0.35 {
		t.Fatalf("ml weight = %v, want 0.35", cat.Weights.MLProbability)
	}
}

func TestLoadOverlayReplacesSections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	overlay := `{
		"version": "custom-1",
		"rules": [
			{"name": "only_rule", "category": "payment_request", "pattern": "send money", "severity": "HIGH"}
		]
	}`
	if err := os.WriteFile(path, []byte(overlay), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cat.Version != "custom-1" {
		t.Fatalf("version = %q", cat.Version)
	}
	if len(cat.Rules) != 1 || cat.Rules[0].Name != "only_rule" {
		t.Fatalf("rules not replaced: %+v", cat.Rules)
	}
	// Untouched sections keep their defaults.
	if cat.Weights.RuleScore != 0.25 {
		t.Fatalf("rule weight = %v, want default 0.25", cat.Weights.RuleScore)
	}
	if _, ok := cat.Benchmarks["senior"]; !ok {
		t.Fatal("default benchmarks lost")
	}
}

func TestLoadRejectsBadWeights(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	overlay := `{"weights": {"ml_probability": 0.9, "rule_score": 0.9, "company_risk": 0.1, "salary_anomaly": 0.1, "recruiter_risk": 0.1}}`
	if err := os.WriteFile(path, []byte(overlay), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "weights must sum to 1.0") {
		t.Fatalf("want weights error, got %v", err)
	}
}

func TestValidateRejectsBadRegex(t *testing.T) {
	cat := Default()
	cat.Rules = append(cat.Rules, Rule{
		Name:     "broken",
		Category: "urgency",
		Pattern:  "(unclosed",
		Regex:    true,
		Severity: SeverityLow,
	})
	if err := cat.Validate(); err == nil {
		t.Fatal("expected regex compile error")
	}
}

func TestSeverityPoints(t *testing.T) {
	cases := []struct {
		severity Severity
		want     int
	}{
		{SeverityHigh, 30},
		{SeverityMedium, 15},
		{SeverityLow, 5},
	}
	for _, tc := range cases {
		if got := tc.severity.Points(); got != tc.want {
			t.Errorf("%s.Points() = %d, want %d", tc.severity, got, tc.want)
		}
	}
}
