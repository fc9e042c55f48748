package analyses

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"jobshield-backend/internal/catalog"
	"jobshield-backend/internal/classifier"
	"jobshield-backend/internal/company"
	"jobshield-backend/internal/reports"
	"jobshield-backend/internal/risk"
	"jobshield-backend/internal/rules"
	"jobshield-backend/internal/salary"
	localstore "jobshield-backend/internal/shared/storage/object/local"
	"jobshield-backend/internal/spamlines"
)

func newTestService(t *testing.T) (*Service, *MemoryRepo) {
	t.Helper()
	cat := catalog.Default()
	repo := NewMemoryRepo()
	svc := &Service{
		Repo: repo,
		Classifier: classifier.FromArtifact("test-model", -1.0, map[string]float64{
			"fee":          2.0,
			"registration": 1.5,
			"whatsapp":     1.0,
		}),
		Matcher:    rules.NewMatcher(cat),
		SpamLines:  spamlines.NewScorer(cat),
		Salary:     salary.NewDetector(cat),
		Verifier:   company.NewVerifier(time.Second, &company.MCARegistry{}),
		Aggregator: risk.NewAggregator(cat),
		Reports:    reports.NewGenerator(localstore.New(t.TempDir())),
	}
	return svc, repo
}

func TestAnalyzeRejectsShortInput(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Analyze(context.Background(), AnalysisInput{JobText: "too short"})
	if !errors.Is(err, ErrInputTooShort) {
		t.Fatalf("want ErrInputTooShort, got %v", err)
	}
}

func TestAnalyzeRejectsMissingModel(t *testing.T) {
	svc, _ := newTestService(t)
	svc.Classifier = &classifier.Classifier{}
	_, err := svc.Analyze(context.Background(), AnalysisInput{
		JobText: "A perfectly ordinary job posting with enough text to analyze.",
	})
	if !errors.Is(err, classifier.ErrModelUnavailable) {
		t.Fatalf("want ErrModelUnavailable, got %v", err)
	}
}

func TestAnalyzeCompletesAndPersists(t *testing.T) {
	svc, repo := newTestService(t)

	analysis, err := svc.Analyze(context.Background(), AnalysisInput{
		JobText:        "Pay Rs 5000 registration fee within 24 hours. Contact on WhatsApp only.",
		RecruiterEmail: "scammer@gmail.com",
		ContactMethod:  "whatsapp",
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if analysis.Status != StatusCompleted {
		t.Fatalf("status = %q, want %q", analysis.Status, StatusCompleted)
	}
	if analysis.Result == nil {
		t.Fatal("result is nil")
	}
	if analysis.Result.RiskScore <= 0 {
		t.Fatalf("risk score = %v, want > 0", analysis.Result.RiskScore)
	}
	if len(analysis.Result.TriggeredRules) == 0 {
		t.Fatal("expected triggered rules for scam text")
	}
	if analysis.ReportFile == "" {
		t.Fatal("expected report filename")
	}
	if !strings.HasPrefix(analysis.ReportFile, "fraud_analysis_") {
		t.Fatalf("unexpected report filename: %q", analysis.ReportFile)
	}

	stored, err := repo.GetByID(context.Background(), analysis.ID)
	if err != nil {
		t.Fatalf("stored analysis lookup: %v", err)
	}
	if stored.Result == nil || stored.Result.RiskScore != analysis.Result.RiskScore {
		t.Fatal("stored result does not match returned result")
	}
}

func TestAnalyzeWithoutCompanyNameUsesNeutralDefault(t *testing.T) {
	svc, _ := newTestService(t)

	analysis, err := svc.Analyze(context.Background(), AnalysisInput{
		JobText: "We are hiring a software engineer for our Bangalore office team.",
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if got := analysis.Result.ComponentScores.CompanyRisk; got != 40 {
		t.Fatalf("company risk = %v, want neutral default 40", got)
	}
	if analysis.Result.Company.Found {
		t.Fatal("company should not be found without a name")
	}
	if analysis.Result.Company.Confidence != 0 {
		t.Fatalf("company confidence = %v, want 0", analysis.Result.Company.Confidence)
	}
	if analysis.Result.Company.Message != "no company name provided" {
		t.Fatalf("company message = %q, want explanatory no-name message", analysis.Result.Company.Message)
	}
}

func TestAnalyzeCrossChecksRecruiterEmailDomain(t *testing.T) {
	svc, _ := newTestService(t)

	analysis, err := svc.Analyze(context.Background(), AnalysisInput{
		JobText:        "We are hiring a software engineer for our Bangalore office team.",
		CompanyName:    "Acme",
		RecruiterEmail: "hr@acme.com",
		ContactMethod:  "email",
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	match := analysis.Result.Company.EmailMatch
	if match == nil {
		t.Fatal("expected email_match on company verification")
	}
	if !match.Match || match.Confidence != 80 {
		t.Fatalf("email match = %+v, want match at confidence 80", match)
	}

	generic, err := svc.Analyze(context.Background(), AnalysisInput{
		JobText:        "We are hiring a software engineer for our Bangalore office team.",
		CompanyName:    "Acme",
		RecruiterEmail: "hr@gmail.com",
		ContactMethod:  "email",
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	match = generic.Result.Company.EmailMatch
	if match == nil || match.Match || match.Confidence != 20 {
		t.Fatalf("email match = %+v, want generic-provider mismatch at confidence 20", match)
	}
}

func TestAnalyzeDecodesCINFromPosting(t *testing.T) {
	svc, _ := newTestService(t)

	analysis, err := svc.Analyze(context.Background(), AnalysisInput{
		JobText: "Join our registered company, CIN L72200KA2001PLC028925, as a developer.",
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	indicators := analysis.Result.Company.Indicators
	found := false
	for _, ind := range indicators {
		if strings.Contains(ind, "L72200KA2001PLC028925") && strings.Contains(ind, "Listed") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected decoded CIN indicator, got %v", indicators)
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	svc, _ := newTestService(t)
	input := AnalysisInput{
		JobText:        "Earn 50000 weekly working from home. No interview required, instant joining!",
		RecruiterEmail: "hr@quickjobs.example.com",
		ContactMethod:  "email",
	}

	first, err := svc.Analyze(context.Background(), input)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	second, err := svc.Analyze(context.Background(), input)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if first.Result.RiskScore != second.Result.RiskScore {
		t.Fatalf("risk score not deterministic: %v vs %v", first.Result.RiskScore, second.Result.RiskScore)
	}
	if first.Result.RiskTier != second.Result.RiskTier {
		t.Fatalf("risk tier not deterministic: %v vs %v", first.Result.RiskTier, second.Result.RiskTier)
	}
}

func TestListNewestFirst(t *testing.T) {
	svc, _ := newTestService(t)

	for _, text := range []string{
		"First job posting with more than twenty characters of text.",
		"Second job posting with more than twenty characters of text.",
	} {
		if _, err := svc.Analyze(context.Background(), AnalysisInput{JobText: text}); err != nil {
			t.Fatalf("analyze: %v", err)
		}
	}

	listed, err := svc.List(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("listed %d analyses, want 2", len(listed))
	}
	if listed[0].CreatedAt.Before(listed[1].CreatedAt) {
		t.Fatal("analyses not ordered newest first")
	}
}
