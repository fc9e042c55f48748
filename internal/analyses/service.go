package analyses

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"jobshield-backend/internal/classifier"
	"jobshield-backend/internal/company"
	"jobshield-backend/internal/extract"
	"jobshield-backend/internal/recruiter"
	"jobshield-backend/internal/reports"
	"jobshield-backend/internal/risk"
	"jobshield-backend/internal/rules"
	"jobshield-backend/internal/salary"
	"jobshield-backend/internal/shared/metrics"
	"jobshield-backend/internal/shared/telemetry"
	"jobshield-backend/internal/spamlines"
)

// Job text shorter than this carries too little signal to score.
const minJobTextRunes = 20

// Service runs the full analysis pipeline: input shaping, component
// fan-out, risk fusion, report rendering and persistence.
type Service struct {
	Repo       Repo
	Classifier *classifier.Classifier
	Matcher    *rules.Matcher
	SpamLines  *spamlines.Scorer
	Salary     *salary.Detector
	Verifier   *company.Verifier
	Aggregator *risk.Aggregator
	Reports    *reports.Generator
}

// Analyze runs one synchronous analysis. The five local components and
// the company verification run concurrently; aggregation waits for all
// of them. Verification failures degrade, a missing classifier model
// does not.
func (s *Service) Analyze(ctx context.Context, input AnalysisInput) (Analysis, error) {
	jobText := extract.Normalize(input.JobText, input.Source)
	if utf8.RuneCountInString(jobText) < minJobTextRunes {
		return Analysis{}, ErrInputTooShort
	}
	if !s.Classifier.Loaded() {
		return Analysis{}, classifier.ErrModelUnavailable
	}

	metrics.IncAnalysisStarted()
	startedAt := time.Now().UTC()

	var (
		prediction   classifier.Prediction
		triggered    []rules.TriggeredRule
		suspectLines []spamlines.Line
		salaryResult *salary.Analysis
		trust        recruiter.Score
		verification company.Verification
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		prediction, err = s.Classifier.Predict(jobText)
		return err
	})
	g.Go(func() error {
		triggered = s.Matcher.Match(jobText)
		return nil
	})
	g.Go(func() error {
		suspectLines = s.SpamLines.ScoreLines(jobText)
		return nil
	})
	g.Go(func() error {
		salaryResult = s.Salary.Assess(offeredSalary(input, jobText), jobText)
		return nil
	})
	g.Go(func() error {
		trust = recruiter.Assess(input.RecruiterEmail, contactMethod(input))
		return nil
	})
	g.Go(func() error {
		// Short-circuits without I/O when no name was supplied, still
		// yielding the explanatory not-verified message.
		verification = s.Verifier.Verify(gctx, input.CompanyName)
		return nil
	})
	if err := g.Wait(); err != nil {
		metrics.IncAnalysisFailed()
		return Analysis{}, err
	}

	if input.CompanyName != "" && input.RecruiterEmail != "" {
		match := company.VerifyEmailDomain(input.RecruiterEmail, input.CompanyName)
		verification.EmailMatch = &match
	}
	if info, ok := company.FindCIN(jobText); ok {
		verification.Indicators = append(verification.Indicators, info.Summary())
	}

	result := s.Aggregator.Aggregate(risk.Input{
		ML:               prediction,
		Triggered:        triggered,
		Company:          verification,
		CompanyNameGiven: input.CompanyName != "",
		Salary:           salaryResult,
		Recruiter:        trust,
		SpamLines:        suspectLines,
	})

	analysis := Analysis{
		ID:          uuid.NewString(),
		Status:      StatusCompleted,
		JobText:     jobText,
		CompanyName: input.CompanyName,
		Result:      &result,
		CreatedAt:   startedAt,
	}

	if s.Reports != nil {
		filename, err := s.Reports.Generate(ctx, analysis.ID, result, jobText)
		if err != nil {
			telemetry.Error("report.generate", map[string]any{
				"analysis_id": analysis.ID,
				"error":       err.Error(),
			})
		} else {
			analysis.ReportFile = filename
		}
	}

	completedAt := time.Now().UTC()
	analysis.CompletedAt = &completedAt
	if err := s.Repo.Create(ctx, analysis); err != nil {
		metrics.IncAnalysisFailed()
		return Analysis{}, fmt.Errorf("persist analysis: %w", err)
	}

	metrics.IncAnalysisCompleted(string(result.RiskTier))
	metrics.ObserveAnalysisDurationMs(float64(completedAt.Sub(startedAt).Microseconds()) / 1000.0)
	telemetry.Info("analysis.completed", map[string]any{
		"analysis_id": analysis.ID,
		"risk_score":  result.RiskScore,
		"risk_tier":   string(result.RiskTier),
		"duration_ms": completedAt.Sub(startedAt).Milliseconds(),
	})

	return analysis, nil
}

// Get returns an analysis by ID.
func (s *Service) Get(ctx context.Context, analysisID string) (Analysis, error) {
	if analysisID == "" {
		return Analysis{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, analysisID)
}

// List returns analyses newest-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	return s.Repo.List(ctx, limit, offset)
}

// offeredSalary prefers the explicitly supplied figure and falls back
// to extracting one from the posting text.
func offeredSalary(input AnalysisInput, jobText string) float64 {
	if input.OfferedSalary > 0 {
		return input.OfferedSalary
	}
	return salary.ExtractSalary(jobText)
}

// contactMethod infers "linkedin" when only a profile URL was supplied.
func contactMethod(input AnalysisInput) string {
	if input.ContactMethod == "" && input.LinkedInURL != "" {
		return recruiter.MethodLinkedIn
	}
	return input.ContactMethod
}
