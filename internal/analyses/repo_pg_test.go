package analyses

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"jobshield-backend/internal/risk"
)

func TestPGRepoCreatePersistsVerdictColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	completedAt := time.Now().UTC()
	analysis := Analysis{
		ID:          "analysis-1",
		Status:      StatusCompleted,
		JobText:     "job text",
		CompanyName: "Acme Pvt Ltd",
		Result: &risk.Result{
			RiskScore: 81.5,
			RiskTier:  risk.TierCritical,
		},
		ReportFile:  "fraud_analysis_analysis-1.txt",
		CreatedAt:   completedAt.Add(-time.Second),
		CompletedAt: &completedAt,
	}

	mock.ExpectExec("INSERT INTO analyses").
		WithArgs(
			analysis.ID,
			analysis.Status,
			analysis.JobText,
			analysis.CompanyName,
			81.5,
			"CRITICAL",
			sqlmock.AnyArg(), // result jsonb
			analysis.ReportFile,
			nil,
			analysis.CreatedAt,
			analysis.CompletedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), analysis); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDUnmarshalsResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	payload, err := json.Marshal(risk.Result{RiskScore: 12.5, RiskTier: risk.TierLow})
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	createdAt := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "status", "input_text", "company_name", "result",
		"report_key", "error_message", "created_at", "completed_at",
	}).AddRow("analysis-2", StatusCompleted, "text", nil, string(payload), nil, nil, createdAt, nil)

	mock.ExpectQuery("SELECT id, status, input_text").
		WithArgs("analysis-2").
		WillReturnRows(rows)

	analysis, err := repo.GetByID(context.Background(), "analysis-2")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if analysis.Result == nil || analysis.Result.RiskScore != 12.5 {
		t.Fatalf("result not unmarshaled: %+v", analysis.Result)
	}
	if analysis.Result.RiskTier != risk.TierLow {
		t.Fatalf("risk tier = %v", analysis.Result.RiskTier)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT id, status, input_text").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "status", "input_text", "company_name", "result",
			"report_key", "error_message", "created_at", "completed_at",
		}))

	_, err = repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestPGRepoListAppliesLimitOffset(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	createdAt := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "status", "input_text", "company_name", "result",
		"report_key", "error_message", "created_at", "completed_at",
	}).
		AddRow("a-2", StatusCompleted, "text", nil, nil, nil, nil, createdAt, nil).
		AddRow("a-1", StatusCompleted, "text", nil, nil, nil, nil, createdAt.Add(-time.Minute), nil)

	mock.ExpectQuery("SELECT id, status, input_text").
		WithArgs(5, 0).
		WillReturnRows(rows)

	analyses, err := repo.List(context.Background(), 5, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(analyses) != 2 {
		t.Fatalf("listed %d analyses, want 2", len(analyses))
	}
	if analyses[0].ID != "a-2" {
		t.Fatalf("unexpected order: %v", analyses[0].ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
