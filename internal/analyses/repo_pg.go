package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"jobshield-backend/internal/risk"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (
	id, status, input_text, company_name, risk_score, risk_tier, result,
	report_key, error_message, created_at, completed_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	var riskScore any
	var riskTier any
	resultPayload, err := marshalResult(analysis.Result)
	if err != nil {
		return err
	}
	if analysis.Result != nil {
		riskScore = analysis.Result.RiskScore
		riskTier = string(analysis.Result.RiskTier)
	}

	_, err = r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.Status,
		analysis.JobText,
		nullString(analysis.CompanyName),
		riskScore,
		riskTier,
		resultPayload,
		nullString(analysis.ReportFile),
		analysis.ErrorMessage,
		analysis.CreatedAt,
		analysis.CompletedAt,
	)
	return err
}

// GetByID returns an analysis by ID.
func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	const query = `
SELECT id, status, input_text, company_name, result, report_key, error_message, created_at, completed_at
FROM analyses
WHERE id = $1
LIMIT 1`

	var a Analysis
	var companyName sql.NullString
	var result sql.NullString
	var reportKey sql.NullString
	var errorMessage sql.NullString
	var completedAt sql.NullTime

	err := r.DB.QueryRowContext(ctx, query, analysisID).Scan(
		&a.ID,
		&a.Status,
		&a.JobText,
		&companyName,
		&result,
		&reportKey,
		&errorMessage,
		&a.CreatedAt,
		&completedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Analysis{}, ErrNotFound
	}
	if err != nil {
		return Analysis{}, err
	}

	a.CompanyName = companyName.String
	a.ReportFile = reportKey.String
	if errorMessage.Valid {
		a.ErrorMessage = &errorMessage.String
	}
	if completedAt.Valid {
		t := completedAt.Time
		a.CompletedAt = &t
	}
	if result.Valid && result.String != "" {
		var parsed risk.Result
		if err := json.Unmarshal([]byte(result.String), &parsed); err != nil {
			return Analysis{}, err
		}
		a.Result = &parsed
	}
	return a, nil
}

// List returns analyses newest first, with limit/offset.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	const query = `
SELECT id, status, input_text, company_name, result, report_key, error_message, created_at, completed_at
FROM analyses
ORDER BY created_at DESC, id
LIMIT $1 OFFSET $2`

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	analyses := []Analysis{}
	for rows.Next() {
		var a Analysis
		var companyName sql.NullString
		var result sql.NullString
		var reportKey sql.NullString
		var errorMessage sql.NullString
		var completedAt sql.NullTime

		if err := rows.Scan(
			&a.ID,
			&a.Status,
			&a.JobText,
			&companyName,
			&result,
			&reportKey,
			&errorMessage,
			&a.CreatedAt,
			&completedAt,
		); err != nil {
			return nil, err
		}

		a.CompanyName = companyName.String
		a.ReportFile = reportKey.String
		if errorMessage.Valid {
			a.ErrorMessage = &errorMessage.String
		}
		if completedAt.Valid {
			t := completedAt.Time
			a.CompletedAt = &t
		}
		if result.Valid && result.String != "" {
			var parsed risk.Result
			if err := json.Unmarshal([]byte(result.String), &parsed); err != nil {
				return nil, err
			}
			a.Result = &parsed
		}
		analyses = append(analyses, a)
	}
	return analyses, rows.Err()
}

func marshalResult(result *risk.Result) (any, error) {
	if result == nil {
		return nil, nil
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return string(payload), nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
