package analyses

import (
	"time"

	"jobshield-backend/internal/extract"
	"jobshield-backend/internal/risk"
)

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// AnalysisInput is the request boundary for one job posting analysis.
// Only JobText is required; the other fields unlock additional signals.
type AnalysisInput struct {
	JobText        string         `json:"job_text"`
	Source         extract.Source `json:"source"`
	CompanyName    string         `json:"company_name"`
	RecruiterEmail string         `json:"recruiter_email"`
	ContactMethod  string         `json:"contact_method"`
	LinkedInURL    string         `json:"linkedin_url"`
	OfferedSalary  float64        `json:"offered_salary"`
}

// Analysis is one persisted fraud analysis.
type Analysis struct {
	ID           string       `json:"id"`
	Status       string       `json:"status"`
	JobText      string       `json:"-"`
	CompanyName  string       `json:"company_name,omitempty"`
	Result       *risk.Result `json:"result,omitempty"`
	ReportFile   string       `json:"pdf_report,omitempty"`
	ErrorMessage *string      `json:"error,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty"`
}
