package company

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobshield-backend/internal/shared/telemetry"
)

// Verification is the canonical registry answer the risk engine
// consumes. Confidence is registry-reported and treated as opaque.
type Verification struct {
	Found        bool        `json:"found"`
	CompanyName  string      `json:"company_name,omitempty"`
	Status       string      `json:"status,omitempty"`
	Confidence   float64     `json:"confidence"`
	Jurisdiction string      `json:"jurisdiction,omitempty"`
	Indicators   []string    `json:"indicators,omitempty"`
	Source       string      `json:"source,omitempty"`
	Message      string      `json:"message,omitempty"`
	EmailMatch   *EmailMatch `json:"email_match,omitempty"`
}

const (
	msgNoName        = "no company name provided"
	msgNotFound      = "company not found in registry"
	msgCouldNotCheck = "could not verify company registration"
)

// Registry answers company lookups. Implementations may perform network
// I/O; Search must respect the context deadline.
type Registry interface {
	Name() string
	Search(ctx context.Context, companyName string) (Verification, error)
}

// Verifier reconciles a company name against one or more registries,
// first answer that finds the company wins. Lookup failures degrade to
// found=false with a message distinct from a verified miss.
type Verifier struct {
	registries []Registry
	timeout    time.Duration
}

// NewVerifier builds a verifier over the given registries. A zero
// timeout defaults to 5s.
func NewVerifier(timeout time.Duration, registries ...Registry) *Verifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Verifier{registries: registries, timeout: timeout}
}

// Verify looks the company up with a bounded deadline. It never blocks
// past the configured timeout and never returns an error: registry
// failure is evidence shaping, not request failure.
func (v *Verifier) Verify(ctx context.Context, companyName string) Verification {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return Verification{Found: false, Confidence: 0, Message: msgNoName}
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	var miss *Verification
	failed := 0
	for _, reg := range v.registries {
		result, err := reg.Search(ctx, companyName)
		if err != nil {
			failed++
			telemetry.Error("company.registry_failed", map[string]any{
				"registry": reg.Name(),
				"company":  companyName,
				"err":      err.Error(),
			})
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				break
			}
			continue
		}
		result.Source = reg.Name()
		if result.Found {
			return result
		}
		if miss == nil {
			copied := result
			miss = &copied
		}
	}

	if miss != nil {
		if miss.Message == "" {
			miss.Message = msgNotFound
		}
		return *miss
	}
	// Every registry errored or timed out: distinct from "verified absent".
	return Verification{
		Found:      false,
		Confidence: 0,
		Message:    msgCouldNotCheck,
	}
}
