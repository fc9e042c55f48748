package recruiter

import (
	"strings"
)

// TrustLevel buckets a trust score.
type TrustLevel string

const (
	TrustVeryLow  TrustLevel = "VERY_LOW"
	TrustLow      TrustLevel = "LOW"
	TrustModerate TrustLevel = "MODERATE"
	TrustHigh     TrustLevel = "HIGH"
)

// Score is the recruiter credibility verdict.
type Score struct {
	TrustScore float64    `json:"trust_score"`
	TrustLevel TrustLevel `json:"trust_level"`
	Factors    []string   `json:"factors,omitempty"`
}

// Contact methods accepted from the request boundary.
const (
	MethodEmail    = "email"
	MethodWhatsApp = "whatsapp"
	MethodLinkedIn = "linkedin"
	MethodPhone    = "phone"
	MethodOther    = "other"
)

const baseline = 50

var freeMailProviders = map[string]bool{
	"gmail.com":      true,
	"yahoo.com":      true,
	"hotmail.com":    true,
	"outlook.com":    true,
	"protonmail.com": true,
	"proton.me":      true,
	"rediffmail.com": true,
	"tempmail.com":   true,
	"mail.com":       true,
}

// Assess scores recruiter credibility from the contact string and the
// declared contact method. Deterministic; no network calls.
func Assess(contact, contactMethod string) Score {
	score := float64(baseline)
	var factors []string

	contact = strings.TrimSpace(contact)
	method := strings.ToLower(strings.TrimSpace(contactMethod))

	corporateEmail := false
	if contact != "" && strings.Contains(contact, "@") {
		switch classifyEmailDomain(contact) {
		case domainFree:
			score -= 20
			factors = append(factors, "free-mail provider address")
		case domainCorporate:
			score += 20
			corporateEmail = true
			factors = append(factors, "corporate email domain")
		case domainInvalid:
			score -= 10
			factors = append(factors, "malformed email address")
		}
	}

	switch method {
	case MethodWhatsApp:
		score -= 25
		factors = append(factors, "contact restricted to WhatsApp")
	case MethodPhone:
		if contact == "" || !strings.Contains(contact, "@") {
			score -= 15
			factors = append(factors, "phone-only contact")
		}
	case MethodEmail:
		if corporateEmail {
			score += 10
			factors = append(factors, "verifiable corporate email channel")
		} else {
			score += 5
		}
	case MethodLinkedIn:
		score += 10
		factors = append(factors, "LinkedIn contact channel")
	}

	score = clamp(score)
	return Score{
		TrustScore: score,
		TrustLevel: LevelFor(score),
		Factors:    factors,
	}
}

// LevelFor maps a trust score onto its band.
func LevelFor(score float64) TrustLevel {
	switch {
	case score < 30:
		return TrustVeryLow
	case score < 50:
		return TrustLow
	case score < 75:
		return TrustModerate
	default:
		return TrustHigh
	}
}

type domainClass int

const (
	domainCorporate domainClass = iota
	domainFree
	domainInvalid
)

func classifyEmailDomain(email string) domainClass {
	parts := strings.Split(strings.ToLower(email), "@")
	if len(parts) != 2 || parts[0] == "" {
		return domainInvalid
	}
	domain := parts[1]
	if domain == "" || !strings.Contains(domain, ".") {
		return domainInvalid
	}
	if freeMailProviders[domain] {
		return domainFree
	}
	return domainCorporate
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
