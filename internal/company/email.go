package company

import (
	"regexp"
	"strings"
)

// EmailMatch reports whether a recruiter email's domain is consistent
// with the claimed company name.
type EmailMatch struct {
	Match      bool    `json:"match"`
	Confidence float64 `json:"confidence"`
	Domain     string  `json:"domain,omitempty"`
	Warning    string  `json:"warning,omitempty"`
}

var genericMailProviders = map[string]bool{
	"gmail.com":   true,
	"yahoo.com":   true,
	"hotmail.com": true,
	"outlook.com": true,
}

var wordOnly = regexp.MustCompile(`\W`)

// VerifyEmailDomain cross-checks the recruiter email's domain against
// the company name. The collapsed company name appearing inside the
// domain scores 80; a generic free-mail provider 20; any other domain
// 40. Malformed emails score 0.
func VerifyEmailDomain(email, companyName string) EmailMatch {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(email)), "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return EmailMatch{Match: false, Confidence: 0}
	}
	domain := parts[1]
	collapsed := wordOnly.ReplaceAllString(strings.ToLower(companyName), "")

	switch {
	case collapsed != "" && strings.Contains(strings.ReplaceAll(domain, ".", ""), collapsed):
		return EmailMatch{Match: true, Confidence: 80, Domain: domain}
	case genericMailProviders[domain]:
		return EmailMatch{Match: false, Confidence: 20, Domain: domain, Warning: "using generic email provider"}
	default:
		return EmailMatch{Match: false, Confidence: 40, Domain: domain}
	}
}
