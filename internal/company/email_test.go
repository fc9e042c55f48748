package company

import "testing"

func TestVerifyEmailDomain(t *testing.T) {
	cases := []struct {
		name       string
		email      string
		company    string
		match      bool
		confidence float64
		warning    bool
	}{
		{"company_domain", "hr@acmetech.com", "Acme Tech", true, 80, false},
		{"company_domain_with_dots", "jobs@acme.co.in", "Acme", true, 80, false},
		{"generic_provider", "recruiter@gmail.com", "Acme Tech", false, 20, true},
		{"unrelated_domain", "hr@talentbridge.io", "Acme Tech", false, 40, false},
		{"malformed_no_at", "not-an-email", "Acme", false, 0, false},
		{"malformed_empty_domain", "hr@", "Acme", false, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := VerifyEmailDomain(tc.email, tc.company)
			if got.Match != tc.match {
				t.Fatalf("match = %v, want %v", got.Match, tc.match)
			}
			if got.Confidence != tc.confidence {
				t.Fatalf("confidence = %.0f, want %.0f", got.Confidence, tc.confidence)
			}
			if tc.warning && got.Warning == "" {
				t.Fatal("expected a generic-provider warning")
			}
		})
	}
}
