package catalog

// Default returns the built-in catalog. Deployments override sections
// via a JSON file passed to Load; the shipped values are the starting
// calibration, not a contract.
func Default() *Catalog {
	return &Catalog{
		Version: "2024-06",
		Rules: []Rule{
			// Advance-fee requests are the strongest single signal.
			{Name: "registration_fee", Category: "payment_request", Pattern: "registration fee", Severity: SeverityHigh},
			{Name: "interview_fee", Category: "payment_request", Pattern: "interview fee", Severity: SeverityHigh},
			{Name: "processing_fee", Category: "payment_request", Pattern: "processing fee", Severity: SeverityHigh},
			{Name: "security_deposit", Category: "payment_request", Pattern: `(?:security\s+)?deposit\s+(?:required|of|rs)`, Regex: true, Severity: SeverityHigh},
			{Name: "send_money", Category: "payment_request", Pattern: "send money", Severity: SeverityHigh},
			{Name: "wallet_transfer", Category: "payment_request", Pattern: `(?:wallet|upi|paytm|gpay)\s+transfer`, Regex: true, Severity: SeverityHigh},
			{Name: "refundable_amount", Category: "payment_request", Pattern: "refundable amount", Severity: SeverityHigh},

			{Name: "whatsapp_only", Category: "suspicious_contact", Pattern: `whats\s?app\s+only`, Regex: true, Severity: SeverityHigh},
			{Name: "telegram_only", Category: "suspicious_contact", Pattern: "telegram only", Severity: SeverityHigh},
			{Name: "contact_via_whatsapp", Category: "suspicious_contact", Pattern: `contact\s+(?:us\s+)?(?:via|on|through)\s+whats\s?app`, Regex: true, Severity: SeverityHigh},
			{Name: "no_email_contact", Category: "suspicious_contact", Pattern: "no email communication", Severity: SeverityMedium},

			{Name: "instant_offer", Category: "instant_offer", Pattern: "instant offer", Severity: SeverityMedium},
			{Name: "no_interview", Category: "instant_offer", Pattern: `\b(?:no|without)\s+(?:an?\s+)?interview`, Regex: true, Severity: SeverityMedium},
			{Name: "selected_without", Category: "instant_offer", Pattern: "selected without", Severity: SeverityMedium},
			{Name: "congrats_selected", Category: "instant_offer", Pattern: `congratulations[!,.\s]+you\s+(?:are|have been)\s+selected`, Regex: true, Severity: SeverityMedium},

			{Name: "join_within_hours", Category: "urgency", Pattern: `within\s+\d+\s+hours?`, Regex: true, Severity: SeverityMedium},
			{Name: "urgent_joining", Category: "urgency", Pattern: "urgent joining", Severity: SeverityMedium},
			{Name: "immediate_start", Category: "urgency", Pattern: "immediate start", Severity: SeverityMedium},
			{Name: "offer_expires", Category: "urgency", Pattern: `offer\s+expires\s+(?:today|soon|in)`, Regex: true, Severity: SeverityMedium},
			{Name: "act_now", Category: "urgency", Pattern: "act now", Severity: SeverityLow},

			{Name: "earn_lakhs", Category: "unrealistic_salary", Pattern: `earn\s+(?:rs\.?\s*)?\d*\s*lakh`, Regex: true, Severity: SeverityMedium},
			{Name: "guaranteed_income", Category: "unrealistic_salary", Pattern: "guaranteed income", Severity: SeverityMedium},
			{Name: "no_work_high_pay", Category: "unrealistic_salary", Pattern: `no\s+(?:work|experience)[,\s]+high\s+(?:pay|salary)`, Regex: true, Severity: SeverityMedium},
			{Name: "easy_money", Category: "unrealistic_salary", Pattern: "easy money", Severity: SeverityMedium},
			{Name: "work_from_home_daily_pay", Category: "unrealistic_salary", Pattern: `work\s+from\s+home.{0,40}(?:daily|weekly)\s+pay`, Regex: true, Severity: SeverityLow},

			{Name: "share_otp", Category: "identity_harvest", Pattern: `share\s+(?:your\s+)?otp`, Regex: true, Severity: SeverityHigh},
			{Name: "aadhaar_upfront", Category: "identity_harvest", Pattern: `(?:aadhaar|pan)\s+(?:card\s+)?(?:number|copy|details)\s+(?:first|before|to confirm)`, Regex: true, Severity: SeverityMedium},
			{Name: "bank_details_upfront", Category: "identity_harvest", Pattern: `bank\s+(?:account\s+)?details\s+(?:first|before|to\s+(?:confirm|process))`, Regex: true, Severity: SeverityMedium},
		},
		Benchmarks: map[string]Benchmark{
			"fresher": {Low: 300, High: 600},
			"junior":  {Low: 400, High: 800},
			"mid":     {Low: 600, High: 1500},
			"senior":  {Low: 1200, High: 3000},
			"lead":    {Low: 2000, High: 5000},
		},
		Weights: Weights{
			MLProbability: 0.35,
			RuleScore:     0.25,
			CompanyRisk:   0.20,
			SalaryAnomaly: 0.10,
			RecruiterRisk: 0.10,
		},
		Thresholds: Thresholds{
			Moderate: 30,
			High:     55,
			Critical: 80,
			Notable:  50,
		},
		Defaults: Defaults{
			CompanyNotFound: 70,
			CompanyNoName:   40,
			SalaryAbsent:    20,
		},
	}
}
