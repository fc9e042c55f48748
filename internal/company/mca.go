package company

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// MCARegistry is an offline heuristic check against Indian corporate
// naming conventions and a list of widely known registered companies.
// MCA has no public API; this stands in as a low-confidence fallback
// behind the networked registries.
type MCARegistry struct{}

// Name identifies the registry in verification results and logs.
func (m *MCARegistry) Name() string { return "mca" }

var knownIndianCompanies = []string{
	"TATA CONSULTANCY SERVICES", "TCS", "INFOSYS", "WIPRO",
	"HCL", "TECH MAHINDRA", "MINDTREE", "MPHASIS",
	"COGNIZANT", "CAPGEMINI INDIA", "ACCENTURE INDIA",
	"IBM INDIA", "MICROSOFT INDIA", "GOOGLE INDIA",
	"AMAZON INDIA", "FLIPKART", "PAYTM", "OLA",
	"SWIGGY", "ZOMATO", "BYJU", "RELIANCE",
}

var legalSuffixes = []string{"PRIVATE LIMITED", "PVT LTD", "PVT. LTD", "LIMITED", "LTD"}

// Search applies the heuristics; it never fails and ignores the context
// beyond an upfront cancellation check.
func (m *MCARegistry) Search(ctx context.Context, companyName string) (Verification, error) {
	if err := ctx.Err(); err != nil {
		return Verification{}, err
	}

	cleaned := strings.ToUpper(cleanName(companyName))
	indicators := indianIndicators(cleaned)

	for _, known := range knownIndianCompanies {
		if strings.Contains(cleaned, known) {
			return Verification{
				Found:        true,
				CompanyName:  companyName,
				Status:       "Active",
				Confidence:   90,
				Jurisdiction: "in",
				Indicators:   indicators,
				Message:      fmt.Sprintf("recognized Indian company: %s", known),
			}, nil
		}
	}

	if hasLegalSuffix(cleaned) {
		return Verification{
			Found:        true,
			CompanyName:  companyName,
			Status:       "Likely Registered",
			Confidence:   30,
			Jurisdiction: "in",
			Indicators:   indicators,
			Message:      "name carries an Indian legal entity suffix",
		}, nil
	}

	return Verification{
		Found:      false,
		Confidence: 0,
		Indicators: indicators,
		Message:    msgNotFound,
	}, nil
}

func hasLegalSuffix(upperName string) bool {
	for _, suffix := range legalSuffixes {
		if strings.Contains(upperName, suffix) {
			return true
		}
	}
	return false
}

func indianIndicators(upperName string) []string {
	var indicators []string
	if strings.Contains(upperName, "PRIVATE LIMITED") || strings.Contains(upperName, "PVT LTD") {
		indicators = append(indicators, "private limited company")
	} else if strings.Contains(upperName, "LIMITED") || strings.Contains(upperName, "LTD") {
		indicators = append(indicators, "limited company")
	}
	if strings.Contains(upperName, "INDIA") {
		indicators = append(indicators, "india-based")
	}
	for _, word := range []string{"TECHNOLOGIES", "TECH", "SOFTWARE", "SERVICES", "SOLUTIONS"} {
		if strings.Contains(upperName, word) {
			indicators = append(indicators, "it/services company")
			break
		}
	}
	return indicators
}

var nameNoise = regexp.MustCompile(`[^\w\s]`)
var spaces = regexp.MustCompile(`\s+`)

func cleanName(name string) string {
	cleaned := nameNoise.ReplaceAllString(name, " ")
	return strings.TrimSpace(spaces.ReplaceAllString(cleaned, " "))
}

// CINInfo is the decoded form of a Corporate Identification Number.
type CINInfo struct {
	CIN                string `json:"cin"`
	ListingStatus      string `json:"listing_status"`
	IndustryCode       string `json:"industry_code"`
	StateCode          string `json:"state_code"`
	IncorporationYear  string `json:"incorporation_year"`
	CompanyType        string `json:"company_type"`
	RegistrationNumber string `json:"registration_number"`
}

var (
	cinRe     = regexp.MustCompile(`^[LU]\d{5}[A-Z]{2}\d{4}[A-Z]{3}\d{6}$`)
	cinScanRe = regexp.MustCompile(`\b[LUlu]\d{5}[A-Za-z]{2}\d{4}[A-Za-z]{3}\d{6}\b`)
)

// FindCIN scans free text for a Corporate Identification Number and
// decodes the first valid one.
func FindCIN(text string) (CINInfo, bool) {
	match := cinScanRe.FindString(text)
	if match == "" {
		return CINInfo{}, false
	}
	info, err := ParseCIN(match)
	if err != nil {
		return CINInfo{}, false
	}
	return info, true
}

// Summary renders the decoded CIN as a single verification indicator.
func (i CINInfo) Summary() string {
	return fmt.Sprintf("CIN %s: %s %s, incorporated %s, state %s",
		i.CIN, i.ListingStatus, i.CompanyType, i.IncorporationYear, i.StateCode)
}

// ParseCIN decodes a 21-character Indian CIN
// (listing + industry + state + year + type + registration).
func ParseCIN(cin string) (CINInfo, error) {
	cin = strings.ToUpper(strings.TrimSpace(cin))
	if !cinRe.MatchString(cin) {
		return CINInfo{}, fmt.Errorf("invalid CIN format: %q", cin)
	}
	info := CINInfo{
		CIN:                cin,
		IndustryCode:       cin[1:6],
		StateCode:          cin[6:8],
		IncorporationYear:  cin[8:12],
		RegistrationNumber: cin[15:21],
	}
	if cin[0] == 'L' {
		info.ListingStatus = "Listed"
	} else {
		info.ListingStatus = "Unlisted"
	}
	if cin[12:15] == "PLC" {
		info.CompanyType = "Public Limited"
	} else {
		info.CompanyType = "Private Limited"
	}
	return info, nil
}
