package company

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const defaultOpenCorporatesURL = "https://api.opencorporates.com/v0.4"

// OpenCorporates queries the OpenCorporates company search API.
type OpenCorporates struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewOpenCorporates builds the registry client. baseURL may be empty.
func NewOpenCorporates(baseURL, apiKey string) *OpenCorporates {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultOpenCorporatesURL
	}
	return &OpenCorporates{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Name identifies the registry in verification results and logs.
func (o *OpenCorporates) Name() string { return "opencorporates" }

type searchResponse struct {
	Results struct {
		Companies []struct {
			Company struct {
				Name             string `json:"name"`
				JurisdictionCode string `json:"jurisdiction_code"`
				CurrentStatus    string `json:"current_status"`
			} `json:"company"`
		} `json:"companies"`
	} `json:"results"`
}

// Search queries the companies search endpoint and shapes the best
// match into a Verification.
func (o *OpenCorporates) Search(ctx context.Context, companyName string) (Verification, error) {
	params := url.Values{}
	params.Set("q", companyName)
	params.Set("per_page", "5")
	if o.APIKey != "" {
		params.Set("api_token", o.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.BaseURL+"/companies/search?"+params.Encode(), nil)
	if err != nil {
		return Verification{}, err
	}

	resp, err := o.Client.Do(req)
	if err != nil {
		return Verification{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Verification{}, fmt.Errorf("opencorporates search: status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Verification{}, fmt.Errorf("opencorporates search: decode: %w", err)
	}

	if len(body.Results.Companies) == 0 {
		return Verification{Found: false, Confidence: 0, Message: msgNotFound}, nil
	}

	best := body.Results.Companies[0].Company
	return Verification{
		Found:        true,
		CompanyName:  best.Name,
		Status:       best.CurrentStatus,
		Jurisdiction: best.JurisdictionCode,
		Confidence:   nameMatchConfidence(companyName, best.Name, best.CurrentStatus),
	}, nil
}

var nonWord = regexp.MustCompile(`[^\w\s]`)

// nameMatchConfidence scores how well the registry hit matches the
// searched name, adjusted by registration status.
func nameMatchConfidence(searched, registered, status string) float64 {
	a := strings.TrimSpace(nonWord.ReplaceAllString(strings.ToLower(searched), ""))
	b := strings.TrimSpace(nonWord.ReplaceAllString(strings.ToLower(registered), ""))

	var confidence float64
	switch {
	case a == b:
		confidence = 95
	case a != "" && b != "" && (strings.Contains(b, a) || strings.Contains(a, b)):
		confidence = 75
	default:
		confidence = 50
	}

	lowered := strings.ToLower(status)
	switch {
	case strings.Contains(lowered, "dissolved"), strings.Contains(lowered, "inactive"):
		confidence -= 20
	case strings.Contains(lowered, "active"):
		confidence += 5
	}

	if confidence > 100 {
		confidence = 100
	}
	if confidence < 0 {
		confidence = 0
	}
	return confidence
}
