package salary

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"jobshield-backend/internal/catalog"
)

// Analysis is the salary-anomaly verdict for a single offer.
type Analysis struct {
	OfferedSalary  float64 `json:"offered_salary"`
	JobLevel       string  `json:"job_level"`
	BenchmarkRange string  `json:"benchmark_range"`
	AnomalyScore   float64 `json:"anomaly_score"`
	Message        string  `json:"message,omitempty"`
}

const messageThreshold = 50

// Detector compares offered salaries against per-level benchmarks.
// Too-good-to-be-true offers are the fraud signal; underpaying scores
// low.
type Detector struct {
	benchmarks map[string]catalog.Benchmark
}

// NewDetector builds a detector over the catalog's benchmark table.
func NewDetector(cat *catalog.Catalog) *Detector {
	return &Detector{benchmarks: cat.Benchmarks}
}

// Assess scores an offered salary (annual, thousands) against the
// benchmark for the level inferred from jobText. A non-positive salary
// means no offer was stated and yields nil.
func (d *Detector) Assess(offeredSalary float64, jobText string) *Analysis {
	if offeredSalary <= 0 {
		return nil
	}
	level := InferJobLevel(jobText)
	bench, ok := d.benchmarks[level]
	if !ok {
		bench = d.benchmarks["mid"]
	}

	a := &Analysis{
		OfferedSalary:  offeredSalary,
		JobLevel:       level,
		BenchmarkRange: fmt.Sprintf("%d-%d", bench.Low, bench.High),
		AnomalyScore:   anomalyScore(offeredSalary, bench),
	}
	if a.AnomalyScore > messageThreshold {
		a.Message = fmt.Sprintf(
			"Offered salary %.0fk is far above the %s benchmark of %s (thousands/year), a common lure in fake offers",
			offeredSalary, level, a.BenchmarkRange,
		)
	}
	return a
}

// anomalyScore maps positive deviation above the benchmark high bound
// onto 0-100. Inside the range stays at or below 10, 3x the high bound
// saturates at 100, and below-range offers score low since underpaying
// is not a fraud signal here.
func anomalyScore(offered float64, bench catalog.Benchmark) float64 {
	low, high := float64(bench.Low), float64(bench.High)
	switch {
	case offered > high:
		ratio := offered / high
		return math.Min(100, math.Round(10+45*(ratio-1)))
	case offered >= low:
		return 5
	default:
		// Below range: mildly elevated only when absurdly low.
		if offered < low/2 {
			return 10
		}
		return 8
	}
}

// InferJobLevel guesses the seniority level from keyword cues, defaulting
// to mid.
func InferJobLevel(text string) string {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "fresher", "entry level", "entry-level", "graduate trainee", "trainee", "no experience required"):
		return "fresher"
	case containsAny(lower, "lead ", "principal", "architect", "manager", "head of"):
		return "lead"
	case containsAny(lower, "senior", "sr.", "sr "):
		return "senior"
	case containsAny(lower, "junior", "associate"):
		return "junior"
	default:
		return "mid"
	}
}

func containsAny(haystack string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

var extractPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:lpa|lakhs?\s+per\s+annum|lakhs?)`),
	regexp.MustCompile(`(?i)(?:salary|package|ctc)\s*(?:of|:)?\s*(?:rs\.?|inr|₹)?\s*([\d,]+)`),
	regexp.MustCompile(`(?i)(?:rs\.?|inr|₹)\s*([\d,]+)\s*(?:per\s+(?:year|annum|month))?`),
	regexp.MustCompile(`(?i)(\d+)\s*k\b`),
}

// ExtractSalary pulls an annual salary in thousands out of free text.
// Returns 0 when nothing parseable is found.
func ExtractSalary(text string) float64 {
	for i, re := range extractPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := strings.ReplaceAll(m[1], ",", "")
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil || val <= 0 {
			continue
		}
		switch i {
		case 0:
			// Lakhs per annum: 1 lakh = 100 thousand.
			return val * 100
		case 3:
			// Already in thousands.
			return val
		default:
			// Absolute currency amounts; normalize to thousands.
			if val >= 10000 {
				return val / 1000
			}
			return val
		}
	}
	return 0
}
