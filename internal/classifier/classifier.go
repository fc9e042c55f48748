package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"unicode"
)

// ErrModelUnavailable is returned when no trained model artifact is
// loaded. Callers must check it before aggregating; a fabricated
// probability is never substituted.
var ErrModelUnavailable = errors.New("classifier model unavailable")

// Confidence buckets the distance of a probability from the 50% line.
type Confidence string

const (
	ConfidenceLow    Confidence = "LOW"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceHigh   Confidence = "HIGH"
)

// Prediction is the classifier verdict for one text.
type Prediction struct {
	Probability float64    `json:"probability"`
	Confidence  Confidence `json:"confidence"`
	Model       string     `json:"model"`
}

// artifact is the serialized form of an externally trained linear model:
// token weights over a bag-of-words representation plus a bias term.
// Training happens offline; this package only runs inference.
type artifact struct {
	Model   string             `json:"model"`
	Bias    float64            `json:"bias"`
	Weights map[string]float64 `json:"weights"`
}

// Classifier wraps a loaded model. The zero value is unusable; use Load.
type Classifier struct {
	model *artifact
}

// Load reads a model artifact from disk. A missing or unreadable file
// returns a Classifier that reports ErrModelUnavailable on Predict so
// the caller decides how to proceed.
func Load(path string) (*Classifier, error) {
	if strings.TrimSpace(path) == "" {
		return &Classifier{}, ErrModelUnavailable
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return &Classifier{}, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	var a artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return &Classifier{}, fmt.Errorf("%w: parse %s: %v", ErrModelUnavailable, path, err)
	}
	if a.Model == "" || len(a.Weights) == 0 {
		return &Classifier{}, fmt.Errorf("%w: artifact %s is incomplete", ErrModelUnavailable, path)
	}
	return &Classifier{model: &a}, nil
}

// FromArtifact builds a classifier from an in-memory model, for tests
// and embedded defaults.
func FromArtifact(name string, bias float64, weights map[string]float64) *Classifier {
	return &Classifier{model: &artifact{Model: name, Bias: bias, Weights: weights}}
}

// Loaded reports whether a model artifact is available.
func (c *Classifier) Loaded() bool {
	return c != nil && c.model != nil
}

// Predict scores the fraud likelihood of text as a 0-100 percentage.
func (c *Classifier) Predict(text string) (Prediction, error) {
	if !c.Loaded() {
		return Prediction{}, ErrModelUnavailable
	}

	sum := c.model.Bias
	for _, token := range tokenize(text) {
		sum += c.model.Weights[token]
	}
	probability := round2(sigmoid(sum) * 100)

	return Prediction{
		Probability: probability,
		Confidence:  confidenceFor(probability),
		Model:       c.model.Model,
	}, nil
}

// ModelName returns the loaded model identifier, or "".
func (c *Classifier) ModelName() string {
	if !c.Loaded() {
		return ""
	}
	return c.model.Model
}

func confidenceFor(probability float64) Confidence {
	switch {
	case probability > 80 || probability < 20:
		return ConfidenceHigh
	case probability > 60 || probability < 40:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
