// Package domain implements lenient parsing of advisory-engine output.
//
// The advisory engine returns free-form text that is expected to contain
// a number or a JSON document, but often wraps it in prose. Every parser
// here degrades in order: well-formed JSON, JSON embedded in prose
// (first '{' or '[' to the matching last one), bare number in prose,
// typed failure. Callers always recover from the failure locally.
package domain

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/solwatch/arbbot/internal/apperror"
)

// RiskAdvice is the advisory engine's risk verdict.
type RiskAdvice struct {
	RiskScore      decimal.Decimal
	RiskFactors    []string
	Recommendation string
	Reasoning      string
}

// looseNumber accepts both 62 and "62" for the same field. Scores arrive
// as numbers or quoted numbers depending on the model's mood.
type looseNumber string

func (n *looseNumber) UnmarshalJSON(b []byte) error {
	*n = looseNumber(strings.Trim(string(b), `"`))
	return nil
}

// riskPayload is the JSON shape the engine is prompted to produce.
type riskPayload struct {
	RiskScore      looseNumber `json:"riskScore"`
	RiskFactors    []string    `json:"riskFactors"`
	Recommendation string      `json:"recommendation"`
	Reasoning      string      `json:"reasoning"`
}

var numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// ExtractJSON returns the widest substring that looks like a JSON
// document of the given kind ('{' or '['), or empty.
func ExtractJSON(text string, openCh, closeCh byte) string {
	start := strings.IndexByte(text, openCh)
	end := strings.LastIndexByte(text, closeCh)
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}

// ParseNumber extracts a decimal number from advisory output: the whole
// trimmed text if it is a number, otherwise the first numeric token in
// the prose.
func ParseNumber(text string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return decimal.Zero, apperror.New(apperror.CodeAdvisoryUnparseable,
			apperror.WithContext("empty advisory response"))
	}

	if d, err := decimal.NewFromString(trimmed); err == nil {
		return d, nil
	}

	if match := numberPattern.FindString(trimmed); match != "" {
		if d, err := decimal.NewFromString(match); err == nil {
			return d, nil
		}
	}

	return decimal.Zero, apperror.New(apperror.CodeAdvisoryUnparseable,
		apperror.WithContext("no numeric token in advisory response"))
}

// ParseRiskAdvice parses a risk verdict: JSON object, JSON in prose, or
// a bare score.
func ParseRiskAdvice(text string) (*RiskAdvice, error) {
	candidates := []string{strings.TrimSpace(text)}
	if embedded := ExtractJSON(text, '{', '}'); embedded != "" {
		candidates = append(candidates, embedded)
	}

	for _, candidate := range candidates {
		var payload riskPayload
		if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
			continue
		}
		score, err := decimal.NewFromString(string(payload.RiskScore))
		if err != nil {
			continue
		}
		return &RiskAdvice{
			RiskScore:      score,
			RiskFactors:    payload.RiskFactors,
			Recommendation: payload.Recommendation,
			Reasoning:      payload.Reasoning,
		}, nil
	}

	// Last resort: the model answered with just a score.
	score, err := ParseNumber(text)
	if err != nil {
		return nil, apperror.New(apperror.CodeAdvisoryUnparseable,
			apperror.WithContext("risk advice is neither JSON nor a number"))
	}
	return &RiskAdvice{RiskScore: score}, nil
}

// ParsePathSuggestions parses a JSON array of token-symbol arrays,
// tolerating surrounding prose.
func ParsePathSuggestions(text string) ([][]string, error) {
	candidates := []string{strings.TrimSpace(text)}
	if embedded := ExtractJSON(text, '[', ']'); embedded != "" {
		candidates = append(candidates, embedded)
	}

	for _, candidate := range candidates {
		var paths [][]string
		if err := json.Unmarshal([]byte(candidate), &paths); err != nil {
			continue
		}
		if len(paths) > 0 {
			return paths, nil
		}
	}

	return nil, apperror.New(apperror.CodeAdvisoryUnparseable,
		apperror.WithContext("no token-cycle array in advisory response"))
}
