package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	minAIScore = 0.0
	maxAIScore = 100.0

	// DefaultConfidence is used when the model omits confidence.
	DefaultConfidence = 0.8
)

// Assessment is a validated re-ranking answer.
type Assessment struct {
	AIScore    float64
	Reasoning  string
	Confidence float64
}

// ExtractJSONObject returns the first balanced brace-delimited substring of text.
// Braces inside JSON strings are ignored.
func ExtractJSONObject(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", &ValidationError{Field: "response", Reason: "contains no JSON object"}
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		ch := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	return "", &ValidationError{Field: "response", Reason: "has an unbalanced JSON object"}
}

// ParseAssessment extracts, decodes and validates a re-ranking answer.
func ParseAssessment(raw string) (*Assessment, error) {
	object, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if unmarshalErr := json.Unmarshal([]byte(object), &data); unmarshalErr != nil {
		return nil, &ValidationError{Field: "response", Reason: fmt.Sprintf("is not valid JSON: %v", unmarshalErr)}
	}

	rawScore, ok := firstPresent(data, "aiScore", "ai_score", "score")
	if !ok {
		return nil, &ValidationError{Field: "aiScore", Reason: "is missing"}
	}

	score := coerceFloat(rawScore)
	if math.IsNaN(score) || score < minAIScore || score > maxAIScore {
		return nil, &ValidationError{Field: "aiScore", Reason: fmt.Sprintf("%v is outside [0,100]", rawScore)}
	}

	confidence := DefaultConfidence
	if rawConfidence, found := firstPresent(data, "confidence"); found {
		if c := coerceFloat(rawConfidence); !math.IsNaN(c) {
			confidence = clamp(c, 0, 1)
		}
	}

	reasoning := ""
	if rawReasoning, found := firstPresent(data, "reasoning", "reason"); found {
		reasoning = coerceString(rawReasoning)
	}

	return &Assessment{
		AIScore:    score,
		Reasoning:  reasoning,
		Confidence: confidence,
	}, nil
}

func firstPresent(data map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := data[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(val), "%")), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	default:
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
