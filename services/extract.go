package services

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// jsonObjectPattern matches from the first '{' to the last '}'
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// Extraction is the result of pulling a JSON object out of model text.
// When Parsed is false, Value holds the caller's fallback and Reason says
// why the model output was not usable.
type Extraction[T any] struct {
	Value  T
	Parsed bool
	Reason string
}

// ExtractJSON locates the JSON object in text and decodes it into T. It
// never fails: output without a decodable object yields fallback.
func ExtractJSON[T any](text string, fallback T) Extraction[T] {
	candidate := jsonObjectPattern.FindString(cleanModelOutput(text))
	if candidate == "" {
		return Extraction[T]{Value: fallback, Reason: "no JSON object in model output"}
	}

	var value T
	if err := json.Unmarshal([]byte(candidate), &value); err != nil {
		return Extraction[T]{Value: fallback, Reason: fmt.Sprintf("invalid JSON in model output: %v", err)}
	}
	return Extraction[T]{Value: value, Parsed: true}
}
