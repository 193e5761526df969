package game

import (
	"errors"
	"strings"

	"github.com/agext/levenshtein"
)

// Prediction is a higher/lower call
type Prediction int

const (
	Higher Prediction = iota
	Lower
)

// String returns the lowercase name of the prediction
func (p Prediction) String() string {
	if p == Higher {
		return "higher"
	}
	return "lower"
}

// ErrInvalidPrediction is returned for input that is neither an alias
// nor a near-miss of one. The round is not affected; callers reprompt.
var ErrInvalidPrediction = errors.New("invalid prediction, use higher (h) or lower (l)")

var predictionAliases = map[string]Prediction{
	"h":      Higher,
	"hi":     Higher,
	"high":   Higher,
	"higher": Higher,
	"l":      Lower,
	"lo":     Lower,
	"low":    Lower,
	"lower":  Lower,
}

// fuzzyTargets are the canonical words typos are matched against. The
// distance cap of 1 keeps words like "hog" from becoming a bet.
var fuzzyTargets = []string{"high", "higher", "low", "lower"}

const maxTypoDistance = 1

// ParsePrediction parses player input into a Prediction. Case and
// whitespace are forgiven, aliases are accepted, and single-character
// typos are matched against the canonical words.
func ParsePrediction(raw string) (Prediction, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if p, ok := predictionAliases[normalized]; ok {
		return p, nil
	}
	for _, target := range fuzzyTargets {
		if levenshtein.Distance(normalized, target, nil) <= maxTypoDistance {
			return predictionAliases[target], nil
		}
	}
	return Higher, ErrInvalidPrediction
}
