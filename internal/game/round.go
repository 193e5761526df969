package game

import (
	"github.com/cardsharp/drainvault/internal/deck"
	"github.com/cardsharp/drainvault/internal/odds"
)

// IsPredictionCorrect scores a prediction against the dealt card.
// Equal ranks lose before reversal is considered, so a reverse mission
// can never turn a tie into a win. Jokers are handled by the caller and
// never reach this function.
func IsPredictionCorrect(current, next deck.Card, prediction Prediction, reverse bool) bool {
	if next.Rank == current.Rank {
		return false
	}

	var correct bool
	if prediction == Higher {
		correct = next.Rank > current.Rank
	} else {
		correct = next.Rank < current.Rank
	}
	if reverse {
		return !correct
	}
	return correct
}

// WinProbability returns the probability the scorer applies to a
// prediction, swapping sides when a reverse mission is active.
func WinProbability(o odds.WinOdds, prediction Prediction, reverse bool) float64 {
	if prediction == Higher {
		if reverse {
			return o.Lower
		}
		return o.Higher
	}
	if reverse {
		return o.Higher
	}
	return o.Lower
}
