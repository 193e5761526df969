package game

import (
	"math"

	"github.com/cardsharp/drainvault/internal/odds"
)

// PayoutTable lists what each call pays this round. A nil side has no
// winning outcomes left in the deck and must not be offered.
type PayoutTable struct {
	Stake  int
	Higher *int
	Lower  *int
}

// PayoutFor returns the payout for a prediction, or nil when that call
// is unavailable.
func (t PayoutTable) PayoutFor(p Prediction) *int {
	if p == Higher {
		return t.Higher
	}
	return t.Lower
}

// BuildPayouts derives the round's payout table from the exact odds,
// the stake, the player's odds upgrades and the house edge.
func BuildPayouts(o odds.WinOdds, stake int, oddsMultiplier, houseEdge float64) PayoutTable {
	return PayoutTable{
		Stake:  stake,
		Higher: calculatePayout(stake, o.Higher, oddsMultiplier, houseEdge),
		Lower:  calculatePayout(stake, o.Lower, oddsMultiplier, houseEdge),
	}
}

// calculatePayout converts a win probability into the total returned on
// a win. The fair multiplier 1/p is shaved by the house edge and scaled
// by odds upgrades; a winning round never returns less than the stake.
func calculatePayout(stake int, probability, oddsMultiplier, houseEdge float64) *int {
	if probability <= 0 {
		return nil
	}
	multiplier := (1 / probability) * (1 - houseEdge) * oddsMultiplier
	payout := int(math.Round(float64(stake) * multiplier))
	if payout < stake {
		payout = stake
	}
	return &payout
}
