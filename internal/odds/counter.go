package odds

import "github.com/cardsharp/drainvault/internal/deck"

// WinOdds holds the probability of each winning outcome for the next
// deal. A joker wins either call, so its probability is folded into
// both Higher and Lower; the three fields can legitimately sum past 1
// and none of them is a distribution on its own.
type WinOdds struct {
	Higher float64
	Lower  float64
	Joker  float64
}

// Counter is a deck observer that keeps exact counts of the remaining
// cards. Every update replaces the previous counts wholesale, so the
// counter can never drift from the deck it watches.
type Counter struct {
	rankCounts map[deck.Rank]int
	jokers     int
	total      int
}

// NewCounter creates a counter with no cards seen yet
func NewCounter() *Counter {
	return &Counter{
		rankCounts: make(map[deck.Rank]int),
	}
}

// DeckUpdated implements Observer by recounting the snapshot
func (c *Counter) DeckUpdated(remaining []deck.Card) {
	counts := make(map[deck.Rank]int, len(c.rankCounts))
	jokers := 0
	for _, card := range remaining {
		if card.IsJoker() {
			jokers++
			continue
		}
		counts[card.Rank]++
	}
	c.rankCounts = counts
	c.jokers = jokers
	c.total = len(remaining)
}

// Remaining returns the number of cards in the last snapshot
func (c *Counter) Remaining() int {
	return c.total
}

// Jokers returns the number of jokers in the last snapshot
func (c *Counter) Jokers() int {
	return c.jokers
}

// RankCount returns how many cards of the given rank remain
func (c *Counter) RankCount(rank deck.Rank) int {
	return c.rankCounts[rank]
}

// HigherCount returns the number of remaining non-joker cards ranked
// strictly above current.
func (c *Counter) HigherCount(current deck.Card) int {
	n := 0
	for rank, count := range c.rankCounts {
		if rank > current.Rank {
			n += count
		}
	}
	return n
}

// LowerCount returns the number of remaining non-joker cards ranked
// strictly below current.
func (c *Counter) LowerCount(current deck.Card) int {
	n := 0
	for rank, count := range c.rankCounts {
		if rank < current.Rank {
			n += count
		}
	}
	return n
}

// WinOdds computes the exact odds of each call winning against the
// current card. Equal ranks are a loss either way and count toward no
// outcome. All three probabilities are zero when the deck is empty.
func (c *Counter) WinOdds(current deck.Card) WinOdds {
	if c.total == 0 {
		return WinOdds{}
	}

	total := float64(c.total)
	jokerProb := float64(c.jokers) / total
	return WinOdds{
		Higher: float64(c.HigherCount(current))/total + jokerProb,
		Lower:  float64(c.LowerCount(current))/total + jokerProb,
		Joker:  jokerProb,
	}
}
