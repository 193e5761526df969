package statistics

import (
	"fmt"
	"math"
	"sort"
)

// Zones bucket rounds by the rank of the card the call was made
// against. Low cards favor higher calls, high cards favor lower calls,
// and eight is the coin-flip line.
const (
	ZoneLow = iota
	ZoneMid
	ZoneHigh
	zoneCount
)

// ZoneLabel returns the display name for a zone
func ZoneLabel(zone int) string {
	switch zone {
	case ZoneLow:
		return "low (2-7)"
	case ZoneMid:
		return "mid (8)"
	case ZoneHigh:
		return "high (9-A)"
	default:
		return "unknown"
	}
}

// RoundResult represents the outcome of a single simulated round
type RoundResult struct {
	Net         float64 // Net credits for the round (payout minus stake)
	Seed        int64   // RNG seed of the session that produced it (for replay)
	Session     int     // Session index within the run
	Zone        int     // Rank zone of the card the call was made against
	JokerBreach bool    // Round resolved by a joker auto-win
	Won         bool
	Staked      int // Credits wagered
	Payout      int // Credits returned on a win, stake included
}

// ZoneStats tracks statistics for one card zone
type ZoneStats struct {
	Rounds int
	Sum    float64
	Sum2   float64
}

// Statistics tracks comprehensive simulation statistics
type Statistics struct {
	Rounds int
	Sum    float64
	Sum2   float64   // Sum of squares for variance calculation
	Values []float64 // All values, for median/percentile calculation

	Wins   int
	Losses int

	// Profit sources - joker breaches versus called rounds
	JokerBreaches int     // Rounds won by a joker
	JokerNet      float64 // Net credits from joker rounds (always wins)
	SkillNet      float64 // Net credits from called rounds (wins AND losses)
	AllNet        float64 // Total net for the ledger check

	// Economy analytics
	TotalStaked   int
	TotalReturned int

	// Zone analytics
	ZoneResults [zoneCount]ZoneStats

	// Payout analytics
	MaxPayout int     // Largest single payout observed
	BigWins   int     // Payouts >= 5x the stake
	BigWinNet float64 // Net credits from those rounds
}

// Mean returns the mean net credits per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.Sum / float64(s.Rounds)
}

// Variance returns the sample variance of the per-round net
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.Sum2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of the per-round net
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the
// mean net per round.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the fraction of rounds won
func (s *Statistics) WinRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Rounds)
}

// ReturnRate returns credits returned per credit staked. Below 1 the
// house is winning.
func (s *Statistics) ReturnRate() float64 {
	if s.TotalStaked == 0 {
		return 0
	}
	return float64(s.TotalReturned) / float64(s.TotalStaked)
}

// Add incorporates a round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	net := result.Net
	s.Rounds++
	s.Sum += net
	s.Sum2 += net * net
	s.Values = append(s.Values, net)

	if result.Won {
		s.Wins++
	} else {
		s.Losses++
	}

	// Split the ledger by profit source
	if result.JokerBreach {
		s.JokerBreaches++
		s.JokerNet += net
	} else {
		s.SkillNet += net
	}
	s.AllNet += net

	s.TotalStaked += result.Staked
	s.TotalReturned += result.Payout

	if result.Zone >= 0 && result.Zone < zoneCount {
		s.ZoneResults[result.Zone].Rounds++
		s.ZoneResults[result.Zone].Sum += net
		s.ZoneResults[result.Zone].Sum2 += net * net
	}

	if result.Payout > s.MaxPayout {
		s.MaxPayout = result.Payout
	}
	if result.Staked > 0 && result.Payout >= 5*result.Staked {
		s.BigWins++
		s.BigWinNet += net
	}
}

func (s *Statistics) sortedValues() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// Median returns the middle net result, averaging the two middle
// values for an even count.
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sortedValues()

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the net result at percentile p in [0,1], linearly
// interpolated between neighbors.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sortedValues()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// ZoneMean returns the mean result for a card zone
func (s *Statistics) ZoneMean(zone int) float64 {
	if zone < 0 || zone >= zoneCount {
		return 0
	}
	zs := s.ZoneResults[zone]
	if zs.Rounds == 0 {
		return 0
	}
	return zs.Sum / float64(zs.Rounds)
}

// IsLedgerBalanced checks if the accounting is consistent
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllNet-s.JokerNet-s.SkillNet) <= 1e-6
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllNet=%.6f, JokerNet=%.6f, SkillNet=%.6f",
			s.AllNet, s.JokerNet, s.SkillNet)
	}

	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	if s.Wins+s.Losses != s.Rounds {
		return fmt.Errorf("wins (%d) plus losses (%d) does not match rounds (%d)",
			s.Wins, s.Losses, s.Rounds)
	}

	if s.JokerBreaches > s.Wins {
		return fmt.Errorf("joker breaches (%d) exceed total wins (%d)", s.JokerBreaches, s.Wins)
	}

	zoneRounds := 0
	for zone := 0; zone < zoneCount; zone++ {
		zoneRounds += s.ZoneResults[zone].Rounds
	}
	if zoneRounds != s.Rounds {
		return fmt.Errorf("zone rounds total (%d) does not match total rounds (%d)",
			zoneRounds, s.Rounds)
	}

	return nil
}
