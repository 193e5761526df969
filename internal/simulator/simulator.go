// Package simulator plays headless sessions of the vault game for
// strategy and economy analysis. No terminal, no missions, no shop
// prompts; just the deck, the counter and a calling strategy.
package simulator

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/cardsharp/drainvault/internal/config"
	"github.com/cardsharp/drainvault/internal/deck"
	"github.com/cardsharp/drainvault/internal/game"
	"github.com/cardsharp/drainvault/internal/odds"
	"github.com/cardsharp/drainvault/internal/randutil"
	"github.com/cardsharp/drainvault/internal/session"
	"github.com/cardsharp/drainvault/internal/statistics"
)

// Strategy names accepted by Run
const (
	StrategyHigher = "higher"
	StrategyLower  = "lower"
	StrategyRandom = "random"
	StrategyBest   = "best"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds   int    // Rounds per session
	Sessions int    // Independent sessions, run in parallel
	Strategy string // higher, lower, random or best
	Upgrades session.Upgrades
	Seed     int64
	Game     *config.GameSettings
	Logger   *log.Logger
}

// Simulator runs headless game sessions
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	return &Simulator{config: config}
}

// Run executes every session and merges the results
func (s *Simulator) Run() (*statistics.Statistics, error) {
	if s.config.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", s.config.Rounds)
	}
	if s.config.Sessions <= 0 {
		return nil, fmt.Errorf("sessions must be positive, got %d", s.config.Sessions)
	}
	switch s.config.Strategy {
	case StrategyHigher, StrategyLower, StrategyRandom, StrategyBest:
	default:
		return nil, fmt.Errorf("unknown strategy %q (use higher, lower, random or best)", s.config.Strategy)
	}

	g, ctx := errgroup.WithContext(context.Background())
	results := make(chan []statistics.RoundResult, s.config.Sessions)

	for i := 0; i < s.config.Sessions; i++ {
		// Independent seed per session so sessions stay reproducible
		// regardless of scheduling
		index := i
		sessionSeed := s.config.Seed + int64(i)

		g.Go(func() error {
			rounds := s.playSession(index, sessionSeed)
			select {
			case results <- rounds:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	go func() {
		defer close(results)
		_ = g.Wait()
	}()

	stats := &statistics.Statistics{}
	for rounds := range results {
		for _, result := range rounds {
			stats.Add(result)
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.config.Logger.Info("simulation complete",
		"strategy", s.config.Strategy,
		"sessions", s.config.Sessions,
		"rounds", stats.Rounds,
		"win_rate", stats.WinRate(),
		"return_rate", stats.ReturnRate())
	return stats, nil
}

// playSession plays one session to its round limit or to ruin.
func (s *Simulator) playSession(index int, seed int64) []statistics.RoundResult {
	rng := randutil.New(seed)

	sess := session.New()
	sess.Balance = s.config.Game.StartingBalance
	sess.BaseBet = s.config.Game.BaseBet
	sess.Upgrades = s.config.Upgrades

	watcher := odds.NewWatcher()
	counter := odds.NewCounter()
	watcher.Attach(counter)

	var d *deck.Deck
	primeDeck := func() {
		d = deck.New(
			deck.WithJokers(sess.JokerCount(s.config.Game.BaseJokers)),
			deck.WithRand(rng),
		)
		d.Shuffle()
		watcher.Notify(d.Remaining())
	}
	dealCard := func() deck.Card {
		card, err := d.Deal()
		if err != nil {
			// Unreachable: callers prime before dealing
			panic(err)
		}
		watcher.Notify(d.Remaining())
		return card
	}
	dealStarting := func() deck.Card {
		for {
			if d.IsEmpty() {
				primeDeck()
			}
			if card := dealCard(); !card.IsJoker() {
				return card
			}
		}
	}

	primeDeck()
	current := dealStarting()

	stake := sess.Stake()
	results := make([]statistics.RoundResult, 0, s.config.Rounds)
	for round := 0; round < s.config.Rounds && sess.Balance >= stake; round++ {
		o := counter.WinOdds(current)
		payouts := game.BuildPayouts(o, stake, sess.Upgrades.OddsMultiplier(), s.config.Game.HouseEdge)

		call, ok := s.pickCall(rng, o, payouts)
		if !ok {
			// Both sides dead, nothing left to wager on
			break
		}

		sess.Balance -= stake
		result := statistics.RoundResult{
			Seed:    seed,
			Session: index,
			Zone:    zoneOf(current),
			Staked:  stake,
		}

		next := dealCard()
		if next.IsJoker() {
			payout := *payouts.PayoutFor(call)
			sess.Balance += payout
			result.JokerBreach = true
			result.Won = true
			result.Payout = payout
			result.Net = float64(payout - stake)
			results = append(results, result)

			current = dealStarting()
			if d.IsEmpty() {
				primeDeck()
				current = dealStarting()
			}
			continue
		}

		if game.IsPredictionCorrect(current, next, call, false) {
			payout := *payouts.PayoutFor(call)
			sess.Balance += payout
			result.Won = true
			result.Payout = payout
			result.Net = float64(payout - stake)
		} else {
			result.Net = -float64(stake)
		}
		results = append(results, result)

		if d.IsEmpty() {
			primeDeck()
			current = dealStarting()
		} else {
			current = next
		}
	}
	return results
}

// pickCall chooses a side per the configured strategy, skipping sides
// with no winning outcomes the way a player at the prompt is forced to.
func (s *Simulator) pickCall(rng *rand.Rand, o odds.WinOdds, payouts game.PayoutTable) (game.Prediction, bool) {
	alive := func(p game.Prediction) bool {
		return payouts.PayoutFor(p) != nil
	}
	pickFirst := func(first, second game.Prediction) (game.Prediction, bool) {
		if alive(first) {
			return first, true
		}
		if alive(second) {
			return second, true
		}
		return first, false
	}

	switch s.config.Strategy {
	case StrategyLower:
		return pickFirst(game.Lower, game.Higher)
	case StrategyRandom:
		if rng.Intn(2) == 0 {
			return pickFirst(game.Higher, game.Lower)
		}
		return pickFirst(game.Lower, game.Higher)
	case StrategyBest:
		if game.WinProbability(o, game.Lower, false) > game.WinProbability(o, game.Higher, false) {
			return pickFirst(game.Lower, game.Higher)
		}
		return pickFirst(game.Higher, game.Lower)
	default:
		return pickFirst(game.Higher, game.Lower)
	}
}

// zoneOf buckets the current card for the zone analytics
func zoneOf(card deck.Card) int {
	switch {
	case card.Rank <= deck.Seven:
		return statistics.ZoneLow
	case card.Rank == deck.Eight:
		return statistics.ZoneMid
	default:
		return statistics.ZoneHigh
	}
}

// PrintSummary prints a comprehensive summary of simulation results
func PrintSummary(stats *statistics.Statistics, strategy string) {
	mean := stats.Mean()
	median := stats.Median()
	stdDev := stats.StdDev()
	stdErr := stats.StdError()
	low, high := stats.ConfidenceInterval95()
	p05 := stats.Percentile(0.05)
	p25 := stats.Percentile(0.25)
	p75 := stats.Percentile(0.75)
	p95 := stats.Percentile(0.95)

	fmt.Printf("\n=== FINAL RESULTS: %s strategy ===\n", strategy)
	fmt.Printf("Rounds played: %d\n", stats.Rounds)
	fmt.Printf("Win rate: %.1f%% (%d wins, %d losses)\n", stats.WinRate()*100, stats.Wins, stats.Losses)
	fmt.Printf("Return rate: %.4f credits back per credit staked\n", stats.ReturnRate())

	fmt.Printf("\n=== STATISTICAL RESULTS ===\n")
	fmt.Printf("Mean: %.4f credits/round\n", mean)
	fmt.Printf("Median: %.4f credits/round\n", median)
	fmt.Printf("Std Dev: %.4f credits\n", stdDev)
	fmt.Printf("Std Error: %.4f credits\n", stdErr)
	fmt.Printf("95%% CI: [%.4f, %.4f] credits/round\n", low, high)
	fmt.Printf("Percentiles: P5=%.1f, P25=%.1f, P75=%.1f, P95=%.1f\n", p05, p25, p75, p95)

	fmt.Printf("\n=== PROFIT SOURCE ANALYSIS ===\n")
	if stats.Wins > 0 {
		jokerPct := float64(stats.JokerBreaches) / float64(stats.Wins) * 100
		fmt.Printf("Winning rounds: %d called (%.1f%%), %d joker breaches (%.1f%%)\n",
			stats.Wins-stats.JokerBreaches, 100-jokerPct, stats.JokerBreaches, jokerPct)
	}
	meanJoker := stats.JokerNet / float64(stats.Rounds)
	meanSkill := stats.SkillNet / float64(stats.Rounds)
	fmt.Printf("Called rounds: %.2f credits/round avg (all rounds)\n", meanSkill)
	fmt.Printf("Joker breaches: %.2f credits/round avg (all rounds)\n", meanJoker)
	fmt.Printf("Sanity check: %.2f + %.2f = %.2f (should equal %.2f)\n",
		meanSkill, meanJoker, meanSkill+meanJoker, mean)

	fmt.Printf("\n=== PAYOUT ANALYSIS ===\n")
	fmt.Printf("Max payout observed: %d credits\n", stats.MaxPayout)
	fmt.Printf("Big wins (>=5x stake): %d rounds (%.1f%%), %.2f credits total\n",
		stats.BigWins, float64(stats.BigWins)/float64(stats.Rounds)*100, stats.BigWinNet)

	fmt.Printf("\n=== CARD ZONE ANALYSIS ===\n")
	for zone := statistics.ZoneLow; zone <= statistics.ZoneHigh; zone++ {
		zs := stats.ZoneResults[zone]
		if zs.Rounds > 0 {
			fmt.Printf("Zone %s: %d rounds, %.3f credits/round\n",
				statistics.ZoneLabel(zone), zs.Rounds, stats.ZoneMean(zone))
		}
	}
}
