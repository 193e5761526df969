// Package session holds the serializable state of one operator run and
// its on-disk store.
package session

// Default starting economy for a fresh operator.
const (
	DefaultBalance = 5000
	DefaultBaseBet = 200
)

// Visual holds the display preference toggles
type Visual struct {
	ShowCardArt bool `json:"show_card_art"`
	Typewriter  bool `json:"typewriter"`
}

// Upgrades tracks purchased upgrade levels. Every level doubles its
// effect, so multipliers are powers of two.
type Upgrades struct {
	OddsLevel  int  `json:"odds_level"`
	BetLevel   int  `json:"bet_level"`
	AICounter  bool `json:"ai_counter"`
	JokerLevel int  `json:"joker_level"`
}

// OddsMultiplier returns the payout multiplier from odds upgrades
func (u Upgrades) OddsMultiplier() float64 {
	return float64(int(1) << u.OddsLevel)
}

// BetMultiplier returns the stake multiplier from bet upgrades
func (u Upgrades) BetMultiplier() int {
	return 1 << u.BetLevel
}

// JokerMultiplier returns the joker count multiplier from joker upgrades
func (u Upgrades) JokerMultiplier() int {
	return 1 << u.JokerLevel
}

// Session is the full persistent state of a run. Balance is spendable
// credits; TotalCredits only ever grows and is what the extraction
// target is measured against.
type Session struct {
	Balance             int             `json:"balance"`
	TotalCredits        int             `json:"total_credits"`
	BaseBet             int             `json:"base_bet"`
	DecksCompleted      int             `json:"decks_completed"`
	WinStreak           int             `json:"win_streak"`
	MaxWinStreak        int             `json:"max_win_streak"`
	Upgrades            Upgrades        `json:"upgrades"`
	Visual              Visual          `json:"visual"`
	SideMissionsEnabled bool            `json:"side_missions_enabled"`
	CalibrationEnabled  bool            `json:"calibration_enabled"`
	Achievements        map[string]bool `json:"achievements"`
	VisitedShop         bool            `json:"visited_shop"`
	VisitedSettings     bool            `json:"visited_settings"`
}

// New returns a fresh session with the default economy and every
// achievement locked.
func New() *Session {
	return &Session{
		Balance:             DefaultBalance,
		TotalCredits:        DefaultBalance,
		BaseBet:             DefaultBaseBet,
		Visual:              Visual{ShowCardArt: true, Typewriter: true},
		SideMissionsEnabled: true,
		CalibrationEnabled:  true,
		Achievements:        DefaultAchievementState(),
	}
}

// Stake returns the credits wagered per round at the current bet level
func (s *Session) Stake() int {
	return s.BaseBet * s.Upgrades.BetMultiplier()
}

// JokerCount returns how many jokers the deck is primed with, given the
// base joker count.
func (s *Session) JokerCount(base int) int {
	return base * s.Upgrades.JokerMultiplier()
}

// Unlock marks an achievement as earned. Returns true if it was locked
// before this call.
func (s *Session) Unlock(key string) bool {
	if s.Achievements == nil {
		s.Achievements = DefaultAchievementState()
	}
	if s.Achievements[key] {
		return false
	}
	s.Achievements[key] = true
	return true
}

// Unlocked reports whether an achievement has been earned
func (s *Session) Unlocked(key string) bool {
	return s.Achievements[key]
}
