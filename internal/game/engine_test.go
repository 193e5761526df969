package game

import (
	"io"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/cardsharp/drainvault/internal/config"
	"github.com/cardsharp/drainvault/internal/deck"
	"github.com/cardsharp/drainvault/internal/session"
)

// scriptIO feeds canned inputs to the engine and records everything it
// prints. Prompt returns io.EOF once the script runs out.
type scriptIO struct {
	inputs  []string
	prompts []string
	lines   []string
	cards   []deck.Card
	clears  int
	visual  session.Visual
}

func newScriptIO(inputs ...string) *scriptIO {
	return &scriptIO{inputs: inputs}
}

func (s *scriptIO) Print(msg string)      { s.lines = append(s.lines, msg) }
func (s *scriptIO) Reveal(msg string)     { s.lines = append(s.lines, msg) }
func (s *scriptIO) RevealSlow(msg string) { s.lines = append(s.lines, msg) }

func (s *scriptIO) ShowCard(card deck.Card) {
	s.cards = append(s.cards, card)
	s.lines = append(s.lines, card.String())
}

func (s *scriptIO) Prompt(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.inputs) == 0 {
		return "", io.EOF
	}
	next := s.inputs[0]
	s.inputs = s.inputs[1:]
	return next, nil
}

func (s *scriptIO) Clear()                       { s.clears++ }
func (s *scriptIO) ApplyVisual(v session.Visual) { s.visual = v }

func (s *scriptIO) output() string {
	return strings.Join(s.lines, "\n")
}

func (s *scriptIO) sawLine(line string) bool {
	for _, got := range s.lines {
		if got == line {
			return true
		}
	}
	return false
}

// stubCalibrator plays back scripted scan results in order.
type stubCalibrator struct {
	results []string
	errs    []error
	calls   int
	targets []string
}

func (c *stubCalibrator) Scan(targetLabel, displayLabel string) (string, error) {
	c.targets = append(c.targets, targetLabel)
	i := c.calls
	c.calls++
	var err error
	if i < len(c.errs) {
		err = c.errs[i]
	}
	result := ""
	if i < len(c.results) {
		result = c.results[i]
	}
	return result, err
}

func newTestEngine(t *testing.T, sio *scriptIO, sess *session.Session, opts ...Option) *Engine {
	t.Helper()
	store := session.NewStore(filepath.Join(t.TempDir(), "save.json"))
	logger := log.New(io.Discard)
	opts = append([]Option{WithRand(rand.New(rand.NewSource(1)))}, opts...)
	return NewEngine(sio, store, sess, config.Default(), logger, opts...)
}

func quietSession() *session.Session {
	sess := session.New()
	sess.CalibrationEnabled = false
	return sess
}

// rigDeck gives the engine an exact deck. The last card listed is dealt
// first.
func rigDeck(e *Engine, cards ...deck.Card) {
	e.deck = deck.New(deck.WithCards(cards), deck.WithRand(e.rng))
	e.watcher.Notify(e.deck.Remaining())
}

func TestRunRoundWinPaysOut(t *testing.T) {
	sio := newScriptIO("h")
	e := newTestEngine(t, sio, quietSession())
	e.phase = PhaseDealing
	current := deck.NewCard(deck.Clubs, deck.Five)
	e.current = &current
	rigDeck(e,
		deck.NewCard(deck.Spades, deck.Two),
		deck.NewCard(deck.Hearts, deck.King),
	)

	e.runRound()

	// Remaining {2, K} vs a five: P(higher) = 0.5, payout 376.
	require.True(t, sio.sawLine("WIN +176 | Balance: 5176"), sio.output())
	require.Equal(t, 5176, e.session.Balance)
	require.Equal(t, 5176, e.session.TotalCredits)
	require.Equal(t, 1, e.session.WinStreak)
	require.NotNil(t, e.current)
	require.Equal(t, deck.King, e.current.Rank)
}

func TestRunRoundLossForfeitsStake(t *testing.T) {
	sio := newScriptIO("h")
	sess := quietSession()
	sess.WinStreak = 3
	e := newTestEngine(t, sio, sess)
	e.phase = PhaseDealing
	current := deck.NewCard(deck.Clubs, deck.Five)
	e.current = &current
	rigDeck(e,
		deck.NewCard(deck.Hearts, deck.King),
		deck.NewCard(deck.Spades, deck.Two),
	)

	e.runRound()

	require.True(t, sio.sawLine("LOSS -200 | Balance: 4800"), sio.output())
	require.Equal(t, 4800, e.session.Balance)
	require.Equal(t, 0, e.session.WinStreak)
	require.Equal(t, deck.Two, e.current.Rank)
}

func TestRunRoundEqualRankLoses(t *testing.T) {
	sio := newScriptIO("h")
	e := newTestEngine(t, sio, quietSession())
	e.phase = PhaseDealing
	current := deck.NewCard(deck.Clubs, deck.Five)
	e.current = &current
	rigDeck(e,
		deck.NewCard(deck.Hearts, deck.King),
		deck.NewCard(deck.Hearts, deck.Five),
	)

	e.runRound()

	require.True(t, sio.sawLine("LOSS -200 | Balance: 4800"), sio.output())
}

func TestRunRoundJokerAutoWins(t *testing.T) {
	sio := newScriptIO("h")
	e := newTestEngine(t, sio, quietSession())
	e.phase = PhaseDealing
	current := deck.NewCard(deck.Clubs, deck.Five)
	e.current = &current
	rigDeck(e,
		deck.NewCard(deck.Hearts, deck.Four),
		deck.NewCard(deck.Diamonds, deck.Queen),
		deck.NewJoker(),
	)

	e.runRound()

	// P(higher) folds the joker in: 1/3 + 1/3, so the payout is 282.
	require.True(t, sio.sawLine("Joker breach! Auto-win."), sio.output())
	require.True(t, sio.sawLine("WIN +82 | Balance: 5082"), sio.output())
	require.Equal(t, 5082, e.session.Balance)
	require.Equal(t, 1, e.session.WinStreak)
	require.NotNil(t, e.current)
	require.Equal(t, deck.Queen, e.current.Rank)
}

func TestRunRoundRejectsCallWithNoOutcomes(t *testing.T) {
	sio := newScriptIO("l", "h")
	e := newTestEngine(t, sio, quietSession())
	e.phase = PhaseDealing
	current := deck.NewCard(deck.Spades, deck.Two)
	e.current = &current
	rigDeck(e,
		deck.NewCard(deck.Hearts, deck.King),
		deck.NewCard(deck.Diamonds, deck.Queen),
	)

	e.runRound()

	require.True(t, sio.sawLine("No winning outcomes for that call."), sio.output())
	require.True(t, sio.sawLine("WIN +0 | Balance: 5000"), sio.output())
}

func TestRunRoundRepromptsOnInvalidInput(t *testing.T) {
	sio := newScriptIO("banana", "h")
	e := newTestEngine(t, sio, quietSession())
	e.phase = PhaseDealing
	current := deck.NewCard(deck.Clubs, deck.Five)
	e.current = &current
	rigDeck(e,
		deck.NewCard(deck.Spades, deck.Two),
		deck.NewCard(deck.Hearts, deck.King),
	)

	e.runRound()

	require.True(t, sio.sawLine("Invalid prediction. Use higher (h) or lower (l)."), sio.output())
	require.Equal(t, 5176, e.session.Balance)
}

func TestRunRoundCommandInterruptsBeforeStake(t *testing.T) {
	sio := newScriptIO("shop")
	e := newTestEngine(t, sio, quietSession())
	e.phase = PhaseDealing
	current := deck.NewCard(deck.Clubs, deck.Five)
	e.current = &current
	rigDeck(e,
		deck.NewCard(deck.Spades, deck.Two),
		deck.NewCard(deck.Hearts, deck.King),
	)

	e.runRound()

	require.Equal(t, PhaseShopping, e.phase)
	require.True(t, sio.sawLine("[SHOP] Routing to the black market..."), sio.output())
	require.Equal(t, 5000, e.session.Balance)
	require.Equal(t, deck.Five, e.current.Rank)
	require.Equal(t, 2, e.deck.Len())
}

func TestRunRoundBlindMissionHidesCard(t *testing.T) {
	sio := newScriptIO("h")
	e := newTestEngine(t, sio, quietSession())
	e.phase = PhaseDealing
	e.activeMission = e.missions.Start(missionByKind(t, GoneBlind))
	current := deck.NewCard(deck.Clubs, deck.Five)
	e.current = &current
	rigDeck(e,
		deck.NewCard(deck.Spades, deck.Two),
		deck.NewCard(deck.Hearts, deck.King),
	)

	e.runRound()

	require.True(t, sio.sawLine("Current card: [HIDDEN]"), sio.output())
	require.True(t, sio.sawLine("Blind round active. Odds are classified."), sio.output())
	require.True(t, sio.sawLine("Side mission: GONE BLIND"), sio.output())
	// Only the dealt card is ever rendered on a blind round.
	require.Len(t, sio.cards, 1)
	require.True(t, sio.sawLine("WIN +176 | Balance: 5176"), sio.output())
	require.NotNil(t, e.activeMission)
	require.Equal(t, 2, e.activeMission.RoundsLeft)
}

func TestRunRoundReverseMissionFlipsScoring(t *testing.T) {
	sio := newScriptIO("h")
	e := newTestEngine(t, sio, quietSession())
	e.phase = PhaseDealing
	e.activeMission = e.missions.Start(missionByKind(t, ReversePsychology))
	current := deck.NewCard(deck.Clubs, deck.Five)
	e.current = &current
	rigDeck(e,
		deck.NewCard(deck.Hearts, deck.King),
		deck.NewCard(deck.Spades, deck.Two),
	)

	e.runRound()

	// Two beats five when the mission wants you wrong.
	require.True(t, sio.sawLine("WIN +176 | Balance: 5176"), sio.output())
	require.NotNil(t, e.activeMission)
	require.Equal(t, 2, e.activeMission.RoundsLeft)
}

func TestRunRoundBigMoneyMultipliesPayout(t *testing.T) {
	sio := newScriptIO("h")
	e := newTestEngine(t, sio, quietSession())
	e.phase = PhaseDealing
	e.activeMission = e.missions.Start(missionByKind(t, BigMoney))
	current := deck.NewCard(deck.Clubs, deck.Five)
	e.current = &current
	rigDeck(e,
		deck.NewCard(deck.Spades, deck.Two),
		deck.NewCard(deck.Hearts, deck.King),
	)

	e.runRound()

	// 376 base payout times the 5x bonus.
	require.True(t, sio.sawLine("WIN +1680 | Balance: 6680"), sio.output())
	require.True(t, sio.sawLine("Side mission complete."), sio.output())
	require.True(t, sio.sawLine("[ACHIEVEMENT UNLOCKED] Shadow operator"), sio.output())
	require.Nil(t, e.activeMission)
}

func TestRunRoundDoubleOrNothingDoublesBalance(t *testing.T) {
	sio := newScriptIO("h")
	e := newTestEngine(t, sio, quietSession())
	e.phase = PhaseDealing
	state := e.missions.Start(missionByKind(t, DoubleOrNothing))
	state.WinsInRow = 2
	e.activeMission = state
	current := deck.NewCard(deck.Clubs, deck.Five)
	e.current = &current
	rigDeck(e,
		deck.NewCard(deck.Spades, deck.Two),
		deck.NewCard(deck.Hearts, deck.King),
	)

	e.runRound()

	require.True(t, sio.sawLine("Double or Nothing success! Balance doubled to 10352."), sio.output())
	require.True(t, sio.sawLine("Side mission complete."), sio.output())
	require.Equal(t, 10352, e.session.Balance)
	require.Equal(t, 10352, e.session.TotalCredits)
	require.Nil(t, e.activeMission)
}

func TestRunRoundMissionFailureEndsQuietly(t *testing.T) {
	sio := newScriptIO("h")
	e := newTestEngine(t, sio, quietSession())
	e.phase = PhaseDealing
	e.activeMission = e.missions.Start(missionByKind(t, LuckySeven))
	current := deck.NewCard(deck.Clubs, deck.Five)
	e.current = &current
	rigDeck(e,
		deck.NewCard(deck.Hearts, deck.King),
		deck.NewCard(deck.Spades, deck.Two),
	)

	e.runRound()

	require.True(t, sio.sawLine("Side mission ended."), sio.output())
	require.Nil(t, e.activeMission)
	require.False(t, e.session.Unlocked(session.AchShadowOperator))
}

func TestAfterRoundStreakAchievements(t *testing.T) {
	sio := newScriptIO()
	sess := quietSession()
	sess.WinStreak = 4
	e := newTestEngine(t, sio, sess)

	e.afterRound(true, 0.5)

	require.Equal(t, 5, sess.WinStreak)
	require.Equal(t, 5, sess.MaxWinStreak)
	require.True(t, sess.Unlocked(session.AchWinStreak5))
	require.True(t, sio.sawLine("[ACHIEVEMENT UNLOCKED] Winning streak"), sio.output())

	sess.WinStreak = 9
	e.afterRound(true, 0.5)
	require.True(t, sess.Unlocked(session.AchWinStreak10))
	require.True(t, sio.sawLine("[ACHIEVEMENT UNLOCKED] On fire"), sio.output())
}

func TestAfterRoundLossResetsStreak(t *testing.T) {
	sess := quietSession()
	sess.WinStreak = 7
	sess.MaxWinStreak = 7
	e := newTestEngine(t, newScriptIO(), sess)

	e.afterRound(false, 0.5)

	require.Equal(t, 0, sess.WinStreak)
	require.Equal(t, 7, sess.MaxWinStreak)
}

func TestAfterRoundLongShotUnlocksAnomaly(t *testing.T) {
	sio := newScriptIO()
	e := newTestEngine(t, sio, quietSession())

	e.afterRound(true, 0.09)

	require.True(t, e.session.Unlocked(session.AchStatisticalAnomaly))
	require.True(t, sio.sawLine("[ACHIEVEMENT UNLOCKED] Statistical Anomaly"), sio.output())
}

func TestAfterRoundTenPercentIsNotAnAnomaly(t *testing.T) {
	e := newTestEngine(t, newScriptIO(), quietSession())

	e.afterRound(true, 0.10)

	require.False(t, e.session.Unlocked(session.AchStatisticalAnomaly))
}

func TestAfterRoundSchedulesMissionOnInterval(t *testing.T) {
	e := newTestEngine(t, newScriptIO(), quietSession())
	e.roundsCompleted = 14

	e.afterRound(false, 0.5)

	require.Equal(t, 15, e.roundsCompleted)
	require.NotNil(t, e.pendingMission)
}

func TestAfterRoundRespectsMissionToggle(t *testing.T) {
	sess := quietSession()
	sess.SideMissionsEnabled = false
	e := newTestEngine(t, newScriptIO(), sess)
	e.roundsCompleted = 14

	e.afterRound(false, 0.5)

	require.Nil(t, e.pendingMission)
}

func TestAfterRoundDoesNotQueueOverActiveMission(t *testing.T) {
	e := newTestEngine(t, newScriptIO(), quietSession())
	e.activeMission = e.missions.Start(missionByKind(t, LuckySeven))
	e.roundsCompleted = 14

	e.afterRound(true, 0.5)

	require.Nil(t, e.pendingMission)
}

func TestOfferMissionAccept(t *testing.T) {
	sio := newScriptIO("y")
	e := newTestEngine(t, sio, quietSession())
	def := missionByKind(t, LuckySeven)
	e.pendingMission = &def

	e.offerMission()

	require.True(t, sio.sawLine("=== SIDE MISSION ==="), sio.output())
	require.True(t, sio.sawLine("LUCKY SEVEN"), sio.output())
	require.True(t, sio.sawLine("Mission accepted."), sio.output())
	require.Nil(t, e.pendingMission)
	require.NotNil(t, e.activeMission)
	require.Equal(t, LuckySeven, e.activeMission.Definition.Kind)
}

func TestOfferMissionEnterAccepts(t *testing.T) {
	sio := newScriptIO("")
	e := newTestEngine(t, sio, quietSession())
	def := missionByKind(t, BigMoney)
	e.pendingMission = &def

	e.offerMission()

	require.NotNil(t, e.activeMission)
}

func TestOfferMissionSkipChargesPenalty(t *testing.T) {
	sio := newScriptIO("skip")
	e := newTestEngine(t, sio, quietSession())
	def := missionByKind(t, GoneBlind)
	e.pendingMission = &def

	e.offerMission()

	require.True(t, sio.sawLine("Skip penalty: 10% of balance."), sio.output())
	require.True(t, sio.sawLine("Skip fee paid: 500. Mission aborted."), sio.output())
	require.Equal(t, 4500, e.session.Balance)
	require.Nil(t, e.activeMission)
}

func TestOfferMissionFreeSkipForfeits(t *testing.T) {
	sio := newScriptIO("n")
	e := newTestEngine(t, sio, quietSession())
	def := missionByKind(t, BigMoney)
	e.pendingMission = &def

	e.offerMission()

	require.True(t, sio.sawLine("Skip this mission to forfeit the bonus."), sio.output())
	require.True(t, sio.sawLine("Mission skipped. Bonus forfeited."), sio.output())
	require.Equal(t, 5000, e.session.Balance)
}

func TestOfferMissionCommandKeepsOfferPending(t *testing.T) {
	sio := newScriptIO("shop")
	e := newTestEngine(t, sio, quietSession())
	def := missionByKind(t, LuckySeven)
	e.pendingMission = &def

	e.offerMission()

	require.Equal(t, PhaseShopping, e.phase)
	require.NotNil(t, e.pendingMission)
	require.Nil(t, e.activeMission)
}

func TestOfferMissionRepromptsOnNoise(t *testing.T) {
	sio := newScriptIO("maybe", "y")
	e := newTestEngine(t, sio, quietSession())
	def := missionByKind(t, LuckySeven)
	e.pendingMission = &def

	e.offerMission()

	require.True(t, sio.sawLine("Type 'y' to accept or 'skip' to skip."), sio.output())
	require.NotNil(t, e.activeMission)
}

func TestOfferMissionDroppedWhenDisabled(t *testing.T) {
	sio := newScriptIO()
	sess := quietSession()
	sess.SideMissionsEnabled = false
	e := newTestEngine(t, sio, sess)
	def := missionByKind(t, LuckySeven)
	e.pendingMission = &def

	e.offerMission()

	require.Nil(t, e.pendingMission)
	require.Nil(t, e.activeMission)
	require.Empty(t, sio.prompts)
}

func TestCheckFinalExtraction(t *testing.T) {
	sio := newScriptIO()
	sess := quietSession()
	sess.TotalCredits = 100_000_000
	e := newTestEngine(t, sio, sess)

	e.checkFinalExtraction()

	require.Equal(t, PhaseTerminated, e.phase)
	require.Equal(t, 1, sio.clears)
	require.True(t, sio.sawLine("> Mission status: COMPLETE."), sio.output())
	require.True(t, sio.sawLine("           SYSTEM PURGE            "), sio.output())
}

func TestCheckFinalExtractionBelowTarget(t *testing.T) {
	sess := quietSession()
	sess.TotalCredits = 99_999_999
	e := newTestEngine(t, newScriptIO(), sess)

	e.checkFinalExtraction()

	require.NotEqual(t, PhaseTerminated, e.phase)
}

func TestCalibrationDisabledAsksNothing(t *testing.T) {
	sio := newScriptIO()
	e := newTestEngine(t, sio, quietSession())
	rigDeck(e, deck.NewCard(deck.Hearts, deck.Nine))

	e.handleCalibration()

	require.Empty(t, sio.prompts)
}

func TestCalibrationPayOutsources(t *testing.T) {
	sio := newScriptIO("pay")
	sess := session.New()
	e := newTestEngine(t, sio, sess)
	rigDeck(e, deck.NewCard(deck.Hearts, deck.Nine))

	e.handleCalibration()

	require.True(t, sio.sawLine("[CALIBRATION] Recalibration required for this deck."), sio.output())
	require.True(t, sio.sawLine("[CALIBRATION] Target card: Nine of Hearts ♥"), sio.output())
	require.True(t, sio.sawLine("Outsourced calibration. Fee deducted: 500."), sio.output())
	require.Equal(t, 4500, sess.Balance)
	require.True(t, e.store.Exists())
}

func TestCalibrationScanWithoutScannerSkips(t *testing.T) {
	sio := newScriptIO("scan")
	e := newTestEngine(t, sio, session.New())
	rigDeck(e, deck.NewCard(deck.Hearts, deck.Nine))

	e.handleCalibration()

	require.True(t, sio.sawLine("Calibration skipped: cant connect to the camera."), sio.output())
	require.Equal(t, 5000, e.session.Balance)
}

func TestCalibrationScanLocksOn(t *testing.T) {
	sio := newScriptIO("scan")
	cal := &stubCalibrator{results: []string{"9H"}}
	e := newTestEngine(t, sio, session.New(), WithCalibrator(cal))
	rigDeck(e, deck.NewCard(deck.Hearts, deck.Nine))

	e.handleCalibration()

	require.Equal(t, []string{"9H"}, cal.targets)
	require.True(t, sio.sawLine("Calibration locked on: 9H"), sio.output())
	require.Equal(t, 5000, e.session.Balance)
}

func TestCalibrationScanAbortFallsBackToPay(t *testing.T) {
	sio := newScriptIO("scan", "pay")
	cal := &stubCalibrator{results: []string{""}}
	e := newTestEngine(t, sio, session.New(), WithCalibrator(cal))
	rigDeck(e, deck.NewCard(deck.Hearts, deck.Nine))

	e.handleCalibration()

	require.True(t, sio.sawLine("Scanner closed. Try again or pay to outsource."), sio.output())
	require.True(t, sio.sawLine("Outsourced calibration. Fee deducted: 500."), sio.output())
	require.Equal(t, 4500, e.session.Balance)
}

func TestCalibrationRepromptsOnNoise(t *testing.T) {
	sio := newScriptIO("what", "pay")
	e := newTestEngine(t, sio, session.New())
	rigDeck(e, deck.NewCard(deck.Hearts, deck.Nine))

	e.handleCalibration()

	require.True(t, sio.sawLine("Type 'scan' or 'pay' to continue."), sio.output())
	require.Equal(t, 4500, e.session.Balance)
}

func TestDealStartingCardCyclesJokers(t *testing.T) {
	sio := newScriptIO()
	e := newTestEngine(t, sio, quietSession())
	rigDeck(e,
		deck.NewCard(deck.Clubs, deck.Seven),
		deck.NewJoker(),
		deck.NewJoker(),
	)

	card := e.dealStartingCard()

	require.NotNil(t, card)
	require.Equal(t, deck.Seven, card.Rank)
	require.Equal(t, 2, strings.Count(sio.output(), "Joker intercepted. Cycling buffer..."))
}

func TestCheckDeckDepletedPrimesFreshDeck(t *testing.T) {
	sio := newScriptIO()
	e := newTestEngine(t, sio, quietSession())
	rigDeck(e)

	e.checkDeckDepleted(nil)

	require.True(t, sio.sawLine("> DECK DEPLETED."), sio.output())
	require.True(t, sio.sawLine("Reminder: type 'shop' or 'settings' to upgrade your rig."), sio.output())
	require.True(t, sio.sawLine("[ACHIEVEMENT UNLOCKED] First time?"), sio.output())
	require.Equal(t, 1, e.session.DecksCompleted)
	require.NotNil(t, e.current)
	require.False(t, e.current.IsJoker())
	require.Greater(t, e.deck.Len(), 0)
}

func TestCheckDeckDepletedKeepsLiveDeck(t *testing.T) {
	e := newTestEngine(t, newScriptIO(), quietSession())
	rigDeck(e, deck.NewCard(deck.Hearts, deck.Nine))
	next := deck.NewCard(deck.Spades, deck.Jack)

	e.checkDeckDepleted(&next)

	require.Equal(t, deck.Jack, e.current.Rank)
	require.Equal(t, 0, e.session.DecksCompleted)
}

func TestUnlockAchievementSavesAndAnnouncesOnce(t *testing.T) {
	sio := newScriptIO()
	e := newTestEngine(t, sio, quietSession())

	e.unlockAchievement(session.AchHighRoller)
	e.unlockAchievement(session.AchHighRoller)

	require.True(t, e.session.Unlocked(session.AchHighRoller))
	require.True(t, e.store.Exists())
	require.Equal(t, 1, strings.Count(sio.output(), "[ACHIEVEMENT UNLOCKED] High roller"))
}

func TestRunExitCommandSavesAndTerminates(t *testing.T) {
	sio := newScriptIO("exit")
	e := newTestEngine(t, sio, quietSession(), WithResume(true))

	e.Run()

	require.Equal(t, PhaseTerminated, e.phase)
	require.True(t, sio.sawLine("> SESSION RESTORED."), sio.output())
	require.True(t, sio.sawLine("[EXIT] Session saved. Disconnecting..."), sio.output())
	require.True(t, e.store.Exists())
}

func TestRunStopsWhenInputCloses(t *testing.T) {
	sio := newScriptIO()
	e := newTestEngine(t, sio, quietSession(), WithResume(true))

	e.Run()

	require.Equal(t, PhaseTerminated, e.phase)
}

func TestRunEndsWhenStakeUnaffordable(t *testing.T) {
	sio := newScriptIO()
	sess := quietSession()
	sess.Balance = 100
	e := newTestEngine(t, sio, sess, WithResume(true))

	e.Run()

	require.Equal(t, PhaseTerminated, e.phase)
	require.True(t, sio.sawLine("[SYSTEM] Funds depleted. Mission terminated."), sio.output())
	require.True(t, sio.sawLine("We will get 'em next time..."), sio.output())
}

func TestRunEndsWhenBalanceDepleted(t *testing.T) {
	sio := newScriptIO()
	sess := quietSession()
	sess.Balance = 0
	e := newTestEngine(t, sio, sess, WithResume(true))

	e.Run()

	require.Equal(t, PhaseTerminated, e.phase)
	require.True(t, sio.sawLine("[SYSTEM] Balance depleted. Better luck next time."), sio.output())
}

func TestRunShowsIntroOnFreshSession(t *testing.T) {
	sio := newScriptIO("exit")
	e := newTestEngine(t, sio, quietSession())

	e.Run()

	require.True(t, sio.sawLine("> Incoming encrypted message..."), sio.output())
	require.True(t, sio.sawLine("DRAIN THE VAULT: INFINITE CARD COUNTER"), sio.output())
	require.True(t, sio.sawLine("HOW TO PLAY:"), sio.output())
	require.Equal(t, 1, sio.clears)
}

func TestRunAppliesVisualSettings(t *testing.T) {
	sio := newScriptIO()
	sess := quietSession()
	sess.Visual.Typewriter = false
	sess.Balance = 0
	e := newTestEngine(t, sio, sess, WithResume(true))

	e.Run()

	require.False(t, sio.visual.Typewriter)
	require.True(t, sio.visual.ShowCardArt)
}
