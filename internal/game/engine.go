package game

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cardsharp/drainvault/internal/config"
	"github.com/cardsharp/drainvault/internal/deck"
	"github.com/cardsharp/drainvault/internal/odds"
	"github.com/cardsharp/drainvault/internal/randutil"
	"github.com/cardsharp/drainvault/internal/session"
)

// Engine runs the infinite higher/lower loop for one session. It is
// single threaded; all blocking happens inside the IO implementation.
type Engine struct {
	io         IO
	store      *session.Store
	session    *session.Session
	cfg        *config.Config
	logger     *log.Logger
	rng        *rand.Rand
	calibrator Calibrator
	resume     bool

	deck    *deck.Deck
	current *deck.Card
	watcher *odds.Watcher
	counter *odds.Counter

	interp   *Interpreter
	shop     *Shop
	missions *MissionManager

	activeMission   *MissionState
	pendingMission  *MissionDefinition
	roundsCompleted int

	phase Phase
}

// Option configures an Engine at construction time
type Option func(*Engine)

// WithRand sets the random source used for shuffling, mission selection
// and calibration targets.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithCalibrator sets the card scanner used between decks. Without one,
// scan attempts report the scanner as offline.
func WithCalibrator(c Calibrator) Option {
	return func(e *Engine) {
		e.calibrator = c
	}
}

// WithResume marks the run as a restored session, skipping the intro.
func WithResume(resume bool) Option {
	return func(e *Engine) {
		e.resume = resume
	}
}

// NewEngine creates an engine for the given session. The counter is
// attached to the deck watcher immediately so odds are live from the
// first deal.
func NewEngine(io IO, store *session.Store, sess *session.Session, cfg *config.Config, logger *log.Logger, opts ...Option) *Engine {
	e := &Engine{
		io:      io,
		store:   store,
		session: sess,
		cfg:     cfg,
		logger:  logger,
		rng:     randutil.New(time.Now().UnixNano()),
		watcher: odds.NewWatcher(),
		counter: odds.NewCounter(),
		interp:  NewInterpreter(),
		shop:    NewShop(),
		phase:   PhaseStartup,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.missions = NewMissionManager(e.rng)
	e.watcher.Attach(e.counter)
	return e
}

// Phase returns the engine's current phase
func (e *Engine) Phase() Phase {
	return e.phase
}

// Run drives the state machine until the session terminates
func (e *Engine) Run() {
	e.io.ApplyVisual(e.session.Visual)
	for e.phase != PhaseTerminated {
		switch e.phase {
		case PhaseStartup:
			e.handleStartup()
		case PhaseDealing:
			e.handleDealing()
		case PhaseShopping:
			if err := e.shop.Open(e.io, e.session, e.store, e.logger); err != nil {
				e.terminate("input closed in shop")
				continue
			}
			e.checkShopAchievements()
			e.phase = PhaseDealing
		case PhaseSettings:
			if err := e.openSettings(); err != nil {
				e.terminate("input closed in settings")
				continue
			}
			e.save()
			e.phase = PhaseDealing
		case PhaseAchievements:
			if err := e.openAchievements(); err != nil {
				e.terminate("input closed in achievements")
				continue
			}
			e.phase = PhaseDealing
		}
	}
}

func (e *Engine) handleStartup() {
	e.io.Clear()
	if e.resume {
		e.io.Print("> SESSION RESTORED.")
	} else {
		e.showIntroStory()
	}
	e.showRules()
	e.checkShopAchievements()
	e.checkCreditAchievements()
	e.primeDeck(true)
	e.current = e.dealStartingCard()
	if e.phase != PhaseTerminated {
		e.phase = PhaseDealing
	}
}

func (e *Engine) handleDealing() {
	for e.phase == PhaseDealing {
		if e.session.Balance <= 0 {
			e.io.Print("[SYSTEM] Balance depleted. Better luck next time.")
			e.terminate("balance depleted")
			return
		}
		if e.session.Balance < e.session.Stake() {
			e.io.Reveal("[SYSTEM] Funds depleted. Mission terminated.")
			e.io.Reveal("We will get 'em next time...")
			e.terminate("stake unaffordable")
			return
		}
		if e.pendingMission != nil && e.activeMission == nil {
			e.offerMission()
			if e.phase != PhaseDealing {
				return
			}
		}

		if e.deck == nil || e.deck.IsEmpty() {
			e.primeDeck(false)
			e.current = e.dealStartingCard()
		}
		if e.current == nil {
			e.current = e.dealStartingCard()
		}
		if e.phase != PhaseDealing {
			return
		}

		e.runRound()
	}
}

func (e *Engine) runRound() {
	current := e.current
	if current == nil {
		return
	}

	mission := e.activeMission
	blind := mission != nil && mission.IsBlind()
	reverse := mission != nil && mission.IsReverse()

	e.io.Print("")
	e.io.Print("==============================================")
	e.io.Print(fmt.Sprintf("Balance: %d | Extracted: %d", e.session.Balance, e.session.TotalCredits))
	if mission != nil {
		e.io.Print(fmt.Sprintf("Side mission: %s", mission.Definition.Title))
	}
	e.io.Print("----------------------------------------------")
	if blind {
		e.io.Print("Current card: [HIDDEN]")
	} else {
		e.io.Print("Current card:")
		e.io.ShowCard(*current)
	}

	exact := e.counter.WinOdds(*current)
	table := e.buildPayouts(exact)
	e.displayOdds(exact, table, blind)

	prediction, ok := e.promptPrediction(table)
	if !ok {
		return
	}

	winProbability := WinProbability(exact, prediction, reverse)
	e.session.Balance -= table.Stake
	next, err := e.dealCard()
	if err != nil {
		e.logger.Error("deal failed mid-round", "error", err)
		e.terminate("deck corrupted")
		return
	}
	e.io.Print("Next card:")
	e.io.ShowCard(next)

	if next.IsJoker() {
		e.io.Print("Joker breach! Auto-win.")
		if payout := table.PayoutFor(prediction); payout != nil {
			e.applyWin(e.applyBonusMultiplier(*payout), table.Stake)
		}
		e.logRound(prediction, next, true, winProbability)
		e.updateMissionAfterRound(true)
		e.afterRound(true, winProbability)
		e.checkFinalExtraction()
		if e.phase != PhaseDealing {
			return
		}
		e.current = e.dealStartingCard()
		e.checkDeckDepleted(nil)
		return
	}

	win := IsPredictionCorrect(*current, next, prediction, reverse)
	if win {
		if payout := table.PayoutFor(prediction); payout != nil {
			e.applyWin(e.applyBonusMultiplier(*payout), table.Stake)
		} else {
			e.io.Print("No payout available for that call.")
		}
	} else {
		e.applyLoss(table.Stake)
	}

	e.logRound(prediction, next, win, winProbability)
	e.updateMissionAfterRound(win)
	e.afterRound(win, winProbability)
	if e.session.Balance <= 0 {
		e.io.Print("[SYSTEM] Balance depleted. Better luck next time.")
		e.terminate("balance depleted")
		return
	}
	e.checkFinalExtraction()
	if e.phase != PhaseDealing {
		return
	}
	e.checkDeckDepleted(&next)
}

// promptPrediction asks for a call, routing commands along the way. The
// second return is false when a command changed phase or input closed.
func (e *Engine) promptPrediction(table PayoutTable) (Prediction, bool) {
	ctx := e.commandContext()
	for {
		raw, err := e.io.Prompt("Higher or lower? [H/L] > ")
		if err != nil {
			e.terminate("input closed at prediction prompt")
			return Higher, false
		}
		if result, matched := e.interp.Interpret(raw, ctx); matched {
			if e.applyCommandResult(result) {
				return Higher, false
			}
			continue
		}

		prediction, err := ParsePrediction(raw)
		if err != nil {
			e.io.Print("Invalid prediction. Use higher (h) or lower (l).")
			continue
		}
		if table.PayoutFor(prediction) == nil {
			e.io.Print("No winning outcomes for that call.")
			continue
		}
		return prediction, true
	}
}

// applyCommandResult moves the engine per the command. Returns true
// when the current round is interrupted.
func (e *Engine) applyCommandResult(result CommandResult) bool {
	if result.ShouldExit {
		e.terminate("player exit")
		return true
	}
	if result.NextPhase != PhaseNone {
		e.phase = result.NextPhase
		return true
	}
	return false
}

func (e *Engine) commandContext() *CommandContext {
	return &CommandContext{
		IO:      e.io,
		Session: e.session,
		Store:   e.store,
		Logger:  e.logger,
	}
}

func (e *Engine) buildPayouts(o odds.WinOdds) PayoutTable {
	return BuildPayouts(o, e.session.Stake(), e.session.Upgrades.OddsMultiplier(), e.cfg.Game.HouseEdge)
}

func (e *Engine) displayOdds(exact odds.WinOdds, table PayoutTable, blind bool) {
	if blind {
		e.io.Print("Blind round active. Odds are classified.")
		e.io.Print(fmt.Sprintf("Stake: %d", table.Stake))
		return
	}
	if e.session.Upgrades.AICounter {
		e.io.Print("Odds:")
		e.io.Print("AI Counter:")
		e.showOddsLine("Higher", exact.Higher)
		e.showOddsLine("Lower", exact.Lower)
		if exact.Joker > 0 {
			e.showOddsLine("Joker auto-win", exact.Joker)
		}
		e.io.Print(fmt.Sprintf("Stake: %d", table.Stake))
		e.io.Print(fmt.Sprintf("Payout if Higher: %s | Payout if Lower: %s",
			payoutLabel(table.Higher), payoutLabel(table.Lower)))
		return
	}
	e.io.Print("Odds: [LOCKED] Install the AI Card Counter to reveal.")
	e.io.Print(fmt.Sprintf("Stake: %d | Payout: [LOCKED]", table.Stake))
}

func (e *Engine) showOddsLine(label string, probability float64) {
	if probability <= 0 {
		e.io.Print(fmt.Sprintf("%s: N/A", label))
		return
	}
	e.io.Print(fmt.Sprintf("%s: %.1f%%", label, probability*100))
}

func payoutLabel(payout *int) string {
	if payout == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *payout)
}

func (e *Engine) applyBonusMultiplier(payout int) int {
	if e.activeMission == nil {
		return payout
	}
	multiplier := e.activeMission.Definition.BonusMultiplier
	if multiplier <= 1 {
		return payout
	}
	return payout * multiplier
}

func (e *Engine) applyWin(payout, stake int) {
	e.session.Balance += payout
	profit := payout - stake
	if profit > 0 {
		e.session.TotalCredits += profit
	}
	e.io.Print(fmt.Sprintf("WIN +%d | Balance: %d", profit, e.session.Balance))
}

func (e *Engine) applyLoss(stake int) {
	e.io.Print(fmt.Sprintf("LOSS -%d | Balance: %d", stake, e.session.Balance))
}

func (e *Engine) dealCard() (deck.Card, error) {
	if e.deck == nil {
		return deck.Card{}, fmt.Errorf("deck is not initialised")
	}
	card, err := e.deck.Deal()
	if err != nil {
		return deck.Card{}, err
	}
	e.watcher.Notify(e.deck.Remaining())
	return card, nil
}

// dealStartingCard deals until a non-joker comes up, priming fresh
// decks as needed. Returns nil only if the engine terminated mid-deal.
func (e *Engine) dealStartingCard() *deck.Card {
	for {
		if e.deck == nil || e.deck.IsEmpty() {
			e.primeDeck(false)
		}
		if e.phase == PhaseTerminated {
			return nil
		}
		card, err := e.dealCard()
		if err != nil {
			e.logger.Error("starting deal failed", "error", err)
			e.terminate("deck corrupted")
			return nil
		}
		if !card.IsJoker() {
			return &card
		}
		e.io.Print("Joker intercepted. Cycling buffer...")
	}
}

// primeDeck builds and shuffles a fresh deck. Reshuffles between decks
// also run the depletion interlude, deck-completion bookkeeping and the
// calibration gate.
func (e *Engine) primeDeck(initial bool) {
	if !initial {
		e.showReshuffleSequence()
		e.recordDeckCompletion()
	}
	jokers := e.session.JokerCount(e.cfg.Game.BaseJokers)
	e.deck = deck.New(deck.WithJokers(jokers), deck.WithRand(e.rng))
	e.deck.Shuffle()
	e.watcher.Notify(e.deck.Remaining())
	e.logger.Info("deck primed",
		"cards", e.deck.Len(),
		"jokers", jokers,
		"decks_completed", e.session.DecksCompleted)
	e.handleCalibration()
	if !initial && e.phase != PhaseTerminated {
		e.remindOptionalMenus()
	}
}

// checkDeckDepleted rotates the current card after a round, priming a
// fresh deck first when this one is spent.
func (e *Engine) checkDeckDepleted(next *deck.Card) {
	if e.deck == nil || e.deck.IsEmpty() {
		e.primeDeck(false)
		e.current = e.dealStartingCard()
		return
	}
	if next != nil {
		e.current = next
	}
}

func (e *Engine) remindOptionalMenus() {
	if !e.session.VisitedShop || !e.session.VisitedSettings {
		e.io.Print("Reminder: type 'shop' or 'settings' to upgrade your rig.")
	}
}

func (e *Engine) checkFinalExtraction() {
	if e.session.TotalCredits < e.cfg.Game.FinalCredits {
		return
	}
	e.finalExtraction()
	e.terminate("vault drained")
}

func (e *Engine) finalExtraction() {
	e.io.Clear()
	lines := []string{
		"> Incoming secure channel...",
		"> [REDACTED]: Operator... do you see that spike?",
		"> That's it. One hundred million extracted.",
		"> Evil Corp's vault just flatlined.",
		"",
		"> You did what we couldn't. The money trail is severed.",
		"> Stand down, old friend. You've earned the shadows.",
		"",
		"> Mission status: COMPLETE.",
	}
	for _, line := range lines {
		e.io.RevealSlow(line)
	}
	e.io.Print("===================================")
	e.io.Print("           SYSTEM PURGE            ")
	e.io.Print("===================================")
}

func (e *Engine) showIntroStory() {
	story := []string{
		"> Incoming encrypted message...",
		"> Decrypting...",
		"",
		"\"Hey old friend. I know you're out of the game, but we need you.",
		" Evil Corp. Ring any bells? They're up to something catastrophic.",
		" We can't touch them legally - too well connected.",
		"",
		" But we found an opening. Their online casino has a card game called Higher or Lower.",
		" Our analysts found an exploit in the RNG.",
		" We've already patched your terminal with the algorithm.",
		"",
		" Your mission: Play Higher or Lower to drain them dry!",
		" Every dollar you take is a dollar they can't use for... whatever they're planning.",
		"",
		" The cards are in your favor now, operator.",
		" Good luck.",
		" - [REDACTED]\"",
		"",
	}
	for _, line := range story {
		e.io.Reveal(line)
	}
	for _, line := range titleArt {
		e.io.Print(line)
	}
	system := []string{
		"",
		"> SYSTEM INITIALIZED...",
		"> ACCESS GRANTED TO CASINO_CORE_V4.2",
		"> MISSION: DRAIN THE VAULT",
		"> INFO: Play higher or lower until you have drained the vault of Evil Corp.",
		"",
	}
	for _, line := range system {
		e.io.Reveal(line)
	}
}

var titleArt = []string{
	` _______   _______    ______   ______  __    __ `,
	`/       \ /       \  /      \ /      |/  \  /  |`,
	`$$$$$$$  |$$$$$$$  |/$$$$$$  |$$$$$$/ $$  \ $$ |`,
	`$$ |  $$ |$$ |__$$ |$$ |__$$ |  $$ |  $$$  \$$ |`,
	`$$ |  $$ |$$    $$< $$    $$ |  $$ |  $$$$  $$ |`,
	`$$ |  $$ |$$$$$$$  |$$$$$$$$ |  $$ |  $$ $$ $$ |`,
	`$$ |__$$ |$$ |  $$ |$$ |  $$ | _$$ |_ $$ |$$$$ |`,
	`$$    $$/ $$ |  $$ |$$ |  $$ |/ $$   |$$ | $$$ |`,
	`$$$$$$$/  $$/   $$/ $$/   $$/ $$$$$$/ $$/   $$/ `,
	`                                                `,
	`                                                `,
	`                                                `,
	` ________  __    __  ________                   `,
	`/        |/  |  /  |/        |                  `,
	`$$$$$$$$/ $$ |  $$ |$$$$$$$$/                   `,
	`   $$ |   $$ |__$$ |$$ |__                      `,
	`   $$ |   $$    $$ |$$    |                     `,
	`   $$ |   $$$$$$$$ |$$$$$/                      `,
	`   $$ |   $$ |  $$ |$$ |_____                   `,
	`   $$ |   $$ |  $$ |$$       |                  `,
	`   $$/    $$/   $$/ $$$$$$$$/                   `,
	`                                                `,
	`                                                `,
	`                                                `,
	` __     __   ______   __    __  __     ________ `,
	`/  |   /  | /      \ /  |  /  |/  |   /        |`,
	`$$ |   $$ |/$$$$$$  |$$ |  $$ |$$ |   $$$$$$$$/ `,
	`$$ |   $$ |$$ |__$$ |$$ |  $$ |$$ |      $$ |   `,
	`$$  \ /$$/ $$    $$ |$$ |  $$ |$$ |      $$ |   `,
	` $$  /$$/  $$$$$$$$ |$$ |  $$ |$$ |      $$ |   `,
	`  $$ $$/   $$ |  $$ |$$ \__$$ |$$ |_____ $$ |   `,
	`   $$$/    $$ |  $$ |$$    $$/ $$       |$$ |   `,
	`    $/     $$/   $$/  $$$$$$/  $$$$$$$$/ $$/    `,
	`                                                `,
	`                                                `,
	`                                                `,
	``,
	`DRAIN THE VAULT: INFINITE CARD COUNTER`,
}

func (e *Engine) showRules() {
	rules := []string{
		"HOW TO PLAY:",
		"- Predict higher or lower each round.",
		"- Equal ranks count as a loss.",
		"- Jokers trigger an automatic win.",
		"- Each round auto-stakes your base bet (upgraded via the shop).",
		"- Payouts scale with the odds and any Odds Augmenter upgrades.",
		fmt.Sprintf("- Side missions trigger every %d rounds (toggle in settings).", e.cfg.Game.MissionInterval),
		"- Calibration may be required between decks (toggle in settings).",
		"- Type 'shop' at any prompt to buy upgrades.",
		"- Type 'settings' at any prompt to toggle visuals, missions, and calibration",
		"- Type 'achievements' to view unlocked badges.",
		"- Type 'save' to write your session.",
		"- Type 'exit' to save and leave immediately.",
		"- Type 'help' to show all command shortcuts.",
		"NOTE: Every deck requires you to recalibrate. You will need a real physical deck.",
		"If this calibration with the camera is not working, toggle it off, or pay to skip.",
		"",
	}
	for _, line := range rules {
		e.io.Print(line)
	}
}

func (e *Engine) showReshuffleSequence() {
	lines := []string{
		"",
		"> DECK DEPLETED.",
		"> FORCING BUFFER RESET...",
		"> SHUFFLING NEW 52-CARD BLOCK.",
		"> ODDS RECALIBRATING...",
	}
	for _, line := range lines {
		e.io.Reveal(line)
	}
}

// handleCalibration walks the per-deck recalibration gate: scan the
// target card with the rig or pay a cut of balance to outsource it.
func (e *Engine) handleCalibration() {
	if !e.session.CalibrationEnabled {
		return
	}
	e.save()
	target := e.calibrationTarget()
	if target == nil {
		return
	}
	e.io.Print("[CALIBRATION] Recalibration required for this deck.")
	e.io.Print(fmt.Sprintf("[CALIBRATION] Target card: %s", target.Label()))
	for {
		choice, err := e.io.Prompt("Scan card or pay to outsource [scan/pay] > ")
		if err != nil {
			e.terminate("input closed at calibration")
			return
		}
		switch normalizeChoice(choice) {
		case "scan", "s":
			e.io.Print("Please show the card requested up the camera.")
			e.io.Print("Launching scanner... Press 'q' to quit.")
			if e.runScan(*target) {
				return
			}
		case "pay", "p", "outsource":
			fee := max(1, int(math.Round(float64(e.session.Balance)*0.10)))
			e.session.Balance = max(0, e.session.Balance-fee)
			e.logger.Info("calibration outsourced", "fee", fee, "balance", e.session.Balance)
			e.io.Print(fmt.Sprintf("Outsourced calibration. Fee deducted: %d.", fee))
			return
		default:
			e.io.Print("Type 'scan' or 'pay' to continue.")
		}
	}
}

// runScan attempts one scanner pass. Returns true when calibration is
// settled (locked on or skipped), false to reprompt.
func (e *Engine) runScan(target deck.Card) bool {
	if e.calibrator == nil {
		e.io.Print("Calibration skipped: cant connect to the camera.")
		e.io.Print("scanner is not configured")
		return true
	}
	detected, err := e.calibrator.Scan(target.ScanLabel(), target.Label())
	if err != nil {
		e.logger.Warn("scanner unavailable", "error", err)
		e.io.Print("Calibration skipped: cant connect to the camera.")
		e.io.Print(err.Error())
		return true
	}
	if detected != "" {
		e.logger.Info("calibration locked", "card", detected)
		e.io.Print(fmt.Sprintf("Calibration locked on: %s", detected))
		return true
	}
	e.io.Print("Scanner closed. Try again or pay to outsource.")
	return false
}

// calibrationTarget picks a random non-joker card from the live deck
func (e *Engine) calibrationTarget() *deck.Card {
	if e.deck == nil {
		return nil
	}
	candidates := make([]deck.Card, 0, e.deck.Len())
	for _, card := range e.deck.Remaining() {
		if !card.IsJoker() {
			candidates = append(candidates, card)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	pick := candidates[e.rng.Intn(len(candidates))]
	return &pick
}

func (e *Engine) afterRound(win bool, winProbability float64) {
	e.roundsCompleted++
	if win {
		e.session.WinStreak++
		if e.session.WinStreak > e.session.MaxWinStreak {
			e.session.MaxWinStreak = e.session.WinStreak
		}
		if e.session.WinStreak >= 5 {
			e.unlockAchievement(session.AchWinStreak5)
		}
		if e.session.WinStreak >= 10 {
			e.unlockAchievement(session.AchWinStreak10)
		}
		if winProbability < 0.10 {
			e.unlockAchievement(session.AchStatisticalAnomaly)
		}
	} else {
		e.session.WinStreak = 0
	}
	e.checkCreditAchievements()
	e.maybeScheduleMission()
}

func (e *Engine) maybeScheduleMission() {
	if !e.session.SideMissionsEnabled {
		return
	}
	if e.activeMission != nil || e.pendingMission != nil {
		return
	}
	if e.roundsCompleted == 0 || e.roundsCompleted%e.cfg.Game.MissionInterval != 0 {
		return
	}
	def := e.missions.RandomDefinition()
	e.pendingMission = &def
	e.logger.Info("side mission queued", "kind", def.Kind, "round", e.roundsCompleted)
}

func (e *Engine) offerMission() {
	if e.pendingMission == nil {
		return
	}
	if !e.session.SideMissionsEnabled {
		e.pendingMission = nil
		return
	}
	def := *e.pendingMission
	e.pendingMission = nil

	e.io.Print("")
	e.io.Print("=== SIDE MISSION ===")
	e.io.Print(def.Title)
	for _, line := range def.Description {
		e.io.Print(fmt.Sprintf("- %s", line))
	}
	if def.SkipPenaltyRatio > 0 {
		e.io.Print(fmt.Sprintf("Skip penalty: %d%% of balance.", int(def.SkipPenaltyRatio*100)))
	} else {
		e.io.Print("Skip this mission to forfeit the bonus.")
	}

	ctx := e.commandContext()
	for {
		raw, err := e.io.Prompt("Accept mission? [Y/skip] > ")
		if err != nil {
			e.pendingMission = &def
			e.terminate("input closed at mission offer")
			return
		}
		if result, matched := e.interp.Interpret(raw, ctx); matched {
			if e.applyCommandResult(result) {
				e.pendingMission = &def
				return
			}
			continue
		}
		switch normalizeChoice(raw) {
		case "", "y", "yes", "accept":
			e.activeMission = e.missions.Start(def)
			e.logger.Info("side mission accepted", "kind", def.Kind)
			e.io.Print("Mission accepted.")
			return
		case "skip", "s", "n", "no":
			e.applyMissionSkip(def)
			return
		default:
			e.io.Print("Type 'y' to accept or 'skip' to skip.")
		}
	}
}

func (e *Engine) applyMissionSkip(def MissionDefinition) {
	if def.SkipPenaltyRatio > 0 {
		fee := max(1, int(math.Round(float64(e.session.Balance)*def.SkipPenaltyRatio)))
		e.session.Balance = max(0, e.session.Balance-fee)
		e.logger.Info("side mission skipped", "kind", def.Kind, "fee", fee)
		e.io.Print(fmt.Sprintf("Skip fee paid: %d. Mission aborted.", fee))
		return
	}
	e.logger.Info("side mission skipped", "kind", def.Kind)
	e.io.Print("Mission skipped. Bonus forfeited.")
}

func (e *Engine) updateMissionAfterRound(win bool) {
	if e.activeMission == nil {
		return
	}
	mission := e.activeMission

	switch mission.Advance(win) {
	case MissionCompleted:
		if mission.Definition.Kind == DoubleOrNothing {
			e.doubleBalanceReward()
		}
		e.unlockAchievement(session.AchShadowOperator)
		e.logger.Info("side mission completed", "kind", mission.Definition.Kind)
		e.io.Print("Side mission complete.")
		e.activeMission = nil
	case MissionFailed:
		e.logger.Info("side mission failed", "kind", mission.Definition.Kind)
		e.io.Print("Side mission ended.")
		e.activeMission = nil
	}
}

func (e *Engine) doubleBalanceReward() {
	before := e.session.Balance
	e.session.Balance *= 2
	e.session.TotalCredits += before
	e.io.Print(fmt.Sprintf("Double or Nothing success! Balance doubled to %d.", e.session.Balance))
}

func (e *Engine) checkCreditAchievements() {
	if e.session.TotalCredits >= 1_000_000 {
		e.unlockAchievement(session.AchHighRoller)
	}
	if e.session.TotalCredits >= e.cfg.Game.FinalCredits {
		e.unlockAchievement(session.AchVaultBreaker)
	}
}

func (e *Engine) recordDeckCompletion() {
	e.session.DecksCompleted++
	if e.session.DecksCompleted >= 1 {
		e.unlockAchievement(session.AchFirstDeck)
	}
	if e.session.DecksCompleted >= 5 {
		e.unlockAchievement(session.AchLongHaul)
	}
}

func (e *Engine) checkShopAchievements() {
	u := e.session.Upgrades
	if u.OddsLevel > 0 || u.BetLevel > 0 || u.AICounter || u.JokerLevel > 0 {
		e.unlockAchievement(session.AchFirstPurchase)
	}
	if u.OddsLevel >= 7 && u.BetLevel >= 7 && u.AICounter && u.JokerLevel >= 1 {
		e.unlockAchievement(session.AchMarketManipulator)
	}
}

func (e *Engine) unlockAchievement(key string) {
	if !e.session.Unlock(key) {
		return
	}
	e.logger.Info("achievement unlocked", "key", key)
	e.io.Print(fmt.Sprintf("[ACHIEVEMENT UNLOCKED] %s", session.AchievementName(key)))
	e.save()
}

func (e *Engine) logRound(prediction Prediction, next deck.Card, win bool, winProbability float64) {
	e.logger.Info("round resolved",
		"round", e.roundsCompleted+1,
		"prediction", prediction,
		"card", next,
		"win", win,
		"probability", winProbability,
		"balance", e.session.Balance)
}

func (e *Engine) terminate(reason string) {
	e.logger.Info("session terminated", "reason", reason, "rounds", e.roundsCompleted)
	e.phase = PhaseTerminated
}

func (e *Engine) save() {
	if err := e.store.Save(e.session); err != nil {
		e.logger.Error("save failed", "error", err)
	}
}
