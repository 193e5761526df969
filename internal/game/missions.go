package game

import "math/rand"

// MissionKind identifies a side mission archetype
type MissionKind int

const (
	DoubleOrNothing MissionKind = iota
	BigMoney
	LuckySeven
	GoneBlind
	ReversePsychology
)

// String returns the mission kind name for logs
func (k MissionKind) String() string {
	switch k {
	case DoubleOrNothing:
		return "double_or_nothing"
	case BigMoney:
		return "big_money"
	case LuckySeven:
		return "lucky_seven"
	case GoneBlind:
		return "gone_blind"
	case ReversePsychology:
		return "reverse_psychology"
	default:
		return "unknown"
	}
}

// MissionDefinition is the immutable template for a side mission
type MissionDefinition struct {
	Kind            MissionKind
	Title           string
	Description     []string
	Rounds          int
	WinsRequired    int
	BonusMultiplier int
	ReverseLogic    bool
	BlindRounds     int
	// SkipPenaltyRatio is the share of balance charged for skipping.
	// Zero means skipping is free.
	SkipPenaltyRatio float64
}

// missionCatalog is the fixed set of missions offered to the player.
var missionCatalog = []MissionDefinition{
	{
		Kind:  DoubleOrNothing,
		Title: "DOUBLE OR NOTHING",
		Description: []string{
			"Win 3 rounds in a row to double your balance.",
			"Fail and you just carry on as normal.",
		},
		WinsRequired:    3,
		BonusMultiplier: 1,
	},
	{
		Kind:            BigMoney,
		Title:           "BIG MONEY",
		Description:     []string{"Your next win pays 5x."},
		Rounds:          1,
		BonusMultiplier: 5,
	},
	{
		Kind:  LuckySeven,
		Title: "LUCKY SEVEN",
		Description: []string{
			"Next 7 rounds pay triple.",
			"First loss ends the bonus early.",
		},
		Rounds:          7,
		BonusMultiplier: 3,
	},
	{
		Kind:  GoneBlind,
		Title: "GONE BLIND",
		Description: []string{
			"Next 3 rounds you play blind.",
			"Pay 10% of balance to skip.",
		},
		Rounds:           3,
		BlindRounds:      3,
		BonusMultiplier:  1,
		SkipPenaltyRatio: 0.10,
	},
	{
		Kind:  ReversePsychology,
		Title: "REVERSE PSYCHOLOGY",
		Description: []string{
			"Next 3 rounds you must guess wrong to win.",
			"Equal still loses.",
		},
		Rounds:          3,
		ReverseLogic:    true,
		BonusMultiplier: 1,
	},
}

// MissionState tracks one accepted mission as rounds resolve
type MissionState struct {
	Definition MissionDefinition
	RoundsLeft int
	WinsInRow  int
	Active     bool
	Completed  bool
	Failed     bool
}

// IsBlind reports whether the mission hides the current card right now.
// Exhausted missions stop being blind even before they are cleared.
func (s *MissionState) IsBlind() bool {
	return s.Definition.BlindRounds > 0 && s.RoundsLeft > 0
}

// IsReverse reports whether the mission inverts scoring right now
func (s *MissionState) IsReverse() bool {
	return s.Definition.ReverseLogic && s.RoundsLeft > 0
}

// MissionOutcome is the state transition one round produced
type MissionOutcome int

const (
	MissionContinue MissionOutcome = iota
	MissionCompleted
	MissionFailed
)

// advanceFunc advances one mission kind after a resolved round. Funcs
// only move counters; Advance owns the terminal bookkeeping.
type advanceFunc func(s *MissionState, win bool) MissionOutcome

var missionAdvance = map[MissionKind]advanceFunc{
	DoubleOrNothing:   advanceDoubleOrNothing,
	BigMoney:          advanceBigMoney,
	LuckySeven:        advanceLuckySeven,
	GoneBlind:         advanceGoneBlind,
	ReversePsychology: advanceReversePsychology,
}

// Advance applies one resolved round to the mission and deactivates it
// on a terminal outcome.
func (s *MissionState) Advance(win bool) MissionOutcome {
	outcome := missionAdvance[s.Definition.Kind](s, win)
	switch outcome {
	case MissionCompleted:
		s.Completed = true
		s.Active = false
	case MissionFailed:
		s.Failed = true
		s.Active = false
	}
	return outcome
}

func advanceDoubleOrNothing(s *MissionState, win bool) MissionOutcome {
	if !win {
		return MissionFailed
	}
	s.WinsInRow++
	if s.WinsInRow >= s.Definition.WinsRequired {
		return MissionCompleted
	}
	return MissionContinue
}

func advanceBigMoney(s *MissionState, win bool) MissionOutcome {
	if win {
		return MissionCompleted
	}
	return MissionFailed
}

func advanceLuckySeven(s *MissionState, win bool) MissionOutcome {
	if !win {
		return MissionFailed
	}
	s.RoundsLeft--
	if s.RoundsLeft <= 0 {
		return MissionCompleted
	}
	return MissionContinue
}

// GoneBlind runs its rounds down win or lose and cannot fail.
func advanceGoneBlind(s *MissionState, win bool) MissionOutcome {
	s.RoundsLeft--
	if s.RoundsLeft <= 0 {
		return MissionCompleted
	}
	return MissionContinue
}

func advanceReversePsychology(s *MissionState, win bool) MissionOutcome {
	if !win {
		return MissionFailed
	}
	s.RoundsLeft--
	if s.RoundsLeft <= 0 {
		return MissionCompleted
	}
	return MissionContinue
}

// MissionManager selects and instantiates side missions
type MissionManager struct {
	rng *rand.Rand
}

// NewMissionManager creates a manager drawing from the full catalog
func NewMissionManager(rng *rand.Rand) *MissionManager {
	return &MissionManager{rng: rng}
}

// RandomDefinition returns a uniformly random mission from the catalog
func (m *MissionManager) RandomDefinition() MissionDefinition {
	return missionCatalog[m.rng.Intn(len(missionCatalog))]
}

// Start instantiates tracking state for a definition. Missions without
// a round budget run on their win requirement instead.
func (m *MissionManager) Start(def MissionDefinition) *MissionState {
	rounds := def.Rounds
	if rounds == 0 {
		rounds = def.WinsRequired
	}
	return &MissionState{
		Definition: def,
		RoundsLeft: rounds,
		Active:     true,
	}
}
