package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func missionByKind(t *testing.T, kind MissionKind) MissionDefinition {
	t.Helper()
	for _, def := range missionCatalog {
		if def.Kind == kind {
			return def
		}
	}
	t.Fatalf("mission kind %v not in catalog", kind)
	return MissionDefinition{}
}

func TestDoubleOrNothingCompletesAfterStreak(t *testing.T) {
	manager := NewMissionManager(rand.New(rand.NewSource(1)))
	state := manager.Start(missionByKind(t, DoubleOrNothing))

	require.Equal(t, MissionContinue, state.Advance(true))
	require.Equal(t, MissionContinue, state.Advance(true))
	require.Equal(t, MissionCompleted, state.Advance(true))
	require.True(t, state.Completed)
	require.False(t, state.Active)
}

func TestDoubleOrNothingFailsOnFirstLoss(t *testing.T) {
	manager := NewMissionManager(rand.New(rand.NewSource(1)))
	state := manager.Start(missionByKind(t, DoubleOrNothing))

	require.Equal(t, MissionContinue, state.Advance(true))
	require.Equal(t, MissionFailed, state.Advance(false))
	require.True(t, state.Failed)
	require.False(t, state.Active)
}

func TestBigMoneyResolvesInOneRound(t *testing.T) {
	manager := NewMissionManager(rand.New(rand.NewSource(1)))

	win := manager.Start(missionByKind(t, BigMoney))
	require.Equal(t, MissionCompleted, win.Advance(true))

	loss := manager.Start(missionByKind(t, BigMoney))
	require.Equal(t, MissionFailed, loss.Advance(false))
}

func TestLuckySevenCountsDownOnWins(t *testing.T) {
	manager := NewMissionManager(rand.New(rand.NewSource(1)))
	state := manager.Start(missionByKind(t, LuckySeven))
	require.Equal(t, 7, state.RoundsLeft)

	for i := 0; i < 6; i++ {
		require.Equal(t, MissionContinue, state.Advance(true))
	}
	require.Equal(t, MissionCompleted, state.Advance(true))
}

func TestLuckySevenEndsOnLoss(t *testing.T) {
	manager := NewMissionManager(rand.New(rand.NewSource(1)))
	state := manager.Start(missionByKind(t, LuckySeven))

	require.Equal(t, MissionContinue, state.Advance(true))
	require.Equal(t, MissionFailed, state.Advance(false))
}

func TestGoneBlindNeverFails(t *testing.T) {
	manager := NewMissionManager(rand.New(rand.NewSource(1)))
	state := manager.Start(missionByKind(t, GoneBlind))

	require.True(t, state.IsBlind())
	require.Equal(t, MissionContinue, state.Advance(false))
	require.Equal(t, MissionContinue, state.Advance(false))
	require.Equal(t, MissionCompleted, state.Advance(false))
	require.True(t, state.Completed)
	require.False(t, state.Failed)
}

func TestBlindLiftsWhenRoundsRunOut(t *testing.T) {
	manager := NewMissionManager(rand.New(rand.NewSource(1)))
	state := manager.Start(missionByKind(t, GoneBlind))

	state.Advance(false)
	state.Advance(false)
	require.True(t, state.IsBlind())
	state.Advance(false)
	require.False(t, state.IsBlind())
}

func TestReversePsychologyScoring(t *testing.T) {
	manager := NewMissionManager(rand.New(rand.NewSource(1)))
	state := manager.Start(missionByKind(t, ReversePsychology))

	require.True(t, state.IsReverse())
	require.Equal(t, MissionContinue, state.Advance(true))
	require.Equal(t, MissionContinue, state.Advance(true))
	require.Equal(t, MissionCompleted, state.Advance(true))
	require.False(t, state.IsReverse())
}

func TestReversePsychologyFailsOnLoss(t *testing.T) {
	manager := NewMissionManager(rand.New(rand.NewSource(1)))
	state := manager.Start(missionByKind(t, ReversePsychology))

	require.Equal(t, MissionFailed, state.Advance(false))
}

func TestStartFallsBackToWinsRequired(t *testing.T) {
	manager := NewMissionManager(rand.New(rand.NewSource(1)))
	state := manager.Start(missionByKind(t, DoubleOrNothing))

	// DoubleOrNothing has no round budget, only a win requirement.
	require.Equal(t, 3, state.RoundsLeft)
	require.True(t, state.Active)
}

func TestRandomDefinitionDrawsFromCatalog(t *testing.T) {
	manager := NewMissionManager(rand.New(rand.NewSource(7)))

	seen := make(map[MissionKind]bool)
	for i := 0; i < 100; i++ {
		def := manager.RandomDefinition()
		seen[def.Kind] = true
	}
	// 100 draws over 5 kinds covers the whole catalog.
	require.Len(t, seen, len(missionCatalog))
}
