// Package game implements the higher/lower engine: round resolution,
// payouts, side missions, the shop and the command layer that ties a
// session to the terminal.
package game

// Phase represents the engine's current mode. PhaseNone is not a real
// phase; commands use it to mean "stay where you are".
type Phase int

const (
	PhaseNone Phase = iota
	PhaseStartup
	PhaseDealing
	PhaseShopping
	PhaseSettings
	PhaseAchievements
	PhaseTerminated
)

// String returns the phase name for logs
func (p Phase) String() string {
	switch p {
	case PhaseNone:
		return "none"
	case PhaseStartup:
		return "startup"
	case PhaseDealing:
		return "dealing"
	case PhaseShopping:
		return "shopping"
	case PhaseSettings:
		return "settings"
	case PhaseAchievements:
		return "achievements"
	case PhaseTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
