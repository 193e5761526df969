package game

import (
	"github.com/cardsharp/drainvault/internal/deck"
	"github.com/cardsharp/drainvault/internal/session"
)

// IO is the player-facing surface the engine drives. Implementations own
// pacing and styling; the engine never touches the terminal directly.
type IO interface {
	// Print displays a line immediately.
	Print(msg string)
	// Reveal displays a line through the typewriter effect when the
	// player has it enabled.
	Reveal(msg string)
	// RevealSlow displays a line at cut-scene pacing regardless of the
	// typewriter toggle.
	RevealSlow(msg string)
	// ShowCard renders a single card.
	ShowCard(card deck.Card)
	// Prompt displays a prompt and blocks for one line of input. A
	// non-nil error means the input stream is gone and the caller
	// should wind the game down.
	Prompt(prompt string) (string, error)
	// Clear clears the screen.
	Clear()
	// ApplyVisual applies the player's visual settings.
	ApplyVisual(v session.Visual)
}

// Calibrator locks the physical rig onto a target card between decks.
type Calibrator interface {
	// Scan blocks until the target card is detected, the player aborts,
	// or the scanner fails. targetLabel is the scanner code ("QS"),
	// displayLabel the human-readable name. An abort returns ("", nil);
	// a broken or unreachable scanner returns an error.
	Scan(targetLabel, displayLabel string) (string, error)
}
