package game

import (
	"fmt"
	"strings"

	"github.com/cardsharp/drainvault/internal/session"
)

// openSettings runs the settings toggle loop until the player backs out.
func (e *Engine) openSettings() error {
	e.session.VisitedSettings = true
	for {
		e.io.Print("")
		e.io.Print("=== VISUAL SETTINGS ===")
		e.io.Print(fmt.Sprintf("1) Card art: %s", onOff(e.session.Visual.ShowCardArt)))
		e.io.Print(fmt.Sprintf("2) Typewriter effect: %s", onOff(e.session.Visual.Typewriter)))
		e.io.Print(fmt.Sprintf("3) Side missions: %s", onOff(e.session.SideMissionsEnabled)))
		e.io.Print(fmt.Sprintf("4) Calibration: %s", onOff(e.session.CalibrationEnabled)))
		e.io.Print("B) Back to mission")

		choice, err := e.io.Prompt("Select an option: ")
		if err != nil {
			return err
		}
		switch normalizeChoice(choice) {
		case "b", "back", "exit":
			return nil
		case "1":
			e.session.Visual.ShowCardArt = !e.session.Visual.ShowCardArt
			e.io.ApplyVisual(e.session.Visual)
		case "2":
			e.session.Visual.Typewriter = !e.session.Visual.Typewriter
			e.io.ApplyVisual(e.session.Visual)
		case "3":
			e.session.SideMissionsEnabled = !e.session.SideMissionsEnabled
		case "4":
			e.session.CalibrationEnabled = !e.session.CalibrationEnabled
		default:
			e.io.Print("Unknown selection.")
		}
	}
}

// openAchievements renders the badge list and waits for the player.
func (e *Engine) openAchievements() error {
	e.io.Print("")
	e.io.Print("=== ACHIEVEMENTS ===")
	for _, achievement := range session.AchievementCatalog {
		status := "LOCKED"
		if e.session.Unlocked(achievement.Key) {
			status = "UNLOCKED"
		}
		e.io.Print(fmt.Sprintf("[%s] %s - %s", status, achievement.Name, achievement.Description))
	}
	_, err := e.io.Prompt("Press Enter to return...")
	return err
}

func onOff(enabled bool) string {
	if enabled {
		return "ON"
	}
	return "OFF"
}

func normalizeChoice(choice string) string {
	return strings.ToLower(strings.TrimSpace(choice))
}

func isBackChoice(choice string) bool {
	switch normalizeChoice(choice) {
	case "b", "back", "exit":
		return true
	}
	return false
}
