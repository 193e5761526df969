package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/cardsharp/drainvault/internal/config"
	"github.com/cardsharp/drainvault/internal/game"
	"github.com/cardsharp/drainvault/internal/randutil"
	"github.com/cardsharp/drainvault/internal/scanner"
	"github.com/cardsharp/drainvault/internal/session"
	"github.com/cardsharp/drainvault/internal/ui"
)

type PlayCmd struct {
	Save    string `default:"drainvault.json" help:"Path to the session save file"`
	Config  string `default:"drainvault.hcl" help:"Path to the tuning config (missing file uses defaults)"`
	Seed    int64  `default:"0" help:"RNG seed (0 for random)"`
	Debug   bool   `help:"Enable debug logging"`
	NoColor bool   `help:"Disable colors and styling"`
}

func (c *PlayCmd) Run() error {
	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Gameplay logging goes to a file so the terminal stays clean.
	logFile, err := os.OpenFile(cfg.Game.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	if c.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := randutil.New(seed)
	logger.Info("Starting up", "seed", seed, "save", c.Save)

	console := ui.NewConsole(os.Stdin, os.Stdout, ui.WithTypewriterDelay(cfg.TypewriterDelay()))
	store := session.NewStore(c.Save)
	calibrator := scanner.NewTerminalCalibrator(cfg.Scanner, logger)

	sess, resume := restoreSession(console, store)

	for {
		engine := game.NewEngine(console, store, sess, cfg, logger,
			game.WithRand(rng),
			game.WithCalibrator(calibrator),
			game.WithResume(resume),
		)
		engine.Run()

		if err := store.Save(sess); err != nil {
			logger.Error("Failed to save session", "error", err)
		}

		console.Print("Play again? (y/n)")
		choice, err := console.Prompt("> ")
		if err != nil || !isYes(choice) {
			break
		}

		// A replay starts a fresh run but keeps the operator's
		// display and feature preferences.
		fresh := session.New()
		fresh.Visual = sess.Visual
		fresh.SideMissionsEnabled = sess.SideMissionsEnabled
		fresh.CalibrationEnabled = sess.CalibrationEnabled
		sess = fresh
		resume = false
	}

	return nil
}

// restoreSession offers to resume a detected save. A corrupt save falls
// back to a fresh session rather than erroring out.
func restoreSession(console *ui.Console, store *session.Store) (*session.Session, bool) {
	if !store.Exists() {
		return session.New(), false
	}

	console.Print("Saved session detected. Resume? (y/n)")
	choice, err := console.Prompt("> ")
	if err != nil || !isYes(choice) {
		return session.New(), false
	}

	sess := store.Load()
	if sess == nil {
		console.Print("Save file corrupt. Starting fresh.")
		return session.New(), false
	}
	return sess, true
}

func isYes(choice string) bool {
	switch strings.ToLower(strings.TrimSpace(choice)) {
	case "y", "yes":
		return true
	}
	return false
}
