// Package config loads game tuning from an HCL file. Every knob has a
// shipped default; a missing file is not an error.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete game configuration
type Config struct {
	Game    *GameSettings    `hcl:"game,block"`
	Scanner *ScannerSettings `hcl:"scanner,block"`
}

// GameSettings contains the economy and pacing knobs
type GameSettings struct {
	StartingBalance   int     `hcl:"starting_balance,optional"`
	BaseBet           int     `hcl:"base_bet,optional"`
	HouseEdge         float64 `hcl:"house_edge,optional"`
	BaseJokers        int     `hcl:"base_jokers,optional"`
	MissionInterval   int     `hcl:"mission_interval,optional"`
	FinalCredits      int     `hcl:"final_credits,optional"`
	TypewriterDelayMS int     `hcl:"typewriter_delay_ms,optional"`
	LogFile           string  `hcl:"log_file,optional"`
}

// ScannerSettings configures the card scanner daemon connection
type ScannerSettings struct {
	URL             string  `hcl:"url,optional"`
	MinConfidence   float64 `hcl:"min_confidence,optional"`
	StabilityWindow int     `hcl:"stability_window,optional"`
	StabilityRatio  float64 `hcl:"stability_ratio,optional"`
}

// Default returns the configuration the game ships with
func Default() *Config {
	return &Config{
		Game: &GameSettings{
			StartingBalance:   5000,
			BaseBet:           200,
			HouseEdge:         0.06,
			BaseJokers:        2,
			MissionInterval:   15,
			FinalCredits:      100_000_000,
			TypewriterDelayMS: 30,
			LogFile:           "drainvault.log",
		},
		Scanner: &ScannerSettings{
			URL:             "ws://localhost:9333/feed",
			MinConfidence:   0.5,
			StabilityWindow: 15,
			StabilityRatio:  0.6,
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults; unset values inside an existing file fall back per field.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func applyDefaults(config *Config) {
	defaults := Default()

	if config.Game == nil {
		config.Game = defaults.Game
	} else {
		game := config.Game
		if game.StartingBalance == 0 {
			game.StartingBalance = defaults.Game.StartingBalance
		}
		if game.BaseBet == 0 {
			game.BaseBet = defaults.Game.BaseBet
		}
		if game.HouseEdge == 0 {
			game.HouseEdge = defaults.Game.HouseEdge
		}
		if game.BaseJokers == 0 {
			game.BaseJokers = defaults.Game.BaseJokers
		}
		if game.MissionInterval == 0 {
			game.MissionInterval = defaults.Game.MissionInterval
		}
		if game.FinalCredits == 0 {
			game.FinalCredits = defaults.Game.FinalCredits
		}
		if game.TypewriterDelayMS == 0 {
			game.TypewriterDelayMS = defaults.Game.TypewriterDelayMS
		}
		if game.LogFile == "" {
			game.LogFile = defaults.Game.LogFile
		}
	}

	if config.Scanner == nil {
		config.Scanner = defaults.Scanner
	} else {
		scanner := config.Scanner
		if scanner.URL == "" {
			scanner.URL = defaults.Scanner.URL
		}
		if scanner.MinConfidence == 0 {
			scanner.MinConfidence = defaults.Scanner.MinConfidence
		}
		if scanner.StabilityWindow == 0 {
			scanner.StabilityWindow = defaults.Scanner.StabilityWindow
		}
		if scanner.StabilityRatio == 0 {
			scanner.StabilityRatio = defaults.Scanner.StabilityRatio
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game.HouseEdge < 0 || c.Game.HouseEdge >= 1 {
		return fmt.Errorf("house_edge must be in [0, 1), got %v", c.Game.HouseEdge)
	}
	if c.Game.BaseJokers < 0 {
		return fmt.Errorf("base_jokers must not be negative, got %d", c.Game.BaseJokers)
	}
	if c.Game.MissionInterval < 1 {
		return fmt.Errorf("mission_interval must be at least 1, got %d", c.Game.MissionInterval)
	}
	if c.Game.FinalCredits <= 0 {
		return fmt.Errorf("final_credits must be positive, got %d", c.Game.FinalCredits)
	}
	if c.Game.StartingBalance <= 0 {
		return fmt.Errorf("starting_balance must be positive, got %d", c.Game.StartingBalance)
	}
	if c.Game.BaseBet <= 0 {
		return fmt.Errorf("base_bet must be positive, got %d", c.Game.BaseBet)
	}
	if c.Game.TypewriterDelayMS < 0 {
		return fmt.Errorf("typewriter_delay_ms must not be negative, got %d", c.Game.TypewriterDelayMS)
	}
	if c.Scanner.MinConfidence < 0 || c.Scanner.MinConfidence > 1 {
		return fmt.Errorf("scanner min_confidence must be in [0, 1], got %v", c.Scanner.MinConfidence)
	}
	if c.Scanner.StabilityWindow < 1 {
		return fmt.Errorf("scanner stability_window must be at least 1, got %d", c.Scanner.StabilityWindow)
	}
	if c.Scanner.StabilityRatio <= 0 || c.Scanner.StabilityRatio > 1 {
		return fmt.Errorf("scanner stability_ratio must be in (0, 1], got %v", c.Scanner.StabilityRatio)
	}
	return nil
}

// TypewriterDelay returns the per-character reveal delay
func (c *Config) TypewriterDelay() time.Duration {
	return time.Duration(c.Game.TypewriterDelayMS) * time.Millisecond
}
