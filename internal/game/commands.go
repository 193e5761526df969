package game

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/cardsharp/drainvault/internal/session"
)

// CommandContext carries what commands need to act on
type CommandContext struct {
	IO      IO
	Session *session.Session
	Store   *session.Store
	Logger  *log.Logger
}

// CommandResult describes what a recognized command asks the engine to
// do. NextPhase of PhaseNone means the round continues.
type CommandResult struct {
	NextPhase  Phase
	ShouldExit bool
}

// Command is a text command the player can type at any game prompt
type Command interface {
	Execute(ctx *CommandContext) CommandResult
}

// Interpreter routes recognized tokens to commands. Anything it does
// not recognize falls through to the prediction parser.
type Interpreter struct {
	commands map[string]Command
}

// NewInterpreter creates an interpreter with the standard command set
func NewInterpreter() *Interpreter {
	shop := shopCommand{}
	achievements := achievementsCommand{}
	exit := exitCommand{}
	return &Interpreter{
		commands: map[string]Command{
			"shop":         shop,
			"store":        shop,
			"settings":     settingsCommand{},
			"achievements": achievements,
			"achieve":      achievements,
			"save":         saveCommand{},
			"exit":         exit,
			"quit":         exit,
			"help":         helpCommand{},
		},
	}
}

// Interpret executes a matching command. The second return is false
// when the input matched nothing.
func (i *Interpreter) Interpret(raw string, ctx *CommandContext) (CommandResult, bool) {
	command, ok := i.commands[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return CommandResult{}, false
	}
	return command.Execute(ctx), true
}

type shopCommand struct{}

func (shopCommand) Execute(ctx *CommandContext) CommandResult {
	ctx.IO.Print("[SHOP] Routing to the black market...")
	return CommandResult{NextPhase: PhaseShopping}
}

type settingsCommand struct{}

func (settingsCommand) Execute(ctx *CommandContext) CommandResult {
	ctx.IO.Print("[SETTINGS] Opening visual controls...")
	return CommandResult{NextPhase: PhaseSettings}
}

type achievementsCommand struct{}

func (achievementsCommand) Execute(ctx *CommandContext) CommandResult {
	ctx.IO.Print("[ACHIEVEMENTS] Pulling classified record...")
	return CommandResult{NextPhase: PhaseAchievements}
}

type saveCommand struct{}

func (saveCommand) Execute(ctx *CommandContext) CommandResult {
	if err := ctx.Store.Save(ctx.Session); err != nil {
		ctx.Logger.Error("save failed", "error", err)
		ctx.IO.Print("[SAVE] Write failed. Session not saved.")
		return CommandResult{}
	}
	ctx.IO.Print("[SAVE] Session written to disk.")
	return CommandResult{}
}

type exitCommand struct{}

func (exitCommand) Execute(ctx *CommandContext) CommandResult {
	if err := ctx.Store.Save(ctx.Session); err != nil {
		ctx.Logger.Error("save on exit failed", "error", err)
	}
	ctx.IO.Print("[EXIT] Session saved. Disconnecting...")
	return CommandResult{ShouldExit: true}
}

type helpCommand struct{}

func (helpCommand) Execute(ctx *CommandContext) CommandResult {
	lines := []string{
		"",
		"COMMANDS:",
		"shop     -> open the black-market shop",
		"settings -> toggle visual effects",
		"achievements -> view mission badges",
		"save     -> save your current run",
		"exit     -> save and leave the terminal",
		"help     -> show this list",
		"",
	}
	for _, line := range lines {
		ctx.IO.Print(line)
	}
	return CommandResult{}
}
