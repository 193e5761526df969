// Package ui renders the spy terminal: styled output, the typewriter
// effect and ASCII card art.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"

	"github.com/cardsharp/drainvault/internal/deck"
	"github.com/cardsharp/drainvault/internal/game"
	"github.com/cardsharp/drainvault/internal/session"
)

var _ game.IO = (*Console)(nil)

// Static styles for message classes
var (
	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7FDBFF"))

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	redCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	// Black suits render blue; pure black vanishes on dark terminals.
	blackCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B9BFF")).
			Bold(true)
)

const (
	defaultDelay = 30 * time.Millisecond
	slowDelay    = 80 * time.Millisecond
)

// Console is the terminal implementation of the game's IO surface
type Console struct {
	out        *termenv.Output
	in         *bufio.Reader
	clock      quartz.Clock
	delay      time.Duration
	showArt    bool
	typewriter bool
}

// Option configures a Console
type Option func(*Console)

// WithClock sets the clock driving the typewriter effect
func WithClock(clock quartz.Clock) Option {
	return func(c *Console) {
		c.clock = clock
	}
}

// WithTypewriterDelay sets the per-character reveal delay
func WithTypewriterDelay(d time.Duration) Option {
	return func(c *Console) {
		c.delay = d
	}
}

// NewConsole creates a console reading from in and writing to out. Card
// art and the typewriter start enabled; ApplyVisual overrides both.
func NewConsole(in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		out:        termenv.NewOutput(out),
		in:         bufio.NewReader(in),
		clock:      quartz.NewReal(),
		delay:      defaultDelay,
		showArt:    true,
		typewriter: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Print displays a line immediately
func (c *Console) Print(msg string) {
	fmt.Fprintln(c.out, styleMessage(msg))
}

// Reveal displays a line through the typewriter when enabled
func (c *Console) Reveal(msg string) {
	if !c.typewriter {
		c.Print(msg)
		return
	}
	c.typeOut(styleMessage(msg), c.delay)
}

// RevealSlow displays a line at cut-scene pacing. The typewriter toggle
// does not apply; cut scenes always crawl.
func (c *Console) RevealSlow(msg string) {
	c.typeOut(styleMessage(msg), slowDelay)
}

// ShowCard renders a card, as art or as its compact form
func (c *Console) ShowCard(card deck.Card) {
	if !c.showArt {
		fmt.Fprintln(c.out, card.String())
		return
	}
	style := cardStyle(card)
	fmt.Fprintln(c.out)
	for _, line := range renderCard(card) {
		fmt.Fprintln(c.out, style.Render(line))
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, style.Render(card.String()))
}

// Prompt displays a prompt and reads one line. A final unterminated
// line still counts; afterwards the reader's error is surfaced.
func (c *Console) Prompt(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err != nil {
		if err == io.EOF && line != "" {
			return line, nil
		}
		return "", err
	}
	return line, nil
}

// Clear clears the terminal
func (c *Console) Clear() {
	c.out.ClearScreen()
}

// ApplyVisual applies the session's visual toggles
func (c *Console) ApplyVisual(v session.Visual) {
	c.showArt = v.ShowCardArt
	c.typewriter = v.Typewriter
}

func (c *Console) typeOut(msg string, delay time.Duration) {
	if delay <= 0 {
		fmt.Fprintln(c.out, msg)
		return
	}
	timer := c.clock.NewTimer(delay)
	defer timer.Stop()
	for _, r := range msg {
		fmt.Fprint(c.out, string(r))
		<-timer.C
		timer.Reset(delay)
	}
	fmt.Fprintln(c.out)
}

// styleMessage colors HUD-like messages by their prefix. Anything that
// does not look like HUD output passes through untouched.
func styleMessage(msg string) string {
	if msg == "" {
		return msg
	}
	stripped := strings.TrimLeft(msg, " ")
	switch {
	case strings.HasPrefix(stripped, "WIN"):
		return winStyle.Render(msg)
	case strings.HasPrefix(stripped, "LOSS"):
		return lossStyle.Render(msg)
	case strings.HasPrefix(stripped, ">"), strings.HasPrefix(stripped, "["):
		return systemStyle.Render(msg)
	case strings.Contains(msg, "==="):
		return bannerStyle.Render(msg)
	}
	return msg
}

func cardStyle(card deck.Card) lipgloss.Style {
	if card.IsRed() {
		return redCardStyle
	}
	return blackCardStyle
}
