package scanner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/cardsharp/drainvault/internal/config"
	"github.com/cardsharp/drainvault/internal/game"
)

// A scan that has not locked on within this window aborts on its own,
// so a dead daemon cannot hold the table hostage.
const scanTimeout = 60 * time.Second

var (
	scanHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	scanTargetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	scanInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

var _ game.Calibrator = (*TerminalCalibrator)(nil)

// TerminalCalibrator runs the scan screen in the player's terminal.
type TerminalCalibrator struct {
	client  *Client
	timeout time.Duration
}

// NewTerminalCalibrator creates a calibrator backed by the daemon feed.
func NewTerminalCalibrator(settings *config.ScannerSettings, logger *log.Logger) *TerminalCalibrator {
	return &TerminalCalibrator{
		client:  NewClient(settings, logger),
		timeout: scanTimeout,
	}
}

// Scan shows the wait screen until the target card is read, the player
// aborts, or the feed fails. An abort returns ("", nil).
func (t *TerminalCalibrator) Scan(targetLabel, displayLabel string) (string, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := &waitModel{
		client:  t.client,
		ctx:     ctx,
		cancel:  cancel,
		target:  targetLabel,
		display: displayLabel,
		timer:   timer.NewWithInterval(t.timeout, time.Second),
	}

	program := tea.NewProgram(m, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("scan screen failed: %w", err)
	}

	result := final.(*waitModel)
	if result.err != nil {
		return "", result.err
	}
	return result.card, nil
}

// scanResultMsg delivers the feed outcome into the tea loop.
type scanResultMsg struct {
	card string
	err  error
}

// waitModel is the "show the card to the camera" screen.
type waitModel struct {
	client  *Client
	ctx     context.Context
	cancel  context.CancelFunc
	target  string
	display string
	timer   timer.Model
	frame   int
	card    string
	err     error
	aborted bool
	done    bool
}

// Init starts the countdown and the feed watch.
func (m *waitModel) Init() tea.Cmd {
	return tea.Batch(m.timer.Init(), m.waitForScan)
}

func (m *waitModel) waitForScan() tea.Msg {
	card, err := m.client.WaitForCard(m.ctx, m.target)
	return scanResultMsg{card: card, err: err}
}

// Update handles messages in the scan screen. Every exit path funnels
// through scanResultMsg so the feed goroutine is never orphaned.
func (m *waitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "Q", "esc", "ctrl+c":
			m.aborted = true
			m.cancel()
			return m, nil
		}

	case timer.TimeoutMsg:
		m.aborted = true
		m.cancel()
		return m, nil

	case timer.TickMsg:
		m.frame++

	case scanResultMsg:
		m.card = msg.card
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.timer, cmd = m.timer.Update(msg)
	return m, cmd
}

// View renders the scan screen.
func (m *waitModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(scanHeaderStyle.Render("CALIBRATION SCAN"))
	b.WriteString("\n\n")

	if m.aborted {
		b.WriteString("Closing scanner...\n")
		return b.String()
	}

	dots := strings.Repeat(".", m.frame%4)
	b.WriteString(fmt.Sprintf("Show %s to the camera%s\n\n", scanTargetStyle.Render(m.display), dots))
	b.WriteString(scanInfoStyle.Render(fmt.Sprintf("Feed: %s", m.client.feedURL)))
	b.WriteString("\n")
	b.WriteString(scanInfoStyle.Render(fmt.Sprintf("Auto-close in %s", m.timer.View())))
	b.WriteString("\n\n")
	b.WriteString(scanInfoStyle.Render("Press q to abort."))
	b.WriteString("\n")
	return b.String()
}
