// Package scanner talks to the card recognition daemon. The daemon
// watches the table camera and streams per-frame detections over a
// websocket; this package distills that noisy feed into a single
// stable card read for deck calibration.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/cardsharp/drainvault/internal/config"
)

// ErrUnavailable means the daemon could not be reached at all.
var ErrUnavailable = errors.New("scanner daemon unreachable")

// Detection is a single frame observation from the daemon.
type Detection struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Client consumes the daemon's detection feed. A card counts as read
// only after it dominates a rolling window of confident frames, so a
// glint or half-flipped card cannot lock calibration.
type Client struct {
	feedURL       string
	minConfidence float64
	window        int
	ratio         float64
	logger        *log.Logger
}

// NewClient creates a feed client from the scanner settings.
func NewClient(settings *config.ScannerSettings, logger *log.Logger) *Client {
	return &Client{
		feedURL:       settings.URL,
		minConfidence: settings.MinConfidence,
		window:        settings.StabilityWindow,
		ratio:         settings.StabilityRatio,
		logger:        logger.WithPrefix("scanner"),
	}
}

// WaitForCard blocks until the daemon reports the target card stably,
// the context is cancelled, or the feed breaks. target is a scan code
// like "QS"; an empty target accepts any stable card. Cancellation is
// not an error and returns ("", nil).
func (c *Client) WaitForCard(ctx context.Context, target string) (string, error) {
	u, err := url.Parse(c.feedURL)
	if err != nil {
		return "", fmt.Errorf("invalid scanner URL: %w", err)
	}

	// Convert http/https to ws/wss
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if ctx.Err() != nil {
			return "", nil
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer conn.Close()

	// Closing the connection is the only way to unblock ReadJSON when
	// the caller gives up mid-scan.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	c.logger.Info("Watching detection feed", "url", u.String(), "target", target)

	target = strings.ToUpper(target)
	history := make([]string, 0, c.window)
	for {
		var d Detection
		if err := conn.ReadJSON(&d); err != nil {
			if ctx.Err() != nil {
				c.logger.Info("Scan cancelled")
				return "", nil
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error("Detection feed error", "error", err)
			}
			return "", fmt.Errorf("detection feed closed: %w", err)
		}

		if d.Label == "" || d.Confidence < c.minConfidence {
			continue
		}

		history = append(history, strings.ToUpper(d.Label))
		if len(history) > c.window {
			history = history[1:]
		}
		if len(history) < c.window {
			continue
		}

		stable, ok := c.stableCard(history)
		if !ok {
			continue
		}
		if target != "" && stable != target {
			continue
		}

		c.logger.Info("Stable read", "card", stable)
		return stable, nil
	}
}

// stableCard returns the dominant label in the window once it holds at
// least ratio of the frames.
func (c *Client) stableCard(history []string) (string, bool) {
	counts := make(map[string]int, len(history))
	best := ""
	for _, label := range history {
		counts[label]++
		if best == "" || counts[label] > counts[best] {
			best = label
		}
	}
	if float64(counts[best]) >= float64(c.window)*c.ratio {
		return best, true
	}
	return "", false
}
