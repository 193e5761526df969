package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/cardsharp/drainvault/internal/deck"
	"github.com/cardsharp/drainvault/internal/game"
	"github.com/cardsharp/drainvault/internal/odds"
)

type OddsCmd struct {
	Current   string  `arg:"" help:"Face-up card (e.g. QS, 10H)"`
	Remaining string  `arg:"" optional:"" help:"Remaining cards (e.g. 'AS KH 2C XX'); empty uses a fresh deck"`
	Stake     int     `default:"200" help:"Stake in credits"`
	Edge      float64 `default:"0.06" help:"House edge shaved off fair payouts"`
	Boost     float64 `default:"1" help:"Payout multiplier from odds upgrades"`
	Jokers    int     `default:"2" help:"Jokers shuffled into a fresh deck (ignored when remaining cards are given)"`
}

var (
	oddsHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	oddsCallStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	oddsProbStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	oddsPayoutStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)

func (c *OddsCmd) Run() error {
	current, err := deck.ParseCard(c.Current)
	if err != nil {
		return fmt.Errorf("invalid current card: %w", err)
	}
	if current.IsJoker() {
		return fmt.Errorf("current card cannot be a joker; the table never leaves one face up")
	}

	var remaining []deck.Card
	if c.Remaining != "" {
		remaining, err = deck.ParseCards(c.Remaining)
		if err != nil {
			return fmt.Errorf("invalid remaining cards: %w", err)
		}
	} else {
		remaining = freshDeckWithout(current, c.Jokers)
	}

	counter := odds.NewCounter()
	counter.DeckUpdated(remaining)

	o := counter.WinOdds(current)
	payouts := game.BuildPayouts(o, c.Stake, c.Boost, c.Edge)

	fmt.Printf("%s\n", oddsHeaderStyle.Render("current"))
	fmt.Printf("%s\n\n", current)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		oddsHeaderStyle.Render("call"),
		oddsHeaderStyle.Render("cards"),
		oddsHeaderStyle.Render("probability"),
		oddsHeaderStyle.Render("payout"))

	fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
		oddsCallStyle.Render("HIGHER"),
		counter.HigherCount(current)+counter.Jokers(),
		oddsProbStyle.Render(fmt.Sprintf("%.1f%%", o.Higher*100)),
		oddsPayoutStyle.Render(formatPayout(payouts.Higher)))

	fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
		oddsCallStyle.Render("LOWER"),
		counter.LowerCount(current)+counter.Jokers(),
		oddsProbStyle.Render(fmt.Sprintf("%.1f%%", o.Lower*100)),
		oddsPayoutStyle.Render(formatPayout(payouts.Lower)))

	fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
		oddsCallStyle.Render("JOKER"),
		counter.Jokers(),
		oddsProbStyle.Render(fmt.Sprintf("%.1f%%", o.Joker*100)),
		oddsPayoutStyle.Render("wins either call"))

	w.Flush()

	fmt.Printf("\n%d cards remaining, %d jokers\n", counter.Remaining(), counter.Jokers())
	fmt.Printf("stake %d, house edge %.1f%%, payout boost x%g\n", c.Stake, c.Edge*100, c.Boost)
	return nil
}

// freshDeckWithout builds a shuffled-in deck snapshot with the face-up
// card removed. Suit matters here even though comparisons ignore it:
// only one physical copy leaves the deck.
func freshDeckWithout(current deck.Card, jokers int) []deck.Card {
	var cards []deck.Card
	for suit := deck.Spades; suit <= deck.Clubs; suit++ {
		for rank := deck.Two; rank <= deck.Ace; rank++ {
			card := deck.NewCard(suit, rank)
			if card == current {
				continue
			}
			cards = append(cards, card)
		}
	}
	for i := 0; i < jokers; i++ {
		cards = append(cards, deck.NewJoker())
	}
	return cards
}

func formatPayout(payout *int) string {
	if payout == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *payout)
}
