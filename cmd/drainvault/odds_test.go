package main

import (
	"testing"

	"github.com/cardsharp/drainvault/internal/deck"
)

func TestFreshDeckWithoutRemovesOneCopy(t *testing.T) {
	current := deck.NewCard(deck.Spades, deck.Queen)
	cards := freshDeckWithout(current, 2)

	if len(cards) != 53 {
		t.Fatalf("expected 51 cards + 2 jokers, got %d", len(cards))
	}

	queens := 0
	jokers := 0
	for _, card := range cards {
		if card == current {
			t.Fatalf("face-up card %s still in the deck", card)
		}
		if card.Rank == deck.Queen {
			queens++
		}
		if card.IsJoker() {
			jokers++
		}
	}
	if queens != 3 {
		t.Fatalf("expected 3 queens left, got %d", queens)
	}
	if jokers != 2 {
		t.Fatalf("expected 2 jokers, got %d", jokers)
	}
}

func TestFreshDeckWithoutNoJokers(t *testing.T) {
	cards := freshDeckWithout(deck.NewCard(deck.Hearts, deck.Two), 0)
	if len(cards) != 51 {
		t.Fatalf("expected 51 cards, got %d", len(cards))
	}
	for _, card := range cards {
		if card.IsJoker() {
			t.Fatalf("unexpected joker in deck")
		}
	}
}

func TestFormatPayout(t *testing.T) {
	if got := formatPayout(nil); got != "-" {
		t.Errorf("nil payout: want -, got %s", got)
	}
	payout := 480
	if got := formatPayout(&payout); got != "480" {
		t.Errorf("payout: want 480, got %s", got)
	}
}

func TestIsYes(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y", true},
		{"Y", true},
		{"yes", true},
		{"YES", true},
		{" y ", true},
		{"n", false},
		{"no", false},
		{"", false},
		{"yeah", false},
	}
	for _, test := range tests {
		if got := isYes(test.input); got != test.want {
			t.Errorf("isYes(%q): want %v, got %v", test.input, test.want, got)
		}
	}
}
