package ui

import (
	"fmt"

	"github.com/cardsharp/drainvault/internal/deck"
)

// jokerFace is hand-drawn; the JOKER rank label is too wide for the
// corner slots of the standard frame.
var jokerFace = []string{
	"+---------+",
	"|J O K E R|",
	"|         |",
	"|    ★    |",
	"|         |",
	"|J O K E R|",
	"+---------+",
}

// renderCard returns the ASCII face of a card, seven rows of eleven
// columns.
func renderCard(card deck.Card) []string {
	if card.IsJoker() {
		return jokerFace
	}
	rank := card.Rank.String()
	return []string{
		"+---------+",
		fmt.Sprintf("|%-2s       |", rank),
		"|         |",
		fmt.Sprintf("|    %s    |", card.Suit),
		"|         |",
		fmt.Sprintf("|       %2s|", rank),
		"+---------+",
	}
}
