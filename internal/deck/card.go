package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
	// JokerSuit marks the printed jokers that ship with the deck
	JokerSuit
)

// String returns the symbol for a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case JokerSuit:
		return "★"
	default:
		return "?"
	}
}

// Name returns the long-form suit name used in card labels
func (s Suit) Name() string {
	switch s {
	case Spades:
		return "Spades"
	case Hearts:
		return "Hearts"
	case Diamonds:
		return "Diamonds"
	case Clubs:
		return "Clubs"
	case JokerSuit:
		return "Joker"
	default:
		return "Unknown"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Ordering is numeric with aces high;
// Joker is zero so it sits outside the normal ordering and is always
// special-cased before comparison.
type Rank int

const (
	Joker Rank = 0

	Two Rank = iota + 1
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the short form of a rank (e.g. "10", "Q")
func (r Rank) String() string {
	switch r {
	case Joker:
		return "JOKER"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		if r >= Two && r <= Ten {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// Name returns the long form of a rank (e.g. "10", "Queen")
func (r Rank) Name() string {
	switch r {
	case Joker:
		return "Joker"
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	case Ace:
		return "Ace"
	default:
		if r >= Two && r <= Ten {
			return fmt.Sprintf("%d", int(r))
		}
		return "Unknown"
	}
}

// Card represents a playing card. Equality and ordering between cards
// consider rank only; suits are display flavor.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// NewJoker creates a joker
func NewJoker() Card {
	return Card{Suit: JokerSuit, Rank: Joker}
}

// String returns the compact form of a card (e.g. "Q♠", "JOKER")
func (c Card) String() string {
	if c.IsJoker() {
		return "JOKER"
	}
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Label returns the display form of a card (e.g. "Queen of Spades ♠")
func (c Card) Label() string {
	if c.IsJoker() {
		return "Joker"
	}
	return fmt.Sprintf("%s of %s %s", c.Rank.Name(), c.Suit.Name(), c.Suit)
}

// ScanLabel returns the code the card scanner reports for this card
// (e.g. "QS", "10H"). Jokers are never calibration targets but still
// get a stable code.
func (c Card) ScanLabel() string {
	if c.IsJoker() {
		return "XX"
	}
	return fmt.Sprintf("%s%s", c.Rank, c.Suit.Name()[:1])
}

// IsJoker returns true if the card is a joker
func (c Card) IsJoker() bool {
	return c.Rank == Joker
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Equal reports whether two cards have the same rank. Suit is ignored.
func (c Card) Equal(other Card) bool {
	return c.Rank == other.Rank
}

// Less reports whether c ranks strictly below other. Suit is ignored.
func (c Card) Less(other Card) bool {
	return c.Rank < other.Rank
}

// ParseCard parses a compact card code like "qs", "10h", "Td" or "joker".
// Rank comes first, then a suit initial; ten accepts both "10" and "T".
func ParseCard(s string) (Card, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	switch code {
	case "":
		return Card{}, fmt.Errorf("empty card code")
	case "JOKER", "XX", "X":
		return NewJoker(), nil
	}

	rankCode, suitCode := code[:len(code)-1], code[len(code)-1:]
	var rank Rank
	switch rankCode {
	case "2", "3", "4", "5", "6", "7", "8", "9":
		rank = Rank(rankCode[0] - '0')
	case "10", "T":
		rank = Ten
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "A":
		rank = Ace
	default:
		return Card{}, fmt.Errorf("unknown rank %q in card code %q", rankCode, s)
	}

	var suit Suit
	switch suitCode {
	case "S":
		suit = Spades
	case "H":
		suit = Hearts
	case "D":
		suit = Diamonds
	case "C":
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("unknown suit %q in card code %q", suitCode, s)
	}

	return NewCard(suit, rank), nil
}

// ParseCards parses a whitespace or comma separated list of card codes.
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		card, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}
