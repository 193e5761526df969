package deck

import (
	"errors"
	"math/rand"
	"time"

	"github.com/cardsharp/drainvault/internal/randutil"
)

// ErrEmptyDeck is returned by Deal when no cards remain. The deck never
// refills itself; callers check Len and rebuild when they hit zero.
var ErrEmptyDeck = errors.New("deck is empty")

// Deck represents an ordered pile of playing cards. Deal pops from the
// tail, so index 0 is the bottom of the pile.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// Option configures a deck at construction time
type Option func(*Deck)

// WithJokers adds n jokers on top of the standard 52 cards. Panics if n
// is negative.
func WithJokers(n int) Option {
	if n < 0 {
		panic("deck: negative joker count")
	}
	return func(d *Deck) {
		for i := 0; i < n; i++ {
			d.cards = append(d.cards, NewJoker())
		}
	}
}

// WithCards replaces the standard composition with an explicit card list.
// Used by fixtures and tests; the last card is dealt first.
func WithCards(cards []Card) Option {
	return func(d *Deck) {
		d.cards = append(d.cards[:0], cards...)
	}
}

// WithRand sets the random source used by Shuffle
func WithRand(rng *rand.Rand) Option {
	return func(d *Deck) {
		d.rng = rng
	}
}

// New creates a standard 52-card deck, then applies options in order.
// The deck starts unshuffled.
func New(opts ...Option) *Deck {
	deck := &Deck{
		cards: make([]Card, 0, 54),
		rng:   randutil.New(time.Now().UnixNano()),
	}

	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			deck.cards = append(deck.cards, NewCard(suit, rank))
		}
	}

	for _, opt := range opts {
		opt(deck)
	}

	return deck
}

// Shuffle randomizes the order of cards in the deck
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the top card. Returns ErrEmptyDeck when no
// cards remain.
func (d *Deck) Deal() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}

	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, nil
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Remaining returns a copy of the cards still in the deck, bottom first.
// Mutating the copy does not affect the deck.
func (d *Deck) Remaining() []Card {
	remaining := make([]Card, len(d.cards))
	copy(remaining, d.cards)
	return remaining
}
