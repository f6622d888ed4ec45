package deck

import (
	"errors"
	rand "math/rand/v2"
)

// CardsPerDeck is the size of a standard deck
const CardsPerDeck = 52

// ErrEmptyShoe is returned when drawing from a depleted shoe. The engine
// reshuffles before a round, never during one, so seeing this means a round
// consumed more cards than the reshuffle point left in the shoe.
var ErrEmptyShoe = errors.New("shoe is empty")

// Shoe is a multi-deck pool of shuffled cards dealt across rounds until it
// is reshuffled
type Shoe struct {
	decks int
	cards []Card
	next  int
	rng   *rand.Rand
}

// NewShoe builds a shoe of decks*52 cards and shuffles it with rng
func NewShoe(decks int, rng *rand.Rand) *Shoe {
	if decks < 1 {
		decks = 1
	}
	s := &Shoe{
		decks: decks,
		rng:   rng,
	}
	s.Reshuffle()
	return s
}

// NewShoeFromCards creates a stacked shoe that deals cards in the given
// order. Its total size is len(cards) until the first Reshuffle, which
// rebuilds full decks from rng. Used to force exact deals in tests.
func NewShoeFromCards(cards []Card, rng *rand.Rand) *Shoe {
	decks := (len(cards) + CardsPerDeck - 1) / CardsPerDeck
	if decks < 1 {
		decks = 1
	}
	stacked := make([]Card, len(cards))
	copy(stacked, cards)
	return &Shoe{
		decks: decks,
		cards: stacked,
		rng:   rng,
	}
}

// Reshuffle discards the remaining cards and rebuilds the shoe to full size
func (s *Shoe) Reshuffle() {
	s.cards = s.cards[:0]
	for range s.decks {
		for _, suit := range Suits {
			for rank := Two; rank <= Ace; rank++ {
				s.cards = append(s.cards, NewCard(rank, suit))
			}
		}
	}
	s.next = 0
	s.shuffle()
}

// shuffle applies Fisher-Yates over the whole shoe
func (s *Shoe) shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		var j int
		if s.rng != nil {
			j = s.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Draw removes and returns the next card
func (s *Shoe) Draw() (Card, error) {
	if s.next >= len(s.cards) {
		return Card{}, ErrEmptyShoe
	}
	c := s.cards[s.next]
	s.next++
	return c, nil
}

// Remaining returns the number of cards left to deal
func (s *Shoe) Remaining() int {
	return len(s.cards) - s.next
}

// Total returns the size of the shoe when full
func (s *Shoe) Total() int {
	return len(s.cards)
}

// Decks returns the number of decks the shoe is built from
func (s *Shoe) Decks() int {
	return s.decks
}

// NeedsReshuffle reports whether the remaining fraction of the shoe has
// dropped strictly below threshold
func (s *Shoe) NeedsReshuffle(threshold float64) bool {
	return float64(s.Remaining()) < float64(s.Total())*threshold
}
