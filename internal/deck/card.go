package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// Suits lists the four suits in shoe construction order
var Suits = [...]Suit{Spades, Hearts, Diamonds, Clubs}

// String returns the single-letter suit code used in card strings
func (s Suit) String() string {
	switch s {
	case Spades:
		return "s"
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	default:
		return "?"
	}
}

// Rank represents a card rank
type Rank uint8

const (
	Two Rank = iota + 2
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

// String returns the string representation of a rank
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Nine:
		return string(rune('0' + r))
	case r == Ten:
		return "T"
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Value returns the blackjack value of the rank. Aces are reported as 11;
// the soft/hard decision is made when a hand is scored.
func (r Rank) Value() int {
	switch {
	case r == Ace:
		return 11
	case r >= Ten:
		return 10
	default:
		return int(r)
	}
}

// HiLo returns the Hi-Lo counting tag: +1 for 2-6, -1 for tens, faces and
// aces, 0 for 7-9.
func (r Rank) HiLo() int {
	switch {
	case r >= Two && r <= Six:
		return 1
	case r >= Ten:
		return -1
	default:
		return 0
	}
}

// Card is an immutable playing card
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the two character form of a card (e.g. "As", "Td")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Value returns the blackjack value of the card with aces counted as 11
func (c Card) Value() int {
	return c.Rank.Value()
}

// HiLo returns the card's Hi-Lo counting tag
func (c Card) HiLo() int {
	return c.Rank.HiLo()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// ParseCard parses a string like "As" or "10h" into a Card
func ParseCard(s string) (Card, error) {
	if len(s) < 2 || len(s) > 3 {
		return Card{}, fmt.Errorf("invalid card string: %q", s)
	}

	rankPart, suitPart := s[:len(s)-1], s[len(s)-1]

	var rank Rank
	switch strings.ToUpper(rankPart) {
	case "2":
		rank = Two
	case "3":
		rank = Three
	case "4":
		rank = Four
	case "5":
		rank = Five
	case "6":
		rank = Six
	case "7":
		rank = Seven
	case "8":
		rank = Eight
	case "9":
		rank = Nine
	case "T", "10":
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
		return Card{}, fmt.Errorf("invalid rank in %q", s)
	}

	var suit Suit
	switch suitPart {
	case 's', 'S':
		suit = Spades
	case 'h', 'H':
		suit = Hearts
	case 'd', 'D':
		suit = Diamonds
	case 'c', 'C':
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid suit in %q", s)
	}

	return NewCard(rank, suit), nil
}

// ParseCards parses a whitespace separated list of cards ("As Kd 8h")
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests
// and fixed fixtures.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins cards with single spaces
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
