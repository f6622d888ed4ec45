package game

import (
	"fmt"
	"slices"

	"github.com/lox/blackjack/internal/deck"
)

// Hand is one wager's cards for a single round
type Hand struct {
	Cards     []deck.Card
	Bet       int64
	Active    bool // false once stood, busted or doubled
	Doubled   bool
	FromSplit bool // created by splitting a pair
}

// NewHand returns an empty, active hand
func NewHand() *Hand {
	return &Hand{Active: true}
}

// AddCard appends a card. Whether the hand may take a card is the caller's
// decision.
func (h *Hand) AddCard(c deck.Card) {
	h.Cards = append(h.Cards, c)
}

// total returns the best score and how many aces are still counted as 11
func (h *Hand) total() (score int, softAces int) {
	for _, c := range h.Cards {
		score += c.Value()
		if c.IsAce() {
			softAces++
		}
	}
	for score > 21 && softAces > 0 {
		score -= 10
		softAces--
	}
	return score, softAces
}

// Score counts aces as 11, demoting them to 1 one at a time while the total
// exceeds 21
func (h *Hand) Score() int {
	score, _ := h.total()
	return score
}

// IsSoft reports whether an ace is still counted as 11
func (h *Hand) IsSoft() bool {
	_, soft := h.total()
	return soft > 0
}

// IsBlackjack reports a two-card 21. A 21 made on a split hand is not a
// natural.
func (h *Hand) IsBlackjack() bool {
	return len(h.Cards) == 2 && !h.FromSplit && h.Score() == 21
}

// IsBusted reports a score above 21
func (h *Hand) IsBusted() bool {
	return h.Score() > 21
}

// CanSplit reports whether the hand is exactly two cards of identical rank.
// Ten-valued cards of different ranks (T, J, Q, K) are not a pair.
func (h *Hand) CanSplit() bool {
	return len(h.Cards) == 2 && h.Cards[0].Rank == h.Cards[1].Rank
}

// CanDouble reports whether the hand has exactly two cards and balance
// covers a matching second wager
func (h *Hand) CanDouble(balance int64) bool {
	return len(h.Cards) == 2 && balance >= h.Bet
}

// Clone returns a deep copy safe to hand to a strategy
func (h *Hand) Clone() *Hand {
	c := *h
	c.Cards = slices.Clone(h.Cards)
	return &c
}

// String returns a compact description of the hand
func (h *Hand) String() string {
	return fmt.Sprintf("[%s] score=%d bet=%d", deck.FormatCards(h.Cards), h.Score(), h.Bet)
}
