package game

import "github.com/lox/blackjack/internal/deck"

// Counter keeps the Hi-Lo running count and the number of cards dealt
// since the last reshuffle
type Counter struct {
	running int
	dealt   int
	total   int
}

// NewCounter returns a zeroed counter for a shoe of total cards
func NewCounter(total int) *Counter {
	return &Counter{total: total}
}

// Observe records a card leaving the shoe
func (c *Counter) Observe(card deck.Card) {
	c.running += card.HiLo()
	c.dealt++
}

// Reset zeroes the count for a freshly shuffled shoe of total cards
func (c *Counter) Reset(total int) {
	c.running = 0
	c.dealt = 0
	c.total = total
}

// RunningCount returns the cumulative Hi-Lo count
func (c *Counter) RunningCount() int {
	return c.running
}

// CardsDealt returns the cards drawn since the last reshuffle
func (c *Counter) CardsDealt() int {
	return c.dealt
}

// RemainingDecks estimates the decks left in the shoe
func (c *Counter) RemainingDecks() float64 {
	return float64(c.total-c.dealt) / deck.CardsPerDeck
}

// TrueCount returns the running count per remaining deck, or 0 once no
// decks remain
func (c *Counter) TrueCount() float64 {
	decks := c.RemainingDecks()
	if decks <= 0 {
		return 0
	}
	return float64(c.running) / decks
}
