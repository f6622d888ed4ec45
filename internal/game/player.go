package game

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// DealerName is reserved for the house and cannot be used by a player
const DealerName = "Dealer"

// IsReservedName reports whether name collides with the dealer's
func IsReservedName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), DealerName)
}

// Player is a seated participant. It persists across rounds; its hands are
// replaced at the start of every round.
//
// Balance is the only unit of account: wagers are deducted when placed,
// doubled or split and credited back at settlement.
type Player struct {
	Name       string
	Balance    int64
	Hands      []*Hand
	WinStreak  int
	LossStreak int
	LastBet    int64 // opening wager of the most recent round played

	// DoubleAfterSplit allows doubling a hand created by a split
	DoubleAfterSplit bool

	Strategy Strategy
}

// NewPlayer creates a player holding a single empty hand
func NewPlayer(name string, balance int64, strategy Strategy) (*Player, error) {
	if IsReservedName(name) {
		return nil, fmt.Errorf("player %q: %w", name, ErrReservedName)
	}
	return &Player{
		Name:     name,
		Balance:  balance,
		Hands:    []*Hand{NewHand()},
		Strategy: strategy,
	}, nil
}

// PlayerView is the read-only state a strategy sees when sizing a bet
type PlayerView struct {
	Name       string
	Balance    int64
	WinStreak  int
	LossStreak int
	LastBet    int64
}

// View returns a snapshot of the player for strategies
func (p *Player) View() PlayerView {
	return PlayerView{
		Name:       p.Name,
		Balance:    p.Balance,
		WinStreak:  p.WinStreak,
		LossStreak: p.LossStreak,
		LastBet:    p.LastBet,
	}
}

// ResetHands replaces all hands with a single empty, active hand
func (p *Player) ResetHands() {
	p.Hands = []*Hand{NewHand()}
}

// Hand returns the hand at slot
func (p *Player) Hand(slot int) (*Hand, error) {
	if slot < 0 || slot >= len(p.Hands) {
		return nil, fmt.Errorf("slot %d of %d: %w", slot, len(p.Hands), ErrInvalidHandSlot)
	}
	return p.Hands[slot], nil
}

// PlaceBet escrows amount against the hand at slot
func (p *Player) PlaceBet(amount int64, slot int) error {
	h, err := p.Hand(slot)
	if err != nil {
		return err
	}
	if amount > p.Balance {
		return fmt.Errorf("bet %d with balance %d: %w", amount, p.Balance, ErrInsufficientFunds)
	}
	p.Balance -= amount
	h.Bet = amount
	if slot == 0 {
		p.LastBet = amount
	}
	return nil
}

// Split moves the second card of a pair into a new hand inserted directly
// after slot and escrows a matching bet for it. Both hands need one more
// card each before play continues; dealing them is the engine's job.
func (p *Player) Split(slot int) error {
	h, err := p.Hand(slot)
	if err != nil {
		return err
	}
	if !h.CanSplit() {
		return fmt.Errorf("split [%s]: %w", deck.FormatCards(h.Cards), ErrNotSplittable)
	}
	if h.Bet > p.Balance {
		return fmt.Errorf("split bet %d with balance %d: %w", h.Bet, p.Balance, ErrInsufficientFunds)
	}

	moved := h.Cards[1]
	h.Cards = h.Cards[:1]
	h.FromSplit = true

	split := NewHand()
	split.AddCard(moved)
	split.Bet = h.Bet
	split.FromSplit = true

	p.Hands = append(p.Hands, nil)
	copy(p.Hands[slot+2:], p.Hands[slot+1:])
	p.Hands[slot+1] = split

	p.Balance -= h.Bet
	return nil
}

// CanDouble reports whether the hand at slot may be doubled right now
func (p *Player) CanDouble(slot int) bool {
	h, err := p.Hand(slot)
	if err != nil || !h.Active {
		return false
	}
	if h.FromSplit && !p.DoubleAfterSplit {
		return false
	}
	return h.CanDouble(p.Balance)
}

// DoubleDown escrows a second wager equal to the first, deals the single
// card and ends the hand
func (p *Player) DoubleDown(card deck.Card, slot int) error {
	if !p.CanDouble(slot) {
		return fmt.Errorf("double slot %d: %w", slot, ErrNotEligible)
	}
	h := p.Hands[slot]
	p.Balance -= h.Bet
	h.Bet *= 2
	h.AddCard(card)
	h.Doubled = true
	h.Active = false
	return nil
}

// Hit adds card to an active hand. It returns false and leaves the hand
// untouched if the hand has already finished.
func (p *Player) Hit(card deck.Card, slot int) bool {
	h, err := p.Hand(slot)
	if err != nil || !h.Active {
		return false
	}
	h.AddCard(card)
	if h.IsBusted() {
		h.Active = false
	}
	return true
}

// Stand ends the hand at slot for this round
func (p *Player) Stand(slot int) {
	if h, err := p.Hand(slot); err == nil {
		h.Active = false
	}
}

// CreditWin pays amount and extends the win streak
func (p *Player) CreditWin(amount int64) {
	p.Balance += amount
	p.WinStreak++
	p.LossStreak = 0
}

// CreditPush returns amount without touching either streak
func (p *Player) CreditPush(amount int64) {
	p.Balance += amount
}

// CreditLoss forfeits the escrowed bet and extends the loss streak
func (p *Player) CreditLoss() {
	p.LossStreak++
	p.WinStreak = 0
}

// String returns the player's name and balance
func (p *Player) String() string {
	return fmt.Sprintf("%s - Balance: %d", p.Name, p.Balance)
}
