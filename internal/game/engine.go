package game

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/statistics"
)

// Engine plays complete rounds of blackjack for a fixed set of players.
// It owns the shoe and the count exclusively; an Engine is not safe for
// concurrent use, and independent simulations should each build their own.
type Engine struct {
	rules    Rules
	shoe     *deck.Shoe
	counter  *Counter
	players  []*Player
	dealer   *Dealer
	recorder statistics.Recorder
	logger   *log.Logger
	round    int
}

// NewEngine creates an engine. Each player's double-after-split toggle is
// taken from rules. A nil recorder discards rows.
func NewEngine(rules Rules, shoe *deck.Shoe, players []*Player, recorder statistics.Recorder, logger *log.Logger) *Engine {
	if recorder == nil {
		recorder = statistics.NullRecorder{}
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	for _, p := range players {
		p.DoubleAfterSplit = rules.DoubleAfterSplit
	}
	return &Engine{
		rules:    rules,
		shoe:     shoe,
		counter:  NewCounter(shoe.Total()),
		players:  players,
		dealer:   NewDealer(),
		recorder: recorder,
		logger:   logger,
	}
}

// Round returns the number of rounds started so far
func (e *Engine) Round() int {
	return e.round
}

// Players returns the seated players
func (e *Engine) Players() []*Player {
	return e.players
}

// Dealer returns the dealer
func (e *Engine) Dealer() *Dealer {
	return e.dealer
}

// Shoe returns the shoe in play
func (e *Engine) Shoe() *deck.Shoe {
	return e.shoe
}

// RunningCount returns the Hi-Lo running count
func (e *Engine) RunningCount() int {
	return e.counter.RunningCount()
}

// TrueCount returns the running count per remaining deck
func (e *Engine) TrueCount() float64 {
	return e.counter.TrueCount()
}

// PlayRound runs one full round. The only error it returns is fatal to the
// simulation: the shoe ran dry mid-round, or the recorder failed.
func (e *Engine) PlayRound() error {
	e.round++

	if e.shoe.NeedsReshuffle(e.rules.ReshuffleThreshold) {
		e.shoe.Reshuffle()
		e.counter.Reset(e.shoe.Total())
		e.logger.Debug("Reshuffled shoe", "round", e.round, "cards", e.shoe.Total())
	}

	for _, p := range e.players {
		p.ResetHands()
	}
	e.dealer.Reset()

	seated := e.placeBets()

	if err := e.deal(seated); err != nil {
		return fmt.Errorf("round %d deal: %w", e.round, err)
	}

	for _, p := range seated {
		if err := e.playTurns(p); err != nil {
			return fmt.Errorf("round %d %s turn: %w", e.round, p.Name, err)
		}
	}

	if err := e.playDealer(); err != nil {
		return fmt.Errorf("round %d dealer turn: %w", e.round, err)
	}

	results := e.settle(seated)

	if err := e.emit(results); err != nil {
		return fmt.Errorf("round %d stats: %w", e.round, err)
	}
	return nil
}

// draw takes the next card and counts it in the same step
func (e *Engine) draw() (deck.Card, error) {
	c, err := e.shoe.Draw()
	if err != nil {
		return deck.Card{}, err
	}
	e.counter.Observe(c)
	return c, nil
}

// placeBets asks each strategy for a wager and returns the players taking
// part in the round. Requests above the balance are clamped to it; a player
// left with nothing to wager sits the round out.
func (e *Engine) placeBets() []*Player {
	seated := make([]*Player, 0, len(e.players))
	tc := e.counter.TrueCount()

	for _, p := range e.players {
		amount := p.Strategy.PlaceBet(p.View(), tc)
		if amount > p.Balance {
			e.logger.Debug("Clamped bet to balance", "player", p.Name, "requested", amount, "balance", p.Balance)
			amount = p.Balance
		}
		if amount <= 0 {
			e.logger.Debug("Player sits out", "player", p.Name, "round", e.round, "balance", p.Balance)
			continue
		}
		if err := p.PlaceBet(amount, 0); err != nil {
			// Unreachable after clamping; keep the player out of the round
			e.logger.Debug("Bet rejected", "player", p.Name, "error", err)
			continue
		}
		seated = append(seated, p)
	}
	return seated
}

// deal gives the dealer an up card, each player two cards, then the dealer
// the hole card
func (e *Engine) deal(seated []*Player) error {
	up, err := e.draw()
	if err != nil {
		return err
	}
	e.dealer.AddCard(up)

	for _, p := range seated {
		for range 2 {
			c, err := e.draw()
			if err != nil {
				return err
			}
			p.Hands[0].AddCard(c)
		}
	}

	hole, err := e.draw()
	if err != nil {
		return err
	}
	e.dealer.AddCard(hole)
	return nil
}

// playTurns plays every hand slot of a player in order. Splits append
// slots, which the loop reaches later because it re-reads len(p.Hands).
func (e *Engine) playTurns(p *Player) error {
	up := e.dealer.UpCard()

	for slot := 0; slot < len(p.Hands); slot++ {
		hand := p.Hands[slot]
		for hand.Active && !hand.IsBusted() {
			decision := p.Strategy.PlayTurn(hand.Clone(), up, e.counter.TrueCount())
			if err := e.apply(p, slot, decision); err != nil {
				return err
			}
		}
	}
	return nil
}

// apply carries out one decision. Ineligible doubles and splits fall back
// to a hit; an unknown decision stands.
func (e *Engine) apply(p *Player, slot int, decision Decision) error {
	switch decision {
	case Hit:
		return e.hit(p, slot)

	case Stand:
		p.Stand(slot)
		return nil

	case Double:
		if !p.CanDouble(slot) {
			e.logger.Debug("Double not allowed, hitting", "player", p.Name, "slot", slot, "hand", p.Hands[slot])
			return e.hit(p, slot)
		}
		c, err := e.draw()
		if err != nil {
			return err
		}
		return p.DoubleDown(c, slot)

	case Split:
		if err := p.Split(slot); err != nil {
			e.logger.Debug("Split not allowed, hitting", "player", p.Name, "slot", slot, "error", err)
			return e.hit(p, slot)
		}
		for _, s := range []int{slot, slot + 1} {
			c, err := e.draw()
			if err != nil {
				return err
			}
			p.Hit(c, s)
		}
		return nil

	default:
		e.logger.Debug("Unknown decision, standing", "player", p.Name, "decision", uint8(decision))
		p.Stand(slot)
		return nil
	}
}

func (e *Engine) hit(p *Player, slot int) error {
	c, err := e.draw()
	if err != nil {
		return err
	}
	p.Hit(c, slot)
	return nil
}

// playDealer draws for the dealer until house rules say stand
func (e *Engine) playDealer() error {
	for e.dealer.ShouldHit() {
		c, err := e.draw()
		if err != nil {
			return err
		}
		e.dealer.AddCard(c)
	}
	return nil
}

// handResult is the settled state of one player hand
type handResult struct {
	player  *Player
	slot    int
	outcome Outcome
	payout  int64
}

// settle resolves every seated hand against the dealer. Balances change
// here and nowhere else after the wagers are escrowed.
func (e *Engine) settle(seated []*Player) []handResult {
	dealerHand := e.dealer.Hand()
	var results []handResult
	for _, p := range seated {
		for slot, h := range p.Hands {
			outcome, payout := Settle(h, dealerHand)
			p.settle(outcome, payout)
			results = append(results, handResult{player: p, slot: slot, outcome: outcome, payout: payout})
		}
	}
	return results
}

// emit records one row per settled hand. Balances are read after the whole
// round has settled.
func (e *Engine) emit(results []handResult) error {
	dealerHand := e.dealer.Hand()
	dealerCards := deck.FormatCards(dealerHand.Cards)
	tc := math.Round(e.counter.TrueCount()*1000) / 1000

	for _, r := range results {
		h := r.player.Hands[r.slot]
		row := statistics.Row{
			Round:        e.round,
			Player:       r.player.Name,
			Balance:      r.player.Balance,
			HandSlot:     r.slot,
			Cards:        deck.FormatCards(h.Cards),
			Score:        h.Score(),
			Bet:          h.Bet,
			Win:          r.outcome == Win,
			Loss:         r.outcome == Loss,
			Push:         r.outcome == Push,
			Doubled:      h.Doubled,
			Blackjack:    h.IsBlackjack() && !dealerHand.IsBlackjack(),
			Bust:         h.IsBusted(),
			Split:        h.FromSplit,
			DealerBust:   dealerHand.IsBusted(),
			DealerScore:  dealerHand.Score(),
			DealerCards:  dealerCards,
			Decks:        e.shoe.Decks(),
			RunningCount: e.counter.RunningCount(),
			TrueCount:    tc,
			Payout:       r.payout,
			Net:          r.payout - h.Bet,
		}
		if err := e.recorder.Record(row); err != nil {
			return err
		}
	}
	return nil
}
