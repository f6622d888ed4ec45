package statistics

import (
	"fmt"
	"sort"
)

// PlayerSummary aggregates every hand a player played
type PlayerSummary struct {
	Name       string
	Rounds     int
	Hands      int
	Wins       int
	Losses     int
	Pushes     int
	Blackjacks int
	Busts      int
	Doubles    int
	SplitHands int
	Wagered    int64
	NetUnits   int64

	StartBalance int64
	FinalBalance int64
	PeakBalance  int64
	MaxDrawdown  int64 // largest fall from a peak balance, in units

	Net Sample // net result per hand

	lastRound  int
	firstRound int
	seeded     bool // StartBalance came from the caller, not inferred
}

// WinRate returns wins as a fraction of hands
func (p *PlayerSummary) WinRate() float64 { return p.rate(p.Wins) }

// LossRate returns losses as a fraction of hands
func (p *PlayerSummary) LossRate() float64 { return p.rate(p.Losses) }

// PushRate returns pushes as a fraction of hands
func (p *PlayerSummary) PushRate() float64 { return p.rate(p.Pushes) }

// BlackjackRate returns naturals as a fraction of hands
func (p *PlayerSummary) BlackjackRate() float64 { return p.rate(p.Blackjacks) }

// BustRate returns busted hands as a fraction of hands
func (p *PlayerSummary) BustRate() float64 { return p.rate(p.Busts) }

// ReturnOnWagered returns net units per unit wagered
func (p *PlayerSummary) ReturnOnWagered() float64 {
	if p.Wagered == 0 {
		return 0
	}
	return float64(p.NetUnits) / float64(p.Wagered)
}

func (p *PlayerSummary) rate(n int) float64 {
	if p.Hands == 0 {
		return 0
	}
	return float64(n) / float64(p.Hands)
}

// Summary is a Recorder that aggregates rows per player
type Summary struct {
	players map[string]*PlayerSummary
	order   []string
}

// NewSummary creates an empty summary. startBalances seeds each player's
// ledger and drawdown tracking; players missing from it start from the
// balance before their first round, backed out of that round's rows, and
// skip the ledger check.
func NewSummary(startBalances map[string]int64) *Summary {
	s := &Summary{players: make(map[string]*PlayerSummary)}
	names := make([]string, 0, len(startBalances))
	for name := range startBalances {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b := startBalances[name]
		s.add(&PlayerSummary{Name: name, StartBalance: b, FinalBalance: b, PeakBalance: b, seeded: true})
	}
	return s
}

func (s *Summary) add(ps *PlayerSummary) {
	s.players[ps.Name] = ps
	s.order = append(s.order, ps.Name)
}

// Record folds a row into its player's summary
func (s *Summary) Record(row Row) error {
	if row.Win && row.Loss || row.Win && row.Push || row.Loss && row.Push {
		return fmt.Errorf("round %d %s slot %d: conflicting outcome flags", row.Round, row.Player, row.HandSlot)
	}

	ps, ok := s.players[row.Player]
	if !ok {
		ps = &PlayerSummary{Name: row.Player, StartBalance: row.Balance, firstRound: row.Round}
		s.add(ps)
	}
	if !ps.seeded && row.Round == ps.firstRound {
		// every row of a round carries the balance after the whole round
		ps.StartBalance -= row.Net
		ps.PeakBalance = max(ps.StartBalance, row.Balance)
		ps.MaxDrawdown = max(0, ps.StartBalance-row.Balance)
	}

	ps.Hands++
	if row.Round != ps.lastRound {
		ps.Rounds++
		ps.lastRound = row.Round
	}
	switch {
	case row.Win:
		ps.Wins++
	case row.Loss:
		ps.Losses++
	case row.Push:
		ps.Pushes++
	}
	if row.Blackjack {
		ps.Blackjacks++
	}
	if row.Bust {
		ps.Busts++
	}
	if row.Doubled {
		ps.Doubles++
	}
	if row.Split {
		ps.SplitHands++
	}
	ps.Wagered += row.Bet
	ps.NetUnits += row.Net
	ps.Net.Add(float64(row.Net))

	ps.FinalBalance = row.Balance
	if row.Balance > ps.PeakBalance {
		ps.PeakBalance = row.Balance
	}
	if dd := ps.PeakBalance - row.Balance; dd > ps.MaxDrawdown {
		ps.MaxDrawdown = dd
	}
	return nil
}

// Player returns the summary for one player
func (s *Summary) Player(name string) (*PlayerSummary, bool) {
	ps, ok := s.players[name]
	return ps, ok
}

// Players returns every summary in first-seen order
func (s *Summary) Players() []*PlayerSummary {
	out := make([]*PlayerSummary, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.players[name])
	}
	return out
}

// Validate checks that every player's ledger is consistent
func (s *Summary) Validate() error {
	for _, ps := range s.Players() {
		if ps.Wins+ps.Losses+ps.Pushes != ps.Hands {
			return fmt.Errorf("%s: outcomes (%d) do not match hands (%d)", ps.Name, ps.Wins+ps.Losses+ps.Pushes, ps.Hands)
		}
		if ps.Net.N != ps.Hands {
			return fmt.Errorf("%s: net sample size (%d) does not match hands (%d)", ps.Name, ps.Net.N, ps.Hands)
		}
		if err := ps.Net.Validate(); err != nil {
			return fmt.Errorf("%s: %w", ps.Name, err)
		}
		if ps.seeded && ps.StartBalance+ps.NetUnits != ps.FinalBalance {
			return fmt.Errorf("%s: ledger mismatch: start %d + net %d != final %d",
				ps.Name, ps.StartBalance, ps.NetUnits, ps.FinalBalance)
		}
	}
	return nil
}
