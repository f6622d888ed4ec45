package game

// Outcome is the result of one player hand against the dealer
type Outcome uint8

const (
	Loss Outcome = iota
	Win
	Push
)

// String returns the outcome name
func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Push:
		return "push"
	default:
		return "loss"
	}
}

// Settle compares a finished player hand with the dealer's and returns the
// outcome and the amount credited back to the player. The escrowed bet has
// already left the balance, so a win pays twice the bet, a blackjack two
// and a half times (floored to whole units), a push returns the bet.
//
// Rules are checked in order and the first match wins.
func Settle(player, dealer *Hand) (Outcome, int64) {
	switch {
	case player.IsBusted():
		return Loss, 0
	case dealer.IsBusted():
		return Win, player.Bet * 2
	case player.IsBlackjack() && !dealer.IsBlackjack():
		return Win, player.Bet * 5 / 2
	case player.Score() > dealer.Score():
		return Win, player.Bet * 2
	case player.Score() == dealer.Score():
		return Push, player.Bet
	default:
		return Loss, 0
	}
}

// settle applies an outcome to the player's balance and streaks
func (p *Player) settle(outcome Outcome, payout int64) {
	switch outcome {
	case Win:
		p.CreditWin(payout)
	case Push:
		p.CreditPush(payout)
	default:
		p.CreditLoss()
	}
}
