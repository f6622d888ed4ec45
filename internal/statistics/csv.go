package statistics

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// CSVHeader is the column order written by CSVRecorder
var CSVHeader = []string{
	"round", "name", "balance", "slot", "hand", "score", "bet",
	"win", "loss", "push", "double", "blackjack", "bust", "split",
	"dealer_bust", "dealer_score", "dealer_hand",
	"decks", "running_count", "true_count", "payout", "net",
}

// CSVRecorder streams rows as CSV. The header is written before the first
// row; call Flush when the run ends.
type CSVRecorder struct {
	w           *csv.Writer
	wroteHeader bool
}

// NewCSVRecorder writes CSV to w
func NewCSVRecorder(w io.Writer) *CSVRecorder {
	return &CSVRecorder{w: csv.NewWriter(w)}
}

// Record writes one row
func (c *CSVRecorder) Record(row Row) error {
	if !c.wroteHeader {
		if err := c.w.Write(CSVHeader); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
		c.wroteHeader = true
	}
	if err := c.w.Write(row.fields()); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	return nil
}

// Flush writes any buffered data and reports the first write error
func (c *CSVRecorder) Flush() error {
	if !c.wroteHeader {
		if err := c.w.Write(CSVHeader); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
		c.wroteHeader = true
	}
	c.w.Flush()
	return c.w.Error()
}

func (r Row) fields() []string {
	return []string{
		strconv.Itoa(r.Round),
		r.Player,
		strconv.FormatInt(r.Balance, 10),
		strconv.Itoa(r.HandSlot),
		r.Cards,
		strconv.Itoa(r.Score),
		strconv.FormatInt(r.Bet, 10),
		flag(r.Win),
		flag(r.Loss),
		flag(r.Push),
		flag(r.Doubled),
		flag(r.Blackjack),
		flag(r.Bust),
		flag(r.Split),
		flag(r.DealerBust),
		strconv.Itoa(r.DealerScore),
		r.DealerCards,
		strconv.Itoa(r.Decks),
		strconv.Itoa(r.RunningCount),
		strconv.FormatFloat(r.TrueCount, 'f', 3, 64),
		strconv.FormatInt(r.Payout, 10),
		strconv.FormatInt(r.Net, 10),
	}
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
