package statistics

// Row is the outcome of one player hand in one round
type Row struct {
	Round        int
	Player       string
	Balance      int64 // player balance after the round settled
	HandSlot     int
	Cards        string
	Score        int
	Bet          int64
	Win          bool
	Loss         bool
	Push         bool
	Doubled      bool
	Blackjack    bool // a natural that was paid; unset when the dealer also had one
	Bust         bool
	Split        bool
	DealerBust   bool
	DealerScore  int
	DealerCards  string
	Decks        int
	RunningCount int
	TrueCount    float64 // rounded to 3 decimal places
	Payout       int64   // amount credited back at settlement
	Net          int64   // Payout - Bet
}

// Recorder receives rows as rounds complete
type Recorder interface {
	Record(row Row) error
}

// NullRecorder discards every row
type NullRecorder struct{}

// Record does nothing
func (NullRecorder) Record(Row) error { return nil }

// RecorderFunc adapts a function to Recorder
type RecorderFunc func(Row) error

// Record calls f(row)
func (f RecorderFunc) Record(row Row) error { return f(row) }

// MultiRecorder fans rows out to several recorders in order, stopping at
// the first error
type MultiRecorder struct {
	recorders []Recorder
}

// NewMultiRecorder builds a composite recorder, pruning nil entries and
// returning a NullRecorder when none remain
func NewMultiRecorder(recorders ...Recorder) Recorder {
	filtered := make([]Recorder, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			filtered = append(filtered, r)
		}
	}

	switch len(filtered) {
	case 0:
		return NullRecorder{}
	case 1:
		return filtered[0]
	default:
		return &MultiRecorder{recorders: filtered}
	}
}

// Record forwards row to every recorder
func (m *MultiRecorder) Record(row Row) error {
	for _, r := range m.recorders {
		if err := r.Record(row); err != nil {
			return err
		}
	}
	return nil
}

// Table keeps every row in memory
type Table struct {
	Rows []Row
}

// Record appends row
func (t *Table) Record(row Row) error {
	t.Rows = append(t.Rows, row)
	return nil
}

// ForPlayer returns the rows belonging to a single player
func (t *Table) ForPlayer(name string) []Row {
	var rows []Row
	for _, r := range t.Rows {
		if r.Player == name {
			rows = append(rows, r)
		}
	}
	return rows
}
