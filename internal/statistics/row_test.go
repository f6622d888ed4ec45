package statistics

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiRecorderFanOut(t *testing.T) {
	a, b := &Table{}, &Table{}
	m := NewMultiRecorder(a, nil, b)

	require.NoError(t, m.Record(Row{Round: 1, Player: "Alice"}))
	require.NoError(t, m.Record(Row{Round: 1, Player: "Bob"}))

	assert.Len(t, a.Rows, 2)
	assert.Len(t, b.Rows, 2)
	assert.Len(t, a.ForPlayer("Bob"), 1)
}

func TestMultiRecorderCollapses(t *testing.T) {
	assert.IsType(t, NullRecorder{}, NewMultiRecorder())
	assert.IsType(t, NullRecorder{}, NewMultiRecorder(nil))

	tbl := &Table{}
	assert.Same(t, tbl, NewMultiRecorder(tbl))
}

func TestMultiRecorderStopsOnError(t *testing.T) {
	boom := errors.New("disk full")
	after := &Table{}
	m := NewMultiRecorder(RecorderFunc(func(Row) error { return boom }), after)

	err := m.Record(Row{})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, after.Rows)
}

func TestCSVRecorder(t *testing.T) {
	var buf bytes.Buffer
	rec := NewCSVRecorder(&buf)

	require.NoError(t, rec.Record(Row{
		Round: 3, Player: "Alice", Balance: 1015, Cards: "As Kd", Score: 21, Bet: 10,
		Win: true, Blackjack: true, DealerScore: 20, DealerCards: "Th Qs",
		Decks: 6, RunningCount: -2, TrueCount: -0.4, Payout: 25, Net: 15,
	}))
	require.NoError(t, rec.Flush())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, CSVHeader, records[0])

	row := map[string]string{}
	for i, col := range CSVHeader {
		row[col] = records[1][i]
	}
	assert.Equal(t, "3", row["round"])
	assert.Equal(t, "As Kd", row["hand"])
	assert.Equal(t, "1", row["win"])
	assert.Equal(t, "0", row["loss"])
	assert.Equal(t, "1", row["blackjack"])
	assert.Equal(t, "-0.400", row["true_count"])
	assert.Equal(t, "15", row["net"])
}

func TestCSVRecorderEmptyRunWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	rec := NewCSVRecorder(&buf)
	require.NoError(t, rec.Flush())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, CSVHeader, records[0])
}
