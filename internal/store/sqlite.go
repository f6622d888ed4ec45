// Package store persists simulation runs and their hands in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/statistics"
)

// DefaultBatchSize is the number of hands buffered per insert transaction
const DefaultBatchSize = 500

// Store is a SQLite database of simulation runs. It is safe for concurrent
// use; every run writes through its own RunRecorder.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	// SQLite allows one writer at a time; batches from parallel runs queue
	// for the single connection instead of failing with SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if err := initTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			seed INTEGER NOT NULL,
			decks INTEGER NOT NULL,
			reshuffle_threshold REAL NOT NULL,
			double_after_split INTEGER NOT NULL,
			rounds INTEGER NOT NULL,
			rounds_played INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating runs table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS hands (
			run_id TEXT NOT NULL,
			round INTEGER NOT NULL,
			player TEXT NOT NULL,
			slot INTEGER NOT NULL,
			balance INTEGER NOT NULL,
			cards TEXT NOT NULL,
			score INTEGER NOT NULL,
			bet INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			doubled INTEGER NOT NULL,
			blackjack INTEGER NOT NULL,
			bust INTEGER NOT NULL,
			split INTEGER NOT NULL,
			dealer_bust INTEGER NOT NULL,
			dealer_score INTEGER NOT NULL,
			dealer_cards TEXT NOT NULL,
			running_count INTEGER NOT NULL,
			true_count REAL NOT NULL,
			payout INTEGER NOT NULL,
			net INTEGER NOT NULL,
			PRIMARY KEY (run_id, round, player, slot),
			FOREIGN KEY (run_id) REFERENCES runs (id)
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating hands table: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Run describes a stored simulation run
type Run struct {
	ID           string
	Name         string
	Seed         int64
	Rules        game.Rules
	Rounds       int
	RoundsPlayed int
	Duration     time.Duration
	CreatedAt    time.Time
}

// NewRun registers a run and returns the recorder for its hands
func (s *Store) NewRun(name string, seed int64, rules game.Rules, rounds int) (*RunRecorder, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO runs (id, name, seed, decks, reshuffle_threshold, double_after_split, rounds, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, name, seed, rules.Decks, rules.ReshuffleThreshold, rules.DoubleAfterSplit, rounds, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating run %s: %w", name, err)
	}
	return &RunRecorder{store: s, id: id, batchSize: DefaultBatchSize}, nil
}

// Runs returns every stored run, oldest first
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT id, name, seed, decks, reshuffle_threshold, double_after_split,
		       rounds, rounds_played, duration_ms, created_at
		FROM runs ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		if err := rows.Scan(&r.ID, &r.Name, &r.Seed, &r.Rules.Decks, &r.Rules.ReshuffleThreshold,
			&r.Rules.DoubleAfterSplit, &r.Rounds, &r.RoundsPlayed, &durationMS, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Hands returns the stored hands of a run in round and slot order
func (s *Store) Hands(runID string) ([]statistics.Row, error) {
	rows, err := s.db.Query(`
		SELECT round, player, slot, balance, cards, score, bet, outcome,
		       doubled, blackjack, bust, split, dealer_bust, dealer_score, dealer_cards,
		       running_count, true_count, payout, net, r.decks
		FROM hands JOIN runs r ON r.id = hands.run_id
		WHERE run_id = ?
		ORDER BY hands.round, hands.rowid`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []statistics.Row
	for rows.Next() {
		var r statistics.Row
		var outcome string
		if err := rows.Scan(&r.Round, &r.Player, &r.HandSlot, &r.Balance, &r.Cards, &r.Score, &r.Bet, &outcome,
			&r.Doubled, &r.Blackjack, &r.Bust, &r.Split, &r.DealerBust, &r.DealerScore, &r.DealerCards,
			&r.RunningCount, &r.TrueCount, &r.Payout, &r.Net, &r.Decks); err != nil {
			return nil, err
		}
		r.Win = outcome == game.Win.String()
		r.Loss = outcome == game.Loss.String()
		r.Push = outcome == game.Push.String()
		out = append(out, r)
	}
	return out, rows.Err()
}

// RunRecorder buffers one run's hands and inserts them in batches
type RunRecorder struct {
	store     *Store
	id        string
	batchSize int

	mu  sync.Mutex
	buf []statistics.Row
}

// ID returns the run's identifier
func (r *RunRecorder) ID() string {
	return r.id
}

// Record buffers a hand, writing the batch once it is full
func (r *RunRecorder) Record(row statistics.Row) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buf = append(r.buf, row)
	if len(r.buf) < r.batchSize {
		return nil
	}
	return r.flush()
}

// Finish writes any buffered hands and records how much of the run was
// played
func (r *RunRecorder) Finish(roundsPlayed int, duration time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.flush(); err != nil {
		return err
	}
	_, err := r.store.db.Exec(
		"UPDATE runs SET rounds_played = ?, duration_ms = ? WHERE id = ?",
		roundsPlayed, duration.Milliseconds(), r.id,
	)
	return err
}

func (r *RunRecorder) flush() error {
	if len(r.buf) == 0 {
		return nil
	}

	tx, err := r.store.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO hands (run_id, round, player, slot, balance, cards, score, bet, outcome,
		                   doubled, blackjack, bust, split, dealer_bust, dealer_score, dealer_cards,
		                   running_count, true_count, payout, net)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range r.buf {
		if _, err := stmt.Exec(r.id, row.Round, row.Player, row.HandSlot, row.Balance, row.Cards, row.Score,
			row.Bet, outcome(row), row.Doubled, row.Blackjack, row.Bust, row.Split, row.DealerBust,
			row.DealerScore, row.DealerCards, row.RunningCount, row.TrueCount, row.Payout, row.Net); err != nil {
			return fmt.Errorf("error inserting hand %d/%s/%d: %w", row.Round, row.Player, row.HandSlot, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	r.buf = r.buf[:0]
	return nil
}

func outcome(row statistics.Row) string {
	switch {
	case row.Win:
		return game.Win.String()
	case row.Push:
		return game.Push.String()
	default:
		return game.Loss.String()
	}
}
