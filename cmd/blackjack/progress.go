package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/lox/blackjack/internal/simulator"
)

const barWidth = 40

// progressBar redraws a single progress line in place
type progressBar struct {
	mu  sync.Mutex
	out io.Writer
	bar progress.Model
}

func newProgressBar(out io.Writer) *progressBar {
	return &progressBar{
		out: out,
		bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth)),
	}
}

// Update draws the latest snapshot
func (p *progressBar) Update(s simulator.Progress) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "\r%s %d/%d rounds (%s)", p.bar.ViewAs(s.Fraction()), s.Round, s.Rounds, s.Elapsed.Round(10*time.Millisecond))
}

// Done ends the progress line
func (p *progressBar) Done() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out)
}

// sweepProgress shows one bar per sweep variant, redrawn together
type sweepProgress struct {
	mu     sync.Mutex
	out    io.Writer
	bar    progress.Model
	order  []string
	latest map[string]simulator.Progress
	drawn  bool
}

func newSweepProgress(out io.Writer, runs []simulator.Config) *sweepProgress {
	s := &sweepProgress{
		out:    out,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth)),
		latest: make(map[string]simulator.Progress, len(runs)),
	}
	for _, r := range runs {
		s.order = append(s.order, r.Name)
		s.latest[r.Name] = simulator.Progress{Name: r.Name, Rounds: r.Rounds}
	}
	return s
}

// Update records a run's progress and redraws every bar. It is called
// from the sweep's worker goroutines.
func (s *sweepProgress) Update(p simulator.Progress) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest[p.Name] = p
	if s.drawn {
		// Move the cursor back to the first bar
		fmt.Fprintf(s.out, "\x1b[%dA", len(s.order))
	}
	width := 0
	for _, name := range s.order {
		width = max(width, len(name))
	}
	for _, name := range s.order {
		cur := s.latest[name]
		fmt.Fprintf(s.out, "\r%-*s %s %d/%d\x1b[K\n", width, name, s.bar.ViewAs(cur.Fraction()), cur.Round, cur.Rounds)
	}
	s.drawn = true
}

// Done separates the final bars from the report
func (s *sweepProgress) Done() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drawn {
		fmt.Fprintln(s.out)
	}
}
