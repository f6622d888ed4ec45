package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjack/internal/simulator"
	"github.com/lox/blackjack/internal/statistics"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	gainStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

func signed(v float64, format string) string {
	s := fmt.Sprintf(format, v)
	switch {
	case v > 0:
		return gainStyle.Render("+" + s)
	case v < 0:
		return lossStyle.Render(s)
	default:
		return s
	}
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

// renderResult formats the per-player summary of a single run
func renderResult(r *simulator.Result) string {
	var b strings.Builder

	title := fmt.Sprintf("%d rounds, %d decks, reshuffle at %.0f%%, DAS %s (seed %d)",
		r.RoundsPlayed, r.Rules.Decks, r.Rules.ReshuffleThreshold*100, onOff(r.Rules.DoubleAfterSplit), r.Seed)
	fmt.Fprintln(&b, headerStyle.Render(title))
	fmt.Fprintln(&b)

	writePlayers(&b, r.Summary)

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, mutedStyle.Render(fmt.Sprintf("%d rounds in %v (%.0f rounds/sec)",
		r.RoundsPlayed, r.Duration.Truncate(time.Millisecond), r.RoundsPerSecond())))
	return b.String()
}

func writePlayers(b *strings.Builder, s *statistics.Summary) {
	w := tabwriter.NewWriter(b, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("player"),
		headerStyle.Render("hands"),
		headerStyle.Render("final"),
		headerStyle.Render("net"),
		headerStyle.Render("net/hand"),
		headerStyle.Render("95% ci"),
		headerStyle.Render("win"),
		headerStyle.Render("push"),
		headerStyle.Render("bj"),
		headerStyle.Render("bust"),
		headerStyle.Render("max dd"))

	for _, p := range s.Players() {
		low, high := p.Net.ConfidenceInterval95()
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			nameStyle.Render(p.Name),
			p.Hands,
			p.FinalBalance,
			signed(float64(p.NetUnits), "%.0f"),
			signed(p.Net.Mean(), "%.3f"),
			mutedStyle.Render(fmt.Sprintf("[%.3f, %.3f]", low, high)),
			pct(p.WinRate()),
			pct(p.PushRate()),
			pct(p.BlackjackRate()),
			pct(p.BustRate()),
			p.MaxDrawdown)
	}
	w.Flush()
}

// renderSweep formats one section per variant followed by a comparison
// of each player's net result across variants
func renderSweep(results []*simulator.Result) string {
	var b strings.Builder
	for _, r := range results {
		fmt.Fprintln(&b, nameStyle.Render("== "+r.Name+" =="))
		b.WriteString(renderResult(r))
		fmt.Fprintln(&b)
	}

	fmt.Fprintln(&b, headerStyle.Render("net per hand by variant"))
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, headerStyle.Render("player"))
	for _, r := range results {
		fmt.Fprintf(w, "\t%s", headerStyle.Render(r.Name))
	}
	fmt.Fprintln(w)

	for _, p := range results[0].Summary.Players() {
		fmt.Fprint(w, nameStyle.Render(p.Name))
		for _, r := range results {
			ps, ok := r.Summary.Player(p.Name)
			if !ok || ps.Hands == 0 {
				fmt.Fprintf(w, "\t%s", mutedStyle.Render("."))
				continue
			}
			fmt.Fprintf(w, "\t%s", signed(ps.Net.Mean(), "%.3f"))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	return b.String()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
