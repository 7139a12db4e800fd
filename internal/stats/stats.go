// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"
)

const (
	sparkChars  = " .:-=+*#%@"
	trendWindow = 5
)

// SessionMetrics computes WPM, CPM, and accuracy for a stretch of typing.
// correct counts the characters that ended up on screen, incorrect the typos.
func SessionMetrics(correct, incorrect int, elapsed time.Duration) (wpm, cpm, accuracy float64) {
	minutes := elapsed.Minutes()
	if minutes <= 0 {
		return 0, 0, 0
	}
	wpm = (float64(correct) / 5.0) / minutes
	cpm = float64(correct) / minutes
	den := float64(correct + incorrect)
	if den > 0 {
		accuracy = float64(correct) / den
	}
	return wpm, cpm, accuracy
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the end-of-session report for t, with the per-block
// chart fitted to the terminal.
func RenderSummary(w io.Writer, t *Tally) error {
	return RenderSummaryWithWidth(w, t, 0)
}

// RenderSummaryWithWidth is RenderSummary with a fixed chart width.
func RenderSummaryWithWidth(w io.Writer, t *Tally, plotWidth int) error {
	total := t.Total()
	if total.Blocks == 0 {
		_, err := fmt.Fprintln(w, "No blocks typed.")
		return err
	}
	wpm, _, acc := SessionMetrics(total.Runes, total.Typos, total.Elapsed)
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Blocks: %d\n", total.Blocks); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Simulated time: %s\n", total.Elapsed.Round(time.Second)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "WPM: %.2f\n", wpm); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Accuracy: %.2f%%\n", acc*100); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Personality switches: %d\n", t.Switches()); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	headers := []string{"Personality", "Blocks", "Keystrokes", "Typos", "Refactors", "Deleted", "WPM"}
	rows := make([][]string, 0, len(t.rows))
	for _, row := range t.Rows() {
		rowWPM, _, _ := SessionMetrics(row.Runes, row.Typos, row.Elapsed)
		rows = append(rows, []string{
			row.Personality.String(),
			fmt.Sprintf("%d", row.Blocks),
			fmt.Sprintf("%d", row.Keystrokes),
			fmt.Sprintf("%d", row.Typos),
			fmt.Sprintf("%d", row.Refactors),
			fmt.Sprintf("%d", row.Deleted),
			fmt.Sprintf("%.1f", rowWPM),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true}
	if err := WriteTable(w, headers, rows, rightAlign); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	if wpms := t.BlockWPM(); len(wpms) > 1 {
		if _, err := fmt.Fprintf(w, "WPM trend: %s\n\n", Sparkline(MovingAverage(wpms, trendWindow))); err != nil {
			return err
		}
		if err := PlotSeries(w, "Per-Block", []Series{
			{Name: "WPM", Values: wpms},
			{Name: "Typos", Values: t.BlockTypos()},
		}, plotWidth, 0); err != nil {
			return err
		}
	}
	if top := TopMistyped(t.Mistyped(), 5); len(top) > 0 {
		labels := make([]string, 0, len(top))
		for _, m := range top {
			labels = append(labels, fmt.Sprintf("%s(%d)", charLabel(m.Char), m.Count))
		}
		if _, err := fmt.Fprintf(w, "Most mistyped: %s\n", strings.Join(labels, " ")); err != nil {
			return err
		}
	}
	return nil
}

func charLabel(r rune) string {
	if r == ' ' {
		return "<space>"
	}
	return string(r)
}
