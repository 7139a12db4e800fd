package stats

import (
	"time"

	"github.com/verte-zerg/bytesurge/internal/model"
	"github.com/verte-zerg/bytesurge/internal/session"
)

// Row holds the counters for one personality, or for the whole session.
type Row struct {
	Personality model.Personality
	Blocks      int
	Runes       int
	Keystrokes  int
	Typos       int
	Refactors   int
	Deleted     int
	Elapsed     time.Duration
}

func (r *Row) add(other Row) {
	r.Blocks += other.Blocks
	r.Runes += other.Runes
	r.Keystrokes += other.Keystrokes
	r.Typos += other.Typos
	r.Refactors += other.Refactors
	r.Deleted += other.Deleted
	r.Elapsed += other.Elapsed
}

// Tally accumulates session events. It must only be read once the loop that
// feeds it has stopped.
type Tally struct {
	session.NopObserver

	rows     map[model.Personality]*Row
	switches int
	mistyped map[rune]int
	blockWPM   []float64
	blockTypos []float64
}

var _ session.Observer = (*Tally)(nil)

// NewTally returns an empty tally.
func NewTally() *Tally {
	return &Tally{
		rows:     map[model.Personality]*Row{},
		mistyped: map[rune]int{},
	}
}

// PersonalityChanged counts a switch.
func (t *Tally) PersonalityChanged(model.Personality, model.Personality) {
	t.switches++
}

// Typo records the intended character of a mistyped key.
func (t *Tally) Typo(intended, _ rune) {
	t.mistyped[intended]++
}

// BlockFinished folds report into the active personality's row.
func (t *Tally) BlockFinished(report session.BlockReport) {
	row, ok := t.rows[report.Personality]
	if !ok {
		row = &Row{Personality: report.Personality}
		t.rows[report.Personality] = row
	}
	refactors := 0
	if report.Refactored {
		refactors = 1
	}
	row.add(Row{
		Blocks:     1,
		Runes:      report.Runes,
		Keystrokes: report.Keystrokes,
		Typos:      report.Typos,
		Refactors:  refactors,
		Deleted:    report.Deleted,
		Elapsed:    report.Elapsed,
	})
	wpm, _, _ := SessionMetrics(report.Runes, report.Typos, report.Elapsed)
	t.blockWPM = append(t.blockWPM, wpm)
	t.blockTypos = append(t.blockTypos, float64(report.Typos))
}

// Rows returns per-personality counters in declaration order, skipping
// personalities that never finished a block.
func (t *Tally) Rows() []Row {
	out := make([]Row, 0, len(t.rows))
	for _, p := range model.Personalities {
		if row, ok := t.rows[p]; ok {
			out = append(out, *row)
		}
	}
	return out
}

// Total sums every row.
func (t *Tally) Total() Row {
	var total Row
	for _, row := range t.rows {
		total.add(*row)
	}
	return total
}

// Switches returns the number of personality changes seen.
func (t *Tally) Switches() int {
	return t.switches
}

// BlockWPM returns the WPM of each finished block in order.
func (t *Tally) BlockWPM() []float64 {
	out := make([]float64, len(t.blockWPM))
	copy(out, t.blockWPM)
	return out
}

// BlockTypos returns the typo count of each finished block in order.
func (t *Tally) BlockTypos() []float64 {
	out := make([]float64, len(t.blockTypos))
	copy(out, t.blockTypos)
	return out
}

// Mistyped returns how often each intended character was mistyped.
func (t *Tally) Mistyped() map[rune]int {
	out := make(map[rune]int, len(t.mistyped))
	for r, n := range t.mistyped {
		out[r] = n
	}
	return out
}
