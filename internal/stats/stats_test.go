package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/bytesurge/internal/model"
	"github.com/verte-zerg/bytesurge/internal/session"
)

func TestSessionMetrics(t *testing.T) {
	wpm, cpm, acc := SessionMetrics(300, 100, time.Minute)
	if wpm != 60 || cpm != 300 {
		t.Fatalf("unexpected rates: wpm=%v cpm=%v", wpm, cpm)
	}
	if math.Abs(acc-0.75) > 1e-9 {
		t.Fatalf("unexpected accuracy: %v", acc)
	}
	if wpm, cpm, acc := SessionMetrics(10, 0, 0); wpm != 0 || cpm != 0 || acc != 0 {
		t.Fatalf("expected zeros for empty duration")
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 9}); got != " @" {
		t.Fatalf("unexpected sparkline: %q", got)
	}
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" {
		t.Fatalf("unexpected flat sparkline: %q", got)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
}

func feedTally() *Tally {
	tally := NewTally()
	tally.PersonalityChanged(model.Careful, model.Rusher)
	tally.Typo('e', 'r')
	tally.Typo('e', 'w')
	tally.Typo('t', 'y')
	tally.BlockFinished(session.BlockReport{
		Personality: model.Rusher,
		Runes:       100,
		Keystrokes:  106,
		Typos:       3,
		Elapsed:     30 * time.Second,
	})
	tally.BlockFinished(session.BlockReport{
		Personality: model.Careful,
		Runes:       50,
		Keystrokes:  50,
		Elapsed:     30 * time.Second,
	})
	tally.BlockFinished(session.BlockReport{
		Personality: model.Rusher,
		Runes:       40,
		Keystrokes:  60,
		Refactored:  true,
		Deleted:     10,
		Elapsed:     10 * time.Second,
	})
	return tally
}

func TestTallyAggregatesByPersonality(t *testing.T) {
	tally := feedTally()
	rows := tally.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Personality != model.Rusher || rows[1].Personality != model.Careful {
		t.Fatalf("unexpected row order: %v", rows)
	}
	if rows[0].Blocks != 2 || rows[0].Refactors != 1 || rows[0].Deleted != 10 || rows[0].Typos != 3 {
		t.Fatalf("unexpected rusher row: %+v", rows[0])
	}
	total := tally.Total()
	if total.Blocks != 3 || total.Runes != 190 || total.Elapsed != 70*time.Second {
		t.Fatalf("unexpected total: %+v", total)
	}
	if tally.Switches() != 1 {
		t.Fatalf("expected 1 switch, got %d", tally.Switches())
	}
	if len(tally.BlockWPM()) != 3 {
		t.Fatalf("expected per-block wpm for 3 blocks")
	}
	if typos := tally.BlockTypos(); len(typos) != 3 || typos[0] != 3 || typos[1] != 0 {
		t.Fatalf("unexpected per-block typos: %v", typos)
	}
	if tally.Mistyped()['e'] != 2 {
		t.Fatalf("expected 'e' mistyped twice")
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummaryWithWidth(&buf, feedTally(), 20); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Blocks: 3",
		"Simulated time: 1m10s",
		"Personality switches: 1",
		"Personality Blocks Keystrokes",
		"Rusher",
		"Careful",
		"WPM trend: ",
		"Per-Block",
		"Typos: min=0.00 max=3.00",
		"Legend: WPM (solid)  Typos (dashed)",
		"Most mistyped: e(2) t(1)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Refactorer") {
		t.Fatalf("summary lists a personality with no blocks:\n%s", out)
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, NewTally()); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "No blocks typed.\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
