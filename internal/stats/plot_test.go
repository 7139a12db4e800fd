package stats

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Per-Block", []Series{
		{Name: "WPM", Values: []float64{40, 55, 62, 48, 70}},
		{Name: "Typos", Values: []float64{3, 0, 1, 0, 2}},
		{Name: "Empty"},
	}, 12, 4)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// title, two min/max lines, four chart rows, legend
	if len(lines) != 1+2+4+1 {
		t.Fatalf("expected 8 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Per-Block" {
		t.Fatalf("unexpected title: %q", lines[0])
	}
	if lines[1] != "WPM: min=40.00 max=70.00" {
		t.Fatalf("unexpected range line: %q", lines[1])
	}
	if !strings.HasPrefix(lines[3], axisLabelTop+axisSeparator) {
		t.Fatalf("top row missing axis label: %q", lines[3])
	}
	if !strings.HasPrefix(lines[6], axisLabelBottom+axisSeparator) {
		t.Fatalf("bottom row missing axis label: %q", lines[6])
	}
	for _, row := range lines[3:7] {
		chart := strings.SplitN(row, axisSeparator, 2)[1]
		if n := utf8.RuneCountInString(chart); n != 12 {
			t.Fatalf("expected 12 chart columns, got %d in %q", n, row)
		}
	}
	if lines[7] != "Legend: WPM (solid)  Typos (dashed)" {
		t.Fatalf("unexpected legend: %q", lines[7])
	}
	if strings.Contains(buf.String(), "Empty") {
		t.Fatalf("empty series should be skipped")
	}
}

func TestPlotSeriesNothingToDraw(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "None", []Series{{Name: "WPM"}}, 10, 4); err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestPlotWidthFor(t *testing.T) {
	axisWidth := utf8.RuneCountInString(axisLabelTop) + utf8.RuneCountInString(axisSeparator)
	if got := PlotWidthFor(80); got != 80-axisWidth {
		t.Fatalf("expected width %d, got %d", 80-axisWidth, got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
	if got := PlotWidthFor(500); got != maxPlotWidth {
		t.Fatalf("expected max width %d, got %d", maxPlotWidth, got)
	}
}

func TestResampleSeries(t *testing.T) {
	down := resampleSeries([]float64{1, 3, 5, 7}, 2)
	if len(down) != 2 || down[0] != 2 || down[1] != 6 {
		t.Fatalf("unexpected downsample: %v", down)
	}
	up := resampleSeries([]float64{0, 10}, 3)
	if len(up) != 3 || up[0] != 0 || up[1] != 5 || up[2] != 10 {
		t.Fatalf("unexpected upsample: %v", up)
	}
	flat := resampleSeries([]float64{4}, 3)
	if flat[0] != 4 || flat[2] != 4 {
		t.Fatalf("unexpected single-value resample: %v", flat)
	}
}
