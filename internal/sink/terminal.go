// Package sink provides character output surfaces for the simulator.
package sink

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	tabStop = 8
	// Only the most recent lines are remembered for erasing across newlines.
	maxLines = 64
)

// Terminal writes a live character stream to a terminal or pipe. Every
// operation is flushed immediately.
type Terminal struct {
	w    *bufio.Writer
	ansi bool

	cells []int
	lines [][]int
}

// NewTerminal wraps w. Cursor movement escapes are only used when w is a terminal.
func NewTerminal(w io.Writer) *Terminal {
	ansi := false
	if f, ok := w.(*os.File); ok {
		ansi = term.IsTerminal(int(f.Fd()))
	}
	return &Terminal{w: bufio.NewWriter(w), ansi: ansi}
}

// SetANSI forces cursor movement escapes on or off.
func (t *Terminal) SetANSI(on bool) {
	t.ansi = on
}

// Write emits r.
func (t *Terminal) Write(r rune) error {
	if _, err := t.w.WriteRune(r); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	switch r {
	case '\n':
		t.lines = append(t.lines, t.cells)
		if len(t.lines) > maxLines {
			t.lines = t.lines[len(t.lines)-maxLines:]
		}
		t.cells = nil
	case '\t':
		t.cells = append(t.cells, tabStop-t.column()%tabStop)
	default:
		t.cells = append(t.cells, runewidth.RuneWidth(r))
	}
	return t.flush()
}

// Backspace visually removes the previously written character. Erasing a
// newline moves the cursor to the end of the previous line.
func (t *Terminal) Backspace() error {
	var seq string
	switch {
	case len(t.cells) > 0:
		width := t.cells[len(t.cells)-1]
		t.cells = t.cells[:len(t.cells)-1]
		if width == 0 {
			return nil
		}
		back := strings.Repeat("\b", width)
		seq = back + strings.Repeat(" ", width) + back
	case len(t.lines) > 0:
		t.cells = t.lines[len(t.lines)-1]
		t.lines = t.lines[:len(t.lines)-1]
		if !t.ansi {
			seq = "\b"
			break
		}
		seq = fmt.Sprintf("\x1b[1A\x1b[%dG", t.column()+1)
	default:
		return nil
	}
	if _, err := t.w.WriteString(seq); err != nil {
		return fmt.Errorf("failed to erase output: %w", err)
	}
	return t.flush()
}

func (t *Terminal) column() int {
	col := 0
	for _, w := range t.cells {
		col += w
	}
	return col
}

func (t *Terminal) flush() error {
	if err := t.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}
