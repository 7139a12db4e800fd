package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const tabWidth = 4

type cell struct {
	s       string
	width   int
	isSpace bool
	isBreak bool
}

func buildCells(text []rune) []cell {
	out := make([]cell, 0, len(text))
	for _, r := range text {
		switch r {
		case '\n':
			out = append(out, cell{s: "\n", isBreak: true})
		case '\t':
			out = append(out, cell{s: strings.Repeat(" ", tabWidth), width: tabWidth, isSpace: true})
		default:
			out = append(out, cell{s: string(r), width: runewidth.RuneWidth(r), isSpace: r == ' '})
		}
	}
	return out
}

func renderCells(cells []cell) string {
	var b strings.Builder
	for _, item := range cells {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapCells soft-wraps at the last space that fits, or mid-word when a line
// has none. Newlines in the text always break.
func wrapCells(cells []cell, width int) string {
	if width <= 0 {
		return renderCells(cells)
	}
	var out strings.Builder
	line := make([]cell, 0, width)
	lineWidth := 0
	lastSpaceIdx := -1
	flush := func() {
		out.WriteString(renderCells(line))
		out.WriteRune('\n')
		line = line[:0]
		lineWidth = 0
		lastSpaceIdx = -1
	}

	for i := 0; i < len(cells); {
		item := cells[i]
		if item.isBreak {
			flush()
			i++
			continue
		}
		if lineWidth+item.width > width && len(line) > 0 {
			switch {
			case item.isSpace:
				flush()
				i++
			case lastSpaceIdx >= 0:
				out.WriteString(renderCells(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]cell{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			default:
				flush()
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderCells(line))
	return out.String()
}

func lineWidthOf(line []cell) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []cell) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
