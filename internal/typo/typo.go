// Package typo decides when a keystroke goes wrong and which key gets hit instead.
package typo

import (
	"strings"
	"unicode"

	"github.com/verte-zerg/bytesurge/internal/model"
	"github.com/verte-zerg/bytesurge/internal/rng"
)

// Keyboard is the key order used to find neighbours of an intended letter.
const Keyboard = "qwertyuiopasdfghjklzxcvbnm"

// Window is the maximum index distance of a neighbouring key.
const Window = 2

var fallbackPool = []rune("qwertyuiop")

// Engine injects typos.
type Engine struct {
	src rng.Source
}

// New returns an Engine drawing from src.
func New(src rng.Source) *Engine {
	return &Engine{src: src}
}

// ShouldMakeTypo reports whether the next letter should be mistyped.
func (e *Engine) ShouldMakeTypo(p model.Personality) bool {
	return e.src.Float64() < model.ParamsFor(p).TypoRate
}

// MakeTypo returns a key near intended. The window is inclusive, so the
// intended key itself is a possible result. Characters not on the keyboard
// get a key from the top row.
func (e *Engine) MakeTypo(intended rune) rune {
	candidates := Neighbors(intended)
	if len(candidates) == 0 {
		candidates = fallbackPool
	}
	out := rng.Choose(e.src, candidates)
	if unicode.IsUpper(intended) {
		out = unicode.ToUpper(out)
	}
	return out
}

// Neighbors returns the keys within Window of c's position, or nil when c is
// not on the keyboard.
func Neighbors(c rune) []rune {
	idx := strings.IndexRune(Keyboard, unicode.ToLower(c))
	if idx < 0 {
		return nil
	}
	lo := max(idx-Window, 0)
	hi := min(idx+Window+1, len(Keyboard))
	return []rune(Keyboard[lo:hi])
}
