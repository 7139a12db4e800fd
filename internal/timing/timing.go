// Package timing derives keystroke and pause durations from the active personality.
package timing

import (
	"time"

	"github.com/verte-zerg/bytesurge/internal/model"
	"github.com/verte-zerg/bytesurge/internal/rng"
)

// Personality-independent ranges, scaled by speed.
var (
	MistakePause = model.Range{Min: 100, Max: 500}
	RewritePause = model.Range{Min: 800, Max: 2000}
	BlockPause   = model.Range{Min: 500, Max: 1500}
)

// Fixed delays that ignore the speed multiplier.
const (
	CorrectionDelay = 50 * time.Millisecond
	EraseDelay      = 30 * time.Millisecond
)

// Model draws durations. It has no state of its own; every call draws afresh.
type Model struct {
	src rng.Source
}

// New returns a Model drawing from src.
func New(src rng.Source) *Model {
	return &Model{src: src}
}

// TypingDelay is the pause after each emitted character.
func (m *Model) TypingDelay(st *model.State) time.Duration {
	return m.Draw(model.ParamsFor(st.Personality).TypingDelay, st.Speed)
}

// ThinkingPause is the longer pause taken before a block or at punctuation.
func (m *Model) ThinkingPause(st *model.State) time.Duration {
	return m.Draw(model.ParamsFor(st.Personality).ThinkingPause, st.Speed)
}

// MistakePause is the delay between a wrong keystroke and its erase.
func (m *Model) MistakePause(st *model.State) time.Duration {
	return m.Draw(MistakePause, st.Speed)
}

// RewritePause is taken after a refactor erase, before retyping.
func (m *Model) RewritePause(st *model.State) time.Duration {
	return m.Draw(RewritePause, st.Speed)
}

// BlockPause separates consecutive blocks.
func (m *Model) BlockPause(st *model.State) time.Duration {
	return m.Draw(BlockPause, st.Speed)
}

// Draw picks a whole millisecond value in r and divides it by speed.
func (m *Model) Draw(r model.Range, speed float64) time.Duration {
	base := m.src.IntRange(r.Min, r.Max)
	return Scale(base, speed)
}

// Scale converts a millisecond count into a duration divided by speed.
// Non-positive or invalid speeds are treated as model.MinSpeed.
func Scale(ms int, speed float64) time.Duration {
	if !(speed >= model.MinSpeed) {
		speed = model.MinSpeed
	}
	if ms < 0 {
		ms = 0
	}
	return time.Duration(float64(ms) / speed * float64(time.Millisecond))
}
