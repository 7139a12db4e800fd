// Package refactor decides whether and where a block is partly erased and retyped.
package refactor

import (
	"github.com/verte-zerg/bytesurge/internal/model"
	"github.com/verte-zerg/bytesurge/internal/rng"
)

const (
	minDelete = 5
	maxDelete = 30
)

// Plan marks the rune offset at which a block's rendering turns into a rewrite.
type Plan struct {
	Offset int
	OK     bool
}

// Engine makes refactor decisions.
type Engine struct {
	src rng.Source
}

// New returns an Engine drawing from src.
func New(src rng.Source) *Engine {
	return &Engine{src: src}
}

// ShouldRefactor is always false for personalities without a refactor rate.
func (e *Engine) ShouldRefactor(p model.Personality) bool {
	rate := model.ParamsFor(p).RefactorRate
	if rate <= 0 {
		return false
	}
	return e.src.Float64() < rate
}

// PlanFor picks an offset in [length/3, 2*length/3). Blocks too short for a
// non-empty range get no plan.
func (e *Engine) PlanFor(length int) Plan {
	lo, hi := length/3, length*2/3
	if hi <= lo {
		return Plan{}
	}
	return Plan{Offset: e.src.IntRange(lo, hi), OK: true}
}

// DeleteCount draws how many already-typed runes to erase. remaining is the
// number of runes from the refactor point to the end of the block and
// emitted the number already on screen; the result never exceeds emitted.
func (e *Engine) DeleteCount(remaining, emitted int) int {
	hi := min(maxDelete, remaining)
	n := minDelete
	if hi > minDelete {
		n = e.src.IntRange(minDelete, hi)
	}
	return max(min(n, emitted), 0)
}
