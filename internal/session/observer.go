package session

import (
	"time"

	"github.com/verte-zerg/bytesurge/internal/generator"
	"github.com/verte-zerg/bytesurge/internal/model"
)

// BlockReport summarizes one rendered block.
type BlockReport struct {
	Template    string
	Personality model.Personality
	Runes       int
	Keystrokes  int
	Typos       int
	Refactored  bool
	Deleted     int
	Elapsed     time.Duration
}

// Observer receives session events. Calls happen on the loop's goroutine.
type Observer interface {
	PersonalityChanged(from, to model.Personality)
	BlockStarted(block generator.Block, p model.Personality)
	Typo(intended, typed rune)
	Refactor(deleted int)
	BlockFinished(report BlockReport)
}

// NopObserver ignores every event. Embed it to implement a subset.
type NopObserver struct{}

// PersonalityChanged implements Observer.
func (NopObserver) PersonalityChanged(model.Personality, model.Personality) {}

// BlockStarted implements Observer.
func (NopObserver) BlockStarted(generator.Block, model.Personality) {}

// Typo implements Observer.
func (NopObserver) Typo(rune, rune) {}

// Refactor implements Observer.
func (NopObserver) Refactor(int) {}

// BlockFinished implements Observer.
func (NopObserver) BlockFinished(BlockReport) {}

// Observers fans events out to several observers.
type Observers []Observer

// PersonalityChanged fans out to every observer in order.
func (o Observers) PersonalityChanged(from, to model.Personality) {
	for _, obs := range o {
		obs.PersonalityChanged(from, to)
	}
}

// BlockStarted fans out to every observer in order.
func (o Observers) BlockStarted(block generator.Block, p model.Personality) {
	for _, obs := range o {
		obs.BlockStarted(block, p)
	}
}

// Typo fans out to every observer in order.
func (o Observers) Typo(intended, typed rune) {
	for _, obs := range o {
		obs.Typo(intended, typed)
	}
}

// Refactor fans out to every observer in order.
func (o Observers) Refactor(deleted int) {
	for _, obs := range o {
		obs.Refactor(deleted)
	}
}

// BlockFinished fans out to every observer in order.
func (o Observers) BlockFinished(report BlockReport) {
	for _, obs := range o {
		obs.BlockFinished(report)
	}
}
