// Package model defines shared data structures.
package model

import (
	"errors"
	"fmt"
	"math"
)

// MinSpeed is the smallest accepted speed multiplier.
const MinSpeed = 0.01

// ErrInvalidSpeed is returned when a speed multiplier is not a finite value >= MinSpeed.
var ErrInvalidSpeed = errors.New("speed multiplier must be a finite value >= 0.01")

// Personality is a behavioural mode controlling timing and mistake rates.
type Personality int

const (
	Rusher Personality = iota
	Careful
	Refactorer
)

// Personalities lists every variant in declaration order.
var Personalities = []Personality{Rusher, Careful, Refactorer}

// String implements fmt.Stringer.
func (p Personality) String() string {
	switch p {
	case Rusher:
		return "Rusher"
	case Careful:
		return "Careful"
	case Refactorer:
		return "Refactorer"
	default:
		return fmt.Sprintf("Personality(%d)", int(p))
	}
}

// Range is a half-open millisecond range [Min, Max).
type Range struct {
	Min int
	Max int
}

// Params holds the per-personality timing and mistake parameters.
type Params struct {
	TypingDelay   Range
	ThinkingPause Range
	TypoRate      float64
	RefactorRate  float64
}

var paramTable = map[Personality]Params{
	Rusher: {
		TypingDelay:   Range{Min: 20, Max: 80},
		ThinkingPause: Range{Min: 200, Max: 800},
		TypoRate:      0.08,
	},
	Careful: {
		TypingDelay:   Range{Min: 80, Max: 150},
		ThinkingPause: Range{Min: 800, Max: 2000},
		TypoRate:      0.02,
	},
	Refactorer: {
		TypingDelay:   Range{Min: 60, Max: 120},
		ThinkingPause: Range{Min: 500, Max: 1500},
		TypoRate:      0.05,
		RefactorRate:  0.15,
	},
}

// ParamsFor returns the parameter tuple for p. Unknown values get Careful's.
func ParamsFor(p Personality) Params {
	if params, ok := paramTable[p]; ok {
		return params
	}
	return paramTable[Careful]
}

// State is the mutable simulator record owned by a single session.
type State struct {
	Personality Personality
	Tenure      int
	Speed       float64
}

// NewState returns a state starting in the Careful personality.
func NewState(speed float64) (*State, error) {
	if math.IsNaN(speed) || math.IsInf(speed, 0) || speed < MinSpeed {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidSpeed, speed)
	}
	return &State{Personality: Careful, Speed: speed}, nil
}

// Config defines simulator settings resolved from flags and the config file.
type Config struct {
	Speed    float64
	Lang     string
	Seed     int64
	TUI      bool
	LogLevel string
	LogFile  string
}
