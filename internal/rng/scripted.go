package rng

// Scripted is a deterministic Source for tests.
//
// Float64 returns Floats in order and then FloatDefault. IntRange asks IntFn
// (or returns lo when IntFn is nil) and clamps the answer into [lo, hi).
type Scripted struct {
	Floats       []float64
	FloatDefault float64
	IntFn        func(lo, hi int) int

	floatCalls int
	intCalls   int
}

// Float64 implements Source.
func (s *Scripted) Float64() float64 {
	s.floatCalls++
	if len(s.Floats) > 0 {
		v := s.Floats[0]
		s.Floats = s.Floats[1:]
		return v
	}
	return s.FloatDefault
}

// IntRange implements Source.
func (s *Scripted) IntRange(lo, hi int) int {
	s.intCalls++
	v := lo
	if s.IntFn != nil {
		v = s.IntFn(lo, hi)
	}
	if v >= hi {
		v = hi - 1
	}
	if v < lo {
		v = lo
	}
	return v
}

// Calls reports how many Float64 and IntRange draws were made.
func (s *Scripted) Calls() (floats, ints int) {
	return s.floatCalls, s.intCalls
}
