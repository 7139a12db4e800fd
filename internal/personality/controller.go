// Package personality decides when the simulated typist changes behaviour.
package personality

import (
	"go.uber.org/zap"

	"github.com/verte-zerg/bytesurge/internal/model"
	"github.com/verte-zerg/bytesurge/internal/rng"
)

const (
	minTenure = 5
	maxTenure = 15
)

// Transition describes the outcome of a Tick.
type Transition struct {
	From     model.Personality
	To       model.Personality
	Switched bool
}

// Controller owns personality switching.
type Controller struct {
	src    rng.Source
	logger *zap.Logger
}

// NewController returns a Controller. A nil logger discards events.
func NewController(src rng.Source, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{src: src, logger: logger}
}

// Tick is called once per generated block. It bumps the tenure counter and,
// once the counter exceeds a freshly drawn threshold in [5, 15), picks a new
// personality uniformly (possibly the same one) and resets the counter.
func (c *Controller) Tick(st *model.State) Transition {
	st.Tenure++
	threshold := c.src.IntRange(minTenure, maxTenure)
	if st.Tenure <= threshold {
		return Transition{From: st.Personality, To: st.Personality}
	}
	old := st.Personality
	st.Personality = rng.Choose(c.src, model.Personalities)
	st.Tenure = 0
	c.logger.Info("personality switch",
		zap.Stringer("from", old),
		zap.Stringer("to", st.Personality),
	)
	return Transition{From: old, To: st.Personality, Switched: true}
}
