// Package session drives the typing simulation: one block after another
// until the surrounding context is cancelled.
package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/verte-zerg/bytesurge/internal/catalog"
	"github.com/verte-zerg/bytesurge/internal/clock"
	"github.com/verte-zerg/bytesurge/internal/generator"
	"github.com/verte-zerg/bytesurge/internal/model"
	"github.com/verte-zerg/bytesurge/internal/personality"
	"github.com/verte-zerg/bytesurge/internal/refactor"
	"github.com/verte-zerg/bytesurge/internal/rng"
	"github.com/verte-zerg/bytesurge/internal/timing"
	"github.com/verte-zerg/bytesurge/internal/typo"
)

const (
	preBlockPauseProbability = 0.3
	blockSeparator           = "\n\n"
)

// Options configures a Loop. Source, Clock, Logger and Observer are optional.
type Options struct {
	Speed    float64
	Catalog  *catalog.Catalog
	Sink     Sink
	Source   rng.Source
	Clock    clock.Clock
	Logger   *zap.Logger
	Observer Observer
}

// Loop is the session state machine. It is not safe for concurrent use.
type Loop struct {
	st        *model.State
	src       rng.Source
	clock     clock.Clock
	logger    *zap.Logger
	obs       Observer
	ctrl      *personality.Controller
	gen       *generator.Generator
	timing    *timing.Model
	refactors *refactor.Engine
	renderer  *Renderer
	blocks    int
}

// New validates opts and wires the components around one simulator state.
func New(opts Options) (*Loop, error) {
	st, err := model.NewState(opts.Speed)
	if err != nil {
		return nil, err
	}
	if opts.Catalog == nil {
		return nil, errors.New("session: catalog is required")
	}
	if opts.Sink == nil {
		return nil, errors.New("session: sink is required")
	}
	src := opts.Source
	if src == nil {
		src = rng.New()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	obs := opts.Observer
	if obs == nil {
		obs = NopObserver{}
	}

	tm := timing.New(src)
	refactors := refactor.New(src)
	l := &Loop{
		st:        st,
		src:       src,
		clock:     clk,
		logger:    logger,
		obs:       obs,
		ctrl:      personality.NewController(src, logger),
		gen:       generator.New(opts.Catalog, src),
		timing:    tm,
		refactors: refactors,
	}
	l.renderer = &Renderer{
		st:        st,
		src:       src,
		sink:      opts.Sink,
		clock:     clk,
		timing:    tm,
		typos:     typo.New(src),
		refactors: refactors,
		logger:    logger,
		obs:       obs,
	}
	return l, nil
}

// State returns a copy of the simulator state.
func (l *Loop) State() model.State {
	return *l.st
}

// Blocks returns the number of completed blocks.
func (l *Loop) Blocks() int {
	return l.blocks
}

// RunUntil runs blocks until ctx is cancelled. Cancellation is a normal stop
// and yields nil; any other error (an output failure) is returned.
func (l *Loop) RunUntil(ctx context.Context) error {
	l.logger.Info("session started",
		zap.Float64("speed", l.st.Speed),
		zap.Stringer("personality", l.st.Personality),
	)
	for {
		if ctx.Err() != nil {
			return nil
		}
		if err := l.Step(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("session stopped after %d blocks: %w", l.blocks, err)
		}
	}
}

// Step runs a single iteration: tick, generate, render, separate, rest.
func (l *Loop) Step(ctx context.Context) error {
	if tr := l.ctrl.Tick(l.st); tr.Switched {
		l.obs.PersonalityChanged(tr.From, tr.To)
	}

	block := l.gen.Next()
	l.renderer.startReport(block.Template)
	l.renderer.report.Runes = len([]rune(block.Text))
	l.obs.BlockStarted(block, l.st.Personality)

	if l.src.Float64() < preBlockPauseProbability {
		if err := l.renderer.sleep(ctx, l.timing.ThinkingPause(l.st)); err != nil {
			return err
		}
	}

	var plan refactor.Plan
	if l.refactors.ShouldRefactor(l.st.Personality) {
		plan = l.refactors.PlanFor(l.renderer.report.Runes)
	}

	if err := l.renderer.RenderBlock(ctx, block.Text, plan); err != nil {
		return err
	}
	if err := l.renderer.TypeText(ctx, blockSeparator); err != nil {
		return err
	}
	if err := l.renderer.sleep(ctx, l.timing.BlockPause(l.st)); err != nil {
		return err
	}

	l.blocks++
	l.obs.BlockFinished(l.renderer.report)
	return nil
}
