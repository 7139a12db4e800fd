package session

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/verte-zerg/bytesurge/internal/clock"
	"github.com/verte-zerg/bytesurge/internal/model"
	"github.com/verte-zerg/bytesurge/internal/refactor"
	"github.com/verte-zerg/bytesurge/internal/rng"
	"github.com/verte-zerg/bytesurge/internal/timing"
	"github.com/verte-zerg/bytesurge/internal/typo"
)

const (
	// pauseChars may trigger a short think before they are typed.
	pauseChars       = " \n{}();"
	pauseProbability = 0.1
)

// Sink is the character output surface.
type Sink interface {
	Write(r rune) error
	Backspace() error
}

// Renderer types text through the keystroke protocol.
type Renderer struct {
	st        *model.State
	src       rng.Source
	sink      Sink
	clock     clock.Clock
	timing    *timing.Model
	typos     *typo.Engine
	refactors *refactor.Engine
	logger    *zap.Logger
	obs       Observer

	report BlockReport
}

// RenderBlock types text, switching to a delete-and-retype once the cursor
// reaches plan.Offset. The rewrite consumes the rest of the block.
func (r *Renderer) RenderBlock(ctx context.Context, text string, plan refactor.Plan) error {
	runes := []rune(text)
	for i, c := range runes {
		if plan.OK && i == plan.Offset {
			return r.deleteAndRetype(ctx, runes, i)
		}
		if err := r.typeRune(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// TypeText types every rune of text with no refactor.
func (r *Renderer) TypeText(ctx context.Context, text string) error {
	return r.typeRunes(ctx, []rune(text))
}

func (r *Renderer) typeRunes(ctx context.Context, runes []rune) error {
	for _, c := range runes {
		if err := r.typeRune(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// typeRune runs the full protocol for one character. A typo sequence is
// never interrupted by another decision.
func (r *Renderer) typeRune(ctx context.Context, c rune) error {
	if strings.ContainsRune(pauseChars, c) && r.src.Float64() < pauseProbability {
		if err := r.sleep(ctx, r.timing.ThinkingPause(r.st)); err != nil {
			return err
		}
	}

	if unicode.IsLetter(c) && r.typos.ShouldMakeTypo(r.st.Personality) {
		wrong := r.typos.MakeTypo(c)
		if err := r.emit(wrong); err != nil {
			return err
		}
		if err := r.sleep(ctx, r.timing.TypingDelay(r.st)); err != nil {
			return err
		}
		if err := r.sleep(ctx, r.timing.MistakePause(r.st)); err != nil {
			return err
		}
		if err := r.erase(); err != nil {
			return err
		}
		if err := r.sleep(ctx, timing.CorrectionDelay); err != nil {
			return err
		}
		r.report.Typos++
		r.obs.Typo(c, wrong)
	}

	if err := r.emit(c); err != nil {
		return err
	}
	return r.sleep(ctx, r.timing.TypingDelay(r.st))
}

func (r *Renderer) deleteAndRetype(ctx context.Context, runes []rune, offset int) error {
	count := r.refactors.DeleteCount(len(runes)-offset, offset)
	r.logger.Info("refactor in progress",
		zap.Int("offset", offset),
		zap.Int("delete", count),
	)
	r.report.Refactored = true
	r.report.Deleted = count
	r.obs.Refactor(count)

	for i := 0; i < count; i++ {
		if err := r.erase(); err != nil {
			return err
		}
		if err := r.sleep(ctx, timing.EraseDelay); err != nil {
			return err
		}
	}
	if err := r.sleep(ctx, r.timing.RewritePause(r.st)); err != nil {
		return err
	}
	return r.typeRunes(ctx, runes[offset-count:])
}

func (r *Renderer) emit(c rune) error {
	if err := r.sink.Write(c); err != nil {
		return fmt.Errorf("failed to type %q: %w", c, err)
	}
	r.report.Keystrokes++
	return nil
}

func (r *Renderer) erase() error {
	if err := r.sink.Backspace(); err != nil {
		return fmt.Errorf("failed to erase: %w", err)
	}
	r.report.Keystrokes++
	return nil
}

func (r *Renderer) sleep(ctx context.Context, d time.Duration) error {
	r.report.Elapsed += d
	return r.clock.Sleep(ctx, d)
}

func (r *Renderer) startReport(template string) {
	r.report = BlockReport{Template: template, Personality: r.st.Personality}
}
