package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/bytesurge/internal/generator"
	"github.com/verte-zerg/bytesurge/internal/model"
	"github.com/verte-zerg/bytesurge/internal/session"
)

type (
	runeMsg        rune
	eraseMsg       struct{}
	personalityMsg struct{ to model.Personality }
	typoMsg        struct{}
	refactorMsg    struct{ deleted int }

	blockStartedMsg struct {
		template    string
		personality model.Personality
	}
	blockFinishedMsg struct{ report session.BlockReport }
)

// Sender delivers messages to a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Sink forwards keystrokes and session events to a Bubble Tea program. It is
// both the session's output sink and an observer.
type Sink struct {
	to Sender
}

var _ session.Observer = (*Sink)(nil)

// NewSink returns a Sink sending to to.
func NewSink(to Sender) *Sink {
	return &Sink{to: to}
}

// Write implements session.Sink.
func (s *Sink) Write(r rune) error {
	s.to.Send(runeMsg(r))
	return nil
}

// Backspace implements session.Sink.
func (s *Sink) Backspace() error {
	s.to.Send(eraseMsg{})
	return nil
}

// PersonalityChanged updates the footer.
func (s *Sink) PersonalityChanged(_, to model.Personality) {
	s.to.Send(personalityMsg{to: to})
}

// BlockStarted shows the block's template name.
func (s *Sink) BlockStarted(block generator.Block, p model.Personality) {
	s.to.Send(blockStartedMsg{template: block.Template, personality: p})
}

// Typo bumps the footer typo counter.
func (s *Sink) Typo(rune, rune) {
	s.to.Send(typoMsg{})
}

// Refactor bumps the footer refactor counter.
func (s *Sink) Refactor(deleted int) {
	s.to.Send(refactorMsg{deleted: deleted})
}

// BlockFinished bumps the footer block counter.
func (s *Sink) BlockFinished(report session.BlockReport) {
	s.to.Send(blockFinishedMsg{report: report})
}
