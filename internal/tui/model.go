// Package tui renders a running session in a Bubble Tea interface.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/bytesurge/internal/model"
)

// maxRunes bounds the retained text; older lines are dropped first.
const maxRunes = 16000

var (
	textStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Underline(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))

	personalityStyles = map[model.Personality]lipgloss.Style{
		model.Rusher:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true),
		model.Careful:    lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true),
		model.Refactorer: lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true),
	}
)

// Model implements the Bubble Tea view of a session.
type Model struct {
	vp    viewport.Model
	ready bool
	width int

	text []rune

	personality model.Personality
	speed       float64
	template    string
	blocks      int
	typos       int
	refactors   int
}

// NewModel constructs a view for a session starting in personality p.
func NewModel(speed float64, p model.Personality) *Model {
	return &Model{speed: speed, personality: p}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		height := max(msg.Height-1, 1)
		if !m.ready {
			m.vp = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = height
		}
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	case runeMsg:
		m.append(rune(msg))
		m.refresh()
		return m, nil
	case eraseMsg:
		if len(m.text) > 0 {
			m.text = m.text[:len(m.text)-1]
		}
		m.refresh()
		return m, nil
	case personalityMsg:
		m.personality = msg.to
		return m, nil
	case blockStartedMsg:
		m.template = msg.template
		m.personality = msg.personality
		return m, nil
	case typoMsg:
		m.typos++
		return m, nil
	case refactorMsg:
		m.refactors++
		return m, nil
	case blockFinishedMsg:
		m.blocks++
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return m.content() + "\n" + m.renderFooter()
	}
	return m.vp.View() + "\n" + m.renderFooter()
}

// Text returns the visible text.
func (m *Model) Text() string {
	return string(m.text)
}

func (m *Model) append(r rune) {
	m.text = append(m.text, r)
	if len(m.text) <= maxRunes {
		return
	}
	cut := len(m.text) - maxRunes/2
	for i := cut; i < len(m.text); i++ {
		if m.text[i] == '\n' {
			cut = i + 1
			break
		}
	}
	m.text = append([]rune(nil), m.text[cut:]...)
}

func (m *Model) content() string {
	wrapped := wrapCells(buildCells(m.text), max(m.width-1, 0))
	return textStyle.Render(wrapped) + cursorStyle.Render(" ")
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.vp.SetContent(m.content())
	m.vp.GotoBottom()
}

func (m *Model) renderFooter() string {
	style, ok := personalityStyles[m.personality]
	if !ok {
		style = footerStyle
	}
	segments := []string{
		fmt.Sprintf("x%.1f", m.speed),
		fmt.Sprintf("Blocks %d", m.blocks),
		fmt.Sprintf("Typos %d", m.typos),
		fmt.Sprintf("Refactors %d", m.refactors),
	}
	if m.template != "" {
		segments = append(segments, m.template)
	}
	return style.Render(m.personality.String()) + "  " + footerStyle.Render(strings.Join(segments, "  "))
}
