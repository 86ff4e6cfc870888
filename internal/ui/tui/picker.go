// Package tui provides the interactive terminal picker built on Bubble Tea.
package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/cleanarch/agentsync/internal/discover"
	"github.com/cleanarch/agentsync/internal/scope"
)

// ErrNotATerminal is returned by RunPicker when stdin is not a TTY.
var ErrNotATerminal = errors.New("interactive picker requires a terminal")

// PickerAction represents the outcome of the picker interaction.
type PickerAction int

const (
	// PickerActionNone means the user quit without selecting.
	PickerActionNone PickerAction = iota
	// PickerActionSelect means a source and scope were chosen.
	PickerActionSelect
)

// PickerResult contains the user's choices.
type PickerResult struct {
	Action PickerAction
	Source discover.Candidate
	Scope  scope.Scope
}

// pickerPhase is the current selection step.
type pickerPhase int

const (
	phaseSource pickerPhase = iota
	phaseScope
)

// pickerKeyMap defines the key bindings for the picker.
type pickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func defaultPickerKeyMap() pickerKeyMap {
	return pickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Styles for the picker.
var pickerStyles = struct {
	Title    lipgloss.Style
	Help     lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Detail   lipgloss.Style
	Status   lipgloss.Style
}{
	Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1),
	Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Item:     lipgloss.NewStyle().Padding(0, 2),
	Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 2),
	Detail:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 4),
	Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
}

// PickerModel is the Bubble Tea model for source and scope selection.
type PickerModel struct {
	candidates []discover.Candidate
	scopes     []scope.Scope
	cursor     int
	phase      pickerPhase
	source     discover.Candidate
	keys       pickerKeyMap
	result     PickerResult
	quitting   bool
}

// NewPickerModel creates a picker over the given source candidates.
func NewPickerModel(candidates []discover.Candidate) PickerModel {
	return PickerModel{
		candidates: candidates,
		scopes:     scope.AllScopes(),
		keys:       defaultPickerKeyMap(),
		phase:      phaseSource,
	}
}

// Init implements tea.Model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

func (m PickerModel) itemCount() int {
	if m.phase == phaseSource {
		return len(m.candidates)
	}
	return len(m.scopes)
}

// Update implements tea.Model.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < m.itemCount()-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Back):
		if m.phase == phaseScope {
			m.phase = phaseSource
			m.cursor = 0
			for i, c := range m.candidates {
				if c.Path == m.source.Path {
					m.cursor = i
					break
				}
			}
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Select):
		if m.phase == phaseSource {
			m.source = m.candidates[m.cursor]
			m.phase = phaseScope
			m.cursor = 0
			return m, nil
		}

		m.result = PickerResult{
			Action: PickerActionSelect,
			Source: m.source,
			Scope:  m.scopes[m.cursor],
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	if m.phase == phaseSource {
		b.WriteString(pickerStyles.Title.Render("Sync Agents - Select Source Directory"))
	} else {
		b.WriteString(pickerStyles.Title.Render("Sync Agents - Select Destination Scope"))
	}
	b.WriteString("\n\n")

	if m.phase == phaseScope {
		b.WriteString(fmt.Sprintf("  Source: %s\n\n", m.source.Name))
	}

	if m.phase == phaseSource {
		for i, c := range m.candidates {
			if i == m.cursor {
				b.WriteString(pickerStyles.Selected.Render("> " + c.Name))
			} else {
				b.WriteString(pickerStyles.Item.Render("  " + c.Name))
			}
			b.WriteString("\n")
			b.WriteString(pickerStyles.Detail.Render(c.Path))
			b.WriteString("\n")
		}
	} else {
		for i, s := range m.scopes {
			if i == m.cursor {
				b.WriteString(pickerStyles.Selected.Render("> " + s.String()))
			} else {
				b.WriteString(pickerStyles.Item.Render("  " + s.String()))
			}
			b.WriteString("\n")
			b.WriteString(pickerStyles.Detail.Render(s.Description()))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	status := "Select the directory to sync FROM"
	if m.phase == phaseScope {
		status = "Select WHERE to sync the agents"
	}
	b.WriteString(pickerStyles.Status.Render(status))
	b.WriteString("\n")

	help := []string{"↑/↓ navigate", "enter select"}
	if m.phase == phaseScope {
		help = append(help, "esc back")
	}
	help = append(help, "q quit")
	b.WriteString(pickerStyles.Help.Render(strings.Join(help, " • ")))

	return b.String()
}

// Result returns the outcome of the interaction.
func (m PickerModel) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive picker. It refuses to start when stdin is
// not a terminal.
func RunPicker(candidates []discover.Candidate) (PickerResult, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return PickerResult{}, ErrNotATerminal
	}

	model := NewPickerModel(candidates)
	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return PickerResult{}, err
	}

	if m, ok := finalModel.(PickerModel); ok {
		return m.Result(), nil
	}

	return PickerResult{}, nil
}
