// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deepseek-hud/internal/ui/styles"
)

// =============================================================================
// API KEY PROMPT
// =============================================================================

// KeyPrompt asks for the DeepSeek API key. It quits the program on Enter
// with a non-empty key, or on Esc / Ctrl+C without one.
type KeyPrompt struct {
	input     textinput.Model
	theme     *styles.Theme
	width     int
	key       string
	submitted bool
	cancelled bool
	errMsg    string
}

// NewKeyPrompt creates the prompt with a masked, focused input.
func NewKeyPrompt(theme *styles.Theme) KeyPrompt {
	ti := textinput.New()
	ti.Placeholder = "sk-..."
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 256
	ti.Width = 40
	ti.Prompt = "> "
	ti.PromptStyle = theme.Title
	ti.TextStyle = theme.Body
	ti.PlaceholderStyle = theme.Placeholder
	ti.Focus()

	return KeyPrompt{
		input: ti,
		theme: theme,
		width: 50,
	}
}

// Init implements tea.Model.
func (p KeyPrompt) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (p KeyPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		return p, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			key := strings.TrimSpace(p.input.Value())
			if key == "" {
				p.errMsg = "API key required"
				return p, nil
			}
			p.key = key
			p.submitted = true
			return p, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			p.cancelled = true
			return p, tea.Quit
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.errMsg != "" && strings.TrimSpace(p.input.Value()) != "" {
		p.errMsg = ""
	}
	return p, cmd
}

// View implements tea.Model.
func (p KeyPrompt) View() string {
	if p.submitted || p.cancelled {
		return ""
	}
	t := p.theme

	lines := []string{
		t.Title.Render("DeepSeek HUD setup"),
		"",
		t.Body.Render("Enter your DeepSeek API key:"),
		p.input.View(),
	}
	if p.errMsg != "" {
		lines = append(lines, t.ErrorNotice.Render(ErrorIcon+" "+p.errMsg))
	}
	lines = append(lines, "", t.InputHint.Render("Enter to save and start · Esc to quit"))

	box := t.UserBlock.Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return lipgloss.PlaceHorizontal(max(p.width, lipgloss.Width(box)), lipgloss.Center, box)
}

// Key returns the entered key after a successful submit.
func (p KeyPrompt) Key() string {
	return p.key
}

// Submitted reports whether a key was entered.
func (p KeyPrompt) Submitted() bool {
	return p.submitted
}

// Cancelled reports whether the user aborted.
func (p KeyPrompt) Cancelled() bool {
	return p.cancelled
}
