// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/deepseek-hud/internal/ui/styles"
)

// =============================================================================
// INPUT AREA COMPONENT
// =============================================================================

// InputLines is the visible height of the message box.
const InputLines = 3

// InputPlaceholder is shown while the message box is empty.
const InputPlaceholder = "Enter to send, Alt+Enter for newline..."

// NewlineKeys insert a line break instead of sending.
var NewlineKeys = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))

// InputArea is the multi-line message box.
type InputArea struct {
	textarea textarea.Model
	width    int
	theme    *styles.Theme
}

// NewInputArea creates a focused, empty input area.
func NewInputArea(theme *styles.Theme) *InputArea {
	ta := textarea.New()
	ta.Placeholder = InputPlaceholder
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.KeyMap.InsertNewline = NewlineKeys
	ta.SetHeight(InputLines)
	ta.Focus()

	in := &InputArea{textarea: ta, width: 80}
	in.SetTheme(theme)
	return in
}

// SetTheme restyles the input area.
func (in *InputArea) SetTheme(theme *styles.Theme) {
	in.theme = theme
	in.textarea.FocusedStyle.Text = theme.Body
	in.textarea.FocusedStyle.CursorLine = theme.Body
	in.textarea.FocusedStyle.Placeholder = theme.Placeholder
	in.textarea.BlurredStyle = in.textarea.FocusedStyle
}

// SetWidth sets the outer width including the border.
func (in *InputArea) SetWidth(width int) {
	in.width = width
	// Border takes two cells.
	in.textarea.SetWidth(max(width-2, 1))
}

// Height returns the rendered height including the border.
func (in *InputArea) Height() int {
	return InputLines + 2
}

// Value returns the current text.
func (in *InputArea) Value() string {
	return in.textarea.Value()
}

// SetValue replaces the current text.
func (in *InputArea) SetValue(s string) {
	in.textarea.SetValue(s)
}

// Reset clears the text.
func (in *InputArea) Reset() {
	in.textarea.Reset()
}

// Update forwards a message to the textarea.
func (in *InputArea) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	in.textarea, cmd = in.textarea.Update(msg)
	return cmd
}

// View renders the bordered input.
func (in *InputArea) View() string {
	return in.theme.InputBox.Width(in.width - 2).Render(in.textarea.View())
}
