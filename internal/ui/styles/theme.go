// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styles of the HUD at one opacity.
type Theme struct {
	// Terminal capabilities
	ColorProfile termenv.Profile

	// Opacity the styles were built for
	Opacity float64

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header    lipgloss.Style
	Title     lipgloss.Style
	Gauge     lipgloss.Style
	CloseHint lipgloss.Style

	// ==========================================================================
	// TRANSCRIPT STYLES
	// ==========================================================================

	UserBlock      lipgloss.Style
	UserLabel      lipgloss.Style
	UserText       lipgloss.Style
	AssistantLabel lipgloss.Style
	Body           lipgloss.Style
	ErrorNotice    lipgloss.Style
	Placeholder    lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputBox  lipgloss.Style
	InputHint lipgloss.Style
}

// NewTheme creates a theme for the given opacity.
func NewTheme(opacity float64) *Theme {
	t := &Theme{
		ColorProfile: termenv.ColorProfile(),
	}
	t.SetOpacity(opacity)
	return t
}

// SetOpacity rebuilds every style for a new opacity.
func (t *Theme) SetOpacity(opacity float64) {
	t.Opacity = opacity
	t.initStyles()
}

// Fade fades hex to the theme's opacity.
func (t *Theme) Fade(hex string) lipgloss.Color {
	return Fade(hex, t.Opacity)
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Fade(Border))

	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Fade(Accent))

	t.Gauge = lipgloss.NewStyle().
		Foreground(t.Fade(Accent))

	t.CloseHint = lipgloss.NewStyle().
		Foreground(t.Fade(TextMuted))

	// Transcript
	t.UserBlock = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Fade(UserBubble)).
		Padding(0, 1)

	t.UserLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Fade(UserBubble))

	t.UserText = lipgloss.NewStyle().
		Foreground(t.Fade(TextBright))

	t.AssistantLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Fade(TextBody))

	t.Body = lipgloss.NewStyle().
		Foreground(t.Fade(TextBody))

	t.ErrorNotice = lipgloss.NewStyle().
		Foreground(t.Fade(ErrorRed))

	t.Placeholder = lipgloss.NewStyle().
		Foreground(t.Fade(TextMuted)).
		Italic(true)

	// Input
	t.InputBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Fade(Border))

	t.InputHint = lipgloss.NewStyle().
		Foreground(t.Fade(TextMuted))
}

// MarkdownStyle returns glamour's dark style with the document text faded to
// the theme's opacity and no outer margin.
func (t *Theme) MarkdownStyle() ansi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig
	color := string(t.Fade(TextBody))
	var margin uint
	cfg.Document.Color = &color
	cfg.Document.Margin = &margin
	return cfg
}
