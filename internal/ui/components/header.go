// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deepseek-hud/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Title is the HUD title.
const Title = "DEEPSEEK HUD"

// gaugeWidth is the opacity bar width in cells.
const gaugeWidth = 8

// Header is the title bar: title and activity on the left, opacity gauge and
// close hint on the right.
type Header struct {
	Width      int
	Opacity    float64
	MinOpacity float64
	MaxOpacity float64

	// Busy shows the spinner frame next to the title.
	Busy  bool
	Frame int

	theme *styles.Theme
}

// NewHeader creates a header for the opacity range [min, max].
func NewHeader(theme *styles.Theme, min, max float64) *Header {
	return &Header{
		Width:      80,
		Opacity:    max,
		MinOpacity: min,
		MaxOpacity: max,
		theme:      theme,
	}
}

// SetTheme switches the header to a new theme.
func (h *Header) SetTheme(theme *styles.Theme) {
	h.theme = theme
}

// Tick advances the spinner.
func (h *Header) Tick() {
	h.Frame++
}

// View renders the header.
func (h *Header) View() string {
	t := h.theme

	left := t.Title.Render(Title)
	if h.Busy {
		frames := styles.DotsSpinner.Frames
		left += " " + t.CloseHint.Render(frames[h.Frame%len(frames)])
	}

	gauge := styles.RenderGauge(gaugeWidth, h.Opacity, h.MinOpacity, h.MaxOpacity)
	right := strings.Join([]string{
		t.Gauge.Render(styles.GaugeIcon + " " + gauge),
		t.CloseHint.Render(fmt.Sprintf("%3.0f%%", h.Opacity*100)),
		t.CloseHint.Render("esc ×"),
	}, " ")

	gap := h.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + right

	return t.Header.Width(h.Width).Render(line)
}
