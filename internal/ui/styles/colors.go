// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Background - Overlay background, the color everything fades towards
const Background = "#141414"

// Border - Separators and the input frame
const Border = "#3A3A3A"

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Accent - Title, gauge fill
const Accent = "#00FFCC"

// UserBubble - User message border and label
const UserBubble = "#00C896"

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextBody - Transcript and input text
const TextBody = "#E0E0E0"

// TextMuted - Hints and labels
const TextMuted = "#AAAAAA"

// TextBright - User message text
const TextBright = "#FFFFFF"

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// ErrorRed - Error notices
const ErrorRed = "#FF5555"

// =============================================================================
// OPACITY
// =============================================================================

// Fade blends hex towards Background. Opacity 1 returns the color unchanged
// and 0 returns the background. Invalid hex values are returned as-is.
func Fade(hex string, opacity float64) lipgloss.Color {
	fg, err := colorful.Hex(hex)
	if err != nil {
		return lipgloss.Color(hex)
	}
	bg, err := colorful.Hex(Background)
	if err != nil {
		return lipgloss.Color(hex)
	}
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return lipgloss.Color(bg.BlendRgb(fg, opacity).Clamped().Hex())
}
