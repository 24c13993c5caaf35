// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"time"
)

// =============================================================================
// SPINNER ANIMATIONS
// =============================================================================

// DotsSpinner - Classic three-dot animation
var DotsSpinner = SpinnerConfig{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	FPS:    6,
}

// SpinnerConfig holds the configuration for a spinner animation.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// Duration returns the duration for each frame.
func (s SpinnerConfig) Duration() time.Duration {
	return time.Second / time.Duration(s.FPS)
}

// =============================================================================
// GAUGE
// =============================================================================

// Gauge characters for the opacity slider.
var (
	GaugeFull  = "█"
	GaugeEmpty = "░"
	GaugeIcon  = "◐"
)

// RenderGauge draws a bar of width cells filled to value within [min, max].
func RenderGauge(width int, value, min, max float64) string {
	if width <= 0 || max <= min {
		return ""
	}
	frac := (value - min) / (max - min)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac*float64(width) + 0.5)

	var sb strings.Builder
	sb.Grow(width * 3)
	sb.WriteString(strings.Repeat(GaugeFull, filled))
	sb.WriteString(strings.Repeat(GaugeEmpty, width-filled))
	return sb.String()
}
