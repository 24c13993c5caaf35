// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// ERROR NOTICE
// =============================================================================

// ErrorIcon prefixes every error notice.
const ErrorIcon = "⚠"

// ErrorNotice renders a failure description centered in red.
func (r *Renderer) ErrorNotice(text string) string {
	return r.theme.ErrorNotice.
		Width(r.width).
		Align(lipgloss.Center).
		Render(ErrorIcon + " " + text)
}
