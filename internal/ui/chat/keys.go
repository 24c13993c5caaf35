// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/deepseek-hud/internal/ui/components"
)

// OpacityStep is the opacity change per key press.
const OpacityStep = 0.05

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the HUD.
type KeyMap struct {
	Submit      key.Binding
	Newline     key.Binding
	OpacityUp   key.Binding
	OpacityDown key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		Newline: components.NewlineKeys,
		OpacityUp: key.NewBinding(
			key.WithKeys("ctrl+up"),
			key.WithHelp("C-up", "more opaque"),
		),
		OpacityDown: key.NewBinding(
			key.WithKeys("ctrl+down"),
			key.WithHelp("C-down", "more transparent"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c", "ctrl+q"),
			key.WithHelp("Esc", "close"),
		),
	}
}

// ShortHelp returns the bindings shown under the input box.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Newline, k.OpacityUp, k.Quit}
}
