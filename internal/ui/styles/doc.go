// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the HUD.

# Color System (colors.go)

The HUD is a dark overlay. Every foreground color is a hex value so it can
be faded towards the background:

	Accent       - Title and gauge
	TextBody     - Transcript text
	UserBubble   - Border and label of user messages
	ErrorRed     - Error notices

Fade blends a color towards Background by the opacity factor, which is how
the overlay's translucency is expressed in a terminal.

# Theme System (theme.go)

	theme := styles.NewTheme(cfg.Opacity)
	theme.SetOpacity(0.5) // rebuilds every style

MarkdownStyle returns the glamour style used for assistant replies, with its
document color faded to the same opacity.

# Animation System (animations.go)

DotsSpinner animates the header while a reply streams and RenderGauge draws
the opacity slider.
*/
package styles
