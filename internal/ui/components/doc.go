// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual UI components of the HUD.

# Transcript

Renderer turns the conversation history into terminal text:

	r, err := components.NewRenderer(theme, width)
	out := r.Transcript(history.Messages())

System messages are skipped. User messages are boxed and right-aligned with
a "You:" label. Assistant replies get a "DeepSeek:" label and are rendered
as Markdown with glamour. ErrorNotice and StreamingBlock render the pieces
the conversation controller appends after the history.

# Chrome

Header draws the title bar with the opacity gauge. InputArea wraps a
bubbles textarea for the message box.

# API Key Prompt

KeyPrompt is a standalone Bubble Tea model asking for the API key with
masked input. It is run before the HUD when no key is configured.
*/
package components
