// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deepseek-hud/internal/model"
)

// =============================================================================
// MESSAGE BLOCKS
// =============================================================================

// userBlockRatio is the widest a user block gets, as a share of the width.
const userBlockRatio = 0.8

// Message renders one history entry. System messages render as "".
func (r *Renderer) Message(msg model.Message) string {
	switch msg.Role {
	case model.RoleUser:
		return r.UserBlock(msg.Content)
	case model.RoleAssistant:
		return r.AssistantBlock(msg.Content)
	default:
		return ""
	}
}

// UserBlock renders user text verbatim inside a rounded box placed against
// the right edge. The text is never interpreted as Markdown.
func (r *Renderer) UserBlock(content string) string {
	t := r.theme
	label := t.UserLabel.Render(model.RoleUser.DisplayName() + ":")
	text := t.UserText.Render(content)
	body := lipgloss.JoinVertical(lipgloss.Left, label, text)

	// Border and padding take four cells.
	maxInner := int(float64(r.width)*userBlockRatio) - 4
	if maxInner < 10 {
		maxInner = 10
	}
	block := t.UserBlock
	if lipgloss.Width(body) > maxInner {
		block = block.Width(maxInner + 2)
	}

	return lipgloss.PlaceHorizontal(r.width, lipgloss.Right, block.Render(body))
}

// AssistantBlock renders the reply label followed by the reply as Markdown.
func (r *Renderer) AssistantBlock(content string) string {
	label := r.theme.AssistantLabel.Render(model.RoleAssistant.DisplayName() + ":")
	return label + "\n" + r.Markdown(content)
}

// StreamingBlock renders a reply that is still arriving. The text is shown
// as received with no Markdown conversion.
func (r *Renderer) StreamingBlock(raw string) string {
	label := r.theme.AssistantLabel.Render(model.RoleAssistant.DisplayName() + ":")
	return label + "\n" + r.theme.Body.Width(r.width).Render(raw)
}

// Placeholder is shown while the transcript is empty.
func (r *Renderer) Placeholder() string {
	return r.theme.Placeholder.Render("Ready...")
}

// joinBlocks joins rendered blocks with a blank line, skipping empty ones.
func joinBlocks(blocks []string) string {
	kept := blocks[:0:0]
	for _, b := range blocks {
		if b != "" {
			kept = append(kept, b)
		}
	}
	return strings.Join(kept, "\n\n")
}
