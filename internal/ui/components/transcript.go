// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/deepseek-hud/internal/model"
	"github.com/jeranaias/deepseek-hud/internal/ui/styles"
)

// minWidth is the narrowest width the renderer lays out for.
const minWidth = 20

// =============================================================================
// TRANSCRIPT RENDERER
// =============================================================================

// Renderer renders conversation history for a given width and theme.
// Rendering is deterministic: the same history, width and theme always
// produce the same text.
type Renderer struct {
	theme *styles.Theme
	width int
	md    *glamour.TermRenderer
}

// NewRenderer creates a renderer laying out text for width cells.
func NewRenderer(theme *styles.Theme, width int) (*Renderer, error) {
	r := &Renderer{theme: theme, width: clampWidth(width)}
	if err := r.rebuild(); err != nil {
		return nil, err
	}
	return r, nil
}

func clampWidth(width int) int {
	if width < minWidth {
		return minWidth
	}
	return width
}

// rebuild recreates the Markdown renderer after a width or theme change.
func (r *Renderer) rebuild() error {
	md, err := glamour.NewTermRenderer(
		glamour.WithStyles(r.theme.MarkdownStyle()),
		glamour.WithColorProfile(r.theme.ColorProfile),
		glamour.WithWordWrap(r.width),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	r.md = md
	return nil
}

// Width returns the layout width.
func (r *Renderer) Width() int {
	return r.width
}

// SetWidth changes the layout width.
func (r *Renderer) SetWidth(width int) error {
	width = clampWidth(width)
	if width == r.width {
		return nil
	}
	r.width = width
	return r.rebuild()
}

// SetTheme switches to a new theme, typically after an opacity change.
func (r *Renderer) SetTheme(theme *styles.Theme) error {
	r.theme = theme
	return r.rebuild()
}

// Transcript renders every non-system message in order.
func (r *Renderer) Transcript(history []model.Message) string {
	blocks := make([]string, 0, len(history))
	for _, msg := range history {
		blocks = append(blocks, r.Message(msg))
	}
	return joinBlocks(blocks)
}

// Markdown renders content as Markdown. Single newlines inside a paragraph
// are kept as line breaks. If conversion fails the plain text is returned.
func (r *Renderer) Markdown(content string) string {
	out, err := r.md.Render(content)
	if err != nil {
		return r.theme.Body.Width(r.width).Render(content)
	}
	return strings.Trim(out, "\n")
}
