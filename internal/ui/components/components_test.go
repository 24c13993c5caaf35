// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/deepseek-hud/internal/model"
	"github.com/jeranaias/deepseek-hud/internal/ui/styles"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func testTheme() *styles.Theme {
	theme := styles.NewTheme(1.0)
	theme.ColorProfile = termenv.Ascii
	return theme
}

func newTestRenderer(t *testing.T, width int) *Renderer {
	t.Helper()
	r, err := NewRenderer(testTheme(), width)
	require.NoError(t, err)
	return r
}

func testConversation() []model.Message {
	h := model.NewHistory("")
	h.Append(model.NewUserMessage("Explain **recursion**"))
	h.Append(model.NewAssistantMessage("# Recursion\n\nA function that **calls itself**."))
	return h.Messages()
}

// =============================================================================
// TRANSCRIPT TESTS
// =============================================================================

func TestTranscript_SkipsSystemMessages(t *testing.T) {
	r := newTestRenderer(t, 60)
	out := ansi.Strip(r.Transcript(testConversation()))

	assert.NotContains(t, out, model.DefaultSystemPrompt)
	assert.Contains(t, out, "You:")
	assert.Contains(t, out, "DeepSeek:")
	assert.Less(t, strings.Index(out, "You:"), strings.Index(out, "DeepSeek:"))
}

func TestTranscript_Empty(t *testing.T) {
	r := newTestRenderer(t, 60)
	assert.Empty(t, r.Transcript(model.NewHistory("").Messages()))
	assert.Contains(t, r.Placeholder(), "Ready...")
}

func TestTranscript_Idempotent(t *testing.T) {
	history := testConversation()

	r := newTestRenderer(t, 60)
	first := r.Transcript(history)
	second := r.Transcript(history)
	assert.Equal(t, first, second)

	fresh := newTestRenderer(t, 60)
	assert.Equal(t, first, fresh.Transcript(history))
}

func TestTranscript_MarkdownOnlyForAssistant(t *testing.T) {
	r := newTestRenderer(t, 60)
	out := ansi.Strip(r.Transcript(testConversation()))

	// User text stays literal.
	assert.Contains(t, out, "Explain **recursion**")

	// Assistant Markdown is converted.
	assert.NotContains(t, out, "# Recursion")
	assert.NotContains(t, out, "**calls itself**")
	assert.Contains(t, out, "Recursion")
	assert.Contains(t, out, "calls itself")
}

func TestMarkdown_KeepsSingleNewlines(t *testing.T) {
	r := newTestRenderer(t, 60)
	out := ansi.Strip(r.Markdown("line one\nline two"))

	assert.Contains(t, out, "line one")
	assert.Contains(t, out, "line two")
	for _, line := range strings.Split(out, "\n") {
		assert.False(t, strings.Contains(line, "line one") && strings.Contains(line, "line two"),
			"single newline was folded: %q", line)
	}
}

func TestMarkdown_FencedCode(t *testing.T) {
	r := newTestRenderer(t, 60)
	out := ansi.Strip(r.Markdown("```go\nfmt.Println(\"hi\")\n```"))

	assert.NotContains(t, out, "```")
	assert.Contains(t, out, "Println")
}

func TestUserBlock_RightAligned(t *testing.T) {
	r := newTestRenderer(t, 60)
	out := r.UserBlock("hello")

	lines := strings.Split(out, "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.Equal(t, 60, lipgloss.Width(line))
		assert.True(t, strings.HasPrefix(line, "    "), "block not pushed right: %q", line)
	}
	assert.Contains(t, out, "╭")
}

func TestUserBlock_WrapsLongText(t *testing.T) {
	r := newTestRenderer(t, 40)
	out := r.UserBlock(strings.Repeat("word ", 40))

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 40)
	}
}

func TestErrorNotice(t *testing.T) {
	r := newTestRenderer(t, 40)
	out := r.ErrorNotice("boom")

	assert.Contains(t, out, "⚠ boom")
	assert.True(t, strings.HasPrefix(out, " "), "notice not centered: %q", out)
	assert.Equal(t, 40, lipgloss.Width(out))
}

func TestStreamingBlock_IsRaw(t *testing.T) {
	r := newTestRenderer(t, 60)
	out := ansi.Strip(r.StreamingBlock("**not yet** rendered"))

	assert.Contains(t, out, "DeepSeek:")
	assert.Contains(t, out, "**not yet** rendered")
}

func TestRenderer_SetWidth(t *testing.T) {
	r := newTestRenderer(t, 5)
	assert.Equal(t, minWidth, r.Width())

	require.NoError(t, r.SetWidth(70))
	assert.Equal(t, 70, r.Width())
	assert.Equal(t, 70, lipgloss.Width(r.ErrorNotice("x")))
}

// =============================================================================
// HEADER TESTS
// =============================================================================

func TestHeader_View(t *testing.T) {
	h := NewHeader(testTheme(), 0.2, 1.0)
	h.Width = 60
	h.Opacity = 0.9

	out := h.View()
	assert.Contains(t, out, Title)
	assert.Contains(t, out, "90%")
	assert.Contains(t, out, styles.GaugeIcon)

	h.Busy = true
	h.Tick()
	assert.Contains(t, h.View(), strings.TrimSpace(styles.DotsSpinner.Frames[1]))
}

// =============================================================================
// INPUT TESTS
// =============================================================================

func TestInputArea_NewlineKeys(t *testing.T) {
	in := NewInputArea(testTheme())
	in.SetWidth(40)
	in.SetValue("hello")

	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEnter, Alt: true}, NewlineKeys))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlJ}, NewlineKeys))
	assert.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyEnter}, NewlineKeys))

	in.Update(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	assert.Equal(t, "hello\n", in.Value())

	in.Reset()
	assert.Empty(t, in.Value())
	assert.Equal(t, InputLines+2, in.Height())
}

// =============================================================================
// KEY PROMPT TESTS
// =============================================================================

func sendKeys(p KeyPrompt, msgs ...tea.Msg) (KeyPrompt, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = p.Update(msg)
		p = next.(KeyPrompt)
	}
	return p, cmd
}

func TestKeyPrompt_Submit(t *testing.T) {
	p := NewKeyPrompt(testTheme())

	p, cmd := sendKeys(p,
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("  sk-secret  ")},
	)
	assert.NotContains(t, p.View(), "sk-secret")

	p, cmd = sendKeys(p, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, p.Submitted())
	assert.False(t, p.Cancelled())
	assert.Equal(t, "sk-secret", p.Key())
}

func TestKeyPrompt_EmptyKeyRejected(t *testing.T) {
	p := NewKeyPrompt(testTheme())

	p, cmd := sendKeys(p, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, p.Submitted())
	assert.Contains(t, p.View(), "API key required")
}

func TestKeyPrompt_Cancel(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		p := NewKeyPrompt(testTheme())
		p, cmd := sendKeys(p, tea.KeyMsg{Type: k})

		require.NotNil(t, cmd)
		assert.True(t, p.Cancelled())
		assert.False(t, p.Submitted())
		assert.Empty(t, p.Key())
		assert.Empty(t, p.View())
	}
}
