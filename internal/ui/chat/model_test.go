// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/deepseek-hud/internal/cloud"
	"github.com/jeranaias/deepseek-hud/internal/config"
	"github.com/jeranaias/deepseek-hud/internal/ui/components"
)

type hudHarness struct {
	model    Model
	streamer *fakeStreamer
	built    []*config.Config
	saved    []config.Config
	saveErr  error
}

func newHarness(t *testing.T) *hudHarness {
	t.Helper()
	h := &hudHarness{streamer: &fakeStreamer{}}

	cfg := config.Default()
	cfg.SetAPIKey("sk-test")

	m, err := New(context.Background(), Options{
		Config: cfg,
		NewStreamer: func(c *config.Config) cloud.Streamer {
			h.built = append(h.built, c.Clone())
			return h.streamer
		},
		Save: func(c *config.Config) error {
			h.saved = append(h.saved, *c.Clone())
			return h.saveErr
		},
		Theme:  testTheme(),
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)
	h.model = m
	h.send(tea.WindowSizeMsg{Width: 80, Height: 24})
	return h
}

func (h *hudHarness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

func (h *hudHarness) key(k tea.KeyType) tea.Cmd {
	return h.send(tea.KeyMsg{Type: k})
}

func TestNew_RequiresStreamer(t *testing.T) {
	_, err := New(context.Background(), Options{})
	assert.Error(t, err)
}

func TestModel_InitialView(t *testing.T) {
	h := newHarness(t)

	view := plain(h.model.View())
	assert.Contains(t, view, components.Title)
	assert.Contains(t, view, "Ready...")
	assert.Contains(t, view, "90%")
	require.Len(t, h.built, 1)
	assert.Equal(t, "sk-test", h.built[0].APIKey)
	assert.NotNil(t, h.model.Init())
}

func TestModel_SubmitAndStream(t *testing.T) {
	h := newHarness(t)

	h.model.input.SetValue("Explain recursion")
	cmd := h.key(tea.KeyEnter)
	require.NotNil(t, cmd)
	require.Equal(t, 1, h.streamer.calls())
	assert.Empty(t, h.model.input.Value())
	assert.True(t, h.model.header.Busy)

	id := h.model.session.ID
	cmd = h.send(StreamEventMsg{Event: token(id, "Recur")})
	assert.NotNil(t, cmd, "wait re-armed after a token")
	h.send(StreamEventMsg{Event: token(id, "sion")})
	assert.Contains(t, plain(h.model.View()), "Recursion")

	cmd = h.send(StreamEventMsg{Event: completed(id, "Recursion")})
	assert.Nil(t, cmd, "no wait after the terminal event")
	assert.False(t, h.model.header.Busy)
	assert.Equal(t, StateIdle, h.model.Controller().State())
	assert.Equal(t, 3, h.model.Controller().History().Len())
}

func TestModel_WhitespaceEnterKeepsInput(t *testing.T) {
	h := newHarness(t)

	h.model.input.SetValue("   ")
	cmd := h.key(tea.KeyEnter)

	assert.Nil(t, cmd)
	assert.Zero(t, h.streamer.calls())
	assert.Equal(t, "   ", h.model.input.Value())
}

func TestModel_AltEnterInsertsNewline(t *testing.T) {
	h := newHarness(t)

	h.model.input.SetValue("line")
	h.send(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})

	assert.Equal(t, "line\n", h.model.input.Value())
	assert.Zero(t, h.streamer.calls())
}

func TestModel_ErrorShownInline(t *testing.T) {
	h := newHarness(t)

	h.model.input.SetValue("hi")
	h.key(tea.KeyEnter)
	id := h.model.session.ID

	h.send(StreamEventMsg{Event: failed(id, &cloud.StreamError{Reason: cloud.ErrRateLimited, Status: 429})})

	view := plain(h.model.View())
	assert.Contains(t, view, components.ErrorIcon+" rate limited (HTTP 429)")
	assert.Equal(t, 2, h.model.Controller().History().Len())
}

func TestModel_Opacity(t *testing.T) {
	h := newHarness(t)

	h.key(tea.KeyCtrlUp)
	assert.InDelta(t, 0.95, h.model.Config().Opacity, 1e-9)
	assert.InDelta(t, 0.95, h.model.theme.Opacity, 1e-9)
	assert.Contains(t, plain(h.model.View()), "95%")

	for i := 0; i < 30; i++ {
		h.key(tea.KeyCtrlDown)
	}
	assert.InDelta(t, config.MinOpacity, h.model.Config().Opacity, 1e-9)
	assert.Contains(t, plain(h.model.View()), "20%")
}

func TestModel_CloseSavesAndCancels(t *testing.T) {
	h := newHarness(t)

	h.model.input.SetValue("hi")
	h.key(tea.KeyEnter)
	require.Equal(t, 1, h.streamer.calls())

	cmd := h.key(tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	assert.ErrorIs(t, h.streamer.ctxs[0].Err(), context.Canceled)
	require.Len(t, h.saved, 1)
	assert.Equal(t, 80, h.saved[0].Geometry.Width)
	assert.Equal(t, 24, h.saved[0].Geometry.Height)
	assert.Empty(t, h.model.View())
}

func TestModel_CloseKeys(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC, tea.KeyCtrlQ} {
		h := newHarness(t)
		cmd := h.key(k)
		require.NotNil(t, cmd)
		assert.Len(t, h.saved, 1)
	}
}

func TestModel_SaveErrorRecorded(t *testing.T) {
	h := newHarness(t)
	h.saveErr = errors.New("disk full")

	h.key(tea.KeyCtrlQ)
	assert.EqualError(t, h.model.SaveErr(), "disk full")
}

func TestModel_ConfigReload(t *testing.T) {
	h := newHarness(t)

	next := config.Default()
	next.SetAPIKey("sk-rotated")
	next.Opacity = 0.5

	h.send(ConfigReloadedMsg{Config: next})

	require.Len(t, h.built, 2)
	assert.Equal(t, "sk-rotated", h.built[1].APIKey)
	assert.InDelta(t, 0.5, h.model.theme.Opacity, 1e-9)
	assert.Equal(t, 80, h.model.Config().Geometry.Width)

	// Same credential again does not rebuild the streamer.
	h.send(ConfigReloadedMsg{Config: next.Clone()})
	assert.Len(t, h.built, 2)
}

func TestWaitForEventCmd(t *testing.T) {
	ch := make(chan cloud.Event, 1)
	session := cloud.Session{ID: "s1", Events: ch}

	ch <- token("s1", "x")
	msg := waitForEventCmd(session)()
	assert.Equal(t, StreamEventMsg{Event: token("s1", "x")}, msg)

	close(ch)
	msg = waitForEventCmd(session)()
	assert.Equal(t, StreamClosedMsg{SessionID: "s1"}, msg)
}

func TestModel_SpinnerStopsWhenIdle(t *testing.T) {
	h := newHarness(t)

	assert.Nil(t, h.send(SpinnerTickMsg{}))

	h.model.input.SetValue("hi")
	h.key(tea.KeyEnter)
	assert.NotNil(t, h.send(SpinnerTickMsg{}))
	assert.Equal(t, 1, h.model.header.Frame)
}

func TestModel_SingleSpinnerLoopAcrossReplies(t *testing.T) {
	h := newHarness(t)

	h.model.input.SetValue("first")
	cmd := h.key(tea.KeyEnter)
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	assert.Len(t, batch, 2, "first submit waits for events and starts the spinner")

	h.send(StreamEventMsg{Event: completed("session-1", "done")})
	require.Equal(t, StateIdle, h.model.Controller().State())

	// Resubmit before the pending tick fires.
	h.model.input.SetValue("second")
	cmd = h.key(tea.KeyEnter)
	require.NotNil(t, cmd)
	batch, ok = cmd().(tea.BatchMsg)
	require.True(t, ok)
	assert.Len(t, batch, 1, "no second spinner loop while a tick is pending")

	// The pending tick keeps the one loop going.
	assert.NotNil(t, h.send(SpinnerTickMsg{}))

	h.send(StreamEventMsg{Event: completed("session-2", "done")})
	assert.Nil(t, h.send(SpinnerTickMsg{}))
	assert.False(t, h.model.spinning)

	h.model.input.SetValue("third")
	batch, ok = h.key(tea.KeyEnter)().(tea.BatchMsg)
	require.True(t, ok)
	assert.Len(t, batch, 2, "a new loop starts once the old one stopped")
}
