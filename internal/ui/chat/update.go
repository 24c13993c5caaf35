// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/deepseek-hud/internal/cloud"
	"github.com/jeranaias/deepseek-hud/internal/ui/styles"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case StreamEventMsg:
		return m.handleStreamEvent(msg)

	case StreamClosedMsg:
		m.log.Debug().Str("session", msg.SessionID).Msg("session closed without terminal event")
		return m, nil

	case SpinnerTickMsg:
		if m.ctrl.State() != StateAwaiting {
			m.header.Busy = false
			m.spinning = false
			return m, nil
		}
		m.header.Tick()
		return m, spinnerTickCmd()

	case ConfigReloadedMsg:
		return m.handleConfigReloaded(msg)

	case ConfigErrorMsg:
		m.log.Warn().Err(msg.Err).Msg("config reload failed")
		return m, nil

	default:
		var cmds []tea.Cmd
		cmds = append(cmds, m.input.Update(msg))

		var vpCmd tea.Cmd
		m.viewport, vpCmd = m.viewport.Update(msg)
		cmds = append(cmds, vpCmd)

		return m, tea.Batch(cmds...)
	}
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.layout(msg.Width, msg.Height)
	m.cfg.Geometry.Width = msg.Width
	m.cfg.Geometry.Height = msg.Height
	m.refresh()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.close()

	case key.Matches(msg, m.keys.OpacityUp):
		return m.adjustOpacity(OpacityStep)

	case key.Matches(msg, m.keys.OpacityDown):
		return m.adjustOpacity(-OpacityStep)

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, m.input.Update(msg)
}

// submit sends the input box text. The box is only cleared when the
// controller accepts the submission.
func (m Model) submit() (tea.Model, tea.Cmd) {
	session, ok := m.ctrl.Submit(m.input.Value())
	if !ok {
		return m, nil
	}
	m.input.Reset()
	m.session = session
	m.header.Busy = true
	m.refresh()

	// A tick from the previous reply may still be pending.
	var tick tea.Cmd
	if !m.spinning {
		m.spinning = true
		tick = spinnerTickCmd()
	}
	return m, tea.Batch(waitForEventCmd(session), tick)
}

func (m Model) handleStreamEvent(msg StreamEventMsg) (tea.Model, tea.Cmd) {
	ev := msg.Event
	if m.ctrl.Handle(ev) {
		m.refresh()
	}
	if ev.IsTerminal() {
		m.header.Busy = m.ctrl.State() == StateAwaiting
		return m, nil
	}
	if ev.SessionID == m.session.ID {
		return m, waitForEventCmd(m.session)
	}
	return m, nil
}

func (m Model) adjustOpacity(delta float64) (tea.Model, tea.Cmd) {
	before := m.cfg.Opacity
	if m.cfg.AdjustOpacity(delta) == before {
		return m, nil
	}
	m.applyOpacity()
	return m, nil
}

func (m Model) handleConfigReloaded(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	next := msg.Config
	if next == nil {
		return m, nil
	}
	streamerChanged := next.APIKey != m.cfg.APIKey ||
		next.Model != m.cfg.Model ||
		next.BaseURL != m.cfg.BaseURL
	opacityChanged := next.Opacity != m.cfg.Opacity

	m.cfg.Reload(next)

	if streamerChanged {
		m.ctrl.SetStreamer(m.newStreamer(m.cfg))
		m.log.Info().Str("model", m.cfg.Model).Msg("streamer rebuilt from reloaded config")
	}
	if opacityChanged {
		m.applyOpacity()
	}
	return m, nil
}

// close records the window size, cancels the in-flight worker, saves the
// config and quits.
func (m Model) close() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, tea.Quit
	}
	m.quitting = true

	m.cfg.Geometry.Width = m.width
	m.cfg.Geometry.Height = m.height

	m.ctrl.Shutdown()
	m.cancel()

	renders, skipped := m.optimizer.Stats()
	m.log.Debug().
		Uint64("renders", renders).
		Uint64("skipped", skipped).
		Msg("closing")

	if m.save != nil {
		if err := m.save(m.cfg); err != nil {
			m.saveErr = err
			m.log.Error().Err(err).Msg("failed to save config")
		}
	}
	return m, tea.Quit
}

// =============================================================================
// COMMANDS
// =============================================================================

// waitForEventCmd blocks on the session channel and delivers the next event.
// The handler re-issues it until a terminal event arrives.
func waitForEventCmd(s cloud.Session) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-s.Events
		if !ok {
			return StreamClosedMsg{SessionID: s.ID}
		}
		return StreamEventMsg{Event: ev}
	}
}

// spinnerTickCmd schedules the next header spinner frame.
func spinnerTickCmd() tea.Cmd {
	return tea.Tick(styles.DotsSpinner.Duration(), func(time.Time) tea.Msg {
		return SpinnerTickMsg{}
	})
}
