// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/jeranaias/deepseek-hud/internal/cloud"
	"github.com/jeranaias/deepseek-hud/internal/config"
	"github.com/jeranaias/deepseek-hud/internal/model"
	"github.com/jeranaias/deepseek-hud/internal/ui/components"
	"github.com/jeranaias/deepseek-hud/internal/ui/styles"
)

// Options configures the HUD model.
type Options struct {
	// Config is updated in place with opacity and geometry changes.
	Config *config.Config

	// NewStreamer builds the streamer for a config. It is called again when
	// the credential, model or base URL changes on reload.
	NewStreamer func(*config.Config) cloud.Streamer

	// Save persists the config when the HUD closes. Nil skips saving.
	Save func(*config.Config) error

	// Theme overrides the theme built from the config opacity.
	Theme *styles.Theme

	Logger zerolog.Logger
}

// Model is the Bubble Tea model of the HUD.
type Model struct {
	cfg         *config.Config
	newStreamer func(*config.Config) cloud.Streamer
	save        func(*config.Config) error
	cancel      context.CancelFunc
	log         zerolog.Logger

	ctrl      *Controller
	theme     *styles.Theme
	renderer  *components.Renderer
	header    *components.Header
	input     *components.InputArea
	viewport  viewport.Model
	optimizer *ViewportOptimizer
	keys      KeyMap

	// session is the channel the update loop is waiting on.
	session cloud.Session

	// spinning is set while a spinner tick is scheduled.
	spinning bool

	width    int
	height   int
	quitting bool
	saveErr  error
}

// New creates the HUD model. Workers run under ctx; closing the HUD cancels
// them.
func New(ctx context.Context, opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if opts.NewStreamer == nil {
		return Model{}, fmt.Errorf("chat: NewStreamer is required")
	}

	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme(cfg.Opacity)
	} else {
		theme.SetOpacity(cfg.Opacity)
	}

	width, height := cfg.Size()
	renderer, err := components.NewRenderer(theme, width)
	if err != nil {
		return Model{}, err
	}

	ctx, cancel := context.WithCancel(ctx)
	log := opts.Logger.With().Str("component", "hud").Logger()

	header := components.NewHeader(theme, config.MinOpacity, config.MaxOpacity)
	header.Opacity = cfg.Opacity

	m := Model{
		cfg:         cfg,
		newStreamer: opts.NewStreamer,
		save:        opts.Save,
		cancel:      cancel,
		log:         log,
		ctrl:        NewController(ctx, opts.NewStreamer(cfg), model.NewHistory(cfg.SystemPrompt), renderer, opts.Logger),
		theme:       theme,
		renderer:    renderer,
		header:      header,
		input:       components.NewInputArea(theme),
		viewport:    viewport.New(width, height),
		optimizer:   NewViewportOptimizer(),
		keys:        DefaultKeyMap(),
	}
	m.layout(width, height)
	m.refresh()
	return m, nil
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, tea.SetWindowTitle(components.Title))
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.viewport.View(),
		m.input.View(),
	)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Controller returns the conversation controller.
func (m Model) Controller() *Controller {
	return m.ctrl
}

// Config returns the live config.
func (m Model) Config() *config.Config {
	return m.cfg
}

// SaveErr returns the error from saving the config on close, if any.
func (m Model) SaveErr() error {
	return m.saveErr
}

// =============================================================================
// LAYOUT
// =============================================================================

// layout sizes every component for a width x height terminal.
func (m *Model) layout(width, height int) {
	m.width, m.height = width, height

	m.header.Width = width
	m.input.SetWidth(width)
	if err := m.renderer.SetWidth(width); err != nil {
		m.log.Error().Err(err).Msg("resize renderer")
	}

	vpHeight := height - lipgloss.Height(m.header.View()) - m.input.Height()
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = width
	m.viewport.Height = vpHeight
	m.optimizer.Reset()
}

// refresh re-renders the transcript into the viewport and scrolls to the end.
func (m *Model) refresh() {
	content := m.ctrl.Transcript()
	if m.optimizer.ShouldUpdate(content) {
		m.viewport.SetContent(content)
	}
	m.viewport.GotoBottom()
}

// applyOpacity rebuilds the styles for the current config opacity.
func (m *Model) applyOpacity() {
	m.theme.SetOpacity(m.cfg.Opacity)
	if err := m.renderer.SetTheme(m.theme); err != nil {
		m.log.Error().Err(err).Msg("restyle renderer")
	}
	m.header.SetTheme(m.theme)
	m.header.Opacity = m.cfg.Opacity
	m.input.SetTheme(m.theme)
	m.optimizer.Reset()
	m.refresh()
}
