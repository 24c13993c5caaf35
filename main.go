// DeepSeek HUD - an always-on-top terminal chat overlay for DeepSeek.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jeranaias/deepseek-hud/internal/cloud"
	"github.com/jeranaias/deepseek-hud/internal/config"
	"github.com/jeranaias/deepseek-hud/internal/logger"
	"github.com/jeranaias/deepseek-hud/internal/ui/chat"
	"github.com/jeranaias/deepseek-hud/internal/ui/components"
	"github.com/jeranaias/deepseek-hud/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	log, err := openLog(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer log.Close()

	log.Info().
		Str("version", Version).
		Str("commit", GitCommit).
		Str("model", cfg.Model).
		Msg("starting")

	theme := styles.NewTheme(cfg.Opacity)

	if !cfg.HasCredential() {
		key, ok, err := promptForKey(theme)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if !ok {
			log.Info().Msg("API key prompt dismissed")
			return 0
		}
		cfg.SetAPIKey(key)
		if err := config.Save(cfg); err != nil {
			log.Error().Err(err).Msg("failed to save API key")
			fmt.Fprintf(os.Stderr, "Warning: could not save config: %v\n", err)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	zl := log.Zerolog()
	hud, err := chat.New(ctx, chat.Options{
		Config: cfg,
		NewStreamer: func(c *config.Config) cloud.Streamer {
			return cloud.NewClient(cloud.Options{
				APIKey:  c.APIKey,
				BaseURL: c.BaseURL,
				Model:   c.Model,
				Logger:  zl,
			})
		},
		Save:   config.Save,
		Theme:  theme,
		Logger: zl,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	p := tea.NewProgram(
		hud,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse wheel scrolling
		tea.WithContext(ctx),
	)

	watchConfig(ctx, p, log.Component("config"))

	final, err := p.Run()
	cancel()
	if errors.Is(err, tea.ErrProgramKilled) {
		// Terminated by signal: the HUD did not get to save on close.
		if err := config.Save(cfg); err != nil {
			log.Error().Err(err).Msg("failed to save config")
		}
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running HUD: %v\n", err)
		return 1
	}

	if m, ok := final.(chat.Model); ok && m.SaveErr() != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save config: %v\n", m.SaveErr())
	}
	log.Info().Msg("closed")
	return 0
}

// openLog opens the log file named in the config, or the default one.
func openLog(cfg *config.Config) (*logger.Logger, error) {
	path := cfg.Log.File
	if path == "" {
		var err error
		if path, err = config.DefaultLogPath(); err != nil {
			return nil, err
		}
	}
	return logger.New(logger.Config{Level: cfg.Log.Level, File: path})
}

// promptForKey runs the API key prompt. ok is false if the user aborted.
func promptForKey(theme *styles.Theme) (key string, ok bool, err error) {
	final, err := tea.NewProgram(components.NewKeyPrompt(theme)).Run()
	if err != nil {
		return "", false, fmt.Errorf("key prompt: %w", err)
	}
	prompt, isPrompt := final.(components.KeyPrompt)
	if !isPrompt || !prompt.Submitted() {
		return "", false, nil
	}
	return prompt.Key(), true, nil
}

// watchConfig forwards external edits of the config file to the HUD.
func watchConfig(ctx context.Context, p *tea.Program, log zerolog.Logger) {
	path, err := config.ConfigPath()
	if err != nil {
		log.Warn().Err(err).Msg("config watcher disabled")
		return
	}
	err = config.Watch(ctx, path,
		func(c *config.Config) { p.Send(chat.ConfigReloadedMsg{Config: c}) },
		func(err error) { p.Send(chat.ConfigErrorMsg{Err: err}) },
	)
	if err != nil {
		log.Warn().Err(err).Msg("config watcher disabled")
	}
}
