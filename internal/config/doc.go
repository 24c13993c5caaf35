// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and saves the HUD configuration.
//
// The configuration is a small TOML file holding the DeepSeek API key, the
// display opacity and the last window geometry, plus a few optional
// overrides (model, base URL, system prompt, logging).
//
// Configuration file locations (in order of precedence):
//   - $HUD_CONFIG
//   - ~/.deepseek-hud/config.toml
//   - ./deepseek_hud_config.json (legacy format, imported once)
//   - Built-in defaults
//
// The file is loaded once at startup and written back at shutdown. While the
// HUD runs, Watch picks up edits made by other programs.
package config
