// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logger writes structured zerolog output to the HUD log file.
//
// The terminal belongs to the UI, so log lines never go to stdout or stderr.
// Every line passes through a Redactor that masks API keys and bearer tokens.
package logger
