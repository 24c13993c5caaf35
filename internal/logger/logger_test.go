// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "hud.log")

	l, err := New(Config{Level: "debug", File: path})
	require.NoError(t, err)
	cl := l.Component("cloud")
	cl.Info().Str("model", "deepseek-chat").Msg("stream started")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "cloud", entry["component"])
	assert.Equal(t, "stream started", entry["message"])
	assert.Contains(t, entry, "time")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, zerolog.WarnLevel)

	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_NoFileDiscards(t *testing.T) {
	l, err := New(Config{Level: "nonsense"})
	require.NoError(t, err)
	l.Error().Msg("nowhere")
	assert.NoError(t, l.Close())
	assert.Equal(t, zerolog.InfoLevel, l.Zerolog().GetLevel())
}

func TestLogger_RedactsKeys(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, zerolog.DebugLevel)

	l.Error().Str("header", "Bearer sk-abcdef1234567890").Msg("request failed for sk-abcdef1234567890")

	assert.NotContains(t, buf.String(), "sk-abcdef1234567890")
	assert.Contains(t, buf.String(), redacted)
}
